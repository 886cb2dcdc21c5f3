package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/yeremiapane/food-catalog/config"
	"github.com/yeremiapane/food-catalog/database"
	"github.com/yeremiapane/food-catalog/router"
	"github.com/yeremiapane/food-catalog/utils"
)

func main() {
	issueToken := flag.Bool("issue-token", false, "print a token for the write routes and exit")
	seedFile := flag.String("seed", "", "YAML file with foods to insert into an empty database (overrides SEED_FILE)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to load config: %v", err)
	}
	applyLogLevel(cfg.Server.LogLevel)

	if *issueToken {
		token, err := utils.GenerateToken([]byte(cfg.Auth.JWTSecret), "admin", cfg.Auth.TokenTTL)
		if err != nil {
			utils.ErrorLogger.Fatalf("Failed to issue token: %v", err)
		}
		fmt.Fprintln(os.Stdout, token)
		return
	}

	db, err := config.InitDB(cfg.DB)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}

	if *seedFile != "" {
		cfg.Server.SeedFile = *seedFile
	}
	if cfg.Server.SeedFile != "" {
		foods, err := database.LoadSeed(cfg.Server.SeedFile)
		if err != nil {
			utils.ErrorLogger.Fatalf("Failed to read seed file: %v", err)
		}
		if err := database.Seed(db, foods); err != nil {
			utils.ErrorLogger.Fatalf("Failed to seed foods: %v", err)
		}
	}

	if cfg.Server.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := router.SetupRouter(db, router.Options{
		JWTSecret: []byte(cfg.Auth.JWTSecret),
		RateLimit: cfg.Server.RateLimit,
		Registry:  reg,
	})
	if cfg.Auth.JWTSecret == "" {
		utils.InfoLogger.Warn("JWT_SECRET not set, write routes are open")
	}

	utils.InfoLogger.Printf("Listening on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

// applyLogLevel sets the info logger level, keeping the current one when
// lvl does not parse.
func applyLogLevel(lvl string) {
	if err := utils.SetLevel(lvl); err != nil {
		utils.InfoLogger.Warnf("Invalid LOG_LEVEL %q, keeping %s: %v", lvl, utils.InfoLogger.GetLevel(), err)
	}
}

package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yeremiapane/food-catalog/config"
	"github.com/yeremiapane/food-catalog/dashboard"
	"github.com/yeremiapane/food-catalog/services"
	"github.com/yeremiapane/food-catalog/tui"
	"github.com/yeremiapane/food-catalog/utils"
)

func main() {
	os.Exit(run())
}

// run owns every deferred cleanup so that main can exit with its code.
func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return 1
	}

	logFile, err := utils.InitFileLogger(cfg.Dashboard.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		return 1
	}
	defer logFile.Close()

	api := services.NewFoodsService(services.FoodsConfig{
		BaseURL: cfg.Dashboard.APIURL,
		Token:   cfg.Dashboard.APIToken,
		Timeout: cfg.Dashboard.Timeout,
	})
	checkAPI(context.Background(), api, cfg.Dashboard.APIURL)

	ctrl := dashboard.NewController(api)
	defer ctrl.Close()

	p := tea.NewProgram(tui.New(ctrl), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		utils.ErrorLogger.Errorf("Dashboard stopped: %v", err)
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		return 1
	}
	return 0
}

// checkAPI logs an unreachable or unhealthy foods API. The dashboard still
// starts; the first load will surface the same failure in the status line.
func checkAPI(ctx context.Context, api *services.FoodsService, url string) bool {
	if err := api.CheckHealth(ctx); err != nil {
		utils.ErrorLogger.Errorf("Foods API at %s is not healthy: %v", url, err)
		return false
	}
	return true
}

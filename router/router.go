package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yeremiapane/food-catalog/controllers"
	"github.com/yeremiapane/food-catalog/middlewares"
	"gorm.io/gorm"
)

type Options struct {
	// JWTSecret protects the write routes when non-empty.
	JWTSecret []byte
	// RateLimit is requests per second per client IP; 0 disables it.
	RateLimit int
	// Registry collects HTTP metrics. A fresh one is created when nil.
	Registry *prometheus.Registry
}

func SetupRouter(db *gorm.DB, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	metrics := middlewares.NewMetrics(reg)

	r.Use(middlewares.RequestID())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(metrics.Middleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	if opts.RateLimit > 0 {
		r.Use(middlewares.NewRateLimiter(opts.RateLimit).RateLimit())
	}

	foodCtrl := controllers.NewFoodController(db)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// ----------------------------------------------------------------
	//                      FOODS
	// ----------------------------------------------------------------
	r.GET("/foods", foodCtrl.GetAllFoods)
	r.GET("/foods/:food_id", foodCtrl.GetFoodByID)

	write := r.Group("/foods")
	if len(opts.JWTSecret) > 0 {
		write.Use(middlewares.AuthMiddleware(opts.JWTSecret))
	}
	{
		write.POST("", foodCtrl.CreateFood)
		write.PUT("/:food_id", foodCtrl.UpdateFood)
		write.DELETE("/:food_id", foodCtrl.DeleteFood)
	}

	return r
}

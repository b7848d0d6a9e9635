// Package api assembles the HTTP surface: middleware chain, route groups,
// and the root banner.
package api

import (
	"marketplace/api/admin"
	"marketplace/api/favorite"
	"marketplace/api/health"
	"marketplace/api/item"
	"marketplace/api/middleware"
	"marketplace/api/order"
	"marketplace/config"

	"github.com/gin-gonic/gin"
)

// Router owns the gin engine and the controllers.
type Router struct {
	engine             *gin.Engine
	config             *config.Config
	healthController   *health.Controller
	itemController     *item.Controller
	orderController    *order.Controller
	favoriteController *favorite.Controller
	adminController    *admin.Controller
}

// NewRouter builds the engine with the middleware chain applied. Order
// matters: the request ID must exist before anything logs, and recovery must
// wrap everything that can panic.
func NewRouter(
	cfg *config.Config,
	healthController *health.Controller,
	itemController *item.Controller,
	orderController *order.Controller,
	favoriteController *favorite.Controller,
	adminController *admin.Controller,
) *Router {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.RecoveryMiddleware())
	engine.Use(middleware.LoggingMiddleware())
	engine.Use(middleware.CORSMiddleware(&cfg.CORS))
	engine.Use(middleware.RateLimitMiddleware(&cfg.Server.RateLimit))
	engine.Use(middleware.AuthMiddleware(&cfg.Auth))

	return &Router{
		engine:             engine,
		config:             cfg,
		healthController:   healthController,
		itemController:     itemController,
		orderController:    orderController,
		favoriteController: favoriteController,
		adminController:    adminController,
	}
}

// SetupRoutes registers every controller under /api/v1.
func (r *Router) SetupRoutes() {
	apiGroup := r.engine.Group("/api/v1")
	{
		r.healthController.RegisterRoutes(apiGroup)
		r.itemController.RegisterRoutes(apiGroup)
		r.orderController.RegisterRoutes(apiGroup)
		r.favoriteController.RegisterRoutes(apiGroup)
		r.adminController.RegisterRoutes(apiGroup)
	}

	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"name":    r.config.App.Name,
			"version": r.config.App.Version,
			"env":     r.config.App.Env,
			"health":  "/api/v1/health",
		})
	})
}

// GetEngine returns the underlying gin engine.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

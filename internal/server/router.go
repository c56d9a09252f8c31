package server

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shari-07/search-api/internal/server/handlers"
)

// Router 路由管理器
type Router struct {
	router *gin.Engine
	deps   handlers.Dependencies
	logger *zap.Logger
}

// NewRouter 创建路由管理器
func NewRouter(router *gin.Engine, deps handlers.Dependencies, logger *zap.Logger) *Router {
	return &Router{
		router: router,
		deps:   deps,
		logger: logger,
	}
}

// SetupRoutes 设置所有路由
func (r *Router) SetupRoutes() {
	health := handlers.NewHealthHandler(r.deps)
	r.router.GET("/health", health.Check)

	api := r.router.Group("/api/v1")
	{
		product := api.Group("/product")
		{
			productHandler := handlers.NewProductHandler(r.deps)
			product.GET("/details", productHandler.GetDetails)
			product.POST("/link", productHandler.ResolveLink)
		}
	}
}

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler 存活检查
type HealthHandler struct {
	deps      Dependencies
	startedAt time.Time
}

// NewHealthHandler 创建存活检查处理器
func NewHealthHandler(deps Dependencies) *HealthHandler {
	return &HealthHandler{deps: deps, startedAt: time.Now()}
}

// Check GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	body := gin.H{
		"status": "ok",
		"uptime": time.Since(h.startedAt).Round(time.Second).String(),
	}
	if h.deps.Config != nil {
		body["app"] = h.deps.Config.App.Name
		body["version"] = h.deps.Config.App.Version
	}
	if h.deps.Cache != nil {
		body["cache"] = h.deps.Cache.Memory().Stats()
	}
	c.JSON(http.StatusOK, body)
}

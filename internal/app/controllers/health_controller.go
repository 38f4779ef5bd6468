package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yigit/devcamper/internal/app/repositories"
	"github.com/yigit/devcamper/internal/pkg/logger"
)

// HealthController reports service liveness and store reachability
type HealthController struct {
	store repositories.Pinger
}

// NewHealthController creates a new HealthController
func NewHealthController(store repositories.Pinger) *HealthController {
	return &HealthController{store: store}
}

// Health reports whether the document store answers
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{} "Service healthy"
// @Failure 503 {object} map[string]interface{} "Database unreachable"
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	if err := c.store.Ping(pingCtx); err != nil {
		logger.FromContext(ctx.Request.Context()).Warn().Err(err).Msg("Health check failed")
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "database": "unreachable"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "database": "ok"})
}

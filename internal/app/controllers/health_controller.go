package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hogwarts/school/internal/app/models/dto"
	"github.com/hogwarts/school/internal/pkg/logger"
)

// Pinger reports whether the backing store is reachable
type Pinger func(ctx context.Context) error

// HealthController serves the liveness endpoint
type HealthController struct {
	ping Pinger
}

// NewHealthController creates a HealthController. A nil ping always reports healthy.
func NewHealthController(ping Pinger) *HealthController {
	return &HealthController{ping: ping}
}

// Health reports service liveness
// @Summary Liveness and store connectivity
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.ErrorResponse "Store unreachable"
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	if c.ping != nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()
		if err := c.ping(pingCtx); err != nil {
			logger.Warn().Err(err).Msg("Health check failed")
			ctx.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Store unreachable")))
			return
		}
	}

	ctx.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}

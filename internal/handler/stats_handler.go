package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"capprice/internal/service"
)

// StatsHandler handles stats endpoints.
type StatsHandler struct {
	statsService service.StatsService
	logger       *zap.Logger
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService service.StatsService, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{statsService: statsService, logger: logger}
}

// GetStats handles GET /api/v1/stats?days=N
func (h *StatsHandler) GetStats(c *gin.Context) {
	days := 0
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			RespondError(c, http.StatusBadRequest, "INVALID_DAYS", "days must be a non-negative integer")
			return
		}
		days = n
	}

	stats, err := h.statsService.GetStats(c.Request.Context(), days)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}

	RespondOK(c, stats)
}

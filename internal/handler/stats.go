package handler

import (
	"github.com/gin-gonic/gin"

	"dataset-cutter/config"
	"dataset-cutter/internal/response"
)

// GetStats reports per-label clip counts against the configured target.
func (h *Handler) GetStats(c *gin.Context) {
	settings := config.GetExport()
	stats, err := h.Service.DatasetStats(settings.DatasetRoot, settings.TargetPerLabel, settings.MarginPerLabel)
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}
	response.Success(c, stats)
}

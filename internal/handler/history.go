package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"dataset-cutter/internal/response"
	"dataset-cutter/internal/storage"
	apperrors "dataset-cutter/pkg/errors"
)

const defaultHistoryLimit = 50

// GetHistory returns the most recent export records, newest first.
func (h *Handler) GetHistory(c *gin.Context) {
	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	records, err := storage.GetExportHistory(limit)
	if err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeDBError, "Database error", err))
		return
	}
	response.Success(c, records)
}

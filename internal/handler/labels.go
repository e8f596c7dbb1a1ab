package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dataset-cutter/internal/dto"
	"dataset-cutter/internal/response"
	"dataset-cutter/internal/storage"
	"dataset-cutter/log"
	apperrors "dataset-cutter/pkg/errors"
)

// GetLabels returns the label registry in first-seen order.
func (h *Handler) GetLabels(c *gin.Context) {
	labels, err := storage.LoadLabels()
	if err != nil {
		log.GetLogger().Error("GetLabels failed", zap.Error(err))
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeFileNotFound, "Cannot read label registry", err))
		return
	}
	if labels == nil {
		labels = []string{}
	}
	response.Success(c, dto.LabelsResData{Labels: labels})
}

package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dataset-cutter/internal/dto"
	"dataset-cutter/internal/response"
	"dataset-cutter/internal/service"
	"dataset-cutter/log"
	apperrors "dataset-cutter/pkg/errors"
)

// ExportClip cuts one clip at the requested position and files it under the
// label's Training folder.
func (h *Handler) ExportClip(c *gin.Context) {
	var req dto.ClipReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.GetLogger().Error("ExportClip ShouldBindJSON err", zap.Error(err))
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "Invalid parameters", err))
		return
	}

	result, err := h.Service.ExportClip(c.Request.Context(), service.ExportRequest{
		VideoFilename: req.VideoFilename,
		CurrentTime:   req.CurrentTime,
		Label:         req.Label,
		InMark:        req.InMark,
		OutMark:       req.OutMark,
	})
	if err != nil {
		log.GetLogger().Error("ExportClip failed",
			zap.String("video", req.VideoFilename),
			zap.String("label", req.Label),
			zap.Error(err))
		response.ErrorResponse(c, err)
		return
	}

	response.Success(c, dto.ClipResData{
		Path:  result.OutputPath,
		Label: result.Label,
		Start: result.Window.Start,
		End:   result.Window.End,
	})
}

// UndoClip removes the most recently exported clip. Undoing with an empty
// stack is not an error.
func (h *Handler) UndoClip(c *gin.Context) {
	path, err := h.Service.UndoLast()
	if err != nil {
		log.GetLogger().Error("UndoClip failed", zap.Error(err))
		response.ErrorResponse(c, err)
		return
	}
	response.Success(c, dto.UndoResData{
		Undone: path != "",
		Path:   path,
	})
}

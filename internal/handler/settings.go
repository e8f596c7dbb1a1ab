package handler

import (
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dataset-cutter/config"
	"dataset-cutter/internal/appdirs"
	"dataset-cutter/internal/dto"
	"dataset-cutter/internal/response"
	"dataset-cutter/internal/types"
	"dataset-cutter/log"
	apperrors "dataset-cutter/pkg/errors"
)

func (h *Handler) GetSettings(c *gin.Context) {
	response.Success(c, config.GetExport())
}

// UpdateSettings applies a partial settings update and persists the config.
// Invalid clip modes and non-positive durations are ignored field-wise, the
// same forgiving behavior the UI has always relied on.
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req dto.SettingsUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.GetLogger().Error("UpdateSettings ShouldBindJSON err", zap.Error(err))
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "Invalid parameters", err))
		return
	}

	updated, err := config.UpdateExport(func(export *config.ExportConfig) {
		if req.DatasetRoot != nil && *req.DatasetRoot != "" {
			export.DatasetRoot = *req.DatasetRoot
		}
		if req.ClipDuration != nil && *req.ClipDuration > 0 {
			export.ClipDuration = *req.ClipDuration
		}
		if req.ClipMode != nil {
			switch types.ClipMode(*req.ClipMode) {
			case types.ClipModeBackward, types.ClipModeCentered, types.ClipModeRange:
				export.ClipMode = *req.ClipMode
			}
		}
		if req.TargetPerLabel != nil && *req.TargetPerLabel >= 0 {
			export.TargetPerLabel = *req.TargetPerLabel
		}
		if req.MarginPerLabel != nil && *req.MarginPerLabel >= 0 {
			export.MarginPerLabel = *req.MarginPerLabel
		}
		if req.DropAudio != nil {
			export.DropAudio = *req.DropAudio
		}
		if req.AlwaysReencode != nil {
			export.AlwaysReencode = *req.AlwaysReencode
		}
		if req.CFR != nil && *req.CFR >= 0 {
			export.CFR = *req.CFR
		}
	})
	if err != nil {
		log.GetLogger().Error("failed to persist settings", zap.Error(err))
	}

	// Make sure the (possibly new) dataset root is usable right away.
	if mkErr := os.MkdirAll(appdirs.TrainingRootFor(updated.DatasetRoot), 0o755); mkErr != nil {
		log.GetLogger().Warn("cannot create dataset root", zap.String("root", updated.DatasetRoot), zap.Error(mkErr))
	}

	response.Success(c, updated)
}

package handler

import (
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

// StartRepair kicks off a background repair run over the Training tree.
// At most one run is in flight at a time.
func (h *Handler) StartRepair(c *gin.Context) {
	var req dto.RepairStartReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.GetLogger().Error("StartRepair ShouldBindJSON err", zap.Error(err))
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "Invalid parameters", err))
		return
	}

	opts := types.RepairOptions{
		Root:         req.Root,
		CFR:          config.Conf.Repair.CFR,
		DryRun:       req.DryRun,
		BackupSuffix: config.Conf.Repair.BackupExt,
	}
	if opts.Root == "" {
		opts.Root = appdirs.TrainingRootFor(config.GetExport().DatasetRoot)
	}
	if req.CFR != nil && *req.CFR >= 0 {
		opts.CFR = *req.CFR
	}
	if req.BackupExt != nil && *req.BackupExt != "" {
		opts.BackupSuffix = *req.BackupExt
	}

	if err := h.RepairRunner.Start(opts); err != nil {
		response.ErrorResponse(c, err)
		return
	}
	response.Success(c, h.RepairRunner.Status())
}

// RepairStatus reports whether a repair is running and the last report.
func (h *Handler) RepairStatus(c *gin.Context) {
	response.Success(c, h.RepairRunner.Status())
}

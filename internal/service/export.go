package service

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"dataset-cutter/config"
	"dataset-cutter/internal/appdirs"
	"dataset-cutter/internal/storage"
	"dataset-cutter/internal/types"
	"dataset-cutter/log"
	apperrors "dataset-cutter/pkg/errors"
	"dataset-cutter/pkg/util"
)

// ExportRequest is one interactive clip export.
type ExportRequest struct {
	VideoFilename string
	CurrentTime   float64
	Label         string
	InMark        *float64
	OutMark       *float64
}

type ExportResult struct {
	OutputPath string
	Window     types.ClipWindow
	Label      string
}

// ExportClip runs the full interactive pipeline: plan the window, cut it
// through the fallback ladder into the label's Training folder, then record
// the artifact on the undo stack and in the export history.
func (s *Service) ExportClip(ctx context.Context, req ExportRequest) (*ExportResult, error) {
	settings := config.GetExport()

	videosDir, err := appdirs.ResolveVideosDir()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeUnknown, "Cannot resolve videos directory", err)
	}
	source := filepath.Join(videosDir, filepath.Base(req.VideoFilename))
	if _, err = os.Stat(source); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeVideoNotFound, "Source video not found", err)
	}

	mode := types.ParseClipMode(settings.ClipMode)
	window := PlanWindow(mode, req.CurrentTime, settings.ClipDuration, req.InMark, req.OutMark)
	if window.Duration() <= 0 {
		return nil, apperrors.ErrInvalidWindow
	}

	label := util.SanitizeLabel(req.Label)
	if err = storage.SaveLabel(label); err != nil {
		log.GetLogger().Warn("failed to register label", zap.String("label", label), zap.Error(err))
	}

	outDir := filepath.Join(appdirs.TrainingRootFor(settings.DatasetRoot), label)
	if err = os.MkdirAll(outDir, 0o755); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeFileWriteError, "Cannot create label directory", err)
	}

	epochMs := time.Now().UnixMilli()
	outPath := filepath.Join(outDir, util.ClipFileName(source, window.Start, window.End, epochMs))

	profile := config.TargetProfileFromExport(settings)
	if err = s.Cut(ctx, source, window, outPath, profile, settings.AlwaysReencode); err != nil {
		return nil, err
	}

	if err = storage.PushUndo(outPath); err != nil {
		log.GetLogger().Warn("failed to push undo entry", zap.String("path", outPath), zap.Error(err))
	}
	record := &types.ExportRecord{
		SourceFile: filepath.Base(source),
		Label:      label,
		Mode:       string(mode),
		StartMs:    int64(window.Start * 1000),
		EndMs:      int64(window.End * 1000),
		OutputPath: outPath,
	}
	if err = storage.SaveExportRecord(record); err != nil {
		log.GetLogger().Warn("failed to save export record", zap.Error(err))
	}

	log.GetLogger().Info("clip exported",
		zap.String("source", record.SourceFile),
		zap.String("label", label),
		zap.Float64("start", window.Start),
		zap.Float64("end", window.End),
		zap.String("output", outPath))

	return &ExportResult{
		OutputPath: outPath,
		Window:     window,
		Label:      label,
	}, nil
}

// UndoLast pops the newest produced clip off the undo stack and deletes its
// file. Returns ("", nil) when there is nothing to undo.
func (s *Service) UndoLast() (string, error) {
	path, err := storage.PopUndo()
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeDBError, "Database error", err)
	}
	if path == "" {
		return "", nil
	}

	if _, err = os.Stat(path); err == nil {
		if err = os.Remove(path); err != nil {
			log.GetLogger().Warn("failed to delete undone clip", zap.String("path", path), zap.Error(err))
		}
	}
	log.GetLogger().Info("undid last export", zap.String("path", path))
	return path, nil
}

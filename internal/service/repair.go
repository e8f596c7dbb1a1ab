package service

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"dataset-cutter/internal/types"
	"dataset-cutter/log"
	apperrors "dataset-cutter/pkg/errors"
	"dataset-cutter/pkg/util"
)

// RepairDataset walks every media file under the label-bucketed root and
// normalizes it in place, strictly sequentially. A single file's failure is
// logged, counted and skipped; it never aborts the batch. progress may be
// nil; when set it receives one result per scanned file.
func (s *Service) RepairDataset(ctx context.Context, opts types.RepairOptions, progress func(types.RepairFileResult)) (*types.RepairReport, error) {
	info, err := os.Stat(opts.Root)
	if err != nil || !info.IsDir() {
		return nil, apperrors.Wrap(apperrors.CodeRepairRootMissing, "Repair root not found or not a directory", err)
	}

	exts := util.AllowedVideoExts
	if len(opts.Exts) > 0 {
		exts = make(map[string]bool, len(opts.Exts))
		for _, ext := range opts.Exts {
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			exts[strings.ToLower(ext)] = true
		}
	}

	profile := types.DefaultTargetProfile()
	profile.CFR = opts.CFR

	report := &types.RepairReport{DryRun: opts.DryRun}
	for _, item := range scanTrainingTree(opts.Root, exts, opts.BackupSuffix) {
		// The only supported cancellation point is between files, before
		// the next child process starts.
		if ctx.Err() != nil {
			return report, ctx.Err()
		}

		result := types.RepairFileResult{Path: item.path, Label: item.label}
		action, err := s.NormalizeInPlace(ctx, item.path, profile, opts)
		result.Action = action

		report.Processed++
		if err != nil {
			result.Err = err.Error()
			report.Failed++
			report.Failures = append(report.Failures, result)
			log.GetLogger().Error("repair failed",
				zap.String("path", item.path),
				zap.Error(err))
		} else {
			report.Repaired++
			if opts.DryRun {
				log.GetLogger().Info("dry run",
					zap.String("path", item.path),
					zap.String("action", string(action)))
			} else {
				log.GetLogger().Info("repaired",
					zap.String("path", item.path),
					zap.String("action", string(action)))
			}
		}

		if progress != nil {
			progress(result)
		}
	}

	log.GetLogger().Info("repair finished",
		zap.Int("processed", report.Processed),
		zap.Int("repaired", report.Repaired),
		zap.Int("failed", report.Failed),
		zap.Bool("dry_run", report.DryRun))
	return report, nil
}

type repairItem struct {
	path  string
	label string
}

// scanTrainingTree lists label subdirectories and their media files in
// sorted order, skipping OS metadata, temp files and backups.
func scanTrainingTree(root string, exts map[string]bool, backupSuffix string) []repairItem {
	labelDirs, err := os.ReadDir(root)
	if err != nil {
		return nil
	}

	var items []repairItem
	for _, labelDir := range labelDirs {
		if !labelDir.IsDir() {
			continue
		}
		files, err := os.ReadDir(filepath.Join(root, labelDir.Name()))
		if err != nil {
			continue
		}
		for _, file := range files {
			if file.IsDir() {
				continue
			}
			name := file.Name()
			if backupSuffix != "" && strings.HasSuffix(name, backupSuffix) {
				continue
			}
			low := strings.ToLower(name)
			if strings.HasPrefix(name, ".") || strings.HasPrefix(low, "._") {
				continue
			}
			if !exts[strings.ToLower(filepath.Ext(name))] {
				continue
			}
			items = append(items, repairItem{
				path:  filepath.Join(root, labelDir.Name(), name),
				label: labelDir.Name(),
			})
		}
	}

	sort.Slice(items, func(i, j int) bool { return items[i].path < items[j].path })
	return items
}

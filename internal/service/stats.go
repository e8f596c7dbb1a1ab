package service

import (
	"os"
	"path/filepath"

	"github.com/samber/lo"

	"dataset-cutter/internal/appdirs"
	"dataset-cutter/internal/types"
	apperrors "dataset-cutter/pkg/errors"
	"dataset-cutter/pkg/util"
)

// DatasetStats counts clips per label under {datasetRoot}/Training and
// reports each label against the target count. The margin relaxes the
// target: a label is "met" once it reaches target-margin clips.
func (s *Service) DatasetStats(datasetRoot string, target, margin int) (*types.DatasetStats, error) {
	trainingRoot := appdirs.TrainingRootFor(datasetRoot)
	entries, err := os.ReadDir(trainingRoot)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeNotFound, "Dataset path not found", err)
	}

	threshold := target - margin
	if threshold < 0 {
		threshold = 0
	}

	stats := &types.DatasetStats{Root: trainingRoot}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		count := countClips(filepath.Join(trainingRoot, entry.Name()))
		deficit := threshold - count
		if deficit < 0 {
			deficit = 0
		}
		stats.Labels = append(stats.Labels, types.LabelCount{
			Label:   entry.Name(),
			Count:   count,
			Deficit: deficit,
			Met:     count >= threshold,
		})
	}

	stats.Classes = len(stats.Labels)
	if stats.Classes > 0 {
		counts := lo.Map(stats.Labels, func(l types.LabelCount, _ int) int { return l.Count })
		stats.TotalClips = lo.Sum(counts)
		stats.Mean = float64(stats.TotalClips) / float64(stats.Classes)
		stats.Min = lo.Min(counts)
		stats.Max = lo.Max(counts)
	}
	return stats, nil
}

func countClips(labelDir string) int {
	files, err := os.ReadDir(labelDir)
	if err != nil {
		return 0
	}
	count := 0
	for _, file := range files {
		if !file.IsDir() && util.IsListableVideo(file.Name()) {
			count++
		}
	}
	return count
}

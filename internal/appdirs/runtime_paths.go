package appdirs

import (
	"path/filepath"
	"strings"
)

const (
	TrainingDirName = "Training"

	dbFileName     = "datasetcutter.db"
	labelsFileName = "labels.txt"
)

func DBPathFor(paths Paths) string {
	return filepath.Join(normalizeDataDir(paths.DataDir), dbFileName)
}

func LabelsPathFor(paths Paths) string {
	return filepath.Join(normalizeDataDir(paths.DataDir), labelsFileName)
}

// TrainingRootFor returns the label-bucketed directory under a dataset root.
func TrainingRootFor(datasetRoot string) string {
	return filepath.Join(datasetRoot, TrainingDirName)
}

func ResolveDBPath() (string, error) {
	paths, err := Resolve()
	if err != nil {
		return "", err
	}
	return DBPathFor(paths), nil
}

func ResolveLabelsPath() (string, error) {
	paths, err := Resolve()
	if err != nil {
		return "", err
	}
	return LabelsPathFor(paths), nil
}

func ResolveVideosDir() (string, error) {
	paths, err := Resolve()
	if err != nil {
		return "", err
	}
	return paths.VideosDir, nil
}

func normalizeDataDir(dataDir string) string {
	cleaned := strings.TrimSpace(dataDir)
	if cleaned == "" {
		return "data"
	}
	return filepath.Clean(cleaned)
}

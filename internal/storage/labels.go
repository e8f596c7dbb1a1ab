package storage

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/samber/lo"

	"dataset-cutter/internal/appdirs"
)

// labelsMu serializes the read-rewrite cycle of the registry file.
var labelsMu sync.Mutex

// LoadLabels returns the registered labels in first-seen order.
func LoadLabels() ([]string, error) {
	path, err := resolveLabelsPath()
	if err != nil {
		return nil, err
	}
	return readLabels(path)
}

// SaveLabel appends a label to the registry. Idempotent: duplicates are
// dropped and the original insertion order is preserved.
func SaveLabel(label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil
	}

	path, err := resolveLabelsPath()
	if err != nil {
		return err
	}

	labelsMu.Lock()
	defer labelsMu.Unlock()

	labels, err := readLabels(path)
	if err != nil {
		return err
	}
	labels = lo.Uniq(append(labels, label))

	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(strings.Join(labels, "\n")+"\n"), 0o644)
}

func readLabels(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var labels []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			labels = append(labels, line)
		}
	}
	return lo.Uniq(labels), nil
}

func resolveLabelsPath() (string, error) {
	dirs, err := appDirsResolver()
	if err != nil {
		return "", err
	}
	return appdirs.LabelsPathFor(dirs), nil
}

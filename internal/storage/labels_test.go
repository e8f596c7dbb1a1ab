package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataset-cutter/internal/appdirs"
)

func setLabelsDirForTest(t *testing.T) string {
	t.Helper()

	dataDir := t.TempDir()
	originalResolver := appDirsResolver
	appDirsResolver = func() (appdirs.Paths, error) {
		return appdirs.Paths{DataDir: dataDir}, nil
	}
	t.Cleanup(func() {
		appDirsResolver = originalResolver
	})
	return dataDir
}

func TestSaveLabelRegistersOnce(t *testing.T) {
	setLabelsDirForTest(t)

	require.NoError(t, SaveLabel("walking"))
	require.NoError(t, SaveLabel("running"))
	require.NoError(t, SaveLabel("walking"))

	labels, err := LoadLabels()
	require.NoError(t, err)
	assert.Equal(t, []string{"walking", "running"}, labels)
}

func TestSaveLabelIgnoresBlank(t *testing.T) {
	dataDir := setLabelsDirForTest(t)

	require.NoError(t, SaveLabel("   "))

	_, err := os.Stat(filepath.Join(dataDir, "labels.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestLoadLabelsMissingFile(t *testing.T) {
	setLabelsDirForTest(t)

	labels, err := LoadLabels()
	require.NoError(t, err)
	assert.Nil(t, labels)
}

func TestLoadLabelsSkipsBlankLines(t *testing.T) {
	dataDir := setLabelsDirForTest(t)
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "labels.txt"),
		[]byte("walking\n\n  \nrunning\nwalking\n"), 0o644))

	labels, err := LoadLabels()
	require.NoError(t, err)
	assert.Equal(t, []string{"walking", "running"}, labels)
}

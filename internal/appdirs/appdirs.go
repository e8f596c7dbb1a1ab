package appdirs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const (
	PortableEnv = "DATASETCUTTER_PORTABLE"

	appDirName     = "DatasetCutter"
	configFileName = "config.toml"
)

// Paths is the resolved on-disk layout for one run. Everything user-writable
// lives under BaseDir; bundled launches get the same tree next to the binary
// in portable mode.
type Paths struct {
	Portable   bool
	BaseDir    string
	ConfigDir  string
	ConfigFile string
	DataDir    string
	LogDir     string
	VideosDir  string
	DatasetDir string
	BinDir     string
}

type resolveDeps struct {
	getenv      func(string) string
	executable  func() (string, error)
	userHomeDir func() (string, error)
}

func Resolve() (Paths, error) {
	return resolve(resolveDeps{
		getenv:      os.Getenv,
		executable:  os.Executable,
		userHomeDir: os.UserHomeDir,
	})
}

func resolve(rawDeps resolveDeps) (Paths, error) {
	deps := withDefaults(rawDeps)
	if isPortableEnabled(deps.getenv(PortableEnv)) {
		return resolvePortable(deps)
	}
	return resolveHome(deps)
}

func withDefaults(deps resolveDeps) resolveDeps {
	if deps.getenv == nil {
		deps.getenv = os.Getenv
	}
	if deps.executable == nil {
		deps.executable = os.Executable
	}
	if deps.userHomeDir == nil {
		deps.userHomeDir = os.UserHomeDir
	}
	return deps
}

func resolvePortable(deps resolveDeps) (Paths, error) {
	executablePath, err := deps.executable()
	if err != nil {
		return Paths{}, err
	}
	paths := layoutUnder(filepath.Join(filepath.Dir(executablePath), appDirName))
	paths.Portable = true
	return paths, nil
}

func resolveHome(deps resolveDeps) (Paths, error) {
	home, err := deps.userHomeDir()
	if err != nil {
		return Paths{}, err
	}
	if strings.TrimSpace(home) == "" {
		return Paths{}, errors.New("user home dir is empty")
	}
	return layoutUnder(filepath.Join(home, appDirName)), nil
}

func layoutUnder(baseDir string) Paths {
	configDir := filepath.Join(baseDir, "config")
	dataDir := filepath.Join(baseDir, "data")
	return Paths{
		BaseDir:    baseDir,
		ConfigDir:  configDir,
		ConfigFile: filepath.Join(configDir, configFileName),
		DataDir:    dataDir,
		LogDir:     dataDir,
		VideosDir:  filepath.Join(dataDir, "videos"),
		DatasetDir: filepath.Join(baseDir, "dataset"),
		BinDir:     filepath.Join(baseDir, "bin"),
	}
}

func isPortableEnabled(value string) bool {
	normalized := strings.TrimSpace(strings.ToLower(value))
	return normalized == "1" || normalized == "true"
}

package deps

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"dataset-cutter/config"
	"dataset-cutter/internal/appdirs"
	"dataset-cutter/internal/storage"
	"dataset-cutter/log"
)

type DependencyStatus string

const (
	DependencyStatusOK      DependencyStatus = "ok"
	DependencyStatusMissing DependencyStatus = "missing"
)

type DependencySpec struct {
	Name       string
	Command    string
	EnvVar     string
	ConfigPath string
	Required   bool
}

type DependencyState struct {
	DependencySpec
	ResolvedPath string
	Status       DependencyStatus
	Error        string
}

// PathResolver locates an external binary, trying in order: environment
// override, configured path, the user-local bin directory, well-known
// install locations, then PATH. Fields are injectable for tests.
type PathResolver struct {
	Getenv   func(string) string
	LookPath func(file string) (string, error)
	Stat     func(name string) (os.FileInfo, error)
	BinDir   func() string
}

func NewPathResolver() PathResolver {
	return PathResolver{
		Getenv:   os.Getenv,
		LookPath: exec.LookPath,
		Stat:     os.Stat,
		BinDir: func() string {
			paths, err := appdirs.Resolve()
			if err != nil {
				return ""
			}
			return paths.BinDir
		},
	}
}

// wellKnownDirs covers Homebrew and stock install prefixes on macOS/Linux.
var wellKnownDirs = []string{"/opt/homebrew/bin", "/usr/local/bin"}

func (r PathResolver) Resolve(spec DependencySpec) DependencyState {
	state := DependencyState{DependencySpec: spec}

	candidates := make([]string, 0, 6)
	if env := strings.TrimSpace(r.Getenv(spec.EnvVar)); env != "" {
		candidates = append(candidates, env)
	}
	if configured := strings.TrimSpace(spec.ConfigPath); configured != "" {
		candidates = append(candidates, configured)
	}
	if binDir := r.BinDir(); binDir != "" {
		candidates = append(candidates, filepath.Join(binDir, spec.Command))
	}
	for _, dir := range wellKnownDirs {
		candidates = append(candidates, filepath.Join(dir, spec.Command))
	}

	for _, candidate := range candidates {
		if resolved, ok := r.resolveCandidate(candidate); ok {
			state.Status = DependencyStatusOK
			state.ResolvedPath = resolved
			return state
		}
	}

	if resolved, err := r.LookPath(spec.Command); err == nil {
		state.Status = DependencyStatusOK
		state.ResolvedPath = resolved
		return state
	} else {
		state.Error = err.Error()
	}

	state.Status = DependencyStatusMissing
	return state
}

func (r PathResolver) resolveCandidate(candidate string) (string, bool) {
	if resolved, err := r.LookPath(candidate); err == nil {
		return resolved, true
	}
	info, err := r.Stat(candidate)
	if err != nil || info.IsDir() {
		return "", false
	}
	return candidate, true
}

// CheckDependency resolves ffmpeg and ffprobe and publishes the paths to
// storage. ffmpeg is required; a missing ffprobe is tolerated because probe
// failures already degrade to "must re-encode".
func CheckDependency() error {
	resolver := NewPathResolver()

	ffmpeg := resolver.Resolve(DependencySpec{
		Name:       "ffmpeg",
		Command:    "ffmpeg",
		EnvVar:     "FFMPEG_BINARY",
		ConfigPath: config.Conf.Ffmpeg.FfmpegPath,
		Required:   true,
	})
	if ffmpeg.Status != DependencyStatusOK {
		return fmt.Errorf("ffmpeg not found (set FFMPEG_BINARY or ffmpeg.ffmpeg_path in config): %s", ffmpeg.Error)
	}
	storage.FfmpegPath = ffmpeg.ResolvedPath
	log.GetLogger().Info("using ffmpeg", zap.String("path", ffmpeg.ResolvedPath))

	ffprobe := resolver.Resolve(DependencySpec{
		Name:       "ffprobe",
		Command:    "ffprobe",
		EnvVar:     "FFPROBE_BINARY",
		ConfigPath: config.Conf.Ffmpeg.FfprobePath,
	})
	if ffprobe.Status == DependencyStatusOK {
		storage.FfprobePath = ffprobe.ResolvedPath
		log.GetLogger().Info("using ffprobe", zap.String("path", ffprobe.ResolvedPath))
	} else {
		// Try the sibling of the resolved ffmpeg before giving up.
		sibling := filepath.Join(filepath.Dir(ffmpeg.ResolvedPath), "ffprobe")
		if resolved, ok := resolver.resolveCandidate(sibling); ok {
			storage.FfprobePath = resolved
			log.GetLogger().Info("using ffprobe", zap.String("path", resolved))
		} else {
			log.GetLogger().Warn("ffprobe not found; files will be treated as incompatible and re-encoded")
		}
	}

	return nil
}

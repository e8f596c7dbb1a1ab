package deps

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func notFoundErr(command string) error {
	return &exec.Error{Name: command, Err: exec.ErrNotFound}
}

func failingLookPath(file string) (string, error) {
	return "", notFoundErr(file)
}

func TestPathResolverPrefersEnvOverride(t *testing.T) {
	binPath := filepath.Join(t.TempDir(), "ffmpeg-custom")
	if err := os.WriteFile(binPath, []byte("ffmpeg"), 0o755); err != nil {
		t.Fatalf("os.WriteFile() failed: %v", err)
	}

	resolver := NewPathResolver()
	resolver.LookPath = failingLookPath
	resolver.Getenv = func(key string) string {
		if key == "FFMPEG_BINARY" {
			return binPath
		}
		return ""
	}
	resolver.BinDir = func() string { return "" }

	state := resolver.Resolve(DependencySpec{
		Name:    "ffmpeg",
		Command: "ffmpeg",
		EnvVar:  "FFMPEG_BINARY",
	})

	if state.Status != DependencyStatusOK {
		t.Fatalf("state.Status = %q, want %q", state.Status, DependencyStatusOK)
	}
	if state.ResolvedPath != binPath {
		t.Fatalf("state.ResolvedPath = %q, want %q", state.ResolvedPath, binPath)
	}
}

func TestPathResolverUsesConfiguredPath(t *testing.T) {
	binPath := filepath.Join(t.TempDir(), "ffmpeg-configured")
	if err := os.WriteFile(binPath, []byte("ffmpeg"), 0o755); err != nil {
		t.Fatalf("os.WriteFile() failed: %v", err)
	}

	resolver := NewPathResolver()
	resolver.LookPath = failingLookPath
	resolver.Getenv = func(string) string { return "" }
	resolver.BinDir = func() string { return "" }

	state := resolver.Resolve(DependencySpec{
		Name:       "ffmpeg",
		Command:    "ffmpeg",
		ConfigPath: binPath,
	})

	if state.Status != DependencyStatusOK {
		t.Fatalf("state.Status = %q, want %q", state.Status, DependencyStatusOK)
	}
	if state.ResolvedPath != binPath {
		t.Fatalf("state.ResolvedPath = %q, want %q", state.ResolvedPath, binPath)
	}
}

func TestPathResolverUsesBinDir(t *testing.T) {
	binDir := t.TempDir()
	binPath := filepath.Join(binDir, "ffmpeg")
	if err := os.WriteFile(binPath, []byte("ffmpeg"), 0o755); err != nil {
		t.Fatalf("os.WriteFile() failed: %v", err)
	}

	resolver := NewPathResolver()
	resolver.LookPath = failingLookPath
	resolver.Getenv = func(string) string { return "" }
	resolver.BinDir = func() string { return binDir }

	state := resolver.Resolve(DependencySpec{Name: "ffmpeg", Command: "ffmpeg"})

	if state.Status != DependencyStatusOK {
		t.Fatalf("state.Status = %q, want %q", state.Status, DependencyStatusOK)
	}
	if state.ResolvedPath != binPath {
		t.Fatalf("state.ResolvedPath = %q, want %q", state.ResolvedPath, binPath)
	}
}

func TestPathResolverFallsBackToLookPath(t *testing.T) {
	resolver := NewPathResolver()
	resolver.Getenv = func(string) string { return "" }
	resolver.BinDir = func() string { return "" }
	resolver.Stat = func(string) (os.FileInfo, error) { return nil, os.ErrNotExist }
	resolver.LookPath = func(file string) (string, error) {
		if file == "ffmpeg" {
			return "/mock/bin/ffmpeg", nil
		}
		return "", notFoundErr(file)
	}

	state := resolver.Resolve(DependencySpec{Name: "ffmpeg", Command: "ffmpeg"})

	if state.Status != DependencyStatusOK {
		t.Fatalf("state.Status = %q, want %q", state.Status, DependencyStatusOK)
	}
	if state.ResolvedPath != "/mock/bin/ffmpeg" {
		t.Fatalf("state.ResolvedPath = %q, want %q", state.ResolvedPath, "/mock/bin/ffmpeg")
	}
}

func TestPathResolverReportsMissing(t *testing.T) {
	resolver := NewPathResolver()
	resolver.LookPath = failingLookPath
	resolver.Getenv = func(string) string { return "" }
	resolver.BinDir = func() string { return "" }
	resolver.Stat = func(string) (os.FileInfo, error) { return nil, os.ErrNotExist }

	state := resolver.Resolve(DependencySpec{Name: "ffmpeg", Command: "ffmpeg"})

	if state.Status != DependencyStatusMissing {
		t.Fatalf("state.Status = %q, want %q", state.Status, DependencyStatusMissing)
	}
	if state.ResolvedPath != "" {
		t.Fatalf("state.ResolvedPath = %q, want empty", state.ResolvedPath)
	}
	if state.Error == "" {
		t.Fatalf("state.Error should not be empty")
	}
}

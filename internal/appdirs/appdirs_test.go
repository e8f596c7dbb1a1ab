package appdirs

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestResolveLayouts(t *testing.T) {
	portableExePath := filepath.Join("/", "apps", "DatasetCutter", "datasetcutter")
	portableBase := filepath.Join(filepath.Dir(portableExePath), appDirName)
	homeDir := filepath.Join("/", "home", "alice")
	homeBase := filepath.Join(homeDir, appDirName)

	testCases := []struct {
		name           string
		portableEnv    string
		executablePath string
		homeDir        string
		want           Paths
		wantExeCall    bool
		wantHomeCall   bool
	}{
		{
			name:           "portable layout when env is true",
			portableEnv:    "true",
			executablePath: portableExePath,
			want: Paths{
				Portable:   true,
				BaseDir:    portableBase,
				ConfigDir:  filepath.Join(portableBase, "config"),
				ConfigFile: filepath.Join(portableBase, "config", "config.toml"),
				DataDir:    filepath.Join(portableBase, "data"),
				LogDir:     filepath.Join(portableBase, "data"),
				VideosDir:  filepath.Join(portableBase, "data", "videos"),
				DatasetDir: filepath.Join(portableBase, "dataset"),
				BinDir:     filepath.Join(portableBase, "bin"),
			},
			wantExeCall: true,
		},
		{
			name:        "home layout by default",
			portableEnv: "",
			homeDir:     homeDir,
			want: Paths{
				BaseDir:    homeBase,
				ConfigDir:  filepath.Join(homeBase, "config"),
				ConfigFile: filepath.Join(homeBase, "config", "config.toml"),
				DataDir:    filepath.Join(homeBase, "data"),
				LogDir:     filepath.Join(homeBase, "data"),
				VideosDir:  filepath.Join(homeBase, "data", "videos"),
				DatasetDir: filepath.Join(homeBase, "dataset"),
				BinDir:     filepath.Join(homeBase, "bin"),
			},
			wantHomeCall: true,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			exeCalled := false
			homeCalled := false

			got, err := resolve(resolveDeps{
				getenv: func(key string) string {
					if key == PortableEnv {
						return tc.portableEnv
					}
					return ""
				},
				executable: func() (string, error) {
					exeCalled = true
					return tc.executablePath, nil
				},
				userHomeDir: func() (string, error) {
					homeCalled = true
					return tc.homeDir, nil
				},
			})
			if err != nil {
				t.Fatalf("resolve() returned unexpected error: %v", err)
			}

			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("resolve() = %+v, want %+v", got, tc.want)
			}

			if exeCalled != tc.wantExeCall {
				t.Fatalf("executable() called = %t, want %t", exeCalled, tc.wantExeCall)
			}
			if homeCalled != tc.wantHomeCall {
				t.Fatalf("userHomeDir() called = %t, want %t", homeCalled, tc.wantHomeCall)
			}
		})
	}
}

func TestResolveErrors(t *testing.T) {
	testCases := []struct {
		name       string
		deps       resolveDeps
		wantErrSub string
	}{
		{
			name: "portable mode returns executable lookup error",
			deps: resolveDeps{
				getenv: func(key string) string {
					if key == PortableEnv {
						return "1"
					}
					return ""
				},
				executable: func() (string, error) {
					return "", errors.New("no executable")
				},
			},
			wantErrSub: "no executable",
		},
		{
			name: "home mode returns home lookup error",
			deps: resolveDeps{
				getenv: func(string) string { return "" },
				userHomeDir: func() (string, error) {
					return "", errors.New("no home")
				},
			},
			wantErrSub: "no home",
		},
		{
			name: "home mode rejects blank home",
			deps: resolveDeps{
				getenv: func(string) string { return "" },
				userHomeDir: func() (string, error) {
					return "   ", nil
				},
			},
			wantErrSub: "home dir is empty",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := resolve(tc.deps)
			if err == nil {
				t.Fatal("resolve() returned nil error")
			}
			if !strings.Contains(err.Error(), tc.wantErrSub) {
				t.Fatalf("resolve() error = %q, want containing %q", err.Error(), tc.wantErrSub)
			}
		})
	}
}

func TestIsPortableEnabled(t *testing.T) {
	testCases := []struct {
		name  string
		value string
		want  bool
	}{
		{name: "empty value", value: "", want: false},
		{name: "zero", value: "0", want: false},
		{name: "one", value: "1", want: true},
		{name: "true lowercase", value: "true", want: true},
		{name: "true uppercase", value: "TRUE", want: true},
		{name: "trimmed true", value: "  true  ", want: true},
		{name: "false", value: "false", want: false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := isPortableEnabled(tc.value); got != tc.want {
				t.Fatalf("isPortableEnabled(%q) = %t, want %t", tc.value, got, tc.want)
			}
		})
	}
}

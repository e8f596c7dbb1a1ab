package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataset-cutter/internal/types"
)

func setConfigPathForTest(t *testing.T) string {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "config", "config.toml")
	originalResolver := resolveConfigPath
	resolveConfigPath = func() (string, error) {
		return configPath, nil
	}
	originalConf := Conf
	t.Cleanup(func() {
		resolveConfigPath = originalResolver
		Conf = originalConf
	})
	return configPath
}

func TestLoadOrCreateConfigWritesDefaults(t *testing.T) {
	configPath := setConfigPathForTest(t)

	created, err := LoadOrCreateConfig()
	require.NoError(t, err)
	assert.True(t, created)

	_, err = os.Stat(configPath)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", Conf.Server.Host)
	assert.Equal(t, 8888, Conf.Server.Port)
	assert.Equal(t, 2.0, Conf.Export.ClipDuration)
	assert.Equal(t, string(types.ClipModeBackward), Conf.Export.ClipMode)
	assert.Equal(t, 50, Conf.Export.TargetPerLabel)
	assert.Equal(t, 0, Conf.Export.MarginPerLabel)
	assert.Equal(t, 30, Conf.Repair.CFR)
	assert.Equal(t, ".bak", Conf.Repair.BackupExt)
}

func TestLoadOrCreateConfigRoundTrip(t *testing.T) {
	setConfigPathForTest(t)

	created, err := LoadOrCreateConfig()
	require.NoError(t, err)
	require.True(t, created)

	Conf.Server.Port = 9999
	Conf.Export.ClipDuration = 3.5
	require.NoError(t, SaveConfig())

	Conf = Config{}
	created, err = LoadOrCreateConfig()
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 9999, Conf.Server.Port)
	assert.Equal(t, 3.5, Conf.Export.ClipDuration)
}

func TestUpdateExportPersists(t *testing.T) {
	setConfigPathForTest(t)

	_, err := LoadOrCreateConfig()
	require.NoError(t, err)

	updated, err := UpdateExport(func(export *ExportConfig) {
		export.ClipDuration = 1.5
		export.TargetPerLabel = 100
	})
	require.NoError(t, err)
	assert.Equal(t, 1.5, updated.ClipDuration)
	assert.Equal(t, 100, updated.TargetPerLabel)

	Conf = Config{}
	_, err = LoadOrCreateConfig()
	require.NoError(t, err)
	assert.Equal(t, 1.5, Conf.Export.ClipDuration)
	assert.Equal(t, 100, Conf.Export.TargetPerLabel)
}

func TestCheckConfig(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "zero port", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: true},
		{name: "port too large", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: true},
		{name: "zero clip duration", mutate: func(c *Config) { c.Export.ClipDuration = 0 }, wantErr: true},
		{name: "bad clip mode", mutate: func(c *Config) { c.Export.ClipMode = "sideways" }, wantErr: true},
		{name: "negative target", mutate: func(c *Config) { c.Export.TargetPerLabel = -1 }, wantErr: true},
		{name: "centered mode is valid", mutate: func(c *Config) { c.Export.ClipMode = string(types.ClipModeCentered) }},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			originalConf := Conf
			t.Cleanup(func() { Conf = originalConf })

			Conf = defaultConfig()
			tc.mutate(&Conf)

			err := CheckConfig()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTargetProfileFromExport(t *testing.T) {
	profile := TargetProfileFromExport(ExportConfig{CFR: 30, DropAudio: true})
	assert.Equal(t, "h264", profile.VideoCodec)
	assert.Equal(t, "yuv420p", profile.PixelFormat)
	assert.Equal(t, "aac", profile.AudioCodec)
	assert.Equal(t, 30, profile.CFR)
	assert.True(t, profile.DropAudio)
}

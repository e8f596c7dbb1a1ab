package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"dataset-cutter/internal/appdirs"
	"dataset-cutter/internal/types"
	"dataset-cutter/log"
)

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type FfmpegConfig struct {
	FfmpegPath  string `toml:"ffmpeg_path"`
	FfprobePath string `toml:"ffprobe_path"`
}

// ExportConfig is the process-wide export settings mirror. It is read by
// every export and mutated only through UpdateExport.
type ExportConfig struct {
	DatasetRoot    string  `toml:"dataset_root" json:"dataset_root"`
	ClipDuration   float64 `toml:"clip_duration" json:"clip_duration"`
	ClipMode       string  `toml:"clip_mode" json:"clip_mode"`
	TargetPerLabel int     `toml:"target_per_label" json:"target_per_label"`
	MarginPerLabel int     `toml:"margin_per_label" json:"margin_per_label"`
	DropAudio      bool    `toml:"drop_audio" json:"drop_audio"`
	AlwaysReencode bool    `toml:"always_reencode" json:"always_reencode"`
	CFR            int     `toml:"cfr" json:"cfr"`
}

type RepairConfig struct {
	CFR       int    `toml:"cfr"`
	BackupExt string `toml:"backup_ext"`
}

type Config struct {
	Server ServerConfig `toml:"server"`
	Ffmpeg FfmpegConfig `toml:"ffmpeg"`
	Export ExportConfig `toml:"export"`
	Repair RepairConfig `toml:"repair"`
}

var Conf Config

// confMu guards Conf against concurrent read/update from request handlers.
var confMu sync.RWMutex

var resolveConfigPath = func() (string, error) {
	paths, err := appdirs.Resolve()
	if err != nil {
		return "", err
	}
	return paths.ConfigFile, nil
}

func defaultConfig() Config {
	datasetRoot := "dataset"
	if paths, err := appdirs.Resolve(); err == nil {
		datasetRoot = paths.DatasetDir
	}
	return Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8888,
		},
		Export: ExportConfig{
			DatasetRoot:    datasetRoot,
			ClipDuration:   2.0,
			ClipMode:       string(types.ClipModeBackward),
			TargetPerLabel: 50,
			MarginPerLabel: 0,
		},
		Repair: RepairConfig{
			CFR:       30,
			BackupExt: ".bak",
		},
	}
}

// LoadOrCreateConfig reads the config file, writing defaults first when it
// does not exist yet. It reports whether a new file was created.
func LoadOrCreateConfig() (bool, error) {
	configPath, err := resolveConfigPath()
	if err != nil {
		return false, err
	}

	if _, err = os.Stat(configPath); os.IsNotExist(err) {
		Conf = defaultConfig()
		if err = SaveConfig(); err != nil {
			return false, fmt.Errorf("write default config: %w", err)
		}
		return true, nil
	}

	Conf = defaultConfig()
	if _, err = toml.DecodeFile(configPath, &Conf); err != nil {
		return false, fmt.Errorf("decode config %s: %w", configPath, err)
	}
	return false, nil
}

// SaveConfig writes Conf to the resolved config path, creating parent
// directories as needed.
func SaveConfig() error {
	configPath, err := resolveConfigPath()
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	file, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	confMu.RLock()
	defer confMu.RUnlock()
	return toml.NewEncoder(file).Encode(Conf)
}

// LoadConfig is the entrypoint wrapper used by main: it loads (or creates)
// the config and logs the outcome. Returns false when startup must abort.
func LoadConfig() bool {
	created, err := LoadOrCreateConfig()
	if err != nil {
		log.GetLogger().Error("failed to load config", zap.Error(err))
		return false
	}
	if created {
		path, _ := resolveConfigPath()
		log.GetLogger().Info("created default config", zap.String("path", path))
	}
	return true
}

// CheckConfig validates the loaded configuration.
func CheckConfig() error {
	if Conf.Server.Port <= 0 || Conf.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", Conf.Server.Port)
	}
	if Conf.Export.ClipDuration <= 0 {
		return fmt.Errorf("clip_duration must be positive, got %v", Conf.Export.ClipDuration)
	}
	switch types.ClipMode(Conf.Export.ClipMode) {
	case types.ClipModeBackward, types.ClipModeCentered, types.ClipModeRange:
	default:
		return fmt.Errorf("invalid clip_mode: %q", Conf.Export.ClipMode)
	}
	if Conf.Export.TargetPerLabel < 0 || Conf.Export.MarginPerLabel < 0 {
		return fmt.Errorf("target_per_label and margin_per_label must be non-negative")
	}
	return nil
}

// GetExport returns a copy of the current export settings.
func GetExport() ExportConfig {
	confMu.RLock()
	defer confMu.RUnlock()
	return Conf.Export
}

// UpdateExport applies fn to the export settings under the config lock and
// persists the result.
func UpdateExport(fn func(*ExportConfig)) (ExportConfig, error) {
	confMu.Lock()
	fn(&Conf.Export)
	updated := Conf.Export
	confMu.Unlock()

	if err := SaveConfig(); err != nil {
		return updated, err
	}
	return updated, nil
}

// TargetProfileFromExport derives the fixed target profile used by the
// interactive export path.
func TargetProfileFromExport(export ExportConfig) types.TargetProfile {
	profile := types.DefaultTargetProfile()
	profile.CFR = export.CFR
	profile.DropAudio = export.DropAudio
	return profile
}

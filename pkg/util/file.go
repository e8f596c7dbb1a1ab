package util

import (
	"fmt"
	"path/filepath"
	"strings"
)

// AllowedVideoExts is the upload/listing allow-list shared with repair scans.
var AllowedVideoExts = map[string]bool{
	".mp4": true,
	".mov": true,
	".m4v": true,
}

// Names written by operating systems that must never show up as videos.
var excludedMetaNames = map[string]bool{
	".ds_store":   true,
	"thumbs.db":   true,
	"ehthumbs.db": true,
	"desktop.ini": true,
}

// SanitizeFilename reduces a name to [A-Za-z0-9._-], replacing everything
// else with underscores. An empty result falls back to "clip".
func SanitizeFilename(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteRune(c)
		case c == '-' || c == '_' || c == '.':
			b.WriteRune(c)
		default:
			b.WriteRune('_')
		}
	}
	safe := strings.Trim(b.String(), "._")
	if safe == "" {
		return "clip"
	}
	return safe
}

// SanitizeLabel is SanitizeFilename with the label fallback.
func SanitizeLabel(label string) string {
	if strings.Trim(label, "._ ") == "" {
		return "unknown"
	}
	return SanitizeFilename(label)
}

// ClipFileName builds the output artifact name:
// {source_stem}_{start_ms}_{end_ms}_{export_epoch_ms}.mp4
func ClipFileName(sourcePath string, startSec, endSec float64, epochMs int64) string {
	stem := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	return fmt.Sprintf("%s_%d_%d_%d.mp4", stem, int64(startSec*1000), int64(endSec*1000), epochMs)
}

// IsListableVideo reports whether name is a normal user video file name,
// excluding dotfiles, AppleDouble resource forks and OS metadata.
func IsListableVideo(name string) bool {
	low := strings.ToLower(name)
	if strings.HasPrefix(name, ".") || strings.HasPrefix(low, "._") || excludedMetaNames[low] {
		return false
	}
	return AllowedVideoExts[strings.ToLower(filepath.Ext(name))]
}

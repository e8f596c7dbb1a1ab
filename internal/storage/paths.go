package storage

// Resolved external tool paths, filled in by deps.CheckDependency at startup.
// The bare names keep PATH lookup semantics as a last resort.
var (
	FfmpegPath  = "ffmpeg"
	FfprobePath = "ffprobe"
)

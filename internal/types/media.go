package types

// ClipMode selects how the export window is derived from the player state.
type ClipMode string

const (
	ClipModeBackward ClipMode = "backward"
	ClipModeCentered ClipMode = "centered"
	ClipModeRange    ClipMode = "range"
)

// ParseClipMode normalizes a mode string, defaulting to backward.
func ParseClipMode(s string) ClipMode {
	switch ClipMode(s) {
	case ClipModeCentered:
		return ClipModeCentered
	case ClipModeRange:
		return ClipModeRange
	default:
		return ClipModeBackward
	}
}

// ClipWindow is a half-open time range inside the source video, in seconds.
// Invariant: End > Start for any window that reaches the transcoder.
type ClipWindow struct {
	Start float64
	End   float64
}

func (w ClipWindow) Duration() float64 {
	return w.End - w.Start
}

func (w ClipWindow) Valid() bool {
	return w.Start >= 0 && w.End > w.Start
}

// TargetProfile defines what "training ready" means for produced clips.
// Immutable per run; both export and repair judge files against it.
type TargetProfile struct {
	VideoCodec  string
	PixelFormat string
	AudioCodec  string
	// CFR forces a constant output frame rate when > 0.
	CFR int
	// DropAudio strips audio instead of transcoding it to AudioCodec.
	DropAudio bool
}

func DefaultTargetProfile() TargetProfile {
	return TargetProfile{
		VideoCodec:  "h264",
		PixelFormat: "yuv420p",
		AudioCodec:  "aac",
	}
}

// ProbeResult is one file's stream metadata at one point in time. It is
// derived on demand and never cached: the file may have just been rewritten.
type ProbeResult struct {
	HasVideo    bool
	VideoCodec  string
	PixelFormat string
	Width       int
	Height      int
	FrameRate   string
	HasAudio    bool
	AudioCodec  string
	Duration    float64
}

// CompatibilityVerdict reports which streams already satisfy the target
// profile. It drives the remux-vs-reencode decision in both code paths.
type CompatibilityVerdict struct {
	VideoOK bool
	AudioOK bool
}

func (v CompatibilityVerdict) Compatible() bool {
	return v.VideoOK && v.AudioOK
}

package service

import (
	"strings"

	"dataset-cutter/internal/types"
)

// Evaluate decides whether a probed file already satisfies the target
// profile. This single definition governs both interactive export and batch
// repair; neither path may re-implement it.
//
// A nil probe yields an all-false verdict: a file we cannot inspect is never
// accepted as compatible.
func Evaluate(probe *types.ProbeResult, profile types.TargetProfile) types.CompatibilityVerdict {
	var verdict types.CompatibilityVerdict
	if probe == nil {
		return verdict
	}

	verdict.VideoOK = probe.HasVideo &&
		strings.EqualFold(probe.VideoCodec, profile.VideoCodec) &&
		(probe.PixelFormat == "" || strings.EqualFold(probe.PixelFormat, profile.PixelFormat)) &&
		probe.Width%2 == 0 &&
		probe.Height%2 == 0

	// Missing audio is fine; we never force-add an audio track.
	verdict.AudioOK = !probe.HasAudio || strings.EqualFold(probe.AudioCodec, profile.AudioCodec)

	return verdict
}

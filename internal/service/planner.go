package service

import "dataset-cutter/internal/types"

// PlanWindow derives the clip window from the configured mode and player
// state. Pure; it only clamps, it never fails. Range mode with missing or
// inverted marks falls back to the backward computation.
//
// Callers must still reject a non-positive window before invoking the
// transcoder: backward mode at current_time 0 produces one legitimately.
func PlanWindow(mode types.ClipMode, currentTime, duration float64, inMark, outMark *float64) types.ClipWindow {
	if mode == types.ClipModeRange && inMark != nil && outMark != nil && *outMark > *inMark {
		return types.ClipWindow{
			Start: max(0, *inMark),
			End:   *outMark,
		}
	}

	if mode == types.ClipModeCentered {
		start := max(0, currentTime-duration/2)
		return types.ClipWindow{
			Start: start,
			End:   start + duration,
		}
	}

	// backward (default)
	return types.ClipWindow{
		Start: max(0, currentTime-duration),
		End:   currentTime,
	}
}

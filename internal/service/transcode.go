package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dataset-cutter/internal/storage"
	"dataset-cutter/internal/types"
	"dataset-cutter/log"
	apperrors "dataset-cutter/pkg/errors"
)

const (
	encoderSoftware = "libx264"
	encoderHardware = "h264_videotoolbox"

	// Halve-then-double forces even dimensions without visible scaling.
	evenScaleFilter = "scale=trunc(iw/2)*2:trunc(ih/2)*2"
)

// attemptLog retains one failed invocation's full command line and captured
// stderr. Nothing here is ever silently dropped; the joined text travels in
// the AppError detail and the operator log.
type attemptLog struct {
	Name   string
	Cmd    string
	Stderr string
}

func formatAttempts(attempts []attemptLog) string {
	var b strings.Builder
	for i, a := range attempts {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "[%s] %s\n%s", a.Name, a.Cmd, strings.TrimSpace(a.Stderr))
	}
	return b.String()
}

// runFfmpeg executes one ffmpeg invocation under the transcode semaphore so
// only one child process runs at a time. The semaphore wait doubles as the
// single cancellation point: once ffmpeg has started it runs to completion.
func (s *Service) runFfmpeg(ctx context.Context, args []string) (string, error) {
	if err := s.transcodeSem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer s.transcodeSem.Release(1)

	_, stderr, err := s.runner.Run(ctx, storage.FfmpegPath, args...)
	return stderr, err
}

// tempPathFor returns a temp output path in the same directory as dest, so
// the final rename is atomic. The dot prefix keeps half-written files out of
// video listings and repair scans.
func tempPathFor(dest string) string {
	dir := filepath.Dir(dest)
	return filepath.Join(dir, fmt.Sprintf(".%s.tmp-%s.mp4",
		strings.TrimSuffix(filepath.Base(dest), filepath.Ext(dest)),
		uuid.NewString()[:8]))
}

// Cut extracts window from source into dest through the fallback ladder:
// stream copy (skipped when forceReencode), software encode, hardware
// encode. A copy-path result is re-probed and renormalized in place when it
// is out of profile; re-encode results are trusted as reported. On total
// failure no partial file is left behind and every attempt's command line
// and stderr is retained.
func (s *Service) Cut(ctx context.Context, source string, window types.ClipWindow, dest string, profile types.TargetProfile, forceReencode bool) error {
	if !window.Valid() {
		return apperrors.ErrInvalidWindow
	}

	tmp := tempPathFor(dest)
	defer os.Remove(tmp)

	type rung struct {
		name string
		args []string
	}
	rungs := make([]rung, 0, 3)
	if !forceReencode {
		rungs = append(rungs, rung{"copy", cutCopyArgs(source, window, tmp)})
	}
	rungs = append(rungs,
		rung{encoderSoftware, cutEncodeArgs(source, &window, tmp, encoderSoftware, profile)},
		rung{encoderHardware, cutEncodeArgs(source, &window, tmp, encoderHardware, profile)},
	)

	var attempts []attemptLog
	succeeded := ""
	for _, r := range rungs {
		stderr, err := s.runFfmpeg(ctx, r.args)
		if err == nil {
			succeeded = r.name
			break
		}
		attempt := attemptLog{Name: r.name, Cmd: ffmpegCmdline(r.args), Stderr: stderr}
		attempts = append(attempts, attempt)
		log.GetLogger().Warn("transcode attempt failed",
			zap.String("rung", r.name),
			zap.String("cmd", attempt.Cmd),
			zap.String("stderr", stderr),
			zap.Error(err))
	}
	if succeeded == "" {
		return apperrors.WrapWithDetail(apperrors.CodeTranscodeFailed,
			"All transcode attempts failed", formatAttempts(attempts), nil)
	}

	// The zero-copy path can succeed while leaving the stream out of
	// profile; the encode rungs are trusted once they report success.
	if succeeded == "copy" {
		if err := s.renormalizeCut(ctx, tmp, profile); err != nil {
			return err
		}
	}

	if err := os.Rename(tmp, dest); err != nil {
		return apperrors.Wrap(apperrors.CodeReplaceFailed, "Could not move output into place", err)
	}
	return nil
}

// renormalizeCut re-probes a freshly stream-copied clip and, when it is out
// of profile, re-encodes the cut file itself (not the original source) into
// a temp path that atomically replaces it. Exhausting both encoders fails
// the whole export: a non-compliant artifact is never delivered.
func (s *Service) renormalizeCut(ctx context.Context, cutPath string, profile types.TargetProfile) error {
	probe := s.Probe(ctx, cutPath)
	if Evaluate(probe, profile).Compatible() {
		return nil
	}
	log.GetLogger().Info("stream-copied clip is out of profile, re-encoding in place",
		zap.String("path", cutPath))

	tmp := tempPathFor(cutPath)
	defer os.Remove(tmp)

	var attempts []attemptLog
	for _, encoder := range []string{encoderSoftware, encoderHardware} {
		args := cutEncodeArgs(cutPath, nil, tmp, encoder, profile)
		stderr, err := s.runFfmpeg(ctx, args)
		if err == nil {
			if renameErr := os.Rename(tmp, cutPath); renameErr != nil {
				return apperrors.Wrap(apperrors.CodeReplaceFailed, "Could not move output into place", renameErr)
			}
			return nil
		}
		attempt := attemptLog{Name: encoder, Cmd: ffmpegCmdline(args), Stderr: stderr}
		attempts = append(attempts, attempt)
		log.GetLogger().Warn("renormalize attempt failed",
			zap.String("rung", encoder),
			zap.String("cmd", attempt.Cmd),
			zap.String("stderr", stderr),
			zap.Error(err))
	}

	return apperrors.WrapWithDetail(apperrors.CodeVerificationFailed,
		"Produced clip failed profile verification", formatAttempts(attempts), nil)
}

// NormalizeInPlace rewrites path to the target profile: a lossless faststart
// remux when the file is already compatible, otherwise the software→hardware
// encode ladder. The rewritten file must survive a full decode pass before
// it atomically replaces the original (keeping a backup when opts.BackupSuffix
// is set). With opts.DryRun it only reports the action it would take.
func (s *Service) NormalizeInPlace(ctx context.Context, path string, profile types.TargetProfile, opts types.RepairOptions) (types.RepairAction, error) {
	probe := s.Probe(ctx, path)
	verdict := Evaluate(probe, profile)

	action := types.RepairActionReencode
	if probe != nil && verdict.Compatible() {
		action = types.RepairActionRemux
	}
	if opts.DryRun {
		return action, nil
	}

	tmp := tempPathFor(path)
	defer os.Remove(tmp)

	if action == types.RepairActionRemux {
		args := remuxArgs(path, tmp, probe.HasAudio)
		stderr, err := s.runFfmpeg(ctx, args)
		if err != nil {
			attempt := attemptLog{Name: "remux", Cmd: ffmpegCmdline(args), Stderr: stderr}
			log.GetLogger().Warn("remux failed",
				zap.String("cmd", attempt.Cmd),
				zap.String("stderr", stderr),
				zap.Error(err))
			return action, apperrors.WrapWithDetail(apperrors.CodeTranscodeFailed,
				"All transcode attempts failed", formatAttempts([]attemptLog{attempt}), err)
		}
	} else {
		var attempts []attemptLog
		succeeded := false
		for _, encoder := range []string{encoderSoftware, encoderHardware} {
			args := repairEncodeArgs(path, tmp, encoder, profile, verdict.AudioOK)
			stderr, err := s.runFfmpeg(ctx, args)
			if err == nil {
				succeeded = true
				break
			}
			attempt := attemptLog{Name: encoder, Cmd: ffmpegCmdline(args), Stderr: stderr}
			attempts = append(attempts, attempt)
			log.GetLogger().Warn("repair encode attempt failed",
				zap.String("rung", encoder),
				zap.String("cmd", attempt.Cmd),
				zap.String("stderr", stderr),
				zap.Error(err))
		}
		if !succeeded {
			return action, apperrors.WrapWithDetail(apperrors.CodeTranscodeFailed,
				"All transcode attempts failed", formatAttempts(attempts), nil)
		}
	}

	// Smoke test: the rewritten file must decode end to end.
	if stderr, err := s.runFfmpeg(ctx, []string{"-v", "error", "-i", tmp, "-f", "null", "-"}); err != nil {
		log.GetLogger().Warn("post-repair decode check failed",
			zap.String("path", path),
			zap.String("stderr", stderr),
			zap.Error(err))
		return action, apperrors.WrapWithDetail(apperrors.CodeVerificationFailed,
			"Produced clip failed profile verification", stderr, err)
	}

	if err := replaceWithBackup(path, tmp, opts.BackupSuffix); err != nil {
		return action, apperrors.Wrap(apperrors.CodeReplaceFailed, "Could not move output into place", err)
	}
	return action, nil
}

// replaceWithBackup swaps tmp into path's place. A non-empty suffix keeps
// the original as path+suffix; otherwise the original is deleted first so a
// valid original and a half-written replacement never coexist ambiguously.
func replaceWithBackup(path, tmp, backupSuffix string) error {
	if backupSuffix == "" {
		if err := os.Remove(path); err != nil {
			return err
		}
	} else {
		backup := path + backupSuffix
		if _, err := os.Stat(backup); err == nil {
			if err = os.Remove(backup); err != nil {
				return err
			}
		}
		if err := os.Rename(path, backup); err != nil {
			return err
		}
	}
	return os.Rename(tmp, path)
}

// --- command builders ---

func ffmpegCmdline(args []string) string {
	return storage.FfmpegPath + " " + strings.Join(args, " ")
}

func cutCopyArgs(source string, window types.ClipWindow, out string) []string {
	return []string{
		"-hide_banner", "-nostdin",
		"-ss", fmt.Sprintf("%.3f", window.Start),
		"-i", source,
		"-t", fmt.Sprintf("%.3f", window.Duration()),
		"-c", "copy",
		"-movflags", "+faststart",
		"-y", out,
	}
}

// cutEncodeArgs builds the export encode command. window nil means "whole
// file" (the renormalize pass over an already-cut clip).
func cutEncodeArgs(source string, window *types.ClipWindow, out, encoder string, profile types.TargetProfile) []string {
	args := []string{"-hide_banner", "-nostdin"}
	if window != nil {
		args = append(args,
			"-ss", fmt.Sprintf("%.3f", window.Start),
			"-i", source,
			"-t", fmt.Sprintf("%.3f", window.Duration()),
		)
	} else {
		args = append(args, "-i", source)
	}

	args = append(args, "-vf", evenScaleFilter)
	args = append(args, videoEncoderArgs(encoder)...)
	args = append(args, "-pix_fmt", profile.PixelFormat)
	if profile.CFR > 0 {
		args = append(args, "-r", strconv.Itoa(profile.CFR))
	}
	if profile.DropAudio {
		args = append(args, "-an")
	} else {
		args = append(args, "-c:a", profile.AudioCodec, "-b:a", "128k")
	}
	return append(args, "-movflags", "+faststart", "-y", out)
}

// repairEncodeArgs mirrors the original repair tool: software encodes pin a
// broadly decodable H.264 profile/level, and compliant audio is copied
// rather than re-encoded.
func repairEncodeArgs(source, out, encoder string, profile types.TargetProfile, audioOK bool) []string {
	args := []string{
		"-hide_banner", "-nostdin",
		"-i", source,
		"-vf", evenScaleFilter,
	}
	args = append(args, videoEncoderArgs(encoder)...)
	if encoder == encoderSoftware {
		args = append(args, "-profile:v", "main", "-level", "4.1")
	}
	args = append(args, "-pix_fmt", profile.PixelFormat)
	if profile.CFR > 0 {
		args = append(args, "-r", strconv.Itoa(profile.CFR))
	}
	if audioOK {
		args = append(args, "-c:a", "copy")
	} else {
		args = append(args, "-c:a", profile.AudioCodec, "-b:a", "128k")
	}
	return append(args, "-movflags", "+faststart", "-y", out)
}

func videoEncoderArgs(encoder string) []string {
	if encoder == encoderHardware {
		return []string{"-c:v", encoderHardware, "-b:v", "2M"}
	}
	return []string{"-c:v", encoderSoftware, "-preset", "veryfast", "-crf", "20"}
}

func remuxArgs(source, out string, hasAudio bool) []string {
	args := []string{
		"-hide_banner", "-nostdin",
		"-i", source,
		"-map", "0:v:0",
	}
	if hasAudio {
		args = append(args, "-map", "0:a:0")
	}
	return append(args,
		"-c", "copy",
		"-movflags", "+faststart",
		"-y", out,
	)
}

package service

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"dataset-cutter/internal/storage"
	"dataset-cutter/internal/types"
	"dataset-cutter/log"
)

// Probe inspects a media file with one ffprobe JSON call. It returns nil on
// any failure (tool missing, non-zero exit, malformed output): callers must
// treat nil as "assume incompatible, must re-encode". No side effects.
func (s *Service) Probe(ctx context.Context, path string) *types.ProbeResult {
	stdout, stderr, err := s.runner.Run(ctx, storage.FfprobePath,
		"-v", "error",
		"-print_format", "json",
		"-show_streams",
		"-show_format",
		path,
	)
	if err != nil {
		log.GetLogger().Debug("ffprobe failed",
			zap.String("path", path),
			zap.String("stderr", stderr),
			zap.Error(err))
		return nil
	}

	result, err := ParseProbeJSON([]byte(stdout))
	if err != nil {
		log.GetLogger().Debug("ffprobe output unparseable", zap.String("path", path), zap.Error(err))
		return nil
	}
	return result
}

// ParseProbeJSON converts raw ffprobe JSON output into a ProbeResult.
// Exported for testing without a real ffprobe binary.
func ParseProbeJSON(data []byte) (*types.ProbeResult, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	result := &types.ProbeResult{
		Duration: parseFloat(raw.Format.Duration),
	}
	for i := range raw.Streams {
		stream := &raw.Streams[i]
		switch stream.CodecType {
		case "video":
			if result.HasVideo {
				continue
			}
			result.HasVideo = true
			result.VideoCodec = strings.ToLower(stream.CodecName)
			result.PixelFormat = strings.ToLower(stream.PixFmt)
			result.Width = stream.Width
			result.Height = stream.Height
			result.FrameRate = stream.AvgFrameRate
		case "audio":
			if result.HasAudio {
				continue
			}
			result.HasAudio = true
			result.AudioCodec = strings.ToLower(stream.CodecName)
		}
	}
	return result, nil
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
}

type ffprobeStream struct {
	CodecType    string `json:"codec_type"`
	CodecName    string `json:"codec_name"`
	PixFmt       string `json:"pix_fmt"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	AvgFrameRate string `json:"avg_frame_rate"`
}

// ffprobe returns numbers as strings.
func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

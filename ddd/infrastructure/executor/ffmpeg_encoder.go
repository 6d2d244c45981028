package executor

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"video-hosting-service/ddd/domain/vo"
	"video-hosting-service/pkg/config"
	"video-hosting-service/pkg/logger"
)

// FFmpegEncoder implements port.Encoder by shelling out to a local ffmpeg.
type FFmpegEncoder struct {
	binary  string
	timeout time.Duration
}

func NewFFmpegEncoder(cfg *config.Config) *FFmpegEncoder {
	binary := "ffmpeg"
	timeout := time.Hour
	if cfg != nil {
		if strings.TrimSpace(cfg.Transcode.FFmpeg.BinaryPath) != "" {
			binary = cfg.Transcode.FFmpeg.BinaryPath
		}
		if cfg.Transcode.FFmpeg.Timeout > 0 {
			timeout = cfg.Transcode.FFmpeg.Timeout
		}
	}
	return &FFmpegEncoder{binary: binary, timeout: timeout}
}

// EncodeVariant renders one HLS rendition: index.m3u8 plus zero-padded
// 3-digit .ts segments in outputDir. scale=-2:<height> pins the height and
// lets ffmpeg pick the nearest even width, preserving the aspect ratio.
func (e *FFmpegEncoder) EncodeVariant(ctx context.Context, inputPath, outputDir string, variant vo.QualityVariant) error {
	return e.run(ctx, variantArgs(inputPath, outputDir, variant))
}

// ExtractThumbnail grabs a single frame at offsetSeconds into outputPath.
func (e *FFmpegEncoder) ExtractThumbnail(ctx context.Context, inputPath, outputPath string, offsetSeconds float64) error {
	return e.run(ctx, thumbnailArgs(inputPath, outputPath, offsetSeconds))
}

func variantArgs(inputPath, outputDir string, variant vo.QualityVariant) []string {
	return []string{
		"-y",
		"-i", inputPath,
		"-vf", fmt.Sprintf("scale=-2:%d", variant.Height),
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-c:a", variant.AudioCodec,
		"-ar", strconv.Itoa(variant.AudioRate),
		"-b:a", variant.AudioBitrate,
		"-b:v", variant.VideoBitrate,
		"-hls_time", strconv.Itoa(variant.SegmentSeconds),
		"-hls_playlist_type", variant.PlaylistType,
		"-hls_segment_filename", filepath.Join(outputDir, "%03d.ts"),
		filepath.Join(outputDir, "index.m3u8"),
	}
}

func thumbnailArgs(inputPath, outputPath string, offsetSeconds float64) []string {
	return []string{
		"-y",
		"-ss", strconv.FormatFloat(offsetSeconds, 'f', -1, 64),
		"-i", inputPath,
		"-frames:v", "1",
		outputPath,
	}
}

func (e *FFmpegEncoder) run(ctx context.Context, args []string) error {
	runCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, e.binary, args...)
	logger.Debugf("ffmpeg command=%s %s", e.binary, strings.Join(args, " "))
	output, err := cmd.CombinedOutput()
	if err != nil {
		tail := tailLines(string(output), 50)
		logger.Errorf("ffmpeg failed error=%v tail_output=%s", err, tail)
		return fmt.Errorf("ffmpeg: %w: %s", err, tail)
	}
	return nil
}

// tailLines keeps error messages bounded when ffmpeg dumps long logs.
func tailLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}

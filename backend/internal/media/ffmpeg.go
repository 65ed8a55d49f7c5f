// Package media runs the server-side audio fallback for the MP3 cutter and the
// noise remover. Audio is streamed through ffmpeg over stdin/stdout; nothing
// touches the disk.
package media

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"go.uber.org/zap"

	apperrors "aiotoolsuite/backend/pkg/errors"
	"aiotoolsuite/backend/pkg/logger"
)

// Processor edits encoded audio clips
type Processor interface {
	// Trim keeps the [start, end) window, in seconds, and re-encodes to format
	Trim(ctx context.Context, audio []byte, format string, start, end float64) ([]byte, error)
	// Denoise applies a noise reduction filter; strength is in [0, 1]
	Denoise(ctx context.Context, audio []byte, format string, strength float64) ([]byte, error)
}

// Formats ffmpeg is asked to emit, keyed by the format name callers use
var outputFormats = map[string][]string{
	"mp3":  {"-f", "mp3", "-codec:a", "libmp3lame", "-q:a", "2"},
	"wav":  {"-f", "wav", "-codec:a", "pcm_s16le"},
	"ogg":  {"-f", "ogg", "-codec:a", "libvorbis", "-q:a", "5"},
	"flac": {"-f", "flac"},
}

// SupportedFormat reports whether format can be produced
func SupportedFormat(format string) bool {
	_, ok := outputFormats[strings.ToLower(format)]
	return ok
}

// FFmpeg is a Processor backed by the ffmpeg binary
type FFmpeg struct {
	path     string
	maxBytes int
	logger   *zap.Logger
}

// NewFFmpeg resolves the ffmpeg binary. It fails when the binary is not installed,
// so the media tools report a load failure instead of failing on every call.
func NewFFmpeg(path string, maxBytes int) (*FFmpeg, error) {
	if path == "" {
		path = "ffmpeg"
	}
	resolved, err := exec.LookPath(path)
	if err != nil {
		return nil, fmt.Errorf("ffmpeg not available at %q: %w", path, err)
	}
	return &FFmpeg{
		path:     resolved,
		maxBytes: maxBytes,
		logger:   logger.Named("media"),
	}, nil
}

// Trim cuts audio to the given window
func (f *FFmpeg) Trim(ctx context.Context, audio []byte, format string, start, end float64) ([]byte, error) {
	args, err := TrimArgs(format, start, end)
	if err != nil {
		return nil, err
	}
	return f.run(ctx, audio, args)
}

// Denoise reduces background noise
func (f *FFmpeg) Denoise(ctx context.Context, audio []byte, format string, strength float64) ([]byte, error) {
	args, err := DenoiseArgs(format, strength)
	if err != nil {
		return nil, err
	}
	return f.run(ctx, audio, args)
}

func (f *FFmpeg) run(ctx context.Context, audio []byte, args []string) ([]byte, error) {
	if len(audio) == 0 {
		return nil, apperrors.NewInvalidInput("audio", "empty audio input")
	}
	if f.maxBytes > 0 && len(audio) > f.maxBytes {
		return nil, apperrors.NewInvalidInput("audio", fmt.Sprintf("audio input is %d bytes, limit is %d", len(audio), f.maxBytes))
	}

	cmd := exec.CommandContext(ctx, f.path, args...)
	cmd.Stdin = bytes.NewReader(audio)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	f.logger.Debug("Running ffmpeg", zap.Strings("args", args), zap.Int("input_bytes", len(audio)))
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		f.logger.Warn("ffmpeg failed", zap.Error(err), zap.String("stderr", lastLine(stderr.String())))
		return nil, fmt.Errorf("ffmpeg failed: %w: %s", err, lastLine(stderr.String()))
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("ffmpeg produced no output")
	}
	return stdout.Bytes(), nil
}

// TrimArgs builds the ffmpeg arguments for Trim
func TrimArgs(format string, start, end float64) ([]string, error) {
	out, ok := outputFormats[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
	if start < 0 || end <= start {
		return nil, fmt.Errorf("invalid window: start %.3f, end %.3f", start, end)
	}

	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-i", "pipe:0",
		"-ss", formatSeconds(start),
		"-t", formatSeconds(end - start),
		"-vn",
	}
	args = append(args, out...)
	return append(args, "pipe:1"), nil
}

// DenoiseArgs builds the ffmpeg arguments for Denoise. Strength maps linearly onto
// the afftdn noise reduction range, 6 to 40 dB.
func DenoiseArgs(format string, strength float64) ([]string, error) {
	out, ok := outputFormats[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
	if strength < 0 || strength > 1 {
		return nil, fmt.Errorf("strength must be between 0 and 1, got %.2f", strength)
	}

	nr := 6 + strength*34
	filter := fmt.Sprintf("highpass=f=80,lowpass=f=12000,afftdn=nr=%s:nf=-25", strconv.FormatFloat(nr, 'f', 1, 64))
	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-i", "pipe:0",
		"-af", filter,
		"-vn",
	}
	args = append(args, out...)
	return append(args, "pipe:1"), nil
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', 3, 64)
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}

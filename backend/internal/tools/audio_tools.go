package tools

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"go.uber.org/zap"

	"aiotoolsuite/backend/internal/media"
	apperrors "aiotoolsuite/backend/pkg/errors"
	"aiotoolsuite/backend/pkg/logger"
)

// MP3CutterInput is the argument object of the mp3-cutter tool
type MP3CutterInput struct {
	Audio  string  `json:"audio"` // base64, optionally as a data: URL
	Start  float64 `json:"start"`
	End    float64 `json:"end"`
	Format string  `json:"format"`
}

// NoiseRemoverInput is the argument object of the noise-remover tool
type NoiseRemoverInput struct {
	Audio    string   `json:"audio"`
	Strength *float64 `json:"strength"`
	Format   string   `json:"format"`
}

// AudioOutput is an encoded clip returned by the media tools
type AudioOutput struct {
	Audio    string `json:"audio"`
	Format   string `json:"format"`
	MimeType string `json:"mimeType"`
	Bytes    int    `json:"bytes"`
}

var mimeTypes = map[string]string{
	"mp3":  "audio/mpeg",
	"wav":  "audio/wav",
	"ogg":  "audio/ogg",
	"flac": "audio/flac",
}

// AudioTools runs the media fallback for the cutter and the noise remover
type AudioTools struct {
	proc   media.Processor
	logger *zap.Logger
}

// NewAudioTools wraps a media processor
func NewAudioTools(proc media.Processor) *AudioTools {
	return &AudioTools{proc: proc, logger: logger.Named("audio-tools")}
}

func audioLoader(deps Deps, pick func(*AudioTools) Logic) Loader {
	return func(context.Context) (*Module, error) {
		proc, err := newMediaProcessor(deps.FFmpegPath, deps.MaxAudioBytes)
		if err != nil {
			return nil, err
		}
		return &Module{Run: pick(NewAudioTools(proc))}, nil
	}
}

// MP3CutterLoader returns the loader registered for mp3-cutter
func MP3CutterLoader(deps Deps) Loader {
	return audioLoader(deps, func(a *AudioTools) Logic { return Typed(a.Cut) })
}

// NoiseRemoverLoader returns the loader registered for noise-remover
func NoiseRemoverLoader(deps Deps) Loader {
	return audioLoader(deps, func(a *AudioTools) Logic { return Typed(a.RemoveNoise) })
}

// Cut trims a clip to [Start, End)
func (a *AudioTools) Cut(ctx context.Context, in MP3CutterInput) (AudioOutput, error) {
	audio, err := decodeAudio(in.Audio)
	if err != nil {
		return AudioOutput{}, err
	}
	format, err := outputFormat(in.Format, "mp3")
	if err != nil {
		return AudioOutput{}, err
	}
	if in.Start < 0 {
		return AudioOutput{}, apperrors.NewInvalidInput("start", "must not be negative")
	}
	if in.End <= in.Start {
		return AudioOutput{}, apperrors.NewInvalidInput("end", "must be greater than start")
	}

	out, err := a.proc.Trim(ctx, audio, format, in.Start, in.End)
	if err != nil {
		return AudioOutput{}, a.wrap("mp3-cutter", err)
	}
	return encodeAudio(out, format), nil
}

// RemoveNoise denoises a clip; strength defaults to 0.5
func (a *AudioTools) RemoveNoise(ctx context.Context, in NoiseRemoverInput) (AudioOutput, error) {
	audio, err := decodeAudio(in.Audio)
	if err != nil {
		return AudioOutput{}, err
	}
	format, err := outputFormat(in.Format, "wav")
	if err != nil {
		return AudioOutput{}, err
	}
	strength := 0.5
	if in.Strength != nil {
		strength = *in.Strength
	}
	if strength < 0 || strength > 1 {
		return AudioOutput{}, apperrors.NewInvalidInput("strength", "must be between 0 and 1")
	}

	out, err := a.proc.Denoise(ctx, audio, format, strength)
	if err != nil {
		return AudioOutput{}, a.wrap("noise-remover", err)
	}
	return encodeAudio(out, format), nil
}

func (a *AudioTools) wrap(tool string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}
	if apperrors.IsErrorType(err, apperrors.ErrorTypeInput) {
		return err
	}
	a.logger.Warn("Audio processing failed", zap.String("tool", tool), zap.Error(err))
	return apperrors.NewToolExecutionFailed(tool, "audio processing failed", err)
}

func decodeAudio(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "data:") {
		_, payload, ok := strings.Cut(s, ",")
		if !ok {
			return nil, apperrors.NewInvalidInput("audio", "malformed data URL")
		}
		s = payload
	}
	if s == "" {
		return nil, apperrors.NewInvalidInput("audio", "is required")
	}
	audio, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, apperrors.NewInvalidInput("audio", "is not valid base64")
	}
	return audio, nil
}

func outputFormat(format, fallback string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = fallback
	}
	if !media.SupportedFormat(format) {
		return "", apperrors.NewInvalidInput("format", "must be mp3, wav, ogg or flac")
	}
	return format, nil
}

func encodeAudio(audio []byte, format string) AudioOutput {
	return AudioOutput{
		Audio:    base64.StdEncoding.EncodeToString(audio),
		Format:   format,
		MimeType: mimeTypes[format],
		Bytes:    len(audio),
	}
}

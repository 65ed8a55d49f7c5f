package media

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "aiotoolsuite/backend/pkg/errors"
)

func TestTrimArgs(t *testing.T) {
	args, err := TrimArgs("mp3", 1.5, 4)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"-hide_banner", "-loglevel", "error",
		"-i", "pipe:0",
		"-ss", "1.500",
		"-t", "2.500",
		"-vn",
		"-f", "mp3", "-codec:a", "libmp3lame", "-q:a", "2",
		"pipe:1",
	}, args)
}

func TestTrimArgs_InvalidWindow(t *testing.T) {
	tests := []struct {
		name       string
		start, end float64
	}{
		{"negative start", -1, 2},
		{"end before start", 3, 2},
		{"empty window", 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := TrimArgs("wav", tt.start, tt.end)
			assert.Error(t, err)
		})
	}
}

func TestTrimArgs_UnsupportedFormat(t *testing.T) {
	_, err := TrimArgs("aac", 0, 1)
	assert.ErrorContains(t, err, "unsupported output format")
}

func TestDenoiseArgs(t *testing.T) {
	args, err := DenoiseArgs("WAV", 0.5)
	require.NoError(t, err)
	assert.Contains(t, args, "highpass=f=80,lowpass=f=12000,afftdn=nr=23.0:nf=-25")
	assert.Equal(t, "pipe:1", args[len(args)-1])

	_, err = DenoiseArgs("wav", 1.5)
	assert.Error(t, err)
}

func TestSupportedFormat(t *testing.T) {
	assert.True(t, SupportedFormat("mp3"))
	assert.True(t, SupportedFormat("FLAC"))
	assert.False(t, SupportedFormat("mp4"))
}

func TestNewFFmpeg_MissingBinary(t *testing.T) {
	_, err := NewFFmpeg("/nonexistent/ffmpeg-binary", 0)
	assert.ErrorContains(t, err, "ffmpeg not available")
}

func TestFFmpeg_RejectsOversizedInput(t *testing.T) {
	f := &FFmpeg{path: "ffmpeg", maxBytes: 4, logger: nil}
	_, err := f.run(context.Background(), []byte("too large"), nil)
	assert.ErrorContains(t, err, "limit is 4")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInput))

	_, err = f.run(context.Background(), nil, nil)
	assert.ErrorContains(t, err, "empty audio input")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInput))
}

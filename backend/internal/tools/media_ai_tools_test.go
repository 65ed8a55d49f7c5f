package tools

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aiotoolsuite/backend/internal/media"
	apperrors "aiotoolsuite/backend/pkg/errors"
)

type fakeProcessor struct {
	trimCalls   int
	gotStart    float64
	gotEnd      float64
	gotStrength float64
	gotFormat   string
	err         error
}

func (f *fakeProcessor) Trim(_ context.Context, audio []byte, format string, start, end float64) ([]byte, error) {
	f.trimCalls++
	f.gotFormat, f.gotStart, f.gotEnd = format, start, end
	if f.err != nil {
		return nil, f.err
	}
	return append([]byte("trimmed:"), audio...), nil
}

func (f *fakeProcessor) Denoise(_ context.Context, audio []byte, format string, strength float64) ([]byte, error) {
	f.gotFormat, f.gotStrength = format, strength
	if f.err != nil {
		return nil, f.err
	}
	return append([]byte("clean:"), audio...), nil
}

func withProcessor(t *testing.T, proc media.Processor, err error) {
	t.Helper()
	orig := newMediaProcessor
	newMediaProcessor = func(string, int) (media.Processor, error) { return proc, err }
	t.Cleanup(func() { newMediaProcessor = orig })
}

func TestMP3Cutter(t *testing.T) {
	proc := &fakeProcessor{}
	withProcessor(t, proc, nil)

	mod, err := MP3CutterLoader(Deps{})(context.Background())
	require.NoError(t, err)

	audio := base64.StdEncoding.EncodeToString([]byte("RIFF"))
	out, err := mod.Run(context.Background(), []byte(`{"audio":"data:audio/wav;base64,`+audio+`","start":1,"end":2.5}`))
	require.NoError(t, err)

	res := out.(AudioOutput)
	assert.Equal(t, "mp3", res.Format)
	assert.Equal(t, "audio/mpeg", res.MimeType)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("trimmed:RIFF")), res.Audio)
	assert.Equal(t, len("trimmed:RIFF"), res.Bytes)
	assert.Equal(t, 1.0, proc.gotStart)
	assert.Equal(t, 2.5, proc.gotEnd)
}

func TestMP3Cutter_Validation(t *testing.T) {
	proc := &fakeProcessor{}
	a := NewAudioTools(proc)
	audio := base64.StdEncoding.EncodeToString([]byte("x"))
	ctx := context.Background()

	tests := []struct {
		name string
		in   MP3CutterInput
	}{
		{"missing audio", MP3CutterInput{End: 1}},
		{"bad base64", MP3CutterInput{Audio: "%%%", End: 1}},
		{"negative start", MP3CutterInput{Audio: audio, Start: -1, End: 1}},
		{"end before start", MP3CutterInput{Audio: audio, Start: 2, End: 1}},
		{"bad format", MP3CutterInput{Audio: audio, End: 1, Format: "aac"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Cut(ctx, tt.in)
			assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInput))
		})
	}
	assert.Zero(t, proc.trimCalls)
}

func TestNoiseRemover(t *testing.T) {
	proc := &fakeProcessor{}
	a := NewAudioTools(proc)
	audio := base64.StdEncoding.EncodeToString([]byte("x"))

	out, err := a.RemoveNoise(context.Background(), NoiseRemoverInput{Audio: audio})
	require.NoError(t, err)
	assert.Equal(t, "wav", out.Format)
	assert.Equal(t, 0.5, proc.gotStrength)

	strong := 1.5
	_, err = a.RemoveNoise(context.Background(), NoiseRemoverInput{Audio: audio, Strength: &strong})
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInput))

	proc.err = errors.New("ffmpeg exploded")
	_, err = a.RemoveNoise(context.Background(), NoiseRemoverInput{Audio: audio})
	var execErr *apperrors.ErrToolExecutionFailed
	require.True(t, apperrors.As(err, &execErr))
	assert.Equal(t, "noise-remover", execErr.ToolName)

	proc.err = context.DeadlineExceeded
	_, err = a.RemoveNoise(context.Background(), NoiseRemoverInput{Audio: audio})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAudioTools_OversizedInputIsInputError(t *testing.T) {
	proc := &fakeProcessor{err: apperrors.NewInvalidInput("audio", "audio input is 9 bytes, limit is 4")}
	a := NewAudioTools(proc)
	audio := base64.StdEncoding.EncodeToString([]byte("123456789"))

	_, err := a.Cut(context.Background(), MP3CutterInput{Audio: audio, End: 1})
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInput))
	var execErr *apperrors.ErrToolExecutionFailed
	assert.False(t, apperrors.As(err, &execErr))

	_, err = a.RemoveNoise(context.Background(), NoiseRemoverInput{Audio: audio})
	var inputErr *apperrors.ErrInvalidInput
	require.True(t, apperrors.As(err, &inputErr))
	assert.Equal(t, "audio", inputErr.Field)
}

func TestMediaLoaders_FailWithoutFFmpeg(t *testing.T) {
	withProcessor(t, nil, errors.New("ffmpeg not available"))

	_, err := MP3CutterLoader(Deps{})(context.Background())
	assert.ErrorContains(t, err, "ffmpeg not available")
	_, err = NoiseRemoverLoader(Deps{})(context.Background())
	assert.Error(t, err)
}

type fakeGenerator struct {
	system, user string
	reply        string
	err          error
}

func (f *fakeGenerator) Complete(_ context.Context, system, user string) (string, error) {
	f.system, f.user = system, user
	return f.reply, f.err
}

func TestAIRewriter(t *testing.T) {
	gen := &fakeGenerator{reply: "Kindly review the attached."}
	r := NewAIRewriter(gen)

	out, err := r.Run(context.Background(), AIRewriterInput{Text: " look at this ", Tone: "Formal"})
	require.NoError(t, err)
	assert.Equal(t, AIRewriterOutput{Result: "Kindly review the attached.", Tone: "formal"}, out)
	assert.Equal(t, "look at this", gen.user)
	assert.Contains(t, gen.system, "formal register")

	_, err = r.Run(context.Background(), AIRewriterInput{Text: "x", Tone: "pirate"})
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInput))

	_, err = r.Run(context.Background(), AIRewriterInput{})
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInput))

	gen.reply = ""
	_, err = r.Run(context.Background(), AIRewriterInput{Text: "x"})
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeTool))

	gen.err = apperrors.NewUpstreamFailed("LLM", 503, nil)
	_, err = r.Run(context.Background(), AIRewriterInput{Text: "x"})
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeUpstream))
}

func TestAIRewriterLoader(t *testing.T) {
	_, err := AIRewriterLoader(Deps{})(context.Background())
	assert.ErrorContains(t, err, "AI_API_KEY")

	mod, err := AIRewriterLoader(Deps{AI: &fakeGenerator{reply: "ok"}})(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, mod.Run)
}

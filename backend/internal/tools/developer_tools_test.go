package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "aiotoolsuite/backend/pkg/errors"
)

func TestFormatJSON(t *testing.T) {
	ctx := context.Background()
	src := `{"b": [1, 2], "a": {"c": null}}`

	out, err := FormatJSON(ctx, JSONFormatterInput{JSON: src})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"b\": [\n    1,\n    2\n  ],\n  \"a\": {\n    \"c\": null\n  }\n}", out.Result)
	assert.True(t, out.Valid)

	out, err = FormatJSON(ctx, JSONFormatterInput{JSON: src, Mode: "minify"})
	require.NoError(t, err)
	assert.Equal(t, `{"b":[1,2],"a":{"c":null}}`, out.Result)

	out, err = FormatJSON(ctx, JSONFormatterInput{JSON: src, Mode: "validate"})
	require.NoError(t, err)
	assert.True(t, out.Valid)
	assert.Empty(t, out.Result)
}

func TestFormatJSON_Invalid(t *testing.T) {
	ctx := context.Background()
	src := "{\n  \"a\": 1,\n  \"b\" 2\n}"

	out, err := FormatJSON(ctx, JSONFormatterInput{JSON: src, Mode: "validate"})
	require.NoError(t, err)
	assert.False(t, out.Valid)
	assert.NotEmpty(t, out.Error)
	assert.Equal(t, 3, out.Line)

	_, err = FormatJSON(ctx, JSONFormatterInput{JSON: src})
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInput))

	_, err = FormatJSON(ctx, JSONFormatterInput{JSON: "{}", Mode: "yaml"})
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInput))
}

func TestEncodeURL(t *testing.T) {
	ctx := context.Background()
	path := false

	out, err := EncodeURL(ctx, URLEncoderInput{Text: "a b&c=d/é"})
	require.NoError(t, err)
	assert.Equal(t, "a+b%26c%3Dd%2F%C3%A9", out.Result)

	out, err = EncodeURL(ctx, URLEncoderInput{Text: "a b/c", Component: &path})
	require.NoError(t, err)
	assert.Equal(t, "a%20b%2Fc", out.Result)

	out, err = EncodeURL(ctx, URLEncoderInput{Text: "a+b%26c", Mode: "decode"})
	require.NoError(t, err)
	assert.Equal(t, "a b&c", out.Result)

	_, err = EncodeURL(ctx, URLEncoderInput{Text: "%zz", Mode: "decode"})
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInput))
}

func TestEcho(t *testing.T) {
	mod, err := EchoLoader()(context.Background())
	require.NoError(t, err)

	out, err := mod.Run(context.Background(), json.RawMessage(`{"ping":1}`))
	require.NoError(t, err)
	assert.Equal(t, json.RawMessage(`{"ping":1}`), out)

	out, err = mod.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, json.RawMessage("null"), out)
}

func TestTyped_NullArgsUseZeroValue(t *testing.T) {
	var got CaseConverterInput
	logic := Typed(func(_ context.Context, in CaseConverterInput) (string, error) {
		got = in
		return "ok", nil
	})

	out, err := logic(context.Background(), json.RawMessage("null"))
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, CaseConverterInput{}, got)
}

func TestTyped_PassesToolErrorsThrough(t *testing.T) {
	toolErr := apperrors.NewToolExecutionFailed("x", "boom", nil)
	logic := Typed(func(context.Context, struct{}) (int, error) { return 0, toolErr })

	out, err := logic(context.Background(), json.RawMessage(`{}`))
	assert.Nil(t, out)
	assert.Same(t, toolErr, err)
}

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "aiotoolsuite/backend/pkg/errors"
)

func completionHandler(t *testing.T, calls *atomic.Int32, failFirst int, status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)

		if int(n) <= failFirst {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
			return
		}

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 2)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "cmpl-1",
			"object":  "chat.completion",
			"model":   req.Model,
			"choices": []map[string]any{{"index": 0, "message": map[string]string{"role": "assistant", "content": "  echo: " + req.Messages[1].Content + " "}}},
			"usage":   map[string]int{"prompt_tokens": 1, "completion_tokens": 2, "total_tokens": 3},
		})
	}
}

func TestLLMAdapter_Complete(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(completionHandler(t, &calls, 0, 0))
	defer srv.Close()

	a := NewLLMAdapter(srv.URL, "key", "test-model", srv.Client())
	out, err := a.Complete(context.Background(), "system", "hello")
	require.NoError(t, err)
	assert.Equal(t, "echo: hello", out)
	assert.Equal(t, int32(1), calls.Load())
}

func TestLLMAdapter_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(completionHandler(t, &calls, 2, http.StatusBadGateway))
	defer srv.Close()

	a := NewLLMAdapter(srv.URL, "key", "test-model", srv.Client())
	a.backoff = time.Millisecond

	out, err := a.Complete(context.Background(), "system", "hi")
	require.NoError(t, err)
	assert.Equal(t, "echo: hi", out)
	assert.Equal(t, int32(3), calls.Load())
}

func TestLLMAdapter_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(completionHandler(t, &calls, 5, http.StatusUnauthorized))
	defer srv.Close()

	a := NewLLMAdapter(srv.URL, "bad", "test-model", srv.Client())
	a.backoff = time.Millisecond

	_, err := a.Complete(context.Background(), "system", "hi")
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeUpstream))

	var upstream *apperrors.ErrUpstreamFailed
	require.True(t, apperrors.As(err, &upstream))
	assert.Equal(t, http.StatusUnauthorized, upstream.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"aiotoolsuite/backend/internal/app"
	"aiotoolsuite/backend/internal/catalog"
	"aiotoolsuite/backend/internal/export"
	"aiotoolsuite/backend/internal/tools"
	"aiotoolsuite/backend/pkg/config"
	apperrors "aiotoolsuite/backend/pkg/errors"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:              "0",
		Env:               "test",
		ToolTimeout:       time.Second,
		WarmConcurrency:   1,
		HTTPClientTimeout: time.Second,
		ExchangeRateURL:   "http://127.0.0.1:1/latest",
		RateCacheTTL:      time.Minute,
		FFmpegPath:        "ffmpeg",
		MaxAudioBytes:     1 << 10,
	}
}

func newTestRouter(t *testing.T, descriptors []catalog.ToolDescriptor) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	a, err := app.New(context.Background(), testConfig(), zap.NewNop(), app.Options{Descriptors: descriptors})
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return NewRouter(a, zap.NewNop())
}

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(method, path, bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResult(t *testing.T, w *httptest.ResponseRecorder) ToolResult {
	t.Helper()
	var res ToolResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	w := do(t, router, "GET", "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ok", response["status"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestIDIsPropagated(t *testing.T) {
	router := newTestRouter(t, nil)

	req, _ := http.NewRequest("GET", "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(t, nil)

	w := do(t, router, "OPTIONS", "/api/tools/case-converter/run", "")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestListTools(t *testing.T) {
	router := newTestRouter(t, nil)

	tests := []struct {
		name   string
		query  string
		check  func(t *testing.T, views []catalog.PublicToolView)
		status int
	}{
		{
			name:   "hidden tools filtered",
			status: http.StatusOK,
			check: func(t *testing.T, views []catalog.PublicToolView) {
				for _, v := range views {
					assert.False(t, v.IsHidden, v.Slug)
				}
			},
		},
		{
			name:   "all includes hidden",
			query:  "?all=true",
			status: http.StatusOK,
			check: func(t *testing.T, views []catalog.PublicToolView) {
				assert.Len(t, views, len(catalog.All(tools.Deps{})))
			},
		},
		{
			name:   "by category",
			query:  "?category=security",
			status: http.StatusOK,
			check: func(t *testing.T, views []catalog.PublicToolView) {
				require.NotEmpty(t, views)
				for _, v := range views {
					assert.Equal(t, catalog.CategorySecurity, v.Category)
				}
			},
		},
		{name: "unknown category", query: "?category=games", status: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, router, "GET", "/api/tools"+tt.query, "")
			require.Equal(t, tt.status, w.Code)
			if tt.check == nil {
				return
			}
			var views []catalog.PublicToolView
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
			tt.check(t, views)
		})
	}
}

func TestGetTool(t *testing.T) {
	router := newTestRouter(t, nil)

	w := do(t, router, "GET", "/api/tools/case-converter", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "Loader")
	assert.NotContains(t, w.Body.String(), "timeout")

	var view catalog.PublicToolView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "text-001", view.ID)

	w = do(t, router, "GET", "/api/tools/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToolIndex(t *testing.T) {
	router := newTestRouter(t, nil)

	w := do(t, router, "GET", "/api/tools/index.json", "")
	require.Equal(t, http.StatusOK, w.Code)

	var entries []export.Entry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.NotEmpty(t, entries)
	assert.Equal(t, "case-converter", entries[0].Slug)
}

func TestCategories(t *testing.T) {
	router := newTestRouter(t, nil)

	w := do(t, router, "GET", "/api/categories", "")
	require.Equal(t, http.StatusOK, w.Code)

	var index []catalog.CategoryWithTools
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &index))
	assert.Len(t, index, len(catalog.Categories()))
	for _, cat := range index {
		for _, tool := range cat.Tools {
			assert.NotEqual(t, "echo", tool.Slug)
		}
	}
}

func TestRunTool(t *testing.T) {
	descriptors := []catalog.ToolDescriptor{
		catalog.All(tools.Deps{})[0],
		{ID: "x-1", Slug: "missing-logic", Category: catalog.CategoryDeveloper,
			Loader: tools.Static(nil)},
		{ID: "x-2", Slug: "broken-loader", Category: catalog.CategoryDeveloper,
			Loader: func(context.Context) (*tools.Module, error) { return nil, errors.New("no backend") }},
		{ID: "x-3", Slug: "failing", Category: catalog.CategoryDeveloper,
			Loader: tools.Static(func(context.Context, json.RawMessage) (any, error) {
				return nil, apperrors.NewToolExecutionFailed("failing", "always", nil)
			})},
		{ID: "x-4", Slug: "slow", Category: catalog.CategoryDeveloper, Timeout: 10 * time.Millisecond,
			Loader: tools.Static(func(ctx context.Context, _ json.RawMessage) (any, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			})},
	}
	router := newTestRouter(t, descriptors)

	tests := []struct {
		name   string
		slug   string
		body   string
		status int
		code   string
	}{
		{"success", "case-converter", `{"text":"hello world","caseType":"pascal"}`, http.StatusOK, ""},
		{"not found", "nope", `{}`, http.StatusNotFound, codeNotFound},
		{"schema violation", "case-converter", `{"text":"x"}`, http.StatusBadRequest, codeInvalid},
		{"malformed json", "case-converter", `{"text":"x","caseType":"upper","extra":`, http.StatusBadRequest, codeInvalid},
		{"logic missing", "missing-logic", `{}`, http.StatusInternalServerError, codeUnavailable},
		{"loader error", "broken-loader", `{}`, http.StatusInternalServerError, codeUnavailable},
		{"tool failure", "failing", `{}`, http.StatusUnprocessableEntity, codeFailed},
		{"timeout", "slow", `{}`, http.StatusGatewayTimeout, codeTimeout},
		{"too large", "case-converter", `{"text":"` + strings.Repeat("a", 128<<10) + `"}`, http.StatusRequestEntityTooLarge, codeTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, router, "POST", "/api/tools/"+tt.slug+"/run", tt.body)
			assert.Equal(t, tt.status, w.Code)

			res := decodeResult(t, w)
			assert.Equal(t, tt.status == http.StatusOK, res.Success)
			assert.Equal(t, tt.code, res.Error)
		})
	}

	w := do(t, router, "POST", "/api/tools/case-converter/run", `{"text":"hello world","caseType":"pascal"}`)
	res := decodeResult(t, w)
	assert.Equal(t, map[string]any{"result": "HelloWorld", "caseType": "pascal"}, res.Data)
}

func TestClassify(t *testing.T) {
	status, code := classify(context.DeadlineExceeded)
	assert.Equal(t, http.StatusGatewayTimeout, status)
	assert.Equal(t, codeTimeout, code)

	status, _ = classify(apperrors.NewUpstreamFailed("rates", 503, nil))
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, code = classify(apperrors.NewInvalidInput("audio", "audio input is 9 bytes, limit is 4"))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, codeInvalid, code)
}

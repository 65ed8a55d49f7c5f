// Package tools holds the logic of every AIOToolSuite tool and the contract the
// dispatcher uses to load and call them.
//
// Each tool exposes a constructor and a Run method with statically typed input and
// output. Loaders wrap those into a Module whose Run field is the single required
// entry point; the dispatcher never guesses which symbol to call.
package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"aiotoolsuite/backend/internal/adapter"
	"aiotoolsuite/backend/internal/media"
	"aiotoolsuite/backend/internal/ratecache"
	apperrors "aiotoolsuite/backend/pkg/errors"
)

// Logic is the executable entry point of one tool. Args is the raw JSON argument
// object supplied by the caller; the returned value is tool specific.
type Logic func(ctx context.Context, args json.RawMessage) (any, error)

// Module is what a Loader yields. A Module with a nil Run is a configuration defect.
type Module struct {
	Run Logic
}

// Loader lazily builds a tool's Module. Loaders must be idempotent and free of
// per-call state: the dispatcher may invoke one concurrently and keeps the first result.
type Loader func(ctx context.Context) (*Module, error)

// Deps are the shared collaborators loaders draw from. Optional collaborators are
// nil when not configured; the loaders that need them fail instead of the whole catalog.
type Deps struct {
	HTTPClient *http.Client

	Rates    ratecache.Cache
	RatesURL string
	RatesTTL time.Duration

	AI adapter.TextGenerator

	FFmpegPath    string
	MaxAudioBytes int
}

// Typed adapts a statically typed tool function to Logic. Malformed JSON becomes
// an invalid-input error; the function's own errors pass through untouched.
func Typed[In, Out any](fn func(context.Context, In) (Out, error)) Logic {
	return func(ctx context.Context, args json.RawMessage) (any, error) {
		var in In
		if len(args) > 0 && string(args) != "null" {
			if err := json.Unmarshal(args, &in); err != nil {
				return nil, apperrors.NewInvalidInput("", err.Error())
			}
		}
		out, err := fn(ctx, in)
		if err != nil {
			return nil, err
		}
		return out, nil
	}
}

// Static returns a Loader for logic that needs no construction.
func Static(logic Logic) Loader {
	return func(context.Context) (*Module, error) {
		return &Module{Run: logic}, nil
	}
}

// newMediaProcessor is swapped in tests that cannot rely on ffmpeg being installed.
var newMediaProcessor = func(path string, maxBytes int) (media.Processor, error) {
	return media.NewFFmpeg(path, maxBytes)
}

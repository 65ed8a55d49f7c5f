package tools

import (
	"context"
	"encoding/json"
)

// EchoLoader returns the loader of the hidden echo tool, which returns its
// arguments untouched. It is used to exercise the dispatch path end to end.
func EchoLoader() Loader {
	return Static(func(_ context.Context, args json.RawMessage) (any, error) {
		if len(args) == 0 {
			return json.RawMessage("null"), nil
		}
		return args, nil
	})
}

package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	apperrors "aiotoolsuite/backend/pkg/errors"
)

// JSONFormatterInput is the argument object of the json-formatter tool
type JSONFormatterInput struct {
	JSON   string `json:"json"`
	Mode   string `json:"mode"` // pretty, minify or validate
	Indent int    `json:"indent"`
}

// JSONFormatterOutput is the formatted document, or the validation verdict
type JSONFormatterOutput struct {
	Result string `json:"result,omitempty"`
	Valid  bool   `json:"valid"`
	Error  string `json:"error,omitempty"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

// JSONFormatterLoader returns the loader registered for json-formatter
func JSONFormatterLoader() Loader {
	return Static(Typed(FormatJSON))
}

// FormatJSON pretty prints, minifies or validates a JSON document.
// Validation failures are reported in the output rather than as errors.
func FormatJSON(_ context.Context, in JSONFormatterInput) (JSONFormatterOutput, error) {
	if strings.TrimSpace(in.JSON) == "" {
		return JSONFormatterOutput{}, apperrors.NewInvalidInput("json", "is required")
	}
	indent := in.Indent
	if indent == 0 {
		indent = 2
	}
	if indent < 0 || indent > 8 {
		return JSONFormatterOutput{}, apperrors.NewInvalidInput("indent", "must be between 1 and 8")
	}

	mode := strings.ToLower(in.Mode)
	src := []byte(in.JSON)
	if !json.Valid(src) {
		out := JSONFormatterOutput{Valid: false}
		var v any
		err := json.Unmarshal(src, &v)
		if err == nil {
			err = fmt.Errorf("invalid JSON")
		}
		out.Error = err.Error()
		var syntaxErr *json.SyntaxError
		if apperrors.As(err, &syntaxErr) {
			out.Line, out.Column = position(src, syntaxErr.Offset)
		}
		if mode == "validate" {
			return out, nil
		}
		return JSONFormatterOutput{}, apperrors.NewInvalidInput("json", out.Error)
	}

	var buf bytes.Buffer
	switch mode {
	case "", "pretty":
		if err := json.Indent(&buf, src, "", strings.Repeat(" ", indent)); err != nil {
			return JSONFormatterOutput{}, apperrors.NewInvalidInput("json", err.Error())
		}
	case "minify":
		if err := json.Compact(&buf, src); err != nil {
			return JSONFormatterOutput{}, apperrors.NewInvalidInput("json", err.Error())
		}
	case "validate":
		return JSONFormatterOutput{Valid: true}, nil
	default:
		return JSONFormatterOutput{}, apperrors.NewInvalidInput("mode", "must be pretty, minify or validate")
	}
	return JSONFormatterOutput{Result: buf.String(), Valid: true}, nil
}

// position converts a byte offset into a 1-based line and column
func position(src []byte, offset int64) (int, int) {
	if offset > int64(len(src)) {
		offset = int64(len(src))
	}
	line, col := 1, 1
	for _, b := range src[:offset] {
		if b == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}

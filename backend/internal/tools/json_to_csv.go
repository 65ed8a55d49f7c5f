package tools

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"sort"
	"unicode/utf8"

	apperrors "aiotoolsuite/backend/pkg/errors"
)

// JSONToCSVInput is the argument object of the json-to-csv tool. Data may be the
// array itself or a string holding the JSON text.
type JSONToCSVInput struct {
	Data          json.RawMessage `json:"data"`
	Delimiter     string          `json:"delimiter"`
	IncludeHeader *bool           `json:"includeHeader"`
}

// JSONToCSVOutput is the CSV document plus its shape
type JSONToCSVOutput struct {
	CSV     string   `json:"csv"`
	Columns []string `json:"columns"`
	Rows    int      `json:"rows"`
}

// JSONToCSVLoader returns the loader registered for json-to-csv
func JSONToCSVLoader() Loader {
	return Static(Typed(ConvertJSONToCSV))
}

// ConvertJSONToCSV flattens an array of objects into CSV. Columns are the sorted
// union of all keys; nested values are written as compact JSON.
func ConvertJSONToCSV(_ context.Context, in JSONToCSVInput) (JSONToCSVOutput, error) {
	raw := bytes.TrimSpace(in.Data)
	if len(raw) == 0 {
		return JSONToCSVOutput{}, apperrors.NewInvalidInput("data", "is required")
	}
	if raw[0] == '"' {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return JSONToCSVOutput{}, apperrors.NewInvalidInput("data", err.Error())
		}
		raw = bytes.TrimSpace([]byte(text))
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var records []map[string]any
	if err := dec.Decode(&records); err != nil {
		return JSONToCSVOutput{}, apperrors.NewInvalidInput("data", "must be a JSON array of objects")
	}

	delimiter := ','
	if in.Delimiter != "" {
		r, size := utf8.DecodeRuneInString(in.Delimiter)
		if size != len(in.Delimiter) || r == '"' || r == '\n' || r == '\r' {
			return JSONToCSVOutput{}, apperrors.NewInvalidInput("delimiter", "must be a single character")
		}
		delimiter = r
	}

	seen := map[string]bool{}
	columns := []string{}
	for _, rec := range records {
		for k := range rec {
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
		}
	}
	sort.Strings(columns)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = delimiter

	if in.IncludeHeader == nil || *in.IncludeHeader {
		if err := w.Write(columns); err != nil {
			return JSONToCSVOutput{}, apperrors.NewToolExecutionFailed("json-to-csv", "write header", err)
		}
	}
	row := make([]string, len(columns))
	for _, rec := range records {
		for i, col := range columns {
			row[i] = csvCell(rec[col])
		}
		if err := w.Write(row); err != nil {
			return JSONToCSVOutput{}, apperrors.NewToolExecutionFailed("json-to-csv", "write row", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return JSONToCSVOutput{}, apperrors.NewToolExecutionFailed("json-to-csv", "flush", err)
	}

	return JSONToCSVOutput{CSV: buf.String(), Columns: columns, Rows: len(records)}, nil
}

func csvCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

package tools

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aiotoolsuite/backend/internal/ratecache"
	apperrors "aiotoolsuite/backend/pkg/errors"
)

func TestConvertJSONToCSV(t *testing.T) {
	out, err := ConvertJSONToCSV(context.Background(), JSONToCSVInput{
		Data: json.RawMessage(`[{"name":"Ada","age":36},{"name":"Linus, T","city":"Helsinki","tags":["a"]}]`),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"age", "city", "name", "tags"}, out.Columns)
	assert.Equal(t, 2, out.Rows)
	assert.Equal(t, "age,city,name,tags\n36,,Ada,\n,Helsinki,\"Linus, T\",\"[\"\"a\"\"]\"\n", out.CSV)
}

func TestConvertJSONToCSV_StringPayloadAndOptions(t *testing.T) {
	noHeader := false
	out, err := ConvertJSONToCSV(context.Background(), JSONToCSVInput{
		Data:          json.RawMessage(`"[{\"b\":1.50,\"a\":true}]"`),
		Delimiter:     ";",
		IncludeHeader: &noHeader,
	})
	require.NoError(t, err)
	assert.Equal(t, "true;1.50\n", out.CSV)
}

func TestConvertJSONToCSV_Invalid(t *testing.T) {
	for _, data := range []string{``, `{"a":1}`, `[1,2]`, `"not json"`} {
		_, err := ConvertJSONToCSV(context.Background(), JSONToCSVInput{Data: json.RawMessage(data)})
		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInput), "data %q", data)
	}
	_, err := ConvertJSONToCSV(context.Background(), JSONToCSVInput{Data: json.RawMessage(`[]`), Delimiter: "ab"})
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInput))
}

func newRatesServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/USD":
			_, _ = w.Write([]byte(`{"result":"success","base_code":"USD","rates":{"USD":1,"EUR":0.9,"JPY":150.25}}`))
		case "/XXX":
			_, _ = w.Write([]byte(`{"result":"error","error-type":"unsupported-code"}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
}

func TestCurrencyConverter_UsesCache(t *testing.T) {
	var hits atomic.Int32
	srv := newRatesServer(t, &hits)
	defer srv.Close()

	cache := ratecache.NewMemoryCache()
	c := NewCurrencyConverter(srv.Client(), cache, srv.URL, time.Hour)
	ctx := context.Background()

	out, err := c.Run(ctx, CurrencyConverterInput{Amount: 10, From: "usd", To: "eur"})
	require.NoError(t, err)
	assert.Equal(t, CurrencyConverterOutput{Amount: 10, From: "USD", To: "EUR", Rate: 0.9, Result: 9, Cached: false}, out)

	out, err = c.Run(ctx, CurrencyConverterInput{Amount: 2, From: "USD", To: "JPY"})
	require.NoError(t, err)
	assert.Equal(t, 300.5, out.Result)
	assert.True(t, out.Cached)
	assert.Equal(t, int32(1), hits.Load())

	cached, ok, err := cache.Get(ctx, ratecache.Key("USD"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"USD":1,"EUR":0.9,"JPY":150.25}`, cached)
}

func TestCurrencyConverter_SameCurrencySkipsFetch(t *testing.T) {
	var hits atomic.Int32
	srv := newRatesServer(t, &hits)
	defer srv.Close()

	c := NewCurrencyConverter(srv.Client(), ratecache.NewMemoryCache(), srv.URL, time.Hour)
	out, err := c.Run(context.Background(), CurrencyConverterInput{Amount: 5, From: "GBP", To: "gbp"})
	require.NoError(t, err)
	assert.Equal(t, 5.0, out.Result)
	assert.Equal(t, int32(0), hits.Load())
}

func TestCurrencyConverter_Errors(t *testing.T) {
	var hits atomic.Int32
	srv := newRatesServer(t, &hits)
	defer srv.Close()

	c := NewCurrencyConverter(srv.Client(), ratecache.NewMemoryCache(), srv.URL, time.Hour)
	ctx := context.Background()

	_, err := c.Run(ctx, CurrencyConverterInput{Amount: 1, From: "US", To: "EUR"})
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInput))

	_, err = c.Run(ctx, CurrencyConverterInput{Amount: -1, From: "USD", To: "EUR"})
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInput))

	_, err = c.Run(ctx, CurrencyConverterInput{Amount: 1, From: "USD", To: "ABC"})
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInput))

	_, err = c.Run(ctx, CurrencyConverterInput{Amount: 1, From: "XXX", To: "EUR"})
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInput))

	_, err = c.Run(ctx, CurrencyConverterInput{Amount: 1e308, From: "USD", To: "JPY"})
	var invalid *apperrors.ErrInvalidInput
	require.True(t, apperrors.As(err, &invalid))
	assert.Equal(t, "amount", invalid.Field)

	out, err := c.Run(ctx, CurrencyConverterInput{Amount: 1e306, From: "USD", To: "JPY"})
	require.NoError(t, err)
	assert.False(t, math.IsInf(out.Result, 0))
	_, err = json.Marshal(out)
	assert.NoError(t, err)

	_, err = c.Run(ctx, CurrencyConverterInput{Amount: 1, From: "EUR", To: "USD"})
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeUpstream))
	assert.True(t, apperrors.IsRetryable(err))
}

func TestConvertBase64(t *testing.T) {
	ctx := context.Background()

	out, err := ConvertBase64(ctx, Base64Input{Text: "hello?>"})
	require.NoError(t, err)
	assert.Equal(t, "aGVsbG8/Pg==", out.Result)

	out, err = ConvertBase64(ctx, Base64Input{Text: "hello?>", URLSafe: true})
	require.NoError(t, err)
	assert.Equal(t, "aGVsbG8_Pg==", out.Result)

	out, err = ConvertBase64(ctx, Base64Input{Text: "aGVsbG8/Pg", Mode: "decode"})
	require.NoError(t, err)
	assert.Equal(t, "hello?>", out.Result)

	_, err = ConvertBase64(ctx, Base64Input{Text: "!!!", Mode: "decode"})
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInput))

	_, err = ConvertBase64(ctx, Base64Input{Text: "/w==", Mode: "decode"})
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInput))
}

func TestConvertColor(t *testing.T) {
	out, err := ConvertColor(context.Background(), ColorConverterInput{Color: "#3366CC", PaletteSize: 1})
	require.NoError(t, err)

	assert.Equal(t, "#3366cc", out.Hex)
	assert.Equal(t, RGB{51, 102, 204}, out.RGB)
	assert.Equal(t, HSL{220, 60, 50}, out.HSL)
	assert.Equal(t, "hsl(220, 60%, 50%)", out.HSLString)
	assert.Equal(t, []string{"#99b3e6"}, out.Tints)
	assert.Equal(t, []string{"#1a3366"}, out.Shades)

	out, err = ConvertColor(context.Background(), ColorConverterInput{Color: "rgb(255, 0, 0)"})
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", out.Hex)
	assert.Equal(t, HSL{0, 100, 50}, out.HSL)
	assert.Len(t, out.Tints, 5)

	out, err = ConvertColor(context.Background(), ColorConverterInput{Color: "fff"})
	require.NoError(t, err)
	assert.Equal(t, "#ffffff", out.Hex)

	for _, bad := range []string{"", "#12", "rgb(1,2)", "rgb(256,0,0)", "#gggggg"} {
		_, err := ConvertColor(context.Background(), ColorConverterInput{Color: bad})
		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInput), "color %q", bad)
	}
}

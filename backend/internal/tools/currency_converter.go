package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"aiotoolsuite/backend/internal/ratecache"
	apperrors "aiotoolsuite/backend/pkg/errors"
	"aiotoolsuite/backend/pkg/logger"
)

// CurrencyConverterInput is the argument object of the currency-converter tool
type CurrencyConverterInput struct {
	Amount float64 `json:"amount"`
	From   string  `json:"from"`
	To     string  `json:"to"`
}

// CurrencyConverterOutput is the converted amount and the rate used
type CurrencyConverterOutput struct {
	Amount float64 `json:"amount"`
	From   string  `json:"from"`
	To     string  `json:"to"`
	Rate   float64 `json:"rate"`
	Result float64 `json:"result"`
	Cached bool    `json:"cached"`
}

// rateTable is the subset of the exchange-rate API response we rely on
type rateTable struct {
	Result   string             `json:"result"`
	BaseCode string             `json:"base_code"`
	Rates    map[string]float64 `json:"rates"`
}

// CurrencyConverter converts amounts using a cached exchange-rate table
type CurrencyConverter struct {
	httpClient *http.Client
	cache      ratecache.Cache
	baseURL    string
	ttl        time.Duration
	logger     *zap.Logger
}

// NewCurrencyConverter creates a converter reading rates from baseURL/{BASE}
func NewCurrencyConverter(client *http.Client, cache ratecache.Cache, baseURL string, ttl time.Duration) *CurrencyConverter {
	return &CurrencyConverter{
		httpClient: client,
		cache:      cache,
		baseURL:    strings.TrimRight(baseURL, "/"),
		ttl:        ttl,
		logger:     logger.Named("currency-converter"),
	}
}

// CurrencyConverterLoader returns the loader registered for currency-converter
func CurrencyConverterLoader(deps Deps) Loader {
	return func(context.Context) (*Module, error) {
		if deps.HTTPClient == nil || deps.RatesURL == "" {
			return nil, fmt.Errorf("currency-converter requires an HTTP client and a rates URL")
		}
		cache := deps.Rates
		if cache == nil {
			cache = ratecache.NewMemoryCache()
		}
		return &Module{Run: Typed(NewCurrencyConverter(deps.HTTPClient, cache, deps.RatesURL, deps.RatesTTL).Run)}, nil
	}
}

// Run converts in.Amount from in.From to in.To
func (c *CurrencyConverter) Run(ctx context.Context, in CurrencyConverterInput) (CurrencyConverterOutput, error) {
	from, err := normalizeCurrency("from", in.From)
	if err != nil {
		return CurrencyConverterOutput{}, err
	}
	to, err := normalizeCurrency("to", in.To)
	if err != nil {
		return CurrencyConverterOutput{}, err
	}
	if in.Amount < 0 || math.IsNaN(in.Amount) || math.IsInf(in.Amount, 0) {
		return CurrencyConverterOutput{}, apperrors.NewInvalidInput("amount", "must be a non-negative number")
	}

	out := CurrencyConverterOutput{Amount: in.Amount, From: from, To: to}
	if from == to {
		out.Rate = 1
		out.Result = in.Amount
		return out, nil
	}

	rates, cached, err := c.rates(ctx, from)
	if err != nil {
		return CurrencyConverterOutput{}, err
	}
	rate, ok := rates[to]
	if !ok {
		return CurrencyConverterOutput{}, apperrors.NewInvalidInput("to", fmt.Sprintf("unknown currency %s", to))
	}

	result := in.Amount * rate
	if math.IsInf(result, 0) || math.IsNaN(result) {
		return CurrencyConverterOutput{}, apperrors.NewInvalidInput("amount", "result out of range")
	}
	// Values this large carry no fractional digits to round
	if scaled := result * 10000; !math.IsInf(scaled, 0) {
		result = math.Round(scaled) / 10000
	}

	out.Rate = rate
	out.Result = result
	out.Cached = cached
	return out, nil
}

// rates returns the rate table for base, from cache when possible
func (c *CurrencyConverter) rates(ctx context.Context, base string) (map[string]float64, bool, error) {
	key := ratecache.Key(base)
	if val, ok, err := c.cache.Get(ctx, key); err != nil {
		// Log error but proceed to fetch fresh
		c.logger.Warn("Rate cache read failed", zap.String("base", base), zap.Error(err))
	} else if ok {
		var rates map[string]float64
		if err := json.Unmarshal([]byte(val), &rates); err == nil {
			return rates, true, nil
		}
		c.logger.Warn("Discarding malformed cached rates", zap.String("base", base))
	}

	rates, err := c.fetchRates(ctx, base)
	if err != nil {
		return nil, false, err
	}

	if encoded, err := json.Marshal(rates); err == nil {
		if err := c.cache.Set(ctx, key, string(encoded), c.ttl); err != nil {
			c.logger.Warn("Rate cache write failed", zap.String("base", base), zap.Error(err))
		}
	}
	return rates, false, nil
}

func (c *CurrencyConverter) fetchRates(ctx context.Context, base string) (map[string]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+base, nil)
	if err != nil {
		return nil, apperrors.NewToolExecutionFailed("currency-converter", "build rates request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewUpstreamFailed("exchange-rate API", 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewUpstreamFailed("exchange-rate API", resp.StatusCode, nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, apperrors.NewUpstreamFailed("exchange-rate API", 0, err)
	}

	var table rateTable
	if err := json.Unmarshal(body, &table); err != nil {
		return nil, apperrors.NewUpstreamFailed("exchange-rate API", 0, fmt.Errorf("decode rates: %w", err))
	}
	if table.Result != "" && table.Result != "success" {
		return nil, apperrors.NewInvalidInput("from", fmt.Sprintf("rates unavailable for %s", base))
	}
	if len(table.Rates) == 0 {
		return nil, apperrors.NewUpstreamFailed("exchange-rate API", 0, fmt.Errorf("empty rate table for %s", base))
	}

	c.logger.Debug("Fetched exchange rates", zap.String("base", base), zap.Int("currencies", len(table.Rates)))
	return table.Rates, nil
}

func normalizeCurrency(field, code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return "", apperrors.NewInvalidInput(field, "must be a 3-letter ISO 4217 code")
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", apperrors.NewInvalidInput(field, "must be a 3-letter ISO 4217 code")
		}
	}
	return code, nil
}

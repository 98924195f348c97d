package providers

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"PickRank/internal/domain/models"
	"PickRank/internal/domain/repository"
	"PickRank/pkg/config"
	xhttp "PickRank/pkg/http"
)

const dailyLayout = "2006-01-02"

// AlphaVantage serves daily price history and company overviews.
type AlphaVantage struct {
	*HTTPServiceBase
}

var (
	_ repository.PriceHistoryProvider = (*AlphaVantage)(nil)
	_ repository.FundamentalsProvider = (*AlphaVantage)(nil)
)

func NewAlphaVantage(name string, cfg config.Provider, opts ...xhttp.ClientOption) *AlphaVantage {
	return &AlphaVantage{HTTPServiceBase: NewHTTPServiceBase(name, cfg, opts...)}
}

type dailyBar struct {
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

type dailyResponse struct {
	Series      map[string]dailyBar `json:"Time Series (Daily)"`
	Error       string              `json:"Error Message"`
	Note        string              `json:"Note"`
	Information string              `json:"Information"`
}

// upstreamError reports the in-band error fields the API uses instead of
// HTTP status codes.
func upstreamError(errMsg, note, info string) error {
	switch {
	case errMsg != "":
		return fmt.Errorf("upstream error: %s", errMsg)
	case note != "":
		return fmt.Errorf("upstream throttled: %s", note)
	case info != "":
		return fmt.Errorf("upstream refused: %s", info)
	}
	return nil
}

// FetchPriceHistory returns the full daily series in ascending date order.
// Bars with unparsable dates, non-positive or non-finite closes are dropped.
func (a *AlphaVantage) FetchPriceHistory(ctx context.Context, symbol string) (models.PriceHistory, error) {
	var resp dailyResponse
	q := url.Values{
		"function":   {"TIME_SERIES_DAILY"},
		"symbol":     {symbol},
		"outputsize": {"full"},
		"apikey":     {a.apiKey},
	}
	if err := a.GetJSON(ctx, "/query", q, &resp); err != nil {
		return nil, err
	}
	if err := upstreamError(resp.Error, resp.Note, resp.Information); err != nil {
		return nil, fmt.Errorf("%s: %s: %w", a.name, symbol, err)
	}

	bars := make(models.PriceHistory, 0, len(resp.Series))
	for day, raw := range resp.Series {
		date, err := time.Parse(dailyLayout, day)
		if err != nil {
			continue
		}
		closePrice, ok := parsePositive(raw.Close)
		if !ok {
			continue
		}
		volume, ok := parseNonNegative(raw.Volume)
		if !ok {
			volume = 0
		}
		bars = append(bars, models.PriceBar{Date: date, Close: closePrice, Volume: volume})
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%s: %s: %w", a.name, symbol, repository.ErrNoData)
	}

	// map keys are unique, so sorting is enough for strictly ascending dates
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}

// FetchFundamentals returns the company overview as ratio name -> value.
func (a *AlphaVantage) FetchFundamentals(ctx context.Context, symbol string) (models.FundamentalsSnapshot, error) {
	var raw map[string]interface{}
	q := url.Values{
		"function": {"OVERVIEW"},
		"symbol":   {symbol},
		"apikey":   {a.apiKey},
	}
	if err := a.GetJSON(ctx, "/query", q, &raw); err != nil {
		return nil, err
	}

	str := func(k string) string {
		s, _ := raw[k].(string)
		return s
	}
	if err := upstreamError(str("Error Message"), str("Note"), str("Information")); err != nil {
		return nil, fmt.Errorf("%s: %s: %w", a.name, symbol, err)
	}

	out := make(models.FundamentalsSnapshot, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: %s: overview data is empty: %w", a.name, symbol, repository.ErrNoData)
	}
	return out, nil
}

func parseDecimal(s string) (float64, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	f, _ := d.Float64()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func parsePositive(s string) (float64, bool) {
	f, ok := parseDecimal(s)
	return f, ok && f > 0
}

func parseNonNegative(s string) (float64, bool) {
	f, ok := parseDecimal(s)
	return f, ok && f >= 0
}

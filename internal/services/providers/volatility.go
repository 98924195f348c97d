package providers

import (
	"context"
	"encoding/json"
	"net/url"

	"PickRank/internal/domain/models"
	"PickRank/internal/domain/repository"
	"PickRank/pkg/config"
	xhttp "PickRank/pkg/http"
)

// Volatility reads current implied volatility and its trailing low/high.
type Volatility struct {
	*HTTPServiceBase
}

var _ repository.VolatilityProvider = (*Volatility)(nil)

func NewVolatility(cfg config.Provider, opts ...xhttp.ClientOption) *Volatility {
	return &Volatility{HTTPServiceBase: NewHTTPServiceBase("volatility", cfg, opts...)}
}

type volatilityResponse struct {
	Current *json.Number `json:"currentIv"`
	Low     *json.Number `json:"ivLow"`
	High    *json.Number `json:"ivHigh"`
}

func (v *Volatility) FetchVolatility(ctx context.Context, symbol string) (*models.VolatilitySnapshot, error) {
	if !v.Configured() {
		return nil, nil
	}

	var resp volatilityResponse
	q := url.Values{"symbol": {symbol}, "token": {v.apiKey}}
	if err := v.GetJSON(ctx, "/iv", q, &resp); err != nil {
		return nil, err
	}

	var vals [3]float64
	for i, n := range []*json.Number{resp.Current, resp.Low, resp.High} {
		if n == nil {
			return nil, nil
		}
		f, ok := parseNonNegative(n.String())
		if !ok {
			return nil, nil
		}
		vals[i] = f
	}
	return &models.VolatilitySnapshot{CurrentIV: vals[0], LowIV: vals[1], HighIV: vals[2]}, nil
}

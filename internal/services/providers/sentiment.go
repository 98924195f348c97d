package providers

import (
	"context"
	"encoding/json"
	"net/url"

	"PickRank/internal/domain/models"
	"PickRank/internal/domain/repository"
	"PickRank/internal/services/indicators"
	"PickRank/pkg/config"
	xhttp "PickRank/pkg/http"
)

// Sentiment reads crowd bullish/bearish percentages. Unconfigured or
// malformed responses are absence, not errors.
type Sentiment struct {
	*HTTPServiceBase
}

var _ repository.SentimentProvider = (*Sentiment)(nil)

func NewSentiment(cfg config.Provider, opts ...xhttp.ClientOption) *Sentiment {
	return &Sentiment{HTTPServiceBase: NewHTTPServiceBase("sentiment", cfg, opts...)}
}

type sentimentResponse struct {
	Bullish *json.Number `json:"bullishPercent"`
	Bearish *json.Number `json:"bearishPercent"`
}

func (s *Sentiment) FetchSentiment(ctx context.Context, symbol string) (*models.SentimentSnapshot, error) {
	if !s.Configured() {
		return nil, nil
	}

	var resp sentimentResponse
	q := url.Values{"symbol": {symbol}, "token": {s.apiKey}}
	if err := s.GetJSON(ctx, "/sentiment", q, &resp); err != nil {
		return nil, err
	}

	bull, ok := percent(resp.Bullish)
	if !ok {
		return nil, nil
	}
	bear, ok := percent(resp.Bearish)
	if !ok {
		return nil, nil
	}
	return &models.SentimentSnapshot{
		BullishPercent: bull,
		BearishPercent: bear,
		Score:          indicators.Clamp((bull - bear) / 100),
	}, nil
}

func percent(n *json.Number) (float64, bool) {
	if n == nil {
		return 0, false
	}
	f, ok := parseDecimal(n.String())
	return f, ok && f >= 0 && f <= 100
}

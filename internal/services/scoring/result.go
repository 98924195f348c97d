package scoring

import (
	"time"

	"PickRank/internal/domain/models"
)

// Compose builds the full scored record for one symbol.
func Compose(symbol string, raw Raw, now time.Time) *models.CompositeResult {
	signals := Normalize(raw)
	return &models.CompositeResult{
		Symbol:      symbol,
		Score:       Score(signals),
		UpdatedAt:   now,
		LatestPrice: raw.LatestPrice,
		Explanation: Narrative(signals),
		Signals:     signals,
		Details:     Details(raw, signals),
	}
}

// Unavailable is the placeholder returned for a symbol whose price history
// could not be obtained.
func Unavailable(symbol string, now time.Time) *models.CompositeResult {
	return &models.CompositeResult{
		Symbol:      symbol,
		Score:       0,
		UpdatedAt:   now,
		Explanation: UnavailableExplanation,
		Details:     []models.IndicatorDetail{},
	}
}

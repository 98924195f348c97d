package models

import "time"

// PriceBar is one daily observation. Close is strictly positive.
type PriceBar struct {
	Date   time.Time `json:"date"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// PriceHistory is ordered ascending by date with no duplicate dates.
type PriceHistory []PriceBar

// Closes returns the closing prices in order.
func (h PriceHistory) Closes() []float64 {
	out := make([]float64, len(h))
	for i, b := range h {
		out[i] = b.Close
	}
	return out
}

// Volumes returns the traded volumes in order.
func (h PriceHistory) Volumes() []float64 {
	out := make([]float64, len(h))
	for i, b := range h {
		out[i] = b.Volume
	}
	return out
}

// Last returns the most recent bar.
func (h PriceHistory) Last() (PriceBar, bool) {
	if len(h) == 0 {
		return PriceBar{}, false
	}
	return h[len(h)-1], true
}

// FundamentalsSnapshot maps ratio names (PERatio, ProfitMargin, ...) to the
// provider's string values.
type FundamentalsSnapshot map[string]string

// SentimentSnapshot holds crowd sentiment percentages in 0..100.
type SentimentSnapshot struct {
	BullishPercent float64 `json:"bullishPercent"`
	BearishPercent float64 `json:"bearishPercent"`
	Score          float64 `json:"score"`
}

// VolatilitySnapshot holds the current implied volatility and its trailing range.
type VolatilitySnapshot struct {
	CurrentIV float64 `json:"currentIv"`
	LowIV     float64 `json:"lowIv"`
	HighIV    float64 `json:"highIv"`
}

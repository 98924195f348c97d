package models

import "time"

// IndicatorSignals carries the seven normalized signals. A nil field means the
// input was missing or too short; present values are within [-1, 1].
type IndicatorSignals struct {
	Trend              *float64 `json:"trend"`
	Oscillator         *float64 `json:"oscillator"`
	MomentumDivergence *float64 `json:"momentumDivergence"`
	BandPosition       *float64 `json:"bandPosition"`
	VolumeAnomaly      *float64 `json:"volumeAnomaly"`
	Sentiment          *float64 `json:"sentiment"`
	VolatilityRank     *float64 `json:"volatilityRank"`
}

// IndicatorDetail is one display row of the explanation.
type IndicatorDetail struct {
	Name   string   `json:"name"`
	Value  string   `json:"value"`
	Signal *float64 `json:"signal,omitempty"`
}

// CompositeResult is the scored view of one symbol. Once built it is never
// modified; the cache hands the same pointer to every reader.
type CompositeResult struct {
	Symbol      string            `json:"symbol"`
	Score       float64           `json:"score"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	LatestPrice *float64          `json:"latestPrice"`
	Explanation string            `json:"explanation"`
	Signals     IndicatorSignals  `json:"signals"`
	Details     []IndicatorDetail `json:"details"`
}

// PicksResponse is a ranked batch, best score first.
type PicksResponse struct {
	BatchID   string             `json:"batchId"`
	UpdatedAt time.Time          `json:"updatedAt"`
	Symbols   []string           `json:"symbols"`
	Degraded  int                `json:"degraded"`
	Picks     []*CompositeResult `json:"picks"`
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}

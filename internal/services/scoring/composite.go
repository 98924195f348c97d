package scoring

import (
	"PickRank/internal/domain/models"
	"PickRank/internal/services/indicators"
)

// Weights per signal; they sum to 1.
const (
	WeightTrend      = 0.20
	WeightOscillator = 0.15
	WeightMomentum   = 0.20
	WeightBand       = 0.10
	WeightVolume     = 0.10
	WeightSentiment  = 0.15
	WeightVolatility = 0.10
)

type weighted struct {
	value  *float64
	weight float64
}

func weightedSignals(s models.IndicatorSignals) []weighted {
	return []weighted{
		{s.Trend, WeightTrend},
		{s.Oscillator, WeightOscillator},
		{s.MomentumDivergence, WeightMomentum},
		{s.BandPosition, WeightBand},
		{s.VolumeAnomaly, WeightVolume},
		{s.Sentiment, WeightSentiment},
		{s.VolatilityRank, WeightVolatility},
	}
}

// Score is the weighted mean of the present signals, renormalized over their
// weights. With no signal present it is exactly 0.
func Score(s models.IndicatorSignals) float64 {
	var sum, total float64
	for _, w := range weightedSignals(s) {
		if w.value == nil {
			continue
		}
		sum += *w.value * w.weight
		total += w.weight
	}
	if total == 0 {
		return 0
	}
	return indicators.Clamp(sum / total)
}

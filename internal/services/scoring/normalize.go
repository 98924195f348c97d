// Package scoring turns raw indicator statistics into bounded signals, a
// weighted composite score and a readable explanation.
package scoring

import (
	"math"

	"PickRank/internal/domain/models"
	"PickRank/internal/services/indicators"
)

const (
	trendShort     = 50
	trendLong      = 200
	momentumFloor  = 0.01
	oscillatorMid  = 50.0
	oscillatorSpan = 25.0
)

// Raw is everything derived from one symbol's inputs before normalization.
// Nil fields are absent.
type Raw struct {
	LatestPrice  *float64
	SMA50        *float64
	SMA200       *float64
	RSI          *float64
	MACD         *indicators.MACDResult
	Bands        *indicators.BandsResult
	VolumeRatio  *float64
	Sentiment    *models.SentimentSnapshot
	Volatility   *models.VolatilitySnapshot
	Fundamentals models.FundamentalsSnapshot
}

// Derive computes the raw statistics from a price history and the optional
// snapshots.
func Derive(history models.PriceHistory, f models.FundamentalsSnapshot, s *models.SentimentSnapshot, v *models.VolatilitySnapshot) Raw {
	raw := Raw{Sentiment: s, Volatility: v, Fundamentals: f}

	if last, ok := history.Last(); ok {
		raw.LatestPrice = models.Float(last.Close)
	}

	closes := history.Closes()
	if x, ok := indicators.SMA(closes, trendShort); ok {
		raw.SMA50 = models.Float(x)
	}
	if x, ok := indicators.SMA(closes, trendLong); ok {
		raw.SMA200 = models.Float(x)
	}
	if x, ok := indicators.RSI(closes, indicators.RSIPeriod); ok {
		raw.RSI = models.Float(x)
	}
	if m, ok := indicators.MACD(closes); ok {
		raw.MACD = &m
	}
	if b, ok := indicators.Bands(closes, indicators.BandPeriod, indicators.BandWidth); ok {
		raw.Bands = &b
	}
	if x, ok := indicators.VolumeAnomaly(history.Volumes(), indicators.VolumeLookback); ok {
		raw.VolumeRatio = models.Float(x)
	}
	return raw
}

// Normalize maps each raw statistic onto [-1, 1].
func Normalize(raw Raw) models.IndicatorSignals {
	var sig models.IndicatorSignals

	if raw.SMA50 != nil && raw.SMA200 != nil && *raw.SMA200 != 0 {
		sig.Trend = bounded((*raw.SMA50 - *raw.SMA200) / *raw.SMA200)
	}
	if raw.RSI != nil {
		sig.Oscillator = bounded((*raw.RSI - oscillatorMid) / oscillatorSpan)
	}
	if raw.MACD != nil {
		sig.MomentumDivergence = bounded(raw.MACD.Histogram / math.Max(momentumFloor, math.Abs(raw.MACD.Signal)))
	}
	if raw.Bands != nil && raw.LatestPrice != nil {
		if raw.Bands.StdDev == 0 {
			sig.BandPosition = models.Float(0)
		} else {
			sig.BandPosition = bounded((*raw.LatestPrice - raw.Bands.Middle) / (2 * raw.Bands.StdDev))
		}
	}
	if raw.VolumeRatio != nil {
		sig.VolumeAnomaly = bounded(*raw.VolumeRatio)
	}
	if raw.Sentiment != nil {
		sig.Sentiment = bounded((raw.Sentiment.BullishPercent - raw.Sentiment.BearishPercent) / 100)
	}
	sig.VolatilityRank = volatilityRank(raw.Volatility)
	return sig
}

func volatilityRank(v *models.VolatilitySnapshot) *float64 {
	if v == nil {
		return nil
	}
	for _, x := range []float64{v.CurrentIV, v.LowIV, v.HighIV} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil
		}
	}
	if v.HighIV == v.LowIV {
		return nil
	}
	return bounded((v.CurrentIV-v.LowIV)/(v.HighIV-v.LowIV)*2 - 1)
}

// bounded clamps x, treating NaN as absent.
func bounded(x float64) *float64 {
	if math.IsNaN(x) {
		return nil
	}
	return models.Float(indicators.Clamp(x))
}

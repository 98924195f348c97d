package scoring

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PickRank/internal/domain/models"
	"PickRank/internal/services/indicators"
)

func history(closes []float64, volume float64) models.PriceHistory {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	h := make(models.PriceHistory, len(closes))
	for i, c := range closes {
		h[i] = models.PriceBar{Date: start.AddDate(0, 0, i), Close: c, Volume: volume}
	}
	return h
}

func flat(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func rising(n int, from, to float64) []float64 {
	out := make([]float64, n)
	step := (to - from) / float64(n-1)
	for i := range out {
		out[i] = from + float64(i)*step
	}
	return out
}

func eachSignal(s models.IndicatorSignals) []*float64 {
	return []*float64{s.Trend, s.Oscillator, s.MomentumDivergence, s.BandPosition, s.VolumeAnomaly, s.Sentiment, s.VolatilityRank}
}

func TestNormalizeClampsAndAbsence(t *testing.T) {
	raw := Raw{
		LatestPrice: models.Float(500),
		SMA50:       models.Float(300),
		SMA200:      models.Float(100),
		RSI:         models.Float(2),
		MACD:        &indicators.MACDResult{Value: 1, Signal: 0, Histogram: 1},
		Bands:       &indicators.BandsResult{Middle: 100, StdDev: 1},
		VolumeRatio: models.Float(-1),
		Sentiment:   &models.SentimentSnapshot{BullishPercent: 0, BearishPercent: 100},
		Volatility:  &models.VolatilitySnapshot{CurrentIV: 90, LowIV: 10, HighIV: 50},
	}
	s := Normalize(raw)

	assert.Equal(t, 1.0, *s.Trend)
	assert.Equal(t, -1.0, *s.Oscillator)
	assert.Equal(t, 1.0, *s.MomentumDivergence, "signal line floored at 0.01")
	assert.Equal(t, 1.0, *s.BandPosition)
	assert.Equal(t, -1.0, *s.VolumeAnomaly)
	assert.Equal(t, -1.0, *s.Sentiment)
	assert.Equal(t, 1.0, *s.VolatilityRank)

	empty := Normalize(Raw{})
	for _, v := range eachSignal(empty) {
		assert.Nil(t, v)
	}
}

func TestNormalizeEdgeCases(t *testing.T) {
	s := Normalize(Raw{SMA50: models.Float(10), SMA200: models.Float(0)})
	assert.Nil(t, s.Trend, "zero long average")

	s = Normalize(Raw{Bands: &indicators.BandsResult{Middle: 100}})
	assert.Nil(t, s.BandPosition, "no latest price")

	s = Normalize(Raw{LatestPrice: models.Float(120), Bands: &indicators.BandsResult{Middle: 100}})
	require.NotNil(t, s.BandPosition)
	assert.Equal(t, 0.0, *s.BandPosition, "flat bands")

	s = Normalize(Raw{Volatility: &models.VolatilitySnapshot{CurrentIV: 20, LowIV: 30, HighIV: 30}})
	assert.Nil(t, s.VolatilityRank, "degenerate range")

	s = Normalize(Raw{Volatility: &models.VolatilitySnapshot{CurrentIV: math.NaN(), LowIV: 10, HighIV: 30}})
	assert.Nil(t, s.VolatilityRank)

	s = Normalize(Raw{Volatility: &models.VolatilitySnapshot{CurrentIV: 20, LowIV: 10, HighIV: 30}})
	require.NotNil(t, s.VolatilityRank)
	assert.InDelta(t, 0.0, *s.VolatilityRank, 1e-12)

	s = Normalize(Raw{Sentiment: &models.SentimentSnapshot{BullishPercent: 80, BearishPercent: 20}})
	require.NotNil(t, s.Sentiment)
	assert.InDelta(t, 0.6, *s.Sentiment, 1e-12)
}

func TestScoreZeroWhenEmpty(t *testing.T) {
	assert.Equal(t, 0.0, Score(models.IndicatorSignals{}))
}

func TestScoreRenormalizesOverPresentWeights(t *testing.T) {
	full := models.IndicatorSignals{
		Trend:              models.Float(0.5),
		Oscillator:         models.Float(0.5),
		MomentumDivergence: models.Float(0.5),
		BandPosition:       models.Float(0.5),
		VolumeAnomaly:      models.Float(0.5),
		Sentiment:          models.Float(0.5),
		VolatilityRank:     models.Float(0.5),
	}
	assert.InDelta(t, 0.5, Score(full), 1e-12)

	partial := models.IndicatorSignals{
		Trend:     models.Float(0.8),
		Sentiment: models.Float(-0.4),
	}
	want := (0.8*WeightTrend - 0.4*WeightSentiment) / (WeightTrend + WeightSentiment)
	assert.InDelta(t, want, Score(partial), 1e-12)

	// same present values, an extra signal changes only the denominator mix
	withVolume := partial
	withVolume.VolumeAnomaly = models.Float(0)
	want = (0.8*WeightTrend - 0.4*WeightSentiment) / (WeightTrend + WeightSentiment + WeightVolume)
	assert.InDelta(t, want, Score(withVolume), 1e-12)
}

func TestScoreBounded(t *testing.T) {
	for _, v := range []float64{-1, -0.3, 0, 0.7, 1} {
		s := models.IndicatorSignals{Trend: models.Float(v), Oscillator: models.Float(1), Sentiment: models.Float(-1)}
		score := Score(s)
		assert.GreaterOrEqual(t, score, -1.0)
		assert.LessOrEqual(t, score, 1.0)
	}
}

func TestNarrativeThresholds(t *testing.T) {
	assert.Equal(t, NeutralExplanation, Narrative(models.IndicatorSignals{}))

	// band position never speaks, and values at the threshold do not qualify
	quiet := models.IndicatorSignals{
		Trend:         models.Float(0.2),
		Oscillator:    models.Float(-0.3),
		BandPosition:  models.Float(1),
		VolumeAnomaly: models.Float(0.25),
	}
	assert.Equal(t, NeutralExplanation, Narrative(quiet))

	loud := models.IndicatorSignals{
		Trend:          models.Float(0.21),
		Oscillator:     models.Float(-0.31),
		Sentiment:      models.Float(0.6),
		VolatilityRank: models.Float(-0.5),
	}
	assert.Equal(t,
		"Short-term trend is running above the long-term average. "+
			"RSI points to persistent selling pressure. "+
			"Crowd sentiment leans bullish. "+
			"Implied volatility sits near the bottom of its yearly range.",
		Narrative(loud))
}

func TestDetailsOrder(t *testing.T) {
	raw := Derive(history(rising(250, 50, 150), 1000),
		models.FundamentalsSnapshot{"PERatio": "31.5", "ProfitMargin": "None", "PEGRatio": "2.1", "DividendYield": "0.005"},
		&models.SentimentSnapshot{BullishPercent: 70, BearishPercent: 30},
		&models.VolatilitySnapshot{CurrentIV: 0.3, LowIV: 0.2, HighIV: 0.6},
	)
	details := Details(raw, Normalize(raw))

	var names []string
	for _, d := range details {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{
		"Last price",
		"SMA 50 / SMA 200",
		"RSI (14)",
		"MACD histogram",
		"Bollinger bands (20, 2)",
		"Volume vs 20d avg",
		"Sentiment",
		"IV rank",
		"P/E ratio",
		"PEG ratio",
	}, names)

	assert.Equal(t, "150.00", details[0].Value)
	assert.Nil(t, details[0].Signal)
	assert.Equal(t, "100.0", details[2].Value)
	assert.Equal(t, "+0%", details[5].Value)
	assert.Equal(t, "70% bullish / 30% bearish", details[6].Value)
	assert.Equal(t, "25%", details[7].Value)
	assert.Equal(t, "31.50", details[8].Value)
	assert.Equal(t, "2.10", details[9].Value)
}

func TestDetailsSkipAbsentInputs(t *testing.T) {
	raw := Derive(history(flat(30, 10), 100), nil, nil, nil)
	details := Details(raw, Normalize(raw))

	var names []string
	for _, d := range details {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"Last price", "RSI (14)", "Bollinger bands (20, 2)", "Volume vs 20d avg"}, names)
}

func TestDetailsClampIVRankOutsideYearlyRange(t *testing.T) {
	ivRank := func(current float64) string {
		raw := Derive(history(flat(30, 10), 100), nil, nil,
			&models.VolatilitySnapshot{CurrentIV: current, LowIV: 0.2, HighIV: 0.6})
		for _, d := range Details(raw, Normalize(raw)) {
			if d.Name == "IV rank" {
				return d.Value
			}
		}
		t.Fatalf("no IV rank detail for current IV %v", current)
		return ""
	}

	assert.Equal(t, "100%", ivRank(0.9))
	assert.Equal(t, "0%", ivRank(0.1))
	assert.Equal(t, "50%", ivRank(0.4))
}

func TestComposeFlatSeriesIsNeutral(t *testing.T) {
	raw := Derive(history(flat(250, 100), 1000), nil, nil, nil)
	r := Compose("FLAT", raw, time.Unix(0, 0))

	require.NotNil(t, r.Signals.Trend)
	require.NotNil(t, r.Signals.Oscillator)
	require.NotNil(t, r.Signals.BandPosition)
	require.NotNil(t, r.Signals.VolumeAnomaly)
	assert.InDelta(t, 0.0, *r.Signals.Trend, 1e-9)
	assert.InDelta(t, 0.0, *r.Signals.Oscillator, 1e-9)
	assert.InDelta(t, 0.0, *r.Signals.BandPosition, 1e-9)
	assert.InDelta(t, 0.0, *r.Signals.VolumeAnomaly, 1e-9)
	assert.InDelta(t, 0.0, r.Score, 1e-6)
	assert.Equal(t, NeutralExplanation, r.Explanation)
	assert.Equal(t, 100.0, *r.LatestPrice)
}

func TestComposeRisingSeriesIsBullish(t *testing.T) {
	raw := Derive(history(rising(250, 50, 150), 1000), nil, nil, nil)
	r := Compose("UP", raw, time.Unix(0, 0))

	require.NotNil(t, r.Signals.Trend)
	assert.Greater(t, *raw.SMA50, *raw.SMA200)
	assert.Greater(t, *r.Signals.Trend, 0.2)
	assert.InDelta(t, 1.0, *r.Signals.Oscillator, 1e-9)
	assert.Greater(t, r.Score, 0.0)
	assert.Contains(t, r.Explanation, "Short-term trend is running above the long-term average")
	assert.Nil(t, r.Signals.Sentiment)
	assert.Nil(t, r.Signals.VolatilityRank)
}

func TestComposeRenormalizesWithSentimentOnly(t *testing.T) {
	raw := Raw{Sentiment: &models.SentimentSnapshot{BullishPercent: 80, BearishPercent: 20}}
	r := Compose("SENT", raw, time.Unix(0, 0))

	assert.InDelta(t, 0.6, *r.Signals.Sentiment, 1e-12)
	assert.InDelta(t, 0.6, r.Score, 1e-12)
	assert.Nil(t, r.Signals.VolatilityRank)
	assert.Equal(t, "n/a", r.Details[0].Value)
}

func TestUnavailable(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	r := Unavailable("ZZZ", now)

	assert.Equal(t, 0.0, r.Score)
	assert.Equal(t, UnavailableExplanation, r.Explanation)
	assert.Empty(t, r.Details)
	assert.Equal(t, now, r.UpdatedAt)
	for _, v := range eachSignal(r.Signals) {
		assert.Nil(t, v)
	}
}

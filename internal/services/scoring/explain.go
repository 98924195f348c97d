package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"PickRank/internal/domain/models"
)

const (
	// NeutralExplanation is used when no signal crosses its threshold.
	NeutralExplanation = "Signals are mixed, no single driver dominating."
	// UnavailableExplanation marks the placeholder for a symbol that could not be assembled.
	UnavailableExplanation = "Signal unavailable due to upstream data error."

	wideThreshold   = 0.2
	narrowThreshold = 0.3

	maxFundamentals = 2
)

type clause struct {
	value     *float64
	threshold float64
	bullish   string
	bearish   string
}

// Narrative joins one clause per signal whose magnitude exceeds its threshold.
// Band position never contributes.
func Narrative(s models.IndicatorSignals) string {
	clauses := []clause{
		{s.Trend, wideThreshold,
			"Short-term trend is running above the long-term average",
			"Short-term trend has slipped below the long-term average"},
		{s.Oscillator, narrowThreshold,
			"RSI points to strong buying pressure",
			"RSI points to persistent selling pressure"},
		{s.MomentumDivergence, narrowThreshold,
			"MACD histogram is expanding above its signal line",
			"MACD histogram is falling below its signal line"},
		{s.VolumeAnomaly, narrowThreshold,
			"Trading volume is running well above its 20-day norm",
			"Trading volume has dried up versus its 20-day norm"},
		{s.Sentiment, wideThreshold,
			"Crowd sentiment leans bullish",
			"Crowd sentiment leans bearish"},
		{s.VolatilityRank, wideThreshold,
			"Implied volatility sits near the top of its yearly range",
			"Implied volatility sits near the bottom of its yearly range"},
	}

	var parts []string
	for _, c := range clauses {
		if c.value == nil || math.Abs(*c.value) <= c.threshold {
			continue
		}
		if *c.value > 0 {
			parts = append(parts, c.bullish)
		} else {
			parts = append(parts, c.bearish)
		}
	}
	if len(parts) == 0 {
		return NeutralExplanation
	}
	return strings.Join(parts, ". ") + "."
}

// fundamental is a preferred ratio and how to show it.
type fundamental struct {
	key     string
	label   string
	percent bool
}

var fundamentalOrder = []fundamental{
	{"PERatio", "P/E ratio", false},
	{"ProfitMargin", "Profit margin", true},
	{"PEGRatio", "PEG ratio", false},
	{"ReturnOnEquityTTM", "Return on equity", true},
	{"DividendYield", "Dividend yield", true},
}

// Details lists display rows: last price first, then each present indicator
// in a fixed order, then up to two fundamentals.
func Details(raw Raw, s models.IndicatorSignals) []models.IndicatorDetail {
	details := []models.IndicatorDetail{{Name: "Last price", Value: price(raw.LatestPrice)}}

	if raw.SMA50 != nil && raw.SMA200 != nil {
		details = append(details, models.IndicatorDetail{
			Name:   "SMA 50 / SMA 200",
			Value:  fmt.Sprintf("%.2f / %.2f", *raw.SMA50, *raw.SMA200),
			Signal: s.Trend,
		})
	}
	if raw.RSI != nil {
		details = append(details, models.IndicatorDetail{
			Name:   "RSI (14)",
			Value:  fmt.Sprintf("%.1f", *raw.RSI),
			Signal: s.Oscillator,
		})
	}
	if raw.MACD != nil {
		details = append(details, models.IndicatorDetail{
			Name:   "MACD histogram",
			Value:  fmt.Sprintf("%.3f", raw.MACD.Histogram),
			Signal: s.MomentumDivergence,
		})
	}
	if raw.Bands != nil {
		details = append(details, models.IndicatorDetail{
			Name:   "Bollinger bands (20, 2)",
			Value:  fmt.Sprintf("%.2f / %.2f / %.2f", raw.Bands.Lower, raw.Bands.Middle, raw.Bands.Upper),
			Signal: s.BandPosition,
		})
	}
	if raw.VolumeRatio != nil {
		details = append(details, models.IndicatorDetail{
			Name:   "Volume vs 20d avg",
			Value:  fmt.Sprintf("%+.0f%%", *raw.VolumeRatio*100),
			Signal: s.VolumeAnomaly,
		})
	}
	if raw.Sentiment != nil {
		details = append(details, models.IndicatorDetail{
			Name:   "Sentiment",
			Value:  fmt.Sprintf("%.0f%% bullish / %.0f%% bearish", raw.Sentiment.BullishPercent, raw.Sentiment.BearishPercent),
			Signal: s.Sentiment,
		})
	}
	if raw.Volatility != nil && s.VolatilityRank != nil {
		v := raw.Volatility
		rank := math.Max(0, math.Min(100, (v.CurrentIV-v.LowIV)/(v.HighIV-v.LowIV)*100))
		details = append(details, models.IndicatorDetail{
			Name:   "IV rank",
			Value:  fmt.Sprintf("%.0f%%", rank),
			Signal: s.VolatilityRank,
		})
	}

	return append(details, fundamentalDetails(raw.Fundamentals)...)
}

func fundamentalDetails(f models.FundamentalsSnapshot) []models.IndicatorDetail {
	if len(f) == 0 {
		return nil
	}

	var out []models.IndicatorDetail
	for _, fd := range fundamentalOrder {
		if len(out) == maxFundamentals {
			break
		}
		d, err := decimal.NewFromString(strings.TrimSpace(f[fd.key]))
		if err != nil {
			continue
		}
		value := d.StringFixed(2)
		if fd.percent {
			value = d.Shift(2).StringFixed(1) + "%"
		}
		out = append(out, models.IndicatorDetail{Name: fd.label, Value: value})
	}
	return out
}

func price(p *float64) string {
	if p == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *p)
}

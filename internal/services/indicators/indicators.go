// Package indicators holds pure numeric functions over ordered price and
// volume series. Every function reports ok=false when the series is too short
// instead of returning an error.
package indicators

import (
	"math"

	"github.com/cinar/indicator/v2/helper"
	"github.com/cinar/indicator/v2/trend"
)

const (
	RSIPeriod      = 14
	MACDFast       = 12
	MACDSlow       = 26
	MACDSignal     = 9
	BandPeriod     = 20
	BandWidth      = 2.0
	VolumeLookback = 20

	// flatTolerance absorbs summation rounding on constant series.
	flatTolerance = 1e-12

	// macdMinLength is the shortest series yielding MACDSignal raw MACD points.
	macdMinLength = MACDSlow + MACDSignal
)

// SMA returns the mean of the last period values.
func SMA(values []float64, period int) (float64, bool) {
	if period <= 0 || len(values) < period {
		return 0, false
	}

	sma := trend.NewSmaWithPeriod[float64](period)
	out := helper.ChanToSlice(sma.Compute(helper.SliceToChan(values[len(values)-period:])))
	if len(out) == 0 {
		return 0, false
	}
	return out[len(out)-1], true
}

// EMASeries returns the exponential moving average aligned with values. The
// first period-1 entries are NaN, the entry at period-1 is the simple mean of
// the first period values, and each later entry applies alpha = 2/(period+1).
func EMASeries(values []float64, period int) ([]float64, bool) {
	if period <= 0 || len(values) < period {
		return nil, false
	}

	out := make([]float64, len(values))
	seed := 0.0
	for i := 0; i < period; i++ {
		seed += values[i]
		if i < period-1 {
			out[i] = math.NaN()
		}
	}
	out[period-1] = seed / float64(period)

	alpha := 2.0 / float64(period+1)
	for i := period; i < len(values); i++ {
		out[i] = values[i]*alpha + out[i-1]*(1-alpha)
	}
	return out, true
}

// EMA returns the last value of EMASeries.
func EMA(values []float64, period int) (float64, bool) {
	series, ok := EMASeries(values, period)
	if !ok {
		return 0, false
	}
	return series[len(series)-1], true
}

// RSI computes the relative strength index with Wilder smoothing. The result
// is always within [0, 100]; a series with gains and no losses scores 100 and
// a series that never moves scores the neutral 50.
func RSI(values []float64, period int) (float64, bool) {
	if period <= 0 || len(values) <= period {
		return 0, false
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		gain, loss := change(values[i-1], values[i])
		avgGain += gain
		avgLoss += loss
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	for i := period + 1; i < len(values); i++ {
		gain, loss := change(values[i-1], values[i])
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		if avgGain == 0 {
			// a series that never moves reads as neutral, not overbought
			return 50, true
		}
		return 100, true
	}
	return 100 - 100/(1+avgGain/avgLoss), true
}

func change(prev, cur float64) (gain, loss float64) {
	d := cur - prev
	if d > 0 {
		return d, 0
	}
	return 0, -d
}

// MACDResult is the 12/26/9 moving average convergence divergence.
type MACDResult struct {
	Value     float64
	Signal    float64
	Histogram float64
}

// MACD computes the raw line EMA12-EMA26 from index MACDSlow onward, then its
// 9-period EMA as the signal line.
func MACD(values []float64) (MACDResult, bool) {
	if len(values) < macdMinLength {
		return MACDResult{}, false
	}

	fast, ok := EMASeries(values, MACDFast)
	if !ok {
		return MACDResult{}, false
	}
	slow, ok := EMASeries(values, MACDSlow)
	if !ok {
		return MACDResult{}, false
	}

	raw := make([]float64, 0, len(values)-MACDSlow)
	for i := MACDSlow; i < len(values); i++ {
		raw = append(raw, fast[i]-slow[i])
	}

	signal, ok := EMA(raw, MACDSignal)
	if !ok {
		return MACDResult{}, false
	}
	value := raw[len(raw)-1]
	return MACDResult{Value: value, Signal: signal, Histogram: value - signal}, true
}

// BandsResult holds Bollinger bands over the trailing window.
type BandsResult struct {
	Middle float64
	Upper  float64
	Lower  float64
	StdDev float64
}

// Bands computes mean +/- k population standard deviations of the last period
// values.
func Bands(values []float64, period int, k float64) (BandsResult, bool) {
	mean, ok := SMA(values, period)
	if !ok {
		return BandsResult{}, false
	}

	variance := 0.0
	for _, v := range values[len(values)-period:] {
		d := v - mean
		variance += d * d
	}
	sd := math.Sqrt(variance / float64(period))
	if sd <= flatTolerance*math.Max(1, math.Abs(mean)) {
		sd = 0
	}

	return BandsResult{
		Middle: mean,
		Upper:  mean + k*sd,
		Lower:  mean - k*sd,
		StdDev: sd,
	}, true
}

// VolumeAnomaly compares the last volume with the mean of the lookback volumes
// before it: last/mean - 1, clamped to [-1, 1]. A zero baseline is absent.
func VolumeAnomaly(volumes []float64, lookback int) (float64, bool) {
	if lookback <= 0 || len(volumes) <= lookback {
		return 0, false
	}

	last := volumes[len(volumes)-1]
	baseline, ok := SMA(volumes[:len(volumes)-1], lookback)
	if !ok || baseline == 0 {
		return 0, false
	}
	return Clamp(last/baseline - 1), true
}

// Clamp bounds x to [-1, 1].
func Clamp(x float64) float64 {
	return math.Max(-1, math.Min(1, x))
}

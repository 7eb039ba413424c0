// Package indicators provides the textbook technical indicators used by the
// technical analysis stage. All functions are pure: the same price series
// always yields the same result.
package indicators

import "math"

// MACDResult holds the latest values of the MACD line, its signal line, and
// the histogram (line minus signal).
type MACDResult struct {
	MACD      float64 `json:"macd"`
	Signal    float64 `json:"signal"`
	Histogram float64 `json:"histogram"`
}

// ComputeRSI returns the Relative Strength Index at the most recent step:
// average gain over average loss across the trailing `period` price deltas,
// mapped to [0, 100]. The series must be chronological, oldest first.
//
// Fewer than period+1 closes means the rolling window never fills, so the
// result is NaN. The gain/loss ratio is left to plain IEEE division: a
// window with no losses drives RS to +Inf and the RSI to exactly 100, and a
// completely flat window yields NaN.
func ComputeRSI(closes []float64, period int) float64 {
	if period <= 0 || len(closes) < period+1 {
		return math.NaN()
	}

	var gains, losses float64
	for i := len(closes) - period; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains += delta
		} else {
			losses += -delta
		}
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// ComputeMACD returns the latest MACD line, signal line, and histogram
// values for the given spans. The EMA recurrence is seeded with the first
// price and uses alpha = 2/(span+1) with no bias adjustment.
//
// A series shorter than the slow span has no meaningful MACD; the result is
// a NaN triple rather than an error.
func ComputeMACD(closes []float64, fast, slow, signal int) MACDResult {
	if len(closes) < slow {
		nan := math.NaN()
		return MACDResult{MACD: nan, Signal: nan, Histogram: nan}
	}

	emaFast := ema(closes, fast)
	emaSlow := ema(closes, slow)

	line := make([]float64, len(closes))
	for i := range line {
		line[i] = emaFast[i] - emaSlow[i]
	}
	signalLine := ema(line, signal)

	last := len(closes) - 1
	return MACDResult{
		MACD:      line[last],
		Signal:    signalLine[last],
		Histogram: line[last] - signalLine[last],
	}
}

func ema(values []float64, span int) []float64 {
	alpha := 2 / float64(span+1)
	out := make([]float64, len(values))
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

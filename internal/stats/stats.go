// Package stats implements the descriptive statistics used by the query
// layer: percentage change, day-over-day volatility, linear trend,
// compound annual growth, and windowed summaries. All functions are pure.
package stats

import "math"

// Direction labels for a price move over a window.
const (
	DirectionUp   = "up"
	DirectionDown = "down"
	DirectionFlat = "flat"
)

// PctChange returns the percentage change from first to last. A zero
// first value yields 0 rather than an infinity.
func PctChange(first, last float64) float64 {
	if first == 0 {
		return 0
	}
	return (last - first) / first * 100
}

// Direction classifies a percentage change. Moves within ±flatThresholdPct
// are flat.
func Direction(changePct, flatThresholdPct float64) string {
	switch {
	case changePct > flatThresholdPct:
		return DirectionUp
	case changePct < -flatThresholdPct:
		return DirectionDown
	default:
		return DirectionFlat
	}
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// SampleStdDev returns the sample standard deviation (n-1 denominator).
// Fewer than two samples have no spread and yield 0.
func SampleStdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	mean := Mean(xs)
	sumSq := 0.0
	for _, x := range xs {
		d := x - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(xs)-1))
}

// DailyReturns converts a price series (oldest first) into day-over-day
// percentage changes. Steps starting from a zero price are skipped.
func DailyReturns(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}
	out := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] == 0 {
			continue
		}
		out = append(out, (prices[i]-prices[i-1])/prices[i-1]*100)
	}
	return out
}

// Volatility is the sample standard deviation of day-over-day percentage
// changes over a price series (oldest first).
func Volatility(prices []float64) float64 {
	return SampleStdDev(DailyReturns(prices))
}

// TrendSlope fits a least-squares line over (index, value) pairs and
// returns its slope: value units per step. Fewer than two points have no
// trend and yield 0.
func TrendSlope(xs []float64) float64 {
	n := float64(len(xs))
	if n < 2 {
		return 0
	}
	var sumI, sumV, sumIV, sumII float64
	for i, v := range xs {
		fi := float64(i)
		sumI += fi
		sumV += v
		sumIV += fi * v
		sumII += fi * fi
	}
	denom := n*sumII - sumI*sumI
	if denom == 0 {
		return 0
	}
	return (n*sumIV - sumI*sumV) / denom
}

// CAGR returns the compound annual growth rate, in percent, for a move
// from first to last over the given number of calendar days. Returns
// false when the inputs cannot produce a meaningful rate.
func CAGR(first, last float64, days int) (float64, bool) {
	if first <= 0 || last <= 0 || days < 1 {
		return 0, false
	}
	rate := math.Pow(last/first, 365.0/float64(days)) - 1
	return rate * 100, true
}

// Summary holds windowed aggregate statistics for one column.
type Summary struct {
	Latest float64 `json:"latest"`
	Avg    float64 `json:"avg"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Count  int     `json:"count"`
}

// Summarize computes a Summary over samples ordered newest first.
// Returns false when fewer than two samples exist; callers report the
// statistic as unavailable rather than degenerate.
func Summarize(newestFirst []float64) (Summary, bool) {
	if len(newestFirst) < 2 {
		return Summary{}, false
	}
	s := Summary{
		Latest: newestFirst[0],
		Min:    newestFirst[0],
		Max:    newestFirst[0],
		Count:  len(newestFirst),
	}
	sum := 0.0
	for _, v := range newestFirst {
		sum += v
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	s.Avg = sum / float64(len(newestFirst))
	return s, true
}

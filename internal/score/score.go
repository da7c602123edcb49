// Package score provides the statistical primitives shared by every theme:
// robust percentile rescaling, tercile labels, and median-band labels.
// Missing values are represented as NaN throughout and propagate as NaN;
// they never raise errors.
package score

import (
	"math"
	"sort"
)

// Default percentile caps for robust 0-100 rescaling.
const (
	DefaultLo = 10.0
	DefaultHi = 90.0
)

// epsilon floors the scaling range so a zero-spread distribution does not
// divide by zero.
const epsilon = 1e-9

// Band label values.
const (
	BandBelow   = "below average"
	BandAverage = "average"
	BandAbove   = "above average"
)

// Percentile computes the p-th percentile of the non-NaN values using linear
// interpolation between closest ranks. Returns NaN when no finite values
// remain.
func Percentile(values []float64, p float64) float64 {
	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return math.NaN()
	}
	sort.Float64s(finite)
	if len(finite) == 1 {
		return finite[0]
	}
	rank := p / 100 * float64(len(finite)-1)
	if rank <= 0 {
		return finite[0]
	}
	if rank >= float64(len(finite)-1) {
		return finite[len(finite)-1]
	}
	lo := int(math.Floor(rank))
	frac := rank - float64(lo)
	return finite[lo] + frac*(finite[lo+1]-finite[lo])
}

// Median returns the 50th percentile of the non-NaN values.
func Median(values []float64) float64 {
	return Percentile(values, 50)
}

// PercentileScore rescales values to 0-100 using the lo-th and hi-th
// percentiles as clamp bounds. The caps deliberately ignore the extreme
// tails so a single outlier cannot compress everything else; the range is
// floored at epsilon so a constant series scores 0 rather than dividing by
// zero. NaN values score NaN; an all-NaN input yields all NaN.
func PercentileScore(values []float64, lo, hi float64) []float64 {
	pLo := Percentile(values, lo)
	pHi := Percentile(values, hi)
	rng := math.Max(pHi-pLo, epsilon)

	out := make([]float64, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsNaN(pLo) {
			out[i] = math.NaN()
			continue
		}
		scaled := (v - pLo) / rng
		out[i] = clamp01(scaled) * 100
	}
	return out
}

// TercileLabels assigns each value one of three labels by splitting the
// distribution at the 33.333rd and 66.666th percentiles. Values exactly at a
// boundary go to the extreme bucket, not the middle: v <= q1 is low, v >= q2
// is high. NaN values get the mid label.
func TercileLabels(values []float64, high, mid, low string) []string {
	q1 := Percentile(values, 33.333)
	q2 := Percentile(values, 66.666)

	out := make([]string, len(values))
	for i, v := range values {
		switch {
		case math.IsNaN(v):
			out[i] = mid
		case !math.IsNaN(q1) && v <= q1:
			out[i] = low
		case !math.IsNaN(q2) && v >= q2:
			out[i] = high
		default:
			out[i] = mid
		}
	}
	return out
}

// BandLabels assigns below/average/above labels from a fixed absolute offset
// around the median of the non-NaN values. halfWidth is a domain calibration
// constant, not derived from the data. NaN values, and every value when the
// median itself is undefined, label as average.
func BandLabels(values []float64, halfWidth float64) []string {
	med := Median(values)
	lower := med - halfWidth
	upper := med + halfWidth

	out := make([]string, len(values))
	for i, v := range values {
		switch {
		case math.IsNaN(v) || math.IsNaN(med):
			out[i] = BandAverage
		case v < lower:
			out[i] = BandBelow
		case v > upper:
			out[i] = BandAbove
		default:
			out[i] = BandAverage
		}
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

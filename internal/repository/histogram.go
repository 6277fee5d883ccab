package repository

// DefaultHistogramBins matches the bin count the analytics view has
// always used for the discount distribution.
const DefaultHistogramBins = 20

// HistogramBin counts values in [Low, High); the last bin is closed on
// both ends so the maximum value is not lost.
type HistogramBin struct {
	Low   float64
	High  float64
	Count int
}

// Histogram bins values across their observed min/max range. A
// non-positive bin count falls back to DefaultHistogramBins. No values
// yields an empty slice. When all values are equal the result is a
// single bin holding everything.
func Histogram(values []float64, bins int) []HistogramBin {
	if len(values) == 0 {
		return []HistogramBin{}
	}
	if bins <= 0 {
		bins = DefaultHistogramBins
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	if min == max {
		return []HistogramBin{{Low: min, High: max, Count: len(values)}}
	}

	width := (max - min) / float64(bins)
	result := make([]HistogramBin, bins)
	for i := range result {
		result[i].Low = min + float64(i)*width
		result[i].High = min + float64(i+1)*width
	}
	result[bins-1].High = max

	for _, v := range values {
		idx := int((v - min) / width)
		if idx >= bins {
			idx = bins - 1
		}
		result[idx].Count++
	}
	return result
}

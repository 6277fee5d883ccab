package repository_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swissmarley/cashier/internal/repository"
)

func TestHistogram_Empty(t *testing.T) {
	assert.Empty(t, repository.Histogram(nil, 20))
}

func TestHistogram_AllValuesEqual(t *testing.T) {
	bins := repository.Histogram([]float64{5, 5, 5}, 20)
	require.Len(t, bins, 1)
	assert.Equal(t, repository.HistogramBin{Low: 5, High: 5, Count: 3}, bins[0])
}

func TestHistogram_BinsSpanObservedRange(t *testing.T) {
	values := []float64{0, 10, 20, 30, 40}
	bins := repository.Histogram(values, 4)
	require.Len(t, bins, 4)

	assert.Equal(t, float64(0), bins[0].Low)
	assert.Equal(t, float64(40), bins[3].High)

	total := 0
	for _, b := range bins {
		total += b.Count
	}
	assert.Equal(t, len(values), total)

	// The maximum lands in the last bin, not past it.
	assert.Equal(t, 2, bins[3].Count) // 30 and 40
}

func TestHistogram_DefaultBinCount(t *testing.T) {
	values := []float64{0, 100}
	assert.Len(t, repository.Histogram(values, 0), repository.DefaultHistogramBins)
	assert.Len(t, repository.Histogram(values, -3), repository.DefaultHistogramBins)
}

package analysis

import (
	"fmt"
	"slices"

	"github.com/mww/fantasy_analysis/model"
)

// median of the values: the middle element for an odd count and the mean of
// the two middle elements for an even count.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// quantile uses linear interpolation between the closest ranks.
func quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// normalize maps values onto 0-100 using the min and max. When every value is
// the same there is nothing to compare, every entry gets the neutral 50 and
// an ErrComputation is returned so the caller can record it.
func normalize(values []float64) ([]float64, error) {
	result := make([]float64, len(values))
	if len(values) == 0 {
		return result, fmt.Errorf("%w: nothing to normalize", model.ErrComputation)
	}

	lo, hi := slices.Min(values), slices.Max(values)
	if hi == lo {
		for i := range result {
			result[i] = neutral
		}
		return result, fmt.Errorf("%w: all %d values are %.2f", model.ErrComputation, len(values), lo)
	}

	for i, v := range values {
		result[i] = (v - lo) / (hi - lo) * 100
	}
	return result, nil
}

// neutral is the midpoint grade used when a category can't be scored.
const neutral = 50.0

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}

func round(v float64) float64 {
	return model.RoundTo(v, 2)
}

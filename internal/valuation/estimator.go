// Package valuation turns a list of observed market prices into a single
// estimate with a range and a heuristic demand score.
package valuation

import (
	"errors"
	"math"
	"sort"

	"autovault/internal/models"
)

// ErrNoData means no usable price observations exist for the requested car.
// Callers surface it as a not-found condition, never as a server fault.
var ErrNoData = errors.New("no pricing data available for this vehicle")

// ResponseSourceLimit caps how many sources go back to the caller
const ResponseSourceLimit = 5

// Estimate computes the market valuation for one car from its observed prices.
// The central estimate is an IQR-fenced mean: quartiles are taken by index on
// the sorted list, prices outside [q1-1.5*IQR, q3+1.5*IQR] are dropped, and the
// mean of what survives becomes the estimate (falling back to the plain mean
// when the fence rejects everything). The demand score grows with corroborating
// sources and shrinks with relative price dispersion, clamped to [0,1].
func Estimate(prices []float64, sources []models.PriceSource) (*models.ValuationEstimate, error) {
	if len(prices) == 0 {
		return nil, ErrNoData
	}

	sorted := make([]float64, len(prices))
	copy(sorted, prices)
	sort.Float64s(sorted)

	minValue := sorted[0]
	maxValue := sorted[len(sorted)-1]

	var sum float64
	for _, p := range prices {
		sum += p
	}
	avg := sum / float64(len(prices))

	q1 := quartile(sorted, 0.25)
	q3 := quartile(sorted, 0.75)
	iqr := q3 - q1

	var filteredSum float64
	var filteredCount int
	for _, p := range prices {
		if p >= q1-1.5*iqr && p <= q3+1.5*iqr {
			filteredSum += p
			filteredCount++
		}
	}

	estimated := avg
	if filteredCount > 0 {
		estimated = filteredSum / float64(filteredCount)
	}

	// Population standard deviation of the unfiltered list
	var varianceSum float64
	for _, p := range prices {
		varianceSum += (p - avg) * (p - avg)
	}
	stdDev := math.Sqrt(varianceSum / float64(len(prices)))

	demandScore := clamp(0.5+float64(len(sources))/30-stdDev/avg, 0, 1)

	topSources := sources
	if len(topSources) > ResponseSourceLimit {
		topSources = topSources[:ResponseSourceLimit]
	}

	return &models.ValuationEstimate{
		EstimatedValue: math.Round(estimated),
		MinValue:       math.Round(minValue),
		MaxValue:       math.Round(maxValue),
		DemandScore:    math.Round(demandScore*100) / 100,
		Sources:        topSources,
		PriceCount:     len(prices),
	}, nil
}

// quartile picks the nearest-rank element of a sorted list, so small samples
// keep the fence inside the data instead of landing on the extremes.
func quartile(sorted []float64, q float64) float64 {
	rank := int(math.Ceil(q * float64(len(sorted))))
	if rank < 1 {
		rank = 1
	}
	return sorted[rank-1]
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

package analyzer

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"go-darkframe-inspector/pkg/models"
)

// madConsistency rescales the raw median absolute deviation so it estimates
// the standard deviation of normally distributed noise.
const madConsistency = 1.4826

// statsCalculator implements StatsCalculator on top of gonum's estimators.
type statsCalculator struct{}

// NewStatsCalculator creates the robust statistics calculator.
func NewStatsCalculator() StatsCalculator {
	return &statsCalculator{}
}

// Compute flattens the grid and computes the robust statistics record for it.
// The record is computed once per frame and never mutated afterwards.
func (sc *statsCalculator) Compute(grid *models.SampleGrid) *models.FrameStats {
	flat := make([]float64, len(grid.Pix))
	minV, maxV := grid.Pix[0], grid.Pix[0]
	for i, v := range grid.Pix {
		flat[i] = float64(v)
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	sort.Float64s(flat)

	median := quantileLinear(flat, 0.5)
	q1 := quantileLinear(flat, 0.25)
	q3 := quantileLinear(flat, 0.75)

	dev := make([]float64, len(flat))
	for i, v := range flat {
		d := v - median
		if d < 0 {
			d = -d
		}
		dev[i] = d
	}
	sort.Float64s(dev)
	mad := quantileLinear(dev, 0.5) * madConsistency

	return &models.FrameStats{
		Median:            median,
		MAD:               mad,
		Q1:                q1,
		Q3:                q3,
		IQR:               q3 - q1,
		Mean:              stat.Mean(flat, nil),
		StdDev:            stat.PopStdDev(flat, nil),
		Min:               minV,
		Max:               maxV,
		EffectiveBitDepth: models.EffectiveBitDepth(maxV),
	}
}

// quantileLinear returns the p-quantile of sorted samples using linear
// interpolation at position p*(n-1). gonum's CumulantKinds implement the
// empirical and Hazen conventions; defect fences are specified against this
// one, so it is computed directly.
func quantileLinear(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}
	pos := p * float64(n-1)
	lo := int(pos)
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

package analyzer

import (
	"math"

	"go-darkframe-inspector/pkg/models"
)

// snrFloorDb is reported when the dark-signal mean is zero: the ratio has no
// finite logarithm, and a frame with zero mean but nonzero noise is as far
// from a clean dark signal as the scale goes.
const snrFloorDb = -100

// snrEstimator implements SNREstimator.
type snrEstimator struct{}

// NewSNREstimator creates the decibel SNR estimator.
func NewSNREstimator() SNREstimator {
	return &snrEstimator{}
}

// Estimate computes 20*log10(mean/stddev). A zero-noise frame has no defined
// SNR and is reported with the Defined=false sentinel rather than infinity;
// a perfectly flat dark frame is itself suspicious and routes into the
// validator's warning path.
func (se *snrEstimator) Estimate(stats *models.FrameStats) models.SNRReport {
	if stats.StdDev == 0 {
		return models.SNRReport{Defined: false}
	}
	if stats.Mean <= 0 {
		return models.SNRReport{SNRDb: snrFloorDb, Defined: true}
	}
	return models.SNRReport{
		SNRDb:   20 * math.Log10(stats.Mean/stats.StdDev),
		Defined: true,
	}
}

package analyzer

import "fmt"

// AnalysisOptions holds the policy constants for one analysis pass. They are
// configuration inputs, never module-level state, so a run is reproducible
// from its recorded options alone.
type AnalysisOptions struct {
	// KSigma multiplies the scaled MAD for the parametric outlier fence.
	KSigma float64

	// KIQR multiplies the interquartile range for the non-parametric fence.
	KIQR float64

	// MaxFlaggedCoords bounds the flagged coordinate lists per report.
	// Zero disables coordinate reporting; counts are always exact.
	MaxFlaggedCoords int

	// Workers bounds batch parallelism. Zero means NumCPU.
	Workers int
}

// DefaultOptions returns the default policy constants: 5-sigma robust
// thresholding and the 1.5x IQR fence.
func DefaultOptions() AnalysisOptions {
	return AnalysisOptions{
		KSigma:           5.0,
		KIQR:             1.5,
		MaxFlaggedCoords: 256,
		Workers:          0,
	}
}

// WithThresholds returns options with custom fence multipliers.
func (opts AnalysisOptions) WithThresholds(kSigma, kIQR float64) AnalysisOptions {
	opts.KSigma = kSigma
	opts.KIQR = kIQR
	return opts
}

// WithCoordinateCap returns options with a custom flagged-coordinate bound.
func (opts AnalysisOptions) WithCoordinateCap(n int) AnalysisOptions {
	opts.MaxFlaggedCoords = n
	return opts
}

// WithWorkers returns options with a custom batch worker count.
func (opts AnalysisOptions) WithWorkers(n int) AnalysisOptions {
	opts.Workers = n
	return opts
}

// Validate rejects policy constants that would silently corrupt every
// result. It must be called before any batch processing begins.
func (opts AnalysisOptions) Validate() error {
	if opts.KSigma <= 0 {
		return fmt.Errorf("kSigma must be > 0 (got %g)", opts.KSigma)
	}
	if opts.KIQR <= 0 {
		return fmt.Errorf("kIQR must be > 0 (got %g)", opts.KIQR)
	}
	if opts.MaxFlaggedCoords < 0 {
		return fmt.Errorf("coordinate cap must be >= 0 (got %d)", opts.MaxFlaggedCoords)
	}
	if opts.Workers < 0 {
		return fmt.Errorf("workers must be >= 0 (got %d)", opts.Workers)
	}
	return nil
}

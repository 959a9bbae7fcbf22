package analyzer

import (
	"time"

	"go-darkframe-inspector/pkg/models"
	"go-darkframe-inspector/pkg/validation"
)

// coreAnalyzer implements FrameAnalyzer and orchestrates the per-frame
// pipeline. The statistics record is computed once; classifier, SNR
// estimator and validator all consume it independently.
type coreAnalyzer struct {
	stats      StatsCalculator
	classifier DefectClassifier
	snr        SNREstimator
	validator  *validation.DarkFrameValidator
	options    AnalysisOptions
}

// NewFrameAnalyzer creates a frame analyzer with the given policy constants
// and validator. Invalid options fail fast, before any frame is processed.
func NewFrameAnalyzer(options AnalysisOptions, validator *validation.DarkFrameValidator) (FrameAnalyzer, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}
	return &coreAnalyzer{
		stats:      NewStatsCalculator(),
		classifier: NewDefectClassifier(),
		snr:        NewSNREstimator(),
		validator:  validator,
		options:    options,
	}, nil
}

// AnalyzeFrame analyzes one grid with the analyzer's configured options.
func (ca *coreAnalyzer) AnalyzeFrame(grid *models.SampleGrid) FrameAnalysis {
	return ca.AnalyzeFrameWithOptions(grid, ca.options)
}

// AnalyzeFrameWithOptions runs the full pipeline on one grid. Pure function
// of its inputs: the same grid and options yield a bit-identical analysis.
func (ca *coreAnalyzer) AnalyzeFrameWithOptions(grid *models.SampleGrid, options AnalysisOptions) FrameAnalysis {
	start := time.Now()

	stats := ca.stats.Compute(grid)
	defects := ca.classifier.Classify(grid, stats, options)
	snr := ca.snr.Estimate(stats)

	verdict := ca.validator.Validate(validation.FrameSignals{
		Stats:            stats,
		DeclaredBitDepth: grid.BitDepth,
		SaturatedPercent: defects.SaturatedPercent,
		SNR:              snr,
	})

	return FrameAnalysis{
		Stats:             stats,
		Defects:           defects,
		SNR:               snr,
		Verdict:           verdict,
		Timestamp:         start,
		ProcessingTimeSec: time.Since(start).Seconds(),
	}
}

// Options returns the configured policy constants.
func (ca *coreAnalyzer) Options() AnalysisOptions {
	return ca.options
}

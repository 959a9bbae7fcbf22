package analyzer

import "go-darkframe-inspector/pkg/models"

// FrameAnalyzer runs the full per-frame pipeline: statistics, defect
// classification, SNR estimation and dark-frame validation.
type FrameAnalyzer interface {
	// AnalyzeFrame analyzes one grid with the analyzer's configured options.
	AnalyzeFrame(grid *models.SampleGrid) FrameAnalysis

	// AnalyzeFrameWithOptions analyzes one grid with explicit options.
	AnalyzeFrameWithOptions(grid *models.SampleGrid, options AnalysisOptions) FrameAnalysis

	// Options returns the configured policy constants.
	Options() AnalysisOptions
}

// StatsCalculator computes the robust statistics record for a grid.
type StatsCalculator interface {
	Compute(grid *models.SampleGrid) *models.FrameStats
}

// DefectClassifier flags individual pixels as hot, dead or normal.
type DefectClassifier interface {
	Classify(grid *models.SampleGrid, stats *models.FrameStats, opts AnalysisOptions) *models.DefectReport
}

// SNREstimator derives the decibel SNR figure from the statistics record.
type SNREstimator interface {
	Estimate(stats *models.FrameStats) models.SNRReport
}

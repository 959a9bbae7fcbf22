package analyzer

import (
	"go-darkframe-inspector/pkg/models"
)

// defectClassifier implements DefectClassifier. It is a pure function of the
// grid, its statistics record and the policy constants.
type defectClassifier struct{}

// NewDefectClassifier creates the hot/dead pixel classifier.
func NewDefectClassifier() DefectClassifier {
	return &defectClassifier{}
}

// Classify flags each pixel as hot, dead or normal.
//
// A pixel is hot only when both robust tests agree: it exceeds
// median + kSigma*MAD and the upper IQR fence q3 + kIQR*IQR. Dead is
// symmetric, with one non-negotiable floor: a pixel at 0 contributes no
// information and is always dead. Pixels at the effective maximum are
// saturated, not hot; clipping is a frame-level condition judged by the
// validator.
func (dc *defectClassifier) Classify(grid *models.SampleGrid, stats *models.FrameStats, opts AnalysisOptions) *models.DefectReport {
	total := grid.TotalPixels()
	report := &models.DefectReport{}
	satMax := models.MaxSampleValue(stats.EffectiveBitDepth)

	for _, v := range grid.Pix {
		if uint32(v) == satMax {
			report.SaturatedCount++
		}
	}

	// A uniform frame has no meaningful spread; no pixel is an outlier and
	// no fence may be derived from zero scale.
	if stats.Degenerate() {
		report.NormalCount = total
		finalizePercentages(report, total)
		return report
	}

	hotFence := stats.Median + opts.KSigma*stats.MAD
	hotIQRFence := stats.Q3 + opts.KIQR*stats.IQR
	deadFence := stats.Median - opts.KSigma*stats.MAD
	deadIQRFence := stats.Q1 - opts.KIQR*stats.IQR

	for i, v := range grid.Pix {
		fv := float64(v)
		switch {
		case v == 0 || (fv < deadFence && fv < deadIQRFence):
			report.DeadPixelCount++
			if len(report.DeadCoordinates) < opts.MaxFlaggedCoords {
				report.DeadCoordinates = append(report.DeadCoordinates, coordAt(grid, i))
			}
		case uint32(v) == satMax:
			// saturated, counted above; not a localized defect
		case fv > hotFence && fv > hotIQRFence:
			report.HotPixelCount++
			if len(report.HotCoordinates) < opts.MaxFlaggedCoords {
				report.HotCoordinates = append(report.HotCoordinates, coordAt(grid, i))
			}
		}
	}

	report.NormalCount = total - report.HotPixelCount - report.DeadPixelCount
	finalizePercentages(report, total)
	return report
}

func finalizePercentages(report *models.DefectReport, total int) {
	report.HotPixelPercent = float64(report.HotPixelCount) / float64(total) * 100
	report.DeadPixelPercent = float64(report.DeadPixelCount) / float64(total) * 100
	report.SaturatedPercent = float64(report.SaturatedCount) / float64(total) * 100
}

func coordAt(grid *models.SampleGrid, index int) models.PixelCoord {
	return models.PixelCoord{Row: index / grid.Width, Col: index % grid.Width}
}

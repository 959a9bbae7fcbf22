package batch

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	apperrors "go-darkframe-inspector/internal/errors"
	"go-darkframe-inspector/pkg/models"
	"go-darkframe-inspector/pkg/validation"
)

// Aggregator accumulates per-frame results into a batch record and seals it
// into a report. Entries keep insertion order, which the caller aligns with
// discovery order. An aggregator is single-use: once sealed it rejects
// further entries.
type Aggregator struct {
	batchID   string
	startedAt time.Time
	grader    *validation.QualityGrader
	frames    []models.FrameResult
	sealed    bool
}

// NewAggregator opens a batch record with a fresh batch ID.
func NewAggregator(grader *validation.QualityGrader) *Aggregator {
	if grader == nil {
		grader = validation.NewQualityGrader()
	}
	return &Aggregator{
		batchID:   uuid.New().String(),
		startedAt: time.Now().UTC(),
		grader:    grader,
	}
}

// BatchID returns the identifier assigned to this batch.
func (a *Aggregator) BatchID() string {
	return a.batchID
}

// Add records one analyzed frame. The quality class and recommendation are
// assigned here so every analyzed entry is graded exactly once.
func (a *Aggregator) Add(result models.FrameResult) error {
	if a.sealed {
		return fmt.Errorf("batch %s is sealed", a.batchID)
	}
	if !result.Failed && result.Defects != nil && result.SNR != nil {
		result.QualityClass, result.Recommendation = a.grader.Grade(
			result.Defects.HotPixelPercent,
			result.Defects.DeadPixelPercent,
			*result.SNR,
		)
	}
	a.frames = append(a.frames, result)
	return nil
}

// AddFailure records a frame that could not be loaded or analyzed. Failures
// count toward the batch total but contribute nothing to the aggregates.
func (a *Aggregator) AddFailure(filename string, err error) error {
	return a.Add(models.FrameResult{
		Filename:       filename,
		Timestamp:      time.Now().UTC(),
		Failed:         true,
		FailureKind:    apperrors.Kind(err),
		FailureMessage: err.Error(),
	})
}

// Seal closes the batch and computes the aggregates. The aggregator cannot
// be reused afterwards.
func (a *Aggregator) Seal() *models.BatchReport {
	a.sealed = true

	agg := models.BatchAggregates{
		TotalFrames: len(a.frames),
	}

	var hotPercents, deadPercents []float64
	bestRank, worstRank := -1, -1

	for _, frame := range a.frames {
		if frame.Failed {
			agg.FailedFrames++
			continue
		}
		agg.AnalyzedFrames++

		if frame.Verdict != nil {
			switch frame.Verdict.Status {
			case models.VerdictValid:
				agg.ValidCount++
			case models.VerdictWithWarnings:
				agg.WarningCount++
			case models.VerdictInvalid:
				agg.InvalidCount++
			}
		}

		if frame.Defects != nil {
			hotPercents = append(hotPercents, frame.Defects.HotPixelPercent)
			deadPercents = append(deadPercents, frame.Defects.DeadPixelPercent)
		}

		if frame.QualityClass != "" {
			rank := a.grader.ClassRank(frame.QualityClass)
			if bestRank == -1 || rank < bestRank {
				bestRank = rank
				agg.BestClass = frame.QualityClass
			}
			if worstRank == -1 || rank > worstRank {
				worstRank = rank
				agg.WorstClass = frame.QualityClass
			}
		}
	}

	agg.MeanHotPercent = mean(hotPercents)
	agg.MeanDeadPercent = mean(deadPercents)
	agg.MedianHotPercent = median(hotPercents)
	agg.MedianDeadPercent = median(deadPercents)

	return &models.BatchReport{
		BatchID:     a.batchID,
		StartedAt:   a.startedAt,
		CompletedAt: time.Now().UTC(),
		Frames:      a.frames,
		Aggregates:  agg,
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

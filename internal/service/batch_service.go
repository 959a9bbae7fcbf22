package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"go-darkframe-inspector/internal/analyzer"
	"go-darkframe-inspector/internal/batch"
	apperrors "go-darkframe-inspector/internal/errors"
	"go-darkframe-inspector/internal/observer"
	"go-darkframe-inspector/internal/repository"
	"go-darkframe-inspector/pkg/models"
	"go-darkframe-inspector/pkg/validation"
)

// BatchService orchestrates the full pipeline: frame discovery, per-frame
// analysis in parallel, and aggregation into a sealed batch report. One
// failing frame never aborts the batch.
type BatchService struct {
	repo      repository.FrameRepository
	analyzer  analyzer.FrameAnalyzer
	grader    *validation.QualityGrader
	publisher observer.Subject
	logger    *logrus.Logger
	workers   int
}

// NewBatchService creates a batch service over the given collaborators.
func NewBatchService(
	repo repository.FrameRepository,
	frameAnalyzer analyzer.FrameAnalyzer,
	grader *validation.QualityGrader,
	publisher observer.Subject,
	logger *logrus.Logger,
	workers int,
) *BatchService {
	if grader == nil {
		grader = validation.NewQualityGrader()
	}
	return &BatchService{
		repo:      repo,
		analyzer:  frameAnalyzer,
		grader:    grader,
		publisher: publisher,
		logger:    logger,
		workers:   workers,
	}
}

// AnalyzeOne fetches and analyzes a single frame. Used by the API surface
// and by the batch runner's per-frame jobs.
func (s *BatchService) AnalyzeOne(ctx context.Context, source string) (*models.FrameResult, error) {
	grid, err := s.repo.FetchFrame(ctx, source)
	if err != nil {
		return nil, err
	}

	analysis := s.analyzer.AnalyzeFrame(grid)

	result := &models.FrameResult{
		Filename:          source,
		Timestamp:         analysis.Timestamp,
		ProcessingTimeSec: analysis.ProcessingTimeSec,
		Width:             grid.Width,
		Height:            grid.Height,
		DeclaredBitDepth:  grid.BitDepth,
		Stats:             analysis.Stats,
		Defects:           analysis.Defects,
		SNR:               &analysis.SNR,
		Verdict:           &analysis.Verdict,
	}
	result.QualityClass, result.Recommendation = s.grader.Grade(
		analysis.Defects.HotPixelPercent,
		analysis.Defects.DeadPixelPercent,
		analysis.SNR,
	)
	return result, nil
}

// RunBatch discovers frames through the repository and analyzes them all.
// Entries appear in discovery order regardless of completion order. On
// context cancellation the remaining frames become failure entries and the
// partial batch is still sealed and returned.
func (s *BatchService) RunBatch(ctx context.Context) (*models.BatchReport, error) {
	sources, err := s.repo.ListFrames(ctx)
	if err != nil {
		return nil, err
	}
	return s.RunBatchSources(ctx, sources)
}

// RunBatchSources analyzes an explicit list of frame sources as one batch.
func (s *BatchService) RunBatchSources(ctx context.Context, sources []string) (*models.BatchReport, error) {
	agg := batch.NewAggregator(s.grader)

	s.notify(ctx, observer.AnalysisEvent{
		EventType: observer.BatchStarted,
		Timestamp: time.Now().UTC(),
		BatchID:   agg.BatchID(),
		Success:   true,
		Metadata:  map[string]interface{}{"frame_count": len(sources)},
	})

	// One result slot per source; the pool fills them in any order and the
	// aggregation loop below reads them back in discovery order.
	results := make([]models.FrameResult, len(sources))

	pool := analyzer.NewWorkerPool(s.workers)
	pool.Start()
	defer pool.Close()

	for i, source := range sources {
		i, source := i, source
		pool.Submit(func() {
			results[i] = s.analyzeForBatch(ctx, source)
		})
	}
	pool.Wait()

	for _, result := range results {
		if err := agg.Add(result); err != nil {
			return nil, apperrors.NewInternalError("batch record rejected entry", err)
		}
	}

	report := agg.Seal()

	s.notify(ctx, observer.AnalysisEvent{
		EventType: observer.BatchCompleted,
		Timestamp: time.Now().UTC(),
		BatchID:   agg.BatchID(),
		Success:   report.Aggregates.FailedFrames == 0,
		Metadata: map[string]interface{}{
			"analyzed_frames": report.Aggregates.AnalyzedFrames,
			"failed_frames":   report.Aggregates.FailedFrames,
		},
	})

	return report, nil
}

func (s *BatchService) analyzeForBatch(ctx context.Context, source string) models.FrameResult {
	if err := ctx.Err(); err != nil {
		return s.failureResult(ctx, source, apperrors.NewTimeoutError("batch canceled", err))
	}

	start := time.Now()
	result, err := s.AnalyzeOne(ctx, source)
	if err != nil {
		return s.failureResult(ctx, source, err)
	}

	s.notify(ctx, observer.AnalysisEvent{
		EventType:      observer.FrameAnalyzed,
		Timestamp:      time.Now().UTC(),
		Source:         source,
		ProcessingTime: time.Since(start),
		Success:        true,
		Metadata: map[string]interface{}{
			"verdict":       string(result.Verdict.Status),
			"quality_class": result.QualityClass,
		},
	})
	return *result
}

func (s *BatchService) failureResult(ctx context.Context, source string, err error) models.FrameResult {
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"source": source,
			"kind":   apperrors.Kind(err),
		}).WithError(err).Warn("Frame skipped")
	}
	s.notify(ctx, observer.AnalysisEvent{
		EventType:    observer.FrameFailed,
		Timestamp:    time.Now().UTC(),
		Source:       source,
		Success:      false,
		ErrorMessage: err.Error(),
	})
	return models.FrameResult{
		Filename:       source,
		Timestamp:      time.Now().UTC(),
		Failed:         true,
		FailureKind:    apperrors.Kind(err),
		FailureMessage: err.Error(),
	}
}

func (s *BatchService) notify(ctx context.Context, event observer.AnalysisEvent) {
	if s.publisher != nil {
		s.publisher.NotifyObservers(ctx, event)
	}
}

package container

import (
	"fmt"
	"net/http"

	"go-darkframe-inspector/internal/analyzer"
	"go-darkframe-inspector/internal/config"
	"go-darkframe-inspector/internal/factory"
	"go-darkframe-inspector/internal/logger"
	"go-darkframe-inspector/internal/observer"
	"go-darkframe-inspector/internal/repository"
	"go-darkframe-inspector/internal/service"
	"go-darkframe-inspector/internal/storage"
	"go-darkframe-inspector/internal/transport"
	"go-darkframe-inspector/pkg/validation"
)

// Container holds all application dependencies
type Container struct {
	config        *config.Config
	policy        *config.AnalysisPolicy
	frameFetcher  storage.FrameFetcher
	frameAnalyzer analyzer.FrameAnalyzer
	frameRepo     repository.FrameRepository
	grader        *validation.QualityGrader
	batchService  *service.BatchService
	publisher     observer.Subject
	handler       http.Handler
}

// NewContainer creates a new dependency injection container
func NewContainer() (*Container, error) {
	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	policy, err := config.LoadPolicy(cfg.PolicyFile)
	if err != nil {
		return nil, err
	}

	// Build dependency graph
	validator := validation.NewDarkFrameValidatorWithThresholds(policy.Thresholds)
	grader, err := validation.NewQualityGraderWithTable(policy.GradeTable)
	if err != nil {
		return nil, err
	}

	frameAnalyzer, err := analyzer.NewFrameAnalyzer(policy.AnalysisOptions(cfg.Workers), validator)
	if err != nil {
		return nil, err
	}

	frameFetcher, err := factory.NewStorageFactory().CreateFetcher(cfg)
	if err != nil {
		return nil, err
	}
	frameRepo := repository.NewFrameRepository(frameFetcher, validation.NewSourceValidator())

	publisher := observer.NewEventPublisher()
	publisher.Subscribe(observer.NewLoggingObserver(logger.Logger))
	publisher.Subscribe(observer.NewMetricsObserver())

	batchService := service.NewBatchService(
		frameRepo, frameAnalyzer, grader, publisher, logger.Logger, cfg.Workers)
	handler := transport.NewHandler(batchService, cfg)

	return &Container{
		config:        cfg,
		policy:        policy,
		frameFetcher:  frameFetcher,
		frameAnalyzer: frameAnalyzer,
		frameRepo:     frameRepo,
		grader:        grader,
		batchService:  batchService,
		publisher:     publisher,
		handler:       handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// Policy returns the loaded analysis policy
func (c *Container) Policy() *config.AnalysisPolicy {
	return c.policy
}

// BatchService returns the batch orchestration service
func (c *Container) BatchService() *service.BatchService {
	return c.batchService
}

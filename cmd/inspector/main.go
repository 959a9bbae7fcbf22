package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"go-darkframe-inspector/internal/container"
	"go-darkframe-inspector/internal/logger"
	"go-darkframe-inspector/internal/report"
)

func main() {
	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	var (
		frameDir  = flag.String("frames", "", "frame folder to analyze (overrides SOURCE_ROOT)")
		outputDir = flag.String("out", "", "report output directory (overrides OUTPUT_DIR)")
		policy    = flag.String("policy", "", "YAML policy file (overrides POLICY_FILE)")
	)
	flag.Parse()

	// Flags win over environment so one-off runs need no env editing.
	if *frameDir != "" {
		os.Setenv("SOURCE_TYPE", "local")
		os.Setenv("SOURCE_ROOT", *frameDir)
	}
	if *outputDir != "" {
		os.Setenv("OUTPUT_DIR", *outputDir)
	}
	if *policy != "" {
		os.Setenv("POLICY_FILE", *policy)
	}

	c, err := container.NewContainer()
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	cfg := c.Config()

	emitter, err := report.NewEmitter(cfg.OutputDir)
	if err != nil {
		logger.WithError(err).Error("Cannot prepare output directory")
		os.Exit(1)
	}

	// SIGINT/SIGTERM cancel the run; already-analyzed frames still land in
	// the partial report.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.WithFields(logrus.Fields{
		"source_type": cfg.SourceType,
		"source_root": cfg.SourceRoot,
		"output_dir":  cfg.OutputDir,
		"workers":     cfg.Workers,
	}).Info("Starting batch run")

	batchReport, err := c.BatchService().RunBatch(ctx)
	if err != nil {
		logger.WithError(err).Error("Batch run failed")
		os.Exit(1)
	}

	paths, err := emitter.Emit(batchReport)
	if err != nil {
		logger.WithError(err).Error("Report emission failed")
		os.Exit(1)
	}

	logger.WithFields(logrus.Fields{
		"batch_id":        batchReport.BatchID,
		"total_frames":    batchReport.Aggregates.TotalFrames,
		"analyzed_frames": batchReport.Aggregates.AnalyzedFrames,
		"failed_frames":   batchReport.Aggregates.FailedFrames,
		"reports":         paths,
	}).Info("Batch run completed")

	if batchReport.Aggregates.FailedFrames > 0 {
		os.Exit(2)
	}
}

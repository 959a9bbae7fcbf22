package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	apperrors "go-darkframe-inspector/internal/errors"
	"go-darkframe-inspector/pkg/models"
)

// Emitter writes a sealed batch report to disk in three renditions: a full
// JSON dump, a per-frame CSV table, and a human-readable text summary for
// the QA operator.
type Emitter struct {
	outputDir string
}

// NewEmitter creates an emitter writing into outputDir, creating it if
// needed.
func NewEmitter(outputDir string) (*Emitter, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, apperrors.NewConfigurationError("cannot create output directory", err)
	}
	return &Emitter{outputDir: outputDir}, nil
}

// Emit writes all three report files and returns their paths.
func (e *Emitter) Emit(report *models.BatchReport) ([]string, error) {
	base := fmt.Sprintf("report_%s_%s", report.BatchID,
		report.CompletedAt.UTC().Format("20060102T150405Z"))

	paths := make([]string, 0, 3)
	writers := []struct {
		ext   string
		write func(path string, report *models.BatchReport) error
	}{
		{".json", e.writeJSON},
		{".csv", e.writeCSV},
		{".txt", e.writeText},
	}
	for _, w := range writers {
		path := filepath.Join(e.outputDir, base+w.ext)
		if err := w.write(path, report); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (e *Emitter) writeJSON(path string, report *models.BatchReport) error {
	f, err := os.Create(path)
	if err != nil {
		return apperrors.NewInternalError("cannot create JSON report", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return apperrors.NewInternalError("cannot encode JSON report", err)
	}
	return nil
}

var csvHeader = []string{
	"filename", "status", "quality_class", "verdict", "warnings",
	"width", "height", "effective_bit_depth",
	"median", "mad", "mean", "stddev",
	"hot_count", "hot_percent", "dead_count", "dead_percent",
	"saturated_count", "snr_db",
	"failure_kind", "failure_message",
}

func (e *Emitter) writeCSV(path string, report *models.BatchReport) error {
	f, err := os.Create(path)
	if err != nil {
		return apperrors.NewInternalError("cannot create CSV report", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return apperrors.NewInternalError("cannot write CSV report", err)
	}
	for i := range report.Frames {
		if err := w.Write(csvRow(&report.Frames[i])); err != nil {
			return apperrors.NewInternalError("cannot write CSV report", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return apperrors.NewInternalError("cannot flush CSV report", err)
	}
	return nil
}

func csvRow(frame *models.FrameResult) []string {
	if frame.Failed {
		row := make([]string, len(csvHeader))
		row[0] = frame.Filename
		row[1] = "failed"
		row[18] = frame.FailureKind
		row[19] = frame.FailureMessage
		return row
	}

	snr := ""
	if frame.SNR != nil && frame.SNR.Defined {
		snr = formatFloat(frame.SNR.SNRDb)
	}
	return []string{
		frame.Filename,
		"analyzed",
		frame.QualityClass,
		string(frame.Verdict.Status),
		strings.Join(frame.Verdict.WarningCodes(), ";"),
		strconv.Itoa(frame.Width),
		strconv.Itoa(frame.Height),
		strconv.Itoa(frame.Stats.EffectiveBitDepth),
		formatFloat(frame.Stats.Median),
		formatFloat(frame.Stats.MAD),
		formatFloat(frame.Stats.Mean),
		formatFloat(frame.Stats.StdDev),
		strconv.Itoa(frame.Defects.HotPixelCount),
		formatFloat(frame.Defects.HotPixelPercent),
		strconv.Itoa(frame.Defects.DeadPixelCount),
		formatFloat(frame.Defects.DeadPixelPercent),
		strconv.Itoa(frame.Defects.SaturatedCount),
		snr,
		"",
		"",
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (e *Emitter) writeText(path string, report *models.BatchReport) error {
	var b strings.Builder

	agg := report.Aggregates
	fmt.Fprintf(&b, "Dark Frame Batch Report\n")
	fmt.Fprintf(&b, "=======================\n\n")
	fmt.Fprintf(&b, "Batch ID:   %s\n", report.BatchID)
	fmt.Fprintf(&b, "Started:    %s\n", report.StartedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "Completed:  %s\n\n", report.CompletedAt.UTC().Format(time.RFC3339))

	fmt.Fprintf(&b, "Frames:     %d total, %d analyzed, %d failed\n",
		agg.TotalFrames, agg.AnalyzedFrames, agg.FailedFrames)
	fmt.Fprintf(&b, "Verdicts:   %d valid, %d with warnings, %d invalid\n",
		agg.ValidCount, agg.WarningCount, agg.InvalidCount)
	fmt.Fprintf(&b, "Hot px:     mean %.4f%%, median %.4f%%\n",
		agg.MeanHotPercent, agg.MedianHotPercent)
	fmt.Fprintf(&b, "Dead px:    mean %.4f%%, median %.4f%%\n",
		agg.MeanDeadPercent, agg.MedianDeadPercent)
	if agg.BestClass != "" {
		fmt.Fprintf(&b, "Classes:    best %s, worst %s\n", agg.BestClass, agg.WorstClass)
	}
	b.WriteString("\n")

	for i := range report.Frames {
		frame := &report.Frames[i]
		if frame.Failed {
			fmt.Fprintf(&b, "  %-40s FAILED (%s): %s\n",
				frame.Filename, frame.FailureKind, frame.FailureMessage)
			continue
		}
		snr := "undefined"
		if frame.SNR.Defined {
			snr = fmt.Sprintf("%.1f dB", frame.SNR.SNRDb)
		}
		fmt.Fprintf(&b, "  %-40s %-20s class %-3s hot %.4f%% dead %.4f%% snr %s\n",
			frame.Filename, frame.Verdict.Status, frame.QualityClass,
			frame.Defects.HotPixelPercent, frame.Defects.DeadPixelPercent, snr)
		for _, warning := range frame.Verdict.Warnings {
			fmt.Fprintf(&b, "      [%s] %s: %s\n", warning.Severity, warning.Code, warning.Message)
		}
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return apperrors.NewInternalError("cannot write text report", err)
	}
	return nil
}

package models

import "time"

// FrameStats is the robust statistics record computed once per frame.
// It is immutable after computation and owned by that frame's analysis pass.
type FrameStats struct {
	Median float64 `json:"median"`
	// MAD is the median absolute deviation scaled by 1.4826 so it reads as a
	// normal-equivalent standard deviation.
	MAD    float64 `json:"mad"`
	Q1     float64 `json:"q1"`
	Q3     float64 `json:"q3"`
	IQR    float64 `json:"iqr"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	Min    uint16  `json:"min"`
	Max    uint16  `json:"max"`

	// EffectiveBitDepth is inferred from the maximum observed sample,
	// rounded up to the nearest power-of-two-minus-one bucket.
	EffectiveBitDepth int `json:"effective_bit_depth"`
}

// Degenerate reports whether the frame has zero spread, in which case defect
// thresholds are meaningless and the classifier must report zero defects.
func (s *FrameStats) Degenerate() bool {
	return s.MAD == 0 && s.StdDev == 0
}

// DefectReport holds per-frame defect classification results. Classification
// is a complete partition: hot + dead + normal == width*height.
type DefectReport struct {
	HotPixelCount   int     `json:"hot_pixel_count"`
	HotPixelPercent float64 `json:"hot_pixel_percent"`

	DeadPixelCount   int     `json:"dead_pixel_count"`
	DeadPixelPercent float64 `json:"dead_pixel_percent"`

	NormalCount int `json:"normal_count"`

	// SaturatedCount is the number of pixels at the effective maximum.
	// They are excluded from the hot count; clipping is a frame-level
	// condition judged by the validator.
	SaturatedCount   int     `json:"saturated_count"`
	SaturatedPercent float64 `json:"saturated_percent"`

	// Flagged coordinates, bounded by the configured cap.
	HotCoordinates  []PixelCoord `json:"hot_coordinates,omitempty"`
	DeadCoordinates []PixelCoord `json:"dead_coordinates,omitempty"`
}

// SNRReport carries the decibel signal-to-noise figure. A zero-noise frame
// has no defined SNR; Defined=false is the sentinel for that case.
type SNRReport struct {
	SNRDb   float64 `json:"snr_db"`
	Defined bool    `json:"snr_defined"`
}

// VerdictStatus classifies whether a frame is a usable dark frame.
type VerdictStatus string

const (
	VerdictValid        VerdictStatus = "valid"
	VerdictWithWarnings VerdictStatus = "valid-with-warnings"
	VerdictInvalid      VerdictStatus = "invalid"
)

// Warning is a single validator finding. Severity "warning" findings demote
// the verdict to valid-with-warnings; "fatal" findings make it invalid.
type Warning struct {
	Code        string  `json:"code"`
	Message     string  `json:"message"`
	Severity    string  `json:"severity"`
	ActualValue float64 `json:"actual_value,omitempty"`
	Threshold   float64 `json:"threshold,omitempty"`
}

// Verdict is the dark-frame validity classification plus the ordered warnings
// that produced it. Invalidity is informational: the frame is still fully
// analyzed and reported.
type Verdict struct {
	Status   VerdictStatus `json:"status"`
	Warnings []Warning     `json:"warnings,omitempty"`
}

// WarningCodes returns the ordered warning codes.
func (v Verdict) WarningCodes() []string {
	if len(v.Warnings) == 0 {
		return nil
	}
	codes := make([]string, len(v.Warnings))
	for i, w := range v.Warnings {
		codes[i] = w.Code
	}
	return codes
}

// FrameResult is one entry of a batch record: either a fully analyzed frame
// or a failure entry for a frame that could not be loaded.
type FrameResult struct {
	Filename          string    `json:"filename"`
	Timestamp         time.Time `json:"timestamp"`
	ProcessingTimeSec float64   `json:"processing_time_sec"`

	Width            int `json:"width,omitempty"`
	Height           int `json:"height,omitempty"`
	DeclaredBitDepth int `json:"declared_bit_depth,omitempty"`

	Stats   *FrameStats   `json:"stats,omitempty"`
	Defects *DefectReport `json:"defects,omitempty"`
	SNR     *SNRReport    `json:"snr,omitempty"`
	Verdict *Verdict      `json:"verdict,omitempty"`

	QualityClass   string `json:"quality_class,omitempty"`
	Recommendation string `json:"recommendation,omitempty"`

	Failed         bool   `json:"failed,omitempty"`
	FailureKind    string `json:"failure_kind,omitempty"`
	FailureMessage string `json:"failure_message,omitempty"`
}

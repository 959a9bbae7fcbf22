package validation

import (
	"fmt"

	"go-darkframe-inspector/pkg/models"
)

// Warning codes emitted by the dark frame validator. Codes are stable
// strings; reports key on them.
const (
	WarnExcessDynamicRange = "excess-dynamic-range"
	WarnHighMeanLevel      = "high-mean-level"
	WarnBitDepthMismatch   = "bit-depth-mismatch"
	WarnSaturation         = "saturation"
	WarnLowSNR             = "low-snr"
	WarnZeroNoise          = "zero-noise"
)

// Severity levels for validator findings.
const (
	SeverityWarning = "warning"
	SeverityFatal   = "fatal"
)

// ValidationThresholds defines the configurable thresholds for dark-frame
// validity checks. Warn thresholds demote the verdict to
// valid-with-warnings; ceiling thresholds make it invalid.
type ValidationThresholds struct {
	// Spread above this fraction of full range suggests stray light.
	DynamicRangeWarnFraction    float64 `yaml:"dynamicRangeWarnFraction"`
	DynamicRangeCeilingFraction float64 `yaml:"dynamicRangeCeilingFraction"`

	// Mean above this fraction of the maximum representable value suggests
	// the lens cap was off or the exposure too long.
	MeanWarnFraction    float64 `yaml:"meanWarnFraction"`
	MeanCeilingFraction float64 `yaml:"meanCeilingFraction"`

	// Percent of pixels at the maximum representable value.
	SaturationWarnPercent    float64 `yaml:"saturationWarnPercent"`
	SaturationCeilingPercent float64 `yaml:"saturationCeilingPercent"`

	// Declared vs observed bit depth may disagree by this many buckets
	// before a mismatch warning is raised.
	BitDepthBucketTolerance int `yaml:"bitDepthBucketTolerance"`

	// SNR below this many dB is flagged; a true dark frame still has a
	// reasonable dark-signal SNR.
	MinSNRDb float64 `yaml:"minSNRDb"`
}

// DefaultValidationThresholds returns the default thresholds.
func DefaultValidationThresholds() ValidationThresholds {
	return ValidationThresholds{
		DynamicRangeWarnFraction:    0.05,
		DynamicRangeCeilingFraction: 0.20,
		MeanWarnFraction:            0.05,
		MeanCeilingFraction:         0.25,
		SaturationWarnPercent:       0.01,
		SaturationCeilingPercent:    1.0,
		BitDepthBucketTolerance:     1,
		MinSNRDb:                    10.0,
	}
}

// Validate rejects threshold tables that would corrupt every verdict.
func (t ValidationThresholds) Validate() error {
	checkFraction := func(name string, v float64) error {
		if v <= 0 || v > 1 {
			return fmt.Errorf("%s must be in (0,1] (got %g)", name, v)
		}
		return nil
	}
	if err := checkFraction("dynamicRangeWarnFraction", t.DynamicRangeWarnFraction); err != nil {
		return err
	}
	if err := checkFraction("dynamicRangeCeilingFraction", t.DynamicRangeCeilingFraction); err != nil {
		return err
	}
	if err := checkFraction("meanWarnFraction", t.MeanWarnFraction); err != nil {
		return err
	}
	if err := checkFraction("meanCeilingFraction", t.MeanCeilingFraction); err != nil {
		return err
	}
	if t.DynamicRangeWarnFraction > t.DynamicRangeCeilingFraction {
		return fmt.Errorf("dynamic range warn fraction %g exceeds its ceiling %g",
			t.DynamicRangeWarnFraction, t.DynamicRangeCeilingFraction)
	}
	if t.MeanWarnFraction > t.MeanCeilingFraction {
		return fmt.Errorf("mean warn fraction %g exceeds its ceiling %g",
			t.MeanWarnFraction, t.MeanCeilingFraction)
	}
	if t.SaturationWarnPercent < 0 || t.SaturationCeilingPercent < 0 {
		return fmt.Errorf("saturation thresholds must be >= 0")
	}
	if t.SaturationWarnPercent > t.SaturationCeilingPercent {
		return fmt.Errorf("saturation warn percent %g exceeds its ceiling %g",
			t.SaturationWarnPercent, t.SaturationCeilingPercent)
	}
	if t.BitDepthBucketTolerance < 0 {
		return fmt.Errorf("bit depth bucket tolerance must be >= 0 (got %d)", t.BitDepthBucketTolerance)
	}
	return nil
}

// FrameSignals are the frame-level inputs the validator judges.
type FrameSignals struct {
	Stats            *models.FrameStats
	DeclaredBitDepth int
	SaturatedPercent float64
	SNR              models.SNRReport
}

// DarkFrameValidator decides whether a frame is a usable dark frame. An
// invalid verdict is informational: the frame is still fully analyzed and
// reported, so every input image yields exactly one batch entry.
type DarkFrameValidator struct {
	thresholds ValidationThresholds
}

// NewDarkFrameValidator creates a validator with default thresholds.
func NewDarkFrameValidator() *DarkFrameValidator {
	return &DarkFrameValidator{thresholds: DefaultValidationThresholds()}
}

// NewDarkFrameValidatorWithThresholds creates a validator with custom
// thresholds.
func NewDarkFrameValidatorWithThresholds(thresholds ValidationThresholds) *DarkFrameValidator {
	return &DarkFrameValidator{thresholds: thresholds}
}

// Validate runs every check independently and folds the findings into a
// verdict: no findings -> valid, only warnings -> valid-with-warnings, any
// fatal finding -> invalid.
func (v *DarkFrameValidator) Validate(signals FrameSignals) models.Verdict {
	var warnings []models.Warning
	stats := signals.Stats
	fullRange := float64(models.MaxSampleValue(stats.EffectiveBitDepth))

	// Excess dynamic range: spread beyond pure sensor noise.
	spread := stats.IQR
	if stats.StdDev > spread {
		spread = stats.StdDev
	}
	spreadFraction := spread / fullRange
	if spreadFraction > v.thresholds.DynamicRangeWarnFraction {
		w := models.Warning{
			Code:        WarnExcessDynamicRange,
			Message:     "Spread too wide for pure sensor noise; possible stray light or non-dark exposure.",
			Severity:    SeverityWarning,
			ActualValue: spreadFraction,
			Threshold:   v.thresholds.DynamicRangeWarnFraction,
		}
		if spreadFraction > v.thresholds.DynamicRangeCeilingFraction {
			w.Severity = SeverityFatal
			w.Threshold = v.thresholds.DynamicRangeCeilingFraction
		}
		warnings = append(warnings, w)
	}

	// Implausible mean level: lens cap off or exposure too long.
	meanFraction := stats.Mean / fullRange
	if meanFraction > v.thresholds.MeanWarnFraction {
		w := models.Warning{
			Code:        WarnHighMeanLevel,
			Message:     "Mean level too high for a dark frame; check that the lens cap was on.",
			Severity:    SeverityWarning,
			ActualValue: meanFraction,
			Threshold:   v.thresholds.MeanWarnFraction,
		}
		if meanFraction > v.thresholds.MeanCeilingFraction {
			w.Severity = SeverityFatal
			w.Threshold = v.thresholds.MeanCeilingFraction
		}
		warnings = append(warnings, w)
	}

	// Declared vs observed bit depth. Never fatal.
	if signals.DeclaredBitDepth > 0 {
		dist := models.BitDepthBucketDistance(signals.DeclaredBitDepth, stats.EffectiveBitDepth)
		if dist > v.thresholds.BitDepthBucketTolerance {
			warnings = append(warnings, models.Warning{
				Code: WarnBitDepthMismatch,
				Message: fmt.Sprintf("Declared %d-bit but observed data fits %d-bit.",
					signals.DeclaredBitDepth, stats.EffectiveBitDepth),
				Severity:    SeverityWarning,
				ActualValue: float64(dist),
				Threshold:   float64(v.thresholds.BitDepthBucketTolerance),
			})
		}
	}

	// Saturated pixels indicate clipping.
	if signals.SaturatedPercent > v.thresholds.SaturationWarnPercent {
		w := models.Warning{
			Code:        WarnSaturation,
			Message:     "Pixels at full scale indicate clipping.",
			Severity:    SeverityWarning,
			ActualValue: signals.SaturatedPercent,
			Threshold:   v.thresholds.SaturationWarnPercent,
		}
		if signals.SaturatedPercent > v.thresholds.SaturationCeilingPercent {
			w.Severity = SeverityFatal
			w.Threshold = v.thresholds.SaturationCeilingPercent
		}
		warnings = append(warnings, w)
	}

	// SNR checks.
	if !signals.SNR.Defined {
		warnings = append(warnings, models.Warning{
			Code:     WarnZeroNoise,
			Message:  "Frame has zero noise; a perfectly flat dark frame is suspicious.",
			Severity: SeverityWarning,
		})
	} else if signals.SNR.SNRDb < v.thresholds.MinSNRDb {
		warnings = append(warnings, models.Warning{
			Code:        WarnLowSNR,
			Message:     "Dark-signal SNR below the plausible range for a dark frame.",
			Severity:    SeverityWarning,
			ActualValue: signals.SNR.SNRDb,
			Threshold:   v.thresholds.MinSNRDb,
		})
	}

	return models.Verdict{Status: verdictStatus(warnings), Warnings: warnings}
}

func verdictStatus(warnings []models.Warning) models.VerdictStatus {
	if len(warnings) == 0 {
		return models.VerdictValid
	}
	for _, w := range warnings {
		if w.Severity == SeverityFatal {
			return models.VerdictInvalid
		}
	}
	return models.VerdictWithWarnings
}

// HasFatal reports whether any finding breached its hard ceiling.
func HasFatal(warnings []models.Warning) bool {
	for _, w := range warnings {
		if w.Severity == SeverityFatal {
			return true
		}
	}
	return false
}

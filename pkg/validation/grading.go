package validation

import (
	"fmt"

	"go-darkframe-inspector/pkg/models"
)

// GradeBreakpoint is one row of the quality-class table. A frame earns the
// class when its hot and dead percentages fall below the row's maxima and
// its SNR meets the row's minimum. Rows are evaluated best class first.
type GradeBreakpoint struct {
	Class          string  `yaml:"class"`
	MaxHotPercent  float64 `yaml:"maxHotPercent"`
	MaxDeadPercent float64 `yaml:"maxDeadPercent"`
	MinSNRDb       float64 `yaml:"minSNRDb"`
	Recommendation string  `yaml:"recommendation"`
}

// FallbackClass is assigned when no breakpoint row matches.
const FallbackClass = "D"

// DefaultGradeTable returns the default quality-class breakpoints. The
// values are policy constants to be tuned per product line, not
// statistically derived.
func DefaultGradeTable() []GradeBreakpoint {
	return []GradeBreakpoint{
		{Class: "A+", MaxHotPercent: 0.001, MaxDeadPercent: 0.0005, MinSNRDb: 30, Recommendation: "Sensor in optimal condition."},
		{Class: "A", MaxHotPercent: 0.005, MaxDeadPercent: 0.002, MinSNRDb: 25, Recommendation: "Sensor suitable for professional use."},
		{Class: "B", MaxHotPercent: 0.01, MaxDeadPercent: 0.005, MinSNRDb: 20, Recommendation: "Suitable for advanced photography."},
		{Class: "C", MaxHotPercent: 0.02, MaxDeadPercent: 0.01, MinSNRDb: 15, Recommendation: "Acceptable for general use."},
	}
}

// QualityGrader assigns a quality class from defect percentages and SNR
// using a tunable breakpoint table.
type QualityGrader struct {
	table []GradeBreakpoint
	ranks map[string]int
}

// NewQualityGrader creates a grader with the default breakpoint table.
func NewQualityGrader() *QualityGrader {
	g, _ := NewQualityGraderWithTable(DefaultGradeTable())
	return g
}

// NewQualityGraderWithTable creates a grader with a custom table. The table
// must be non-empty, ordered best class first, with non-negative maxima.
func NewQualityGraderWithTable(table []GradeBreakpoint) (*QualityGrader, error) {
	if len(table) == 0 {
		return nil, fmt.Errorf("grade table must not be empty")
	}
	ranks := make(map[string]int, len(table)+1)
	for i, row := range table {
		if row.Class == "" {
			return nil, fmt.Errorf("grade row %d has no class name", i)
		}
		if row.MaxHotPercent < 0 || row.MaxDeadPercent < 0 {
			return nil, fmt.Errorf("grade row %q has negative defect threshold", row.Class)
		}
		if _, dup := ranks[row.Class]; dup {
			return nil, fmt.Errorf("grade class %q appears twice", row.Class)
		}
		ranks[row.Class] = i
	}
	ranks[FallbackClass] = len(table)
	return &QualityGrader{table: table, ranks: ranks}, nil
}

// Grade returns the quality class and recommendation for one frame. An
// undefined SNR never satisfies a minimum-SNR requirement.
func (g *QualityGrader) Grade(hotPercent, deadPercent float64, snr models.SNRReport) (string, string) {
	for _, row := range g.table {
		if hotPercent >= row.MaxHotPercent || deadPercent >= row.MaxDeadPercent {
			continue
		}
		if row.MinSNRDb > 0 && (!snr.Defined || snr.SNRDb <= row.MinSNRDb) {
			continue
		}
		return row.Class, row.Recommendation
	}
	return FallbackClass, g.fallbackRecommendation(hotPercent, snr)
}

// fallbackRecommendation mirrors the triage the product applies to failing
// sensors: rule out a bad capture before blaming the hardware.
func (g *QualityGrader) fallbackRecommendation(hotPercent float64, snr models.SNRReport) string {
	switch {
	case snr.Defined && snr.SNRDb < 10:
		return "Not a usable dark frame; verify capture conditions."
	case hotPercent > 0.1:
		return "Severe sensor defects; urgent service recommended."
	default:
		return "Sensor needs calibration or repair."
	}
}

// ClassRank orders classes best (0) to worst. Unknown classes rank last.
func (g *QualityGrader) ClassRank(class string) int {
	if r, ok := g.ranks[class]; ok {
		return r
	}
	return len(g.table) + 1
}

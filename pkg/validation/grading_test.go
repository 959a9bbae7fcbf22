package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-darkframe-inspector/pkg/models"
)

func snr(db float64) models.SNRReport {
	return models.SNRReport{SNRDb: db, Defined: true}
}

func TestGradeClasses(t *testing.T) {
	tests := []struct {
		name        string
		hotPercent  float64
		deadPercent float64
		snr         models.SNRReport
		wantClass   string
	}{
		{"pristine sensor", 0.0005, 0.0001, snr(35), "A+"},
		{"hot percent at A+ boundary drops to A", 0.001, 0.0001, snr(35), "A"},
		{"professional grade", 0.003, 0.001, snr(27), "A"},
		{"advanced grade", 0.008, 0.004, snr(22), "B"},
		{"general use", 0.015, 0.008, snr(17), "C"},
		{"snr at class minimum is not enough", 0.0005, 0.0001, snr(30), "A"},
		{"defective sensor", 0.5, 0.2, snr(35), "D"},
		{"undefined snr never grades above fallback", 0.0001, 0.0001, models.SNRReport{Defined: false}, "D"},
	}

	grader := NewQualityGrader()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			class, recommendation := grader.Grade(tt.hotPercent, tt.deadPercent, tt.snr)
			assert.Equal(t, tt.wantClass, class)
			assert.NotEmpty(t, recommendation)
		})
	}
}

func TestGradeFallbackRecommendations(t *testing.T) {
	grader := NewQualityGrader()

	_, rec := grader.Grade(0.05, 0.05, snr(5))
	assert.Contains(t, rec, "Not a usable dark frame")

	_, rec = grader.Grade(0.5, 0.05, snr(20))
	assert.Contains(t, rec, "Severe sensor defects")

	_, rec = grader.Grade(0.05, 0.05, snr(20))
	assert.Contains(t, rec, "calibration")
}

func TestNewQualityGraderWithTableValidation(t *testing.T) {
	tests := []struct {
		name  string
		table []GradeBreakpoint
	}{
		{"empty table", nil},
		{"unnamed class", []GradeBreakpoint{{MaxHotPercent: 1, MaxDeadPercent: 1}}},
		{"duplicate class", []GradeBreakpoint{
			{Class: "A", MaxHotPercent: 0.1, MaxDeadPercent: 0.1},
			{Class: "A", MaxHotPercent: 0.2, MaxDeadPercent: 0.2},
		}},
		{"negative threshold", []GradeBreakpoint{{Class: "A", MaxHotPercent: -0.1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewQualityGraderWithTable(tt.table)
			require.Error(t, err)
		})
	}
}

func TestGradeWithCustomTable(t *testing.T) {
	grader, err := NewQualityGraderWithTable([]GradeBreakpoint{
		{Class: "pass", MaxHotPercent: 1, MaxDeadPercent: 1, Recommendation: "Ship it."},
	})
	require.NoError(t, err)

	class, rec := grader.Grade(0.5, 0.5, models.SNRReport{Defined: false})
	assert.Equal(t, "pass", class)
	assert.Equal(t, "Ship it.", rec)

	class, _ = grader.Grade(2, 0.5, models.SNRReport{Defined: false})
	assert.Equal(t, FallbackClass, class)
}

func TestClassRankOrdering(t *testing.T) {
	grader := NewQualityGrader()
	classes := []string{"A+", "A", "B", "C", "D"}
	for i := 1; i < len(classes); i++ {
		assert.Less(t, grader.ClassRank(classes[i-1]), grader.ClassRank(classes[i]),
			"%s must rank better than %s", classes[i-1], classes[i])
	}
	assert.Greater(t, grader.ClassRank("unknown"), grader.ClassRank("D"))
}

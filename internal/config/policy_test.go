package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writePolicyFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "policy.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing policy file: %v", err)
	}
	return path
}

func TestLoadPolicyDefaults(t *testing.T) {
	policy, err := LoadPolicy("")
	if err != nil {
		t.Fatalf("LoadPolicy failed: %v", err)
	}
	if policy.Analysis.KSigma != 5.0 {
		t.Errorf("kSigma = %g, want 5.0", policy.Analysis.KSigma)
	}
	if policy.Analysis.KIQR != 1.5 {
		t.Errorf("kIQR = %g, want 1.5", policy.Analysis.KIQR)
	}
	if len(policy.GradeTable) != 4 {
		t.Errorf("grade table rows = %d, want 4", len(policy.GradeTable))
	}
	if policy.GradeTable[0].Class != "A+" {
		t.Errorf("first grade class = %q, want A+", policy.GradeTable[0].Class)
	}
}

func TestLoadPolicyFileOverridesDefaults(t *testing.T) {
	path := writePolicyFile(t, `
analysis:
  kSigma: 6.0
  kIQR: 3.5
  maxFlaggedCoords: 64
thresholds:
  meanWarnFraction: 0.04
  meanCeilingFraction: 0.30
`)

	policy, err := LoadPolicy(path)
	if err != nil {
		t.Fatalf("LoadPolicy failed: %v", err)
	}
	if policy.Analysis.KSigma != 6.0 || policy.Analysis.KIQR != 3.5 {
		t.Errorf("fences = %g/%g, want 6.0/3.5", policy.Analysis.KSigma, policy.Analysis.KIQR)
	}
	if policy.Analysis.MaxFlaggedCoords != 64 {
		t.Errorf("coordinate cap = %d, want 64", policy.Analysis.MaxFlaggedCoords)
	}
	if policy.Thresholds.MeanCeilingFraction != 0.30 {
		t.Errorf("mean ceiling = %g, want 0.30", policy.Thresholds.MeanCeilingFraction)
	}
	// Untouched sections keep their defaults.
	if policy.Thresholds.SaturationCeilingPercent != 1.0 {
		t.Errorf("saturation ceiling = %g, want default 1.0", policy.Thresholds.SaturationCeilingPercent)
	}
	if len(policy.GradeTable) != 4 {
		t.Errorf("grade table rows = %d, want default 4", len(policy.GradeTable))
	}
}

func TestLoadPolicyRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"negative kSigma", "analysis:\n  kSigma: -1\n"},
		{"zero kIQR", "analysis:\n  kIQR: 0\n"},
		{"warn above ceiling", "thresholds:\n  meanWarnFraction: 0.9\n"},
		{"empty grade table", "gradeTable: []\n"},
		{"duplicate grade class", `
gradeTable:
  - class: A
    maxHotPercent: 0.1
    maxDeadPercent: 0.1
  - class: A
    maxHotPercent: 0.2
    maxDeadPercent: 0.2
`},
		{"not yaml at all", "{{{"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writePolicyFile(t, tt.content)
			if _, err := LoadPolicy(path); err == nil {
				t.Error("invalid policy accepted")
			}
		})
	}
}

func TestLoadPolicyMissingFile(t *testing.T) {
	if _, err := LoadPolicy(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("missing policy file accepted")
	}
}

func TestPolicyAnalysisOptions(t *testing.T) {
	policy := DefaultPolicy()
	opts := policy.AnalysisOptions(8)
	if opts.KSigma != 5.0 || opts.KIQR != 1.5 {
		t.Errorf("options fences = %g/%g, want 5.0/1.5", opts.KSigma, opts.KIQR)
	}
	if opts.Workers != 8 {
		t.Errorf("workers = %d, want 8", opts.Workers)
	}
}

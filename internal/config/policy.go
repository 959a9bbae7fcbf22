package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"go-darkframe-inspector/internal/analyzer"
	apperrors "go-darkframe-inspector/internal/errors"
	"go-darkframe-inspector/pkg/validation"
)

// AnalysisPolicy holds the per-frame policy constants loaded from the YAML
// policy file. Every threshold that shapes a verdict or a defect count lives
// here, so a run is reproducible from its policy file alone.
type AnalysisPolicy struct {
	Analysis struct {
		KSigma           float64 `yaml:"kSigma"`
		KIQR             float64 `yaml:"kIQR"`
		MaxFlaggedCoords int     `yaml:"maxFlaggedCoords"`
	} `yaml:"analysis"`

	Thresholds validation.ValidationThresholds `yaml:"thresholds"`

	GradeTable []validation.GradeBreakpoint `yaml:"gradeTable"`
}

// DefaultPolicy returns the built-in policy: 5-sigma / 1.5-IQR fences, the
// default validator thresholds and the default grade table.
func DefaultPolicy() *AnalysisPolicy {
	p := &AnalysisPolicy{
		Thresholds: validation.DefaultValidationThresholds(),
		GradeTable: validation.DefaultGradeTable(),
	}
	defaults := analyzer.DefaultOptions()
	p.Analysis.KSigma = defaults.KSigma
	p.Analysis.KIQR = defaults.KIQR
	p.Analysis.MaxFlaggedCoords = defaults.MaxFlaggedCoords
	return p
}

// LoadPolicy reads a YAML policy file over the defaults. An empty path
// yields the defaults. Any invalid constant fails here, before a single
// frame is processed.
func LoadPolicy(path string) (*AnalysisPolicy, error) {
	policy := DefaultPolicy()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, apperrors.NewConfigurationError("cannot read policy file", err)
		}
		if err := yaml.Unmarshal(data, policy); err != nil {
			return nil, apperrors.NewConfigurationError("cannot parse policy file", err)
		}
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return policy, nil
}

// Validate rejects any policy that would silently corrupt results.
func (p *AnalysisPolicy) Validate() error {
	if err := p.AnalysisOptions(0).Validate(); err != nil {
		return apperrors.NewConfigurationError("invalid analysis options", err)
	}
	if err := p.Thresholds.Validate(); err != nil {
		return apperrors.NewConfigurationError("invalid validation thresholds", err)
	}
	if _, err := validation.NewQualityGraderWithTable(p.GradeTable); err != nil {
		return apperrors.NewConfigurationError("invalid grade table", err)
	}
	return nil
}

// AnalysisOptions converts the policy into analyzer options with the given
// worker count.
func (p *AnalysisPolicy) AnalysisOptions(workers int) analyzer.AnalysisOptions {
	return analyzer.AnalysisOptions{
		KSigma:           p.Analysis.KSigma,
		KIQR:             p.Analysis.KIQR,
		MaxFlaggedCoords: p.Analysis.MaxFlaggedCoords,
		Workers:          workers,
	}
}

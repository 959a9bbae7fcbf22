package analyzer

import "testing"

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.KSigma != 5.0 {
		t.Errorf("KSigma = %g, want 5.0", opts.KSigma)
	}
	if opts.KIQR != 1.5 {
		t.Errorf("KIQR = %g, want 1.5", opts.KIQR)
	}
	if err := opts.Validate(); err != nil {
		t.Errorf("default options must validate: %v", err)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    AnalysisOptions
		wantErr bool
	}{
		{"defaults", DefaultOptions(), false},
		{"custom valid", DefaultOptions().WithThresholds(3, 2).WithCoordinateCap(0).WithWorkers(8), false},
		{"zero kSigma", DefaultOptions().WithThresholds(0, 1.5), true},
		{"negative kSigma", DefaultOptions().WithThresholds(-5, 1.5), true},
		{"zero kIQR", DefaultOptions().WithThresholds(5, 0), true},
		{"negative coordinate cap", DefaultOptions().WithCoordinateCap(-1), true},
		{"negative workers", DefaultOptions().WithWorkers(-1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOptionsBuildersDoNotMutate(t *testing.T) {
	base := DefaultOptions()
	_ = base.WithThresholds(9, 9).WithCoordinateCap(1).WithWorkers(7)

	if base != DefaultOptions() {
		t.Errorf("builders mutated the receiver: %+v", base)
	}
}

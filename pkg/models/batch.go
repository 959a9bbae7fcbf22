package models

import "time"

// BatchAggregates are the batch-level summary figures computed over all
// entries of a batch record.
type BatchAggregates struct {
	TotalFrames    int `json:"total_frames"`
	AnalyzedFrames int `json:"analyzed_frames"`
	FailedFrames   int `json:"failed_frames"`

	ValidCount   int `json:"valid_count"`
	WarningCount int `json:"warning_count"`
	InvalidCount int `json:"invalid_count"`

	// Mean/median defect percentages over analyzed frames only.
	MeanHotPercent    float64 `json:"mean_hot_percent"`
	MeanDeadPercent   float64 `json:"mean_dead_percent"`
	MedianHotPercent  float64 `json:"median_hot_percent"`
	MedianDeadPercent float64 `json:"median_dead_percent"`

	BestClass  string `json:"best_class,omitempty"`
	WorstClass string `json:"worst_class,omitempty"`
}

// BatchReport is the sealed output of one batch run: one entry per input
// image in discovery order plus the batch aggregates. It lives only for the
// duration of the run.
type BatchReport struct {
	BatchID     string    `json:"batch_id"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`

	Frames     []FrameResult   `json:"frames"`
	Aggregates BatchAggregates `json:"aggregates"`
}

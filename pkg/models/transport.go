package models

// AnalyzeRequest asks the API to analyze a single dark frame addressed by
// URL or by a path the configured frame source understands.
type AnalyzeRequest struct {
	Source string `json:"source" binding:"required"`
}

// ErrorResponse is the API error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// AnalyzeResponse is the API response for a single-frame analysis.
type AnalyzeResponse struct {
	Source            string        `json:"source"`
	Timestamp         string        `json:"timestamp"`
	ProcessingTimeSec float64       `json:"processing_time_sec"`
	Width             int           `json:"width"`
	Height            int           `json:"height"`
	DeclaredBitDepth  int           `json:"declared_bit_depth"`
	Stats             *FrameStats   `json:"stats"`
	Defects           *DefectReport `json:"defects"`
	SNR               *SNRReport    `json:"snr"`
	Verdict           *Verdict      `json:"verdict"`
	QualityClass      string        `json:"quality_class"`
	Recommendation    string        `json:"recommendation"`
}

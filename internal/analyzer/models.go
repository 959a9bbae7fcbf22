package analyzer

import (
	"time"

	"go-darkframe-inspector/pkg/models"
)

// FrameAnalysis is the complete per-frame output: the statistics record and
// the three independent products derived from it. All fields are computed in
// one atomic pass; a FrameAnalysis is never half-computed.
type FrameAnalysis struct {
	Stats   *models.FrameStats
	Defects *models.DefectReport
	SNR     models.SNRReport
	Verdict models.Verdict

	Timestamp         time.Time
	ProcessingTimeSec float64
}

package runlog

import "time"

// SpeakerStat captures per-speaker reduction numbers for one run.
type SpeakerStat struct {
	Speaker  string `json:"speaker"`
	Input    int    `json:"input"`
	Clusters int    `json:"clusters"`
	Kept     int    `json:"kept"`
}

// Run is one recorded pipeline invocation.
type Run struct {
	ID            string
	Label         string
	InputPath     string
	OutputPath    string
	Speakers      int
	UtterancesIn  int
	UtterancesOut int
	Rejected      int
	StartedAt     time.Time
	FinishedAt    time.Time
	Stats         []SpeakerStat
}

// Ratio reports kept output as a fraction of loaded input.
func (r *Run) Ratio() float64 {
	if r.UtterancesIn == 0 {
		return 0
	}
	return float64(r.UtterancesOut) / float64(r.UtterancesIn)
}

// Duration reports wall-clock time between start and finish.
func (r *Run) Duration() time.Duration {
	if r.StartedAt.IsZero() || r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

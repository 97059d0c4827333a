package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/Tromador/Discord-Transcription-Stack/internal/transcript"
)

// SpeakerStats captures one speaker's reduction numbers.
type SpeakerStats struct {
	Speaker string
	// Input counts utterances entering clustering, after any containment
	// filtering.
	Input    int
	Clusters int
	Kept     int
}

// Ratio reports clusters as a fraction of input utterances, the per-speaker
// figure shown in run summaries.
func (s SpeakerStats) Ratio() float64 {
	if s.Input == 0 {
		return 0
	}
	return float64(s.Clusters) / float64(s.Input)
}

// Summary aggregates one run's totals.
type Summary struct {
	Speakers      int
	UtterancesIn  int
	UtterancesOut int
	// Rejected counts representatives the merge pass dropped across all
	// speakers. ContainedDropped counts utterances removed by the optional
	// containment pre-filter.
	Rejected         int
	ContainedDropped int
	StartedAt        time.Time
	FinishedAt       time.Time
}

// Ratio reports written output as a fraction of deduplicated input.
func (s Summary) Ratio() float64 {
	if s.UtterancesIn == 0 {
		return 0
	}
	return float64(s.UtterancesOut) / float64(s.UtterancesIn)
}

// Duration reports wall-clock run time.
func (s Summary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}

// Report is the outcome of a pipeline run. PerSpeaker entries appear in
// first-appearance order, matching the input.
type Report struct {
	Summary    Summary
	PerSpeaker []SpeakerStats
}

// renderClusterReport formats the per-cluster breakdown written when a debug
// path is requested. Each speaker section lists every cluster with its
// elected representative and members, clusters numbered from 001.
func renderClusterReport(groups []transcript.SpeakerGroup, results []speakerResult) string {
	var lines []string
	for i, group := range groups {
		lines = append(lines, fmt.Sprintf("# === Speaker: %s ===\n", group.Speaker))
		for idx, cluster := range results[i].result.Clusters {
			lines = append(lines, fmt.Sprintf("Cluster %03d [%d entries]\n✅ Best: %s",
				idx+1, len(cluster.Members), strings.TrimSpace(cluster.Representative.Text)))
			for _, member := range cluster.Members {
				lines = append(lines, fmt.Sprintf("- %s", strings.TrimSpace(member.Text)))
			}
			lines = append(lines, "")
		}
	}
	return strings.Join(lines, "\n")
}

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"github.com/Tromador/Discord-Transcription-Stack/internal/config"
	"github.com/Tromador/Discord-Transcription-Stack/internal/dedupe"
	"github.com/Tromador/Discord-Transcription-Stack/internal/logging"
	"github.com/Tromador/Discord-Transcription-Stack/internal/textsim"
	"github.com/Tromador/Discord-Transcription-Stack/internal/transcript"
)

// Request describes one deduplication run.
type Request struct {
	InputPath  string
	OutputPath string
	// DebugPath, when set, receives the per-cluster breakdown.
	DebugPath string
	// FilterContained enables the timestamp containment pre-filter.
	FilterContained bool
	// Workers overrides the configured per-speaker worker count when
	// positive.
	Workers int
}

// ProgressFunc receives per-speaker completion updates. Implementations must
// tolerate concurrent calls from worker goroutines.
type ProgressFunc func(completed, total int)

// Option customizes pipeline construction.
type Option func(*Pipeline)

// WithProgress installs a progress callback for speaker-level updates.
func WithProgress(fn ProgressFunc) Option {
	return func(p *Pipeline) {
		p.progress = fn
	}
}

// Pipeline runs transcript deduplication with a fixed engine configuration.
type Pipeline struct {
	engine   *dedupe.Engine
	logger   *slog.Logger
	workers  int
	progress ProgressFunc
}

// New builds a pipeline from application configuration. The logger may be
// nil; a no-op logger is substituted.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Pipeline, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	canon, err := canonicalizerFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		engine:  dedupe.NewEngine(engineOptions(cfg.Dedupe), canon),
		logger:  logging.NewComponentLogger(logger, "pipeline"),
		workers: cfg.Dedupe.Workers,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func canonicalizerFromConfig(cfg *config.Config) (*textsim.Canonicalizer, error) {
	path := cfg.Canonicalize.ContractionsPath
	if path == "" {
		return textsim.DefaultCanonicalizer(), nil
	}
	extra, err := textsim.LoadContractions(path)
	if err != nil {
		return nil, fmt.Errorf("load contractions: %w", err)
	}
	canon, err := textsim.NewCanonicalizer(extra...)
	if err != nil {
		return nil, fmt.Errorf("build canonicalizer: %w", err)
	}
	return canon, nil
}

func engineOptions(cfg config.Dedupe) dedupe.Options {
	return dedupe.Options{
		MaxClusterSize:        cfg.MaxClusterSize,
		MinTokens:             cfg.MinTokens,
		JaccardThreshold:      cfg.JaccardThreshold,
		CosineThreshold:       cfg.CosineThreshold,
		MergeJaccardThreshold: cfg.MergeJaccardThreshold,
		MergeCosineThreshold:  cfg.MergeCosineThreshold,
		EnableTimeGate:        cfg.EnableTimeGate,
		MaxTimeDelta:          cfg.MaxTimeDeltaSeconds,
	}
}

type speakerResult struct {
	stats   SpeakerStats
	result  dedupe.Result
	dropped int
	lines   []transcript.Line
}

// Run executes one deduplication pass and writes the output transcript. The
// input's speaker and utterance order drives every downstream ordering, so
// results are identical regardless of worker count.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Report, error) {
	if req.InputPath == "" {
		return nil, errors.New("input path is required")
	}
	if req.OutputPath == "" {
		return nil, errors.New("output path is required")
	}

	started := time.Now().UTC()

	lock := flock.New(req.OutputPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire output lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another deduplication run is already writing %s", req.OutputPath)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	utterances, err := transcript.ReadFile(req.InputPath)
	if err != nil {
		return nil, err
	}

	groups := transcript.GroupBySpeaker(utterances)
	p.logger.Debug("transcript loaded",
		logging.Int("utterances", len(utterances)),
		logging.Int("speakers", len(groups)))

	results := make([]speakerResult, len(groups))
	workers := req.Workers
	if workers <= 0 {
		workers = p.workers
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > len(groups) {
		workers = len(groups)
	}

	var completed atomic.Int64
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = p.dedupeSpeaker(groups[idx], req.FilterContained)
				if p.progress != nil {
					p.progress(int(completed.Add(1)), len(groups))
				}
			}
		}()
	}

feed:
	for i := range groups {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	summary := Summary{Speakers: len(groups), StartedAt: started}
	perSpeaker := make([]SpeakerStats, 0, len(groups))
	var lines []transcript.Line
	for i := range results {
		res := &results[i]
		summary.UtterancesIn += res.stats.Input
		summary.UtterancesOut += res.stats.Kept
		summary.Rejected += len(res.result.Rejections)
		summary.ContainedDropped += res.dropped
		perSpeaker = append(perSpeaker, res.stats)
		lines = append(lines, res.lines...)

		p.logger.Debug("speaker deduplicated",
			logging.String(logging.FieldSpeaker, res.stats.Speaker),
			logging.Int("input", res.stats.Input),
			logging.Int("clusters", res.stats.Clusters),
			logging.Int("kept", res.stats.Kept),
			logging.Int("contained_dropped", res.dropped))
		for _, rej := range res.result.Rejections {
			p.logger.Debug("representative dropped",
				logging.String(logging.FieldSpeaker, res.stats.Speaker),
				logging.String(logging.FieldReason, rej.Reason))
		}
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Start.Seconds() < lines[j].Start.Seconds()
	})

	if err := transcript.WriteFile(req.OutputPath, lines); err != nil {
		return nil, err
	}

	if req.DebugPath != "" {
		content := renderClusterReport(groups, results)
		if err := os.WriteFile(req.DebugPath, []byte(content), 0o644); err != nil {
			return nil, fmt.Errorf("write cluster report: %w", err)
		}
	}

	summary.FinishedAt = time.Now().UTC()
	p.logger.Info("deduplication complete",
		logging.Int("speakers", summary.Speakers),
		logging.Int("in", summary.UtterancesIn),
		logging.Int("out", summary.UtterancesOut),
		logging.Int("rejected", summary.Rejected),
		logging.Duration("took", summary.Duration()))

	return &Report{Summary: summary, PerSpeaker: perSpeaker}, nil
}

func (p *Pipeline) dedupeSpeaker(group transcript.SpeakerGroup, filterContained bool) speakerResult {
	utts := group.Utterances
	dropped := 0
	if filterContained {
		kept, removed := dedupe.FilterContained(utts)
		utts = kept
		dropped = len(removed)
	}

	res := p.engine.Deduplicate(utts)
	lines := make([]transcript.Line, 0, len(res.Kept))
	for _, u := range res.Kept {
		lines = append(lines, transcript.Line{Start: u.Start, Speaker: group.Speaker, Text: u.Text})
	}

	return speakerResult{
		stats: SpeakerStats{
			Speaker:  group.Speaker,
			Input:    len(utts),
			Clusters: len(res.Clusters),
			Kept:     len(res.Kept),
		},
		result:  res,
		dropped: dropped,
		lines:   lines,
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"sync"
	"syscall"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Tromador/Discord-Transcription-Stack/internal/config"
	"github.com/Tromador/Discord-Transcription-Stack/internal/logging"
	"github.com/Tromador/Discord-Transcription-Stack/internal/pipeline"
	"github.com/Tromador/Discord-Transcription-Stack/internal/runlog"
	"github.com/Tromador/Discord-Transcription-Stack/internal/transcript"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var inputPath string
	var outputPath string
	var debugPath string
	var filterContained bool
	var workers int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Deduplicate a transcript",
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			logger = logging.With(logger, logging.String("input", inputPath))

			// No bar at debug level; it would fight the stderr log lines.
			var bar *progressbar.ProgressBar
			var barOnce sync.Once
			var opts []pipeline.Option
			if barWriter, ok := progressWriter(cmd.ErrOrStderr()); ok && cfg.Logging.Level != "debug" {
				opts = append(opts, pipeline.WithProgress(func(completed, total int) {
					barOnce.Do(func() {
						bar = newSpeakerBar(barWriter, total)
					})
					_ = bar.Set(completed)
				}))
			}

			p, err := pipeline.New(cfg, logger, opts...)
			if err != nil {
				return err
			}

			req := pipeline.Request{
				InputPath:       inputPath,
				OutputPath:      outputPath,
				DebugPath:       debugPath,
				FilterContained: filterContained || cfg.Dedupe.FilterContained,
				Workers:         workers,
			}
			report, err := p.Run(runCtx, req)
			if bar != nil {
				_ = bar.Finish()
			}
			if err != nil {
				switch {
				case errors.Is(err, transcript.ErrInputMissing):
					return fmt.Errorf("❌ Error: input file '%s' not found.", inputPath)
				case errors.Is(err, transcript.ErrInputEmpty):
					return fmt.Errorf("⚠️ Warning: input file '%s' is empty.", inputPath)
				default:
					return err
				}
			}

			printSummary(cmd.OutOrStdout(), report)

			if cfg.History.Enabled {
				if recordErr := recordRun(runCtx, cfg, req, report); recordErr != nil {
					logger.Warn("record run history failed", logging.Error(recordErr))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&inputPath, "input-jsonl", "", "Path to the transcript JSONL input")
	cmd.Flags().StringVar(&outputPath, "output-text", "", "Path for the deduplicated transcript")
	cmd.Flags().StringVar(&debugPath, "debug-clusters", "", "Write a per-cluster breakdown to this path")
	cmd.Flags().BoolVar(&filterContained, "filter-contained", false, "Drop utterances time-contained in longer ones before clustering")
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent speaker workers (0 uses the configured value)")
	_ = cmd.MarkFlagRequired("input-jsonl")
	_ = cmd.MarkFlagRequired("output-text")
	return cmd
}

func printSummary(out io.Writer, report *pipeline.Report) {
	sum := report.Summary
	fmt.Fprintln(out, "\n📊 Deduplication Summary")
	fmt.Fprintf(out, "Total users: %d\n", sum.Speakers)
	fmt.Fprintf(out, "Total utterances loaded: %d\n", sum.UtterancesIn)
	fmt.Fprintf(out, "Total deduplicated utterances written: %d\n", sum.UtterancesOut)
	fmt.Fprintf(out, "Average deduplication ratio: %s\n\n", formatPercent(sum.Ratio()))
	fmt.Fprintln(out, "Per-user stats:")
	for _, stats := range report.PerSpeaker {
		fmt.Fprintf(out, "  %s: %d → %d clusters (%s)\n", stats.Speaker, stats.Input, stats.Clusters, formatPercent(stats.Ratio()))
	}
}

func formatPercent(ratio float64) string {
	return fmt.Sprintf("%.2f%%", ratio*100)
}

func recordRun(ctx context.Context, cfg *config.Config, req pipeline.Request, report *pipeline.Report) error {
	store, err := runlog.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	stats := make([]runlog.SpeakerStat, 0, len(report.PerSpeaker))
	for _, s := range report.PerSpeaker {
		stats = append(stats, runlog.SpeakerStat{
			Speaker:  s.Speaker,
			Input:    s.Input,
			Clusters: s.Clusters,
			Kept:     s.Kept,
		})
	}

	run := &runlog.Run{
		InputPath:     req.InputPath,
		OutputPath:    req.OutputPath,
		Speakers:      report.Summary.Speakers,
		UtterancesIn:  report.Summary.UtterancesIn,
		UtterancesOut: report.Summary.UtterancesOut,
		Rejected:      report.Summary.Rejected,
		StartedAt:     report.Summary.StartedAt,
		FinishedAt:    report.Summary.FinishedAt,
		Stats:         stats,
	}
	return store.RecordRun(ctx, run)
}

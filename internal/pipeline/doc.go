// Package pipeline orchestrates one deduplication run end to end.
//
// It loads the JSONL transcript, partitions utterances by speaker, runs the
// dedupe engine across a bounded worker pool, reassembles the survivors into
// chronological output, and writes the transcript plus the optional cluster
// report. A flock on the output path keeps concurrent runs from clobbering
// each other's results.
//
// The pipeline reports what happened through the returned Report; rendering
// summaries and tables is the CLI's job.
package pipeline

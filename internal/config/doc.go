// Package config loads, normalizes, and validates transcription-stack
// configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the deduplication pipeline and CLI need: similarity thresholds, optional
// filters, worker counts, run-history storage, and log output.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config

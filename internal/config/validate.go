package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateDedupe(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	if c.History.Enabled && c.Paths.HistoryDir == "" {
		return errors.New("paths.history_dir must be set when history.enabled is true")
	}
	return nil
}

func (c *Config) validateDedupe() error {
	if c.Dedupe.MaxClusterSize <= 0 {
		return errors.New("dedupe.max_cluster_size must be positive")
	}
	if c.Dedupe.MinTokens <= 0 {
		return errors.New("dedupe.min_tokens must be positive")
	}
	thresholds := map[string]float64{
		"dedupe.jaccard_threshold":       c.Dedupe.JaccardThreshold,
		"dedupe.cosine_threshold":        c.Dedupe.CosineThreshold,
		"dedupe.merge_jaccard_threshold": c.Dedupe.MergeJaccardThreshold,
		"dedupe.merge_cosine_threshold":  c.Dedupe.MergeCosineThreshold,
	}
	for key, value := range thresholds {
		if value < 0 || value > 1 {
			return fmt.Errorf("%s must be between 0 and 1", key)
		}
	}
	if c.Dedupe.EnableTimeGate && c.Dedupe.MaxTimeDeltaSeconds <= 0 {
		return errors.New("dedupe.max_time_delta_seconds must be positive when dedupe.enable_time_gate is true")
	}
	if c.Dedupe.Workers < 1 {
		return errors.New("dedupe.workers must be at least 1")
	}
	return nil
}

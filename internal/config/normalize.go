package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeCanonicalize(); err != nil {
		return err
	}
	c.normalizeDedupe()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.HistoryDir) == "" {
		c.Paths.HistoryDir = defaultHistoryDir
	}
	if c.Paths.HistoryDir, err = expandPath(c.Paths.HistoryDir); err != nil {
		return fmt.Errorf("paths.history_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeCanonicalize() error {
	c.Canonicalize.ContractionsPath = strings.TrimSpace(c.Canonicalize.ContractionsPath)
	if c.Canonicalize.ContractionsPath == "" {
		return nil
	}
	expanded, err := expandPath(c.Canonicalize.ContractionsPath)
	if err != nil {
		return fmt.Errorf("canonicalize.contractions_path: %w", err)
	}
	c.Canonicalize.ContractionsPath = expanded
	return nil
}

func (c *Config) normalizeDedupe() {
	// Zero means unset in hand-built configs; fall back to the defaults.
	if c.Dedupe.Workers == 0 {
		c.Dedupe.Workers = defaultWorkers
	}
	if c.Dedupe.MaxTimeDeltaSeconds == 0 {
		c.Dedupe.MaxTimeDeltaSeconds = defaultMaxTimeDeltaSeconds
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	LogDir     string `toml:"log_dir"`
	HistoryDir string `toml:"history_dir"`
}

// Dedupe contains the similarity thresholds and gates for the
// deduplication engine.
type Dedupe struct {
	MaxClusterSize        int     `toml:"max_cluster_size"`
	MinTokens             int     `toml:"min_tokens"`
	JaccardThreshold      float64 `toml:"jaccard_threshold"`
	CosineThreshold       float64 `toml:"cosine_threshold"`
	MergeJaccardThreshold float64 `toml:"merge_jaccard_threshold"`
	MergeCosineThreshold  float64 `toml:"merge_cosine_threshold"`
	// EnableTimeGate skips comparing utterances whose start times are more
	// than MaxTimeDeltaSeconds apart. Off by default.
	EnableTimeGate      bool    `toml:"enable_time_gate"`
	MaxTimeDeltaSeconds float64 `toml:"max_time_delta_seconds"`
	// FilterContained drops utterances time-nested inside longer ones
	// before clustering.
	FilterContained bool `toml:"filter_contained"`
	// Workers bounds how many speaker groups deduplicate concurrently.
	Workers int `toml:"workers"`
}

// Canonicalize contains configuration for text canonicalization.
type Canonicalize struct {
	// ContractionsPath points at a YAML file of extra contraction rules,
	// applied after the built-in set. Empty means built-ins only.
	ContractionsPath string `toml:"contractions_path"`
}

// History contains configuration for the run-history database.
type History struct {
	Enabled bool `toml:"enabled"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for the deduplication
// pipeline.
//
// Configuration sections by subsystem:
//   - Paths: log and run-history directories
//   - Dedupe: clustering and merge-pass thresholds, filters, workers
//   - Canonicalize: extra contraction rules
//   - History: run-history database toggle
//   - Logging: log format and level
type Config struct {
	Paths        Paths        `toml:"paths"`
	Dedupe       Dedupe       `toml:"dedupe"`
	Canonicalize Canonicalize `toml:"canonicalize"`
	History      History      `toml:"history"`
	Logging      Logging      `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/transcription-stack/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			// An explicitly named file must exist; only the default
			// locations fall back to built-in settings.
			if errors.Is(err, fs.ErrNotExist) {
				return "", false, fmt.Errorf("config file not found at %s", expanded)
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("dedupe.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a run needs. The history
// directory is only created when run history is enabled.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.LogDir}
	if c.History.Enabled {
		dirs = append(dirs, c.Paths.HistoryDir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// HistoryDBPath returns the path of the run-history SQLite database.
func (c *Config) HistoryDBPath() string {
	return filepath.Join(c.Paths.HistoryDir, "history.db")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

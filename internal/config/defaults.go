package config

const (
	defaultLogDir     = "~/.local/share/transcription-stack/logs"
	defaultHistoryDir = "~/.local/share/transcription-stack/history"
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"

	defaultMaxClusterSize        = 100
	defaultMinTokens             = 3
	defaultJaccardThreshold      = 0.80
	defaultCosineThreshold       = 0.92
	defaultMergeJaccardThreshold = 0.85
	defaultMergeCosineThreshold  = 0.92
	defaultMaxTimeDeltaSeconds   = 60.0
	defaultWorkers               = 1
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:     defaultLogDir,
			HistoryDir: defaultHistoryDir,
		},
		Dedupe: Dedupe{
			MaxClusterSize:        defaultMaxClusterSize,
			MinTokens:             defaultMinTokens,
			JaccardThreshold:      defaultJaccardThreshold,
			CosineThreshold:       defaultCosineThreshold,
			MergeJaccardThreshold: defaultMergeJaccardThreshold,
			MergeCosineThreshold:  defaultMergeCosineThreshold,
			MaxTimeDeltaSeconds:   defaultMaxTimeDeltaSeconds,
			Workers:               defaultWorkers,
		},
		History: History{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

package config

// DiffConfig defines configuration for file diffing
type DiffConfig struct {
	ContextLines      int  `json:"context_lines,omitempty" yaml:"context_lines,omitempty" validate:"min=0"`
	MaxDiffFileSizeMB int  `json:"max_diff_file_size_mb,omitempty" yaml:"max_diff_file_size_mb,omitempty" validate:"min=1"`
	SemanticCleanup   bool `json:"semantic_cleanup,omitempty" yaml:"semantic_cleanup,omitempty"`
}

// NewDefaultDiffConfig creates default diff configuration
func NewDefaultDiffConfig() DiffConfig {
	return DiffConfig{
		ContextLines:      DefaultDiffContextLines,
		MaxDiffFileSizeMB: DefaultDiffMaxFileSizeMB,
		SemanticCleanup:   DefaultDiffSemanticCleanup,
	}
}

// CompareBatchConfig defines batching for per-file diff fan-out
type CompareBatchConfig struct {
	BatchSize           int `json:"batch_size,omitempty" yaml:"batch_size,omitempty" validate:"min=1"`
	MaxConcurrentBatch  int `json:"max_concurrent_batch,omitempty" yaml:"max_concurrent_batch,omitempty" validate:"min=1"`
	BatchTimeoutMinutes int `json:"batch_timeout_minutes,omitempty" yaml:"batch_timeout_minutes,omitempty" validate:"min=1"`
}

// NewDefaultCompareBatchConfig creates default batch configuration
func NewDefaultCompareBatchConfig() CompareBatchConfig {
	return CompareBatchConfig{
		BatchSize:           DefaultBatchSize,
		MaxConcurrentBatch:  DefaultDiffMaxConcurrentFile,
		BatchTimeoutMinutes: DefaultBatchTimeoutMinutes,
	}
}

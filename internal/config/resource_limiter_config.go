package config

// ResourceLimiterConfig defines limits applied while diffing large trees
type ResourceLimiterConfig struct {
	MaxMemoryMB        int64   `json:"max_memory_mb,omitempty" yaml:"max_memory_mb,omitempty" validate:"min=0"`
	MaxGoroutines      int     `json:"max_goroutines,omitempty" yaml:"max_goroutines,omitempty" validate:"min=0"`
	SystemMemThreshold float64 `json:"system_mem_threshold,omitempty" yaml:"system_mem_threshold,omitempty" validate:"min=0,max=100"`
}

// NewDefaultResourceLimiterConfig creates default resource limiter configuration
func NewDefaultResourceLimiterConfig() ResourceLimiterConfig {
	return ResourceLimiterConfig{
		MaxMemoryMB:        2048,
		MaxGoroutines:      10000,
		SystemMemThreshold: 90.0,
	}
}

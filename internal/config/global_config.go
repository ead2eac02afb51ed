package config

import (
	"encoding/json"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/snapdiff/snapdiff/internal/common"
)

// GlobalConfig contains all configuration sections for the application
type GlobalConfig struct {
	CompareBatchConfig    CompareBatchConfig    `json:"compare_batch_config,omitempty" yaml:"compare_batch_config,omitempty"`
	DiffConfig            DiffConfig            `json:"diff_config,omitempty" yaml:"diff_config,omitempty"`
	LogConfig             LogConfig             `json:"log_config,omitempty" yaml:"log_config,omitempty"`
	ReporterConfig        ReporterConfig        `json:"reporter_config,omitempty" yaml:"reporter_config,omitempty"`
	ResourceLimiterConfig ResourceLimiterConfig `json:"resource_limiter_config,omitempty" yaml:"resource_limiter_config,omitempty"`
	StorageConfig         StorageConfig         `json:"storage_config,omitempty" yaml:"storage_config,omitempty"`
}

// NewDefaultGlobalConfig creates a new GlobalConfig with default values
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		CompareBatchConfig:    NewDefaultCompareBatchConfig(),
		DiffConfig:            NewDefaultDiffConfig(),
		LogConfig:             NewDefaultLogConfig(),
		ReporterConfig:        NewDefaultReporterConfig(),
		ResourceLimiterConfig: NewDefaultResourceLimiterConfig(),
		StorageConfig:         NewDefaultStorageConfig(),
	}
}

// LoadGlobalConfig loads the configuration from a file or default locations.
// It determines the config file path using GetConfigPath and supports both
// JSON and YAML formats. A missing file yields the defaults.
func LoadGlobalConfig(providedPath string) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	filePath := GetConfigPath(providedPath)
	if filePath == "" {
		return cfg, nil
	}

	data, err := readConfigFile(filePath)
	if err != nil {
		return nil, common.WrapError(err, "failed to load config file content")
	}

	if err := parseConfigContent(data, filePath, cfg); err != nil {
		return nil, common.WrapError(err, "failed to parse config content")
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, common.WrapError(err, "config validation failed")
	}

	return cfg, nil
}

// parseConfigContent parses the config content based on file extension
func parseConfigContent(data []byte, filePath string, cfg *GlobalConfig) error {
	ext := filepath.Ext(filePath)
	if isYAMLFile(ext) {
		return parseYAMLConfig(data, filePath, cfg)
	}
	return parseJSONConfig(data, filePath, cfg)
}

// isYAMLFile checks if the file extension indicates a YAML file
func isYAMLFile(ext string) bool {
	return ext == ".yaml" || ext == ".yml"
}

// parseYAMLConfig parses YAML configuration
func parseYAMLConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return common.NewError("failed to unmarshal YAML from '%s': %w", filePath, err)
	}
	return nil
}

// parseJSONConfig parses JSON configuration
func parseJSONConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if err := json.Unmarshal(data, cfg); err != nil {
		return common.NewError("failed to unmarshal JSON from '%s': %w", filePath, err)
	}
	return nil
}

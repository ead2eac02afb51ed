package config

import (
	"os"
	"path/filepath"

	"github.com/snapdiff/snapdiff/internal/common"
)

// maxConfigFileSize caps config reads to guard against accidental huge files
const maxConfigFileSize = 10 * 1024 * 1024

// GetConfigPath determines the configuration file path based on command-line flags,
// environment variables, and default locations.
// Priority:
// 1. -config command-line flag
// 2. SNAPDIFF_CONFIG_PATH environment variable
// 3. config.yaml in the current working directory
// 4. config.json in the current working directory
// 5. config.yaml in the executable's directory
// 6. config.json in the executable's directory
func GetConfigPath(configFilePathFlag string) string {
	// 1. Command-line flag (highest priority if provided directly to this function)
	if configFilePathFlag != "" {
		if fileExists(configFilePathFlag) {
			return configFilePathFlag
		}
	}

	// 2. Environment variable
	envPath := os.Getenv("SNAPDIFF_CONFIG_PATH")
	if envPath != "" {
		if fileExists(envPath) {
			return envPath
		}
	}

	// Get current working directory and executable directory
	cwd, errCwd := os.Getwd()
	exePath, errExe := os.Executable()
	exeDir := ""
	if errExe == nil {
		exeDir = filepath.Dir(exePath)
	}

	defaultFiles := []string{"config.yaml", "config.json"}
	locations := []string{}

	if errCwd == nil {
		locations = append(locations, cwd)
	}
	if errExe == nil && exeDir != "" && (errCwd != nil || exeDir != cwd) {
		locations = append(locations, exeDir)
	}

	for _, loc := range locations {
		for _, file := range defaultFiles {
			path := filepath.Join(loc, file)
			if fileExists(path) {
				return path
			}
		}
	}

	return "" // No config file found
}

// readConfigFile reads a config file with a size cap
func readConfigFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, common.WrapError(err, "failed to stat config file: "+path)
	}
	if info.Size() > maxConfigFileSize {
		return nil, common.NewValidationError("config_file", path, "config file too large")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, common.WrapError(err, "failed to read config file: "+path)
	}

	return data, nil
}

// fileExists checks if a regular file exists at the given path
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

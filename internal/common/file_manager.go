package common

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// FileReadOptions controls how files are read
type FileReadOptions struct {
	MaxSize int64 // Maximum file size in bytes, 0 means unlimited
}

// DefaultFileReadOptions returns sensible defaults for reading files
func DefaultFileReadOptions() FileReadOptions {
	return FileReadOptions{
		MaxSize: 100 * 1024 * 1024, // 100MB
	}
}

// FileManager provides high-level file operations with standardized error handling and logging
type FileManager struct {
	logger zerolog.Logger
}

// NewFileManager creates a new FileManager instance
func NewFileManager(logger zerolog.Logger) *FileManager {
	return &FileManager{
		logger: logger.With().Str("component", "FileManager").Logger(),
	}
}

// FileExists checks if a file or directory exists
func (fm *FileManager) FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// ReadFile reads a file with the given options
func (fm *FileManager) ReadFile(path string, opts FileReadOptions) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, WrapError(err, "failed to stat file: "+path)
	}
	if info.IsDir() {
		return nil, NewValidationError("path", path, "is a directory, not a file")
	}
	if opts.MaxSize > 0 && info.Size() > opts.MaxSize {
		return nil, NewValidationError("path", path,
			"file exceeds maximum read size")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, WrapError(err, "failed to open file: "+path)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, WrapError(err, "failed to read file: "+path)
	}

	return data, nil
}

// EnsureDirectory creates a directory and its parents if they don't exist
func (fm *FileManager) EnsureDirectory(path string, perm fs.FileMode) error {
	if fm.FileExists(path) {
		info, err := os.Stat(path)
		if err != nil {
			return WrapError(err, "failed to check directory: "+path)
		}
		if !info.IsDir() {
			return NewValidationError("path", path, "exists but is not a directory")
		}
		return nil
	}

	if err := os.MkdirAll(path, perm); err != nil {
		return WrapError(err, "failed to create directory: "+path)
	}

	return nil
}

// WriteFile writes data to a file, creating parent directories as needed
func (fm *FileManager) WriteFile(path string, data []byte, perm fs.FileMode) error {
	if err := fm.EnsureDirectory(filepath.Dir(path), 0755); err != nil {
		return err
	}

	if err := os.WriteFile(path, data, perm); err != nil {
		return WrapError(err, "failed to write file: "+path)
	}

	fm.logger.Debug().Str("path", path).Int("bytes", len(data)).Msg("File written")
	return nil
}

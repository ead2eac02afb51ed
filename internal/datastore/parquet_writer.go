package datastore

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/snapdiff/snapdiff/internal/common"
	"github.com/snapdiff/snapdiff/internal/config"

	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"
)

// HistoryWriter persists the per-file records of a comparison session as a Parquet file.
type HistoryWriter struct {
	config      *config.StorageConfig
	logger      zerolog.Logger
	fileManager *common.FileManager
}

// HistoryWriterBuilder provides a fluent interface for creating HistoryWriter
type HistoryWriterBuilder struct {
	config *config.StorageConfig
	logger zerolog.Logger
}

// NewHistoryWriterBuilder creates a new HistoryWriterBuilder
func NewHistoryWriterBuilder(logger zerolog.Logger) *HistoryWriterBuilder {
	return &HistoryWriterBuilder{
		logger: logger.With().Str("component", "HistoryWriter").Logger(),
	}
}

// WithStorageConfig sets the storage configuration
func (b *HistoryWriterBuilder) WithStorageConfig(cfg *config.StorageConfig) *HistoryWriterBuilder {
	b.config = cfg
	return b
}

// Build creates a new HistoryWriter instance
func (b *HistoryWriterBuilder) Build() (*HistoryWriter, error) {
	if b.config == nil {
		return nil, common.NewValidationError("config", b.config, "storage config cannot be nil")
	}

	if b.config.ParquetBasePath == "" {
		b.logger.Warn().Msg("ParquetBasePath is empty in config")
	}

	return &HistoryWriter{
		config:      b.config,
		logger:      b.logger,
		fileManager: common.NewFileManager(b.logger),
	}, nil
}

// NewHistoryWriter creates a new HistoryWriter using builder pattern
func NewHistoryWriter(cfg *config.StorageConfig, logger zerolog.Logger) (*HistoryWriter, error) {
	return NewHistoryWriterBuilder(logger).
		WithStorageConfig(cfg).
		Build()
}

// WriteSession writes all records of a comparison session to
// <ParquetBasePath>/compares/<sessionID>.parquet and returns the file path.
func (hw *HistoryWriter) WriteSession(sessionID string, records []FileDiffRecord) (string, error) {
	if sessionID == "" {
		return "", common.NewValidationError("sessionID", sessionID, "session id cannot be empty")
	}

	startTime := time.Now()
	filePath := hw.sessionFilePath(sessionID)

	if err := hw.fileManager.EnsureDirectory(filepath.Dir(filePath), 0755); err != nil {
		return "", common.WrapError(err, "failed to create history directory")
	}

	file, err := os.Create(filePath)
	if err != nil {
		hw.logger.Error().Err(err).Str("file", filePath).Msg("Failed to create parquet file")
		return "", common.WrapError(err, fmt.Sprintf("failed to create parquet file %s", filePath))
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[FileDiffRecord](file, hw.getCompressionOption())

	if len(records) > 0 {
		if _, err := writer.Write(records); err != nil {
			writer.Close()
			return "", common.WrapError(err, "failed to write records to parquet file")
		}
	}

	if err := writer.Close(); err != nil {
		return "", common.WrapError(err, "failed to close parquet writer")
	}

	hw.logger.Info().
		Str("session_id", sessionID).
		Int("record_count", len(records)).
		Str("file", filePath).
		Dur("write_time", time.Since(startTime)).
		Msg("Comparison history written")

	return filePath, nil
}

func (hw *HistoryWriter) sessionFilePath(sessionID string) string {
	return filepath.Join(hw.config.ParquetBasePath, "compares", sessionID+".parquet")
}

// getCompressionOption returns the compression option based on configuration
func (hw *HistoryWriter) getCompressionOption() parquet.WriterOption {
	switch hw.config.CompressionCodec {
	case "gzip":
		return parquet.Compression(&parquet.Gzip)
	case "snappy":
		return parquet.Compression(&parquet.Snappy)
	case "zstd":
		return parquet.Compression(&parquet.Zstd)
	case "none", "uncompressed":
		return parquet.Compression(&parquet.Uncompressed)
	default:
		return parquet.Compression(&parquet.Zstd)
	}
}

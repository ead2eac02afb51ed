package datastore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/snapdiff/snapdiff/internal/common"
	"github.com/snapdiff/snapdiff/internal/config"

	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"
)

// HistoryReader reads previously persisted comparison sessions back from Parquet files.
type HistoryReader struct {
	config *config.StorageConfig
	logger zerolog.Logger
}

// NewHistoryReader creates a new HistoryReader.
func NewHistoryReader(cfg *config.StorageConfig, logger zerolog.Logger) (*HistoryReader, error) {
	if cfg == nil {
		return nil, common.NewValidationError("cfg", cfg, "storage config cannot be nil")
	}
	return &HistoryReader{
		config: cfg,
		logger: logger.With().Str("component", "HistoryReader").Logger(),
	}, nil
}

// ReadSession loads all records of one comparison session.
func (hr *HistoryReader) ReadSession(sessionID string) ([]FileDiffRecord, error) {
	filePath := filepath.Join(hr.config.ParquetBasePath, "compares", sessionID+".parquet")

	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, common.NewError(fmt.Sprintf("no history for session %s", sessionID))
		}
		return nil, common.WrapError(err, fmt.Sprintf("failed to open parquet file %s", filePath))
	}
	defer file.Close()

	reader := parquet.NewGenericReader[FileDiffRecord](file)
	defer reader.Close()

	var results []FileDiffRecord
	buf := make([]FileDiffRecord, 128)
	for {
		n, err := reader.Read(buf)
		results = append(results, buf[:n]...)
		if err != nil {
			if err == io.EOF {
				break
			}
			hr.logger.Error().Err(err).Str("file", filePath).Msg("Failed to read rows from parquet file")
			return nil, common.WrapError(err, fmt.Sprintf("failed to read rows from %s", filePath))
		}
	}

	hr.logger.Debug().Int("record_count", len(results)).Str("file", filePath).Msg("Read comparison history")
	return results, nil
}

// ListSessions returns the session IDs with persisted history, most recent first.
func (hr *HistoryReader) ListSessions() ([]string, error) {
	baseDir := filepath.Join(hr.config.ParquetBasePath, "compares")

	entries, err := os.ReadDir(baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, common.WrapError(err, fmt.Sprintf("failed to read history directory %s", baseDir))
	}

	var sessions []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".parquet" {
			continue
		}
		sessions = append(sessions, entry.Name()[:len(entry.Name())-len(".parquet")])
	}

	// Session IDs are timestamps, so lexicographic order is chronological.
	sort.Sort(sort.Reverse(sort.StringSlice(sessions)))
	return sessions, nil
}

package datastore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// CompareLog wraps the SQL database connection holding the comparison history table.
type CompareLog struct {
	db     *sql.DB
	logger zerolog.Logger
}

// CompareHistoryEntry represents a record in the compare_history table.
type CompareHistoryEntry struct {
	ID             int64
	SessionID      string
	BaseRef        string
	TargetRef      string
	FilesAdded     int
	FilesRemoved   int
	FilesModified  int
	WarningCount   int
	ReportFilePath sql.NullString
	StartedAt      time.Time
	DurationMs     int64
}

// NewCompareLog initializes a new CompareLog connection and ensures the schema is set up.
func NewCompareLog(dataSourceName string, logger zerolog.Logger) (*CompareLog, error) {
	log := logger.With().Str("component", "CompareLog").Logger()
	log.Info().Str("db_path", dataSourceName).Msg("Initializing comparison history database")

	dbDir := filepath.Dir(dataSourceName)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		log.Error().Err(err).Str("directory", dbDir).Msg("Failed to create database directory")
		return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
	}

	dbInstance, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		log.Error().Err(err).Str("db_path", dataSourceName).Msg("Failed to open database")
		return nil, fmt.Errorf("sql.Open failed for %s: %w", dataSourceName, err)
	}

	cl := &CompareLog{
		db:     dbInstance,
		logger: log,
	}

	if err := cl.InitSchema(); err != nil {
		cl.Close()
		log.Error().Err(err).Msg("Failed to initialize database schema")
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return cl, nil
}

// Close closes the database connection.
func (cl *CompareLog) Close() error {
	if cl.db != nil {
		return cl.db.Close()
	}
	return nil
}

// InitSchema creates the compare_history table if it doesn't already exist.
func (cl *CompareLog) InitSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS compare_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT UNIQUE,
		base_ref TEXT NOT NULL,
		target_ref TEXT NOT NULL,
		files_added INTEGER NOT NULL,
		files_removed INTEGER NOT NULL,
		files_modified INTEGER NOT NULL,
		warning_count INTEGER NOT NULL,
		report_file_path TEXT,
		started_at DATETIME NOT NULL,
		duration_ms INTEGER NOT NULL
	);`

	if _, err := cl.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create compare_history table: %w", err)
	}
	return nil
}

// RecordComparison inserts one comparison session into the history table.
func (cl *CompareLog) RecordComparison(entry CompareHistoryEntry) (int64, error) {
	query := `
	INSERT INTO compare_history
		(session_id, base_ref, target_ref, files_added, files_removed, files_modified, warning_count, report_file_path, started_at, duration_ms)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	result, err := cl.db.Exec(query,
		entry.SessionID,
		entry.BaseRef,
		entry.TargetRef,
		entry.FilesAdded,
		entry.FilesRemoved,
		entry.FilesModified,
		entry.WarningCount,
		entry.ReportFilePath,
		entry.StartedAt,
		entry.DurationMs,
	)
	if err != nil {
		cl.logger.Error().Err(err).Str("session_id", entry.SessionID).Msg("Failed to insert comparison record")
		return 0, fmt.Errorf("failed to insert comparison record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}

	cl.logger.Debug().Int64("id", id).Str("session_id", entry.SessionID).Msg("Comparison recorded")
	return id, nil
}

// ListRecent returns the most recent comparison records, newest first.
func (cl *CompareLog) ListRecent(limit int) ([]CompareHistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
	SELECT id, session_id, base_ref, target_ref, files_added, files_removed, files_modified, warning_count, report_file_path, started_at, duration_ms
	FROM compare_history
	ORDER BY started_at DESC
	LIMIT ?;`

	rows, err := cl.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query compare_history: %w", err)
	}
	defer rows.Close()

	var entries []CompareHistoryEntry
	for rows.Next() {
		var e CompareHistoryEntry
		if err := rows.Scan(
			&e.ID,
			&e.SessionID,
			&e.BaseRef,
			&e.TargetRef,
			&e.FilesAdded,
			&e.FilesRemoved,
			&e.FilesModified,
			&e.WarningCount,
			&e.ReportFilePath,
			&e.StartedAt,
			&e.DurationMs,
		); err != nil {
			return nil, fmt.Errorf("failed to scan compare_history row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

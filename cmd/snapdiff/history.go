package main

import (
	"database/sql"
	"fmt"
	"io"

	"github.com/snapdiff/snapdiff/internal/compare"
	"github.com/snapdiff/snapdiff/internal/config"
	"github.com/snapdiff/snapdiff/internal/datastore"

	"github.com/rs/zerolog"
)

// persistHistory records the session in the Parquet history store and the
// sqlite comparison log. History failures are logged but never fail the run.
func persistHistory(gCfg *config.GlobalConfig, zLogger zerolog.Logger, result *compare.CompareResult, reportPath, baseRef, targetRef string) {
	historyWriter, err := datastore.NewHistoryWriter(&gCfg.StorageConfig, zLogger)
	if err != nil {
		zLogger.Error().Err(err).Msg("Failed to initialize history writer, skipping history")
		return
	}

	if _, err := historyWriter.WriteSession(result.SessionID, datastore.RecordsFromResult(result)); err != nil {
		zLogger.Error().Err(err).Msg("Failed to persist comparison history")
	}

	compareLog, err := datastore.NewCompareLog(gCfg.StorageConfig.SQLiteDBPath, zLogger)
	if err != nil {
		zLogger.Error().Err(err).Msg("Failed to open comparison log, skipping")
		return
	}
	defer compareLog.Close()

	entry := datastore.CompareHistoryEntry{
		SessionID:      result.SessionID,
		BaseRef:        baseRef,
		TargetRef:      targetRef,
		FilesAdded:     result.FilesAdded,
		FilesRemoved:   result.FilesRemoved,
		FilesModified:  result.FilesModified,
		WarningCount:   len(result.Warnings),
		ReportFilePath: sql.NullString{String: reportPath, Valid: reportPath != ""},
		StartedAt:      result.StartedAt,
		DurationMs:     result.Duration.Milliseconds(),
	}
	if _, err := compareLog.RecordComparison(entry); err != nil {
		zLogger.Error().Err(err).Msg("Failed to record comparison in log")
	}
}

// listHistory prints recorded comparison sessions, newest first. When the
// sqlite log holds no rows it falls back to the session files present in the
// Parquet store.
func listHistory(w io.Writer, gCfg *config.GlobalConfig, zLogger zerolog.Logger) error {
	compareLog, err := datastore.NewCompareLog(gCfg.StorageConfig.SQLiteDBPath, zLogger)
	if err != nil {
		return err
	}
	defer compareLog.Close()

	entries, err := compareLog.ListRecent(0)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		return listParquetSessions(w, gCfg, zLogger)
	}

	for _, e := range entries {
		line := fmt.Sprintf("%s  %s -> %s  added=%d removed=%d modified=%d warnings=%d  %s",
			e.SessionID, e.BaseRef, e.TargetRef,
			e.FilesAdded, e.FilesRemoved, e.FilesModified, e.WarningCount,
			e.StartedAt.Format("2006-01-02 15:04:05"))
		if e.ReportFilePath.Valid {
			line += "  " + e.ReportFilePath.String
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

// listParquetSessions lists the session IDs found in the Parquet store
func listParquetSessions(w io.Writer, gCfg *config.GlobalConfig, zLogger zerolog.Logger) error {
	reader, err := datastore.NewHistoryReader(&gCfg.StorageConfig, zLogger)
	if err != nil {
		return err
	}

	sessions, err := reader.ListSessions()
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Fprintln(w, "no comparison history")
		return nil
	}

	for _, id := range sessions {
		fmt.Fprintln(w, id)
	}
	return nil
}

// showSession prints the stored per-file records of one comparison session
func showSession(w io.Writer, gCfg *config.GlobalConfig, zLogger zerolog.Logger, sessionID string) error {
	reader, err := datastore.NewHistoryReader(&gCfg.StorageConfig, zLogger)
	if err != nil {
		return err
	}

	records, err := reader.ReadSession(sessionID)
	if err != nil {
		return err
	}

	for _, r := range records {
		if r.Failed() {
			fmt.Fprintf(w, "%s: %s (skipped: %s)\n", r.Status, r.Path, *r.FailureReason)
			continue
		}
		fmt.Fprintf(w, "%s: %s (+%d -%d, %d hunks)\n", r.Status, r.Path, r.LinesAdded, r.LinesRemoved, r.HunkCount)
	}
	return nil
}

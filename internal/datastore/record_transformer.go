package datastore

import (
	"github.com/snapdiff/snapdiff/internal/compare"
)

// RecordsFromResult flattens a comparison result into Parquet rows.
func RecordsFromResult(result *compare.CompareResult) []FileDiffRecord {
	if result == nil {
		return nil
	}

	records := make([]FileDiffRecord, 0, len(result.Outcomes))
	comparedAt := result.StartedAt.UnixMilli()

	for _, outcome := range result.Outcomes {
		record := FileDiffRecord{
			SessionID:  result.SessionID,
			BaseID:     result.BaseID,
			TargetID:   result.TargetID,
			Path:       outcome.Record.Path,
			Status:     string(outcome.Record.Status),
			ComparedAt: comparedAt,
		}
		if outcome.Failed() {
			reason := outcome.FailureReason
			record.FailureReason = &reason
		} else if outcome.Diff != nil {
			record.LinesAdded = int32(outcome.Diff.LinesAdded)
			record.LinesRemoved = int32(outcome.Diff.LinesRemoved)
			record.HunkCount = int32(len(outcome.Diff.Hunks))
		}
		records = append(records, record)
	}
	return records
}

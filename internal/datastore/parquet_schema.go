package datastore

// FileDiffRecord is the Parquet row layout for one file outcome of a comparison.
// Optional columns use pointer types so absent values are stored as nulls.
type FileDiffRecord struct {
	SessionID     string  `parquet:"session_id"`
	BaseID        string  `parquet:"base_id"`
	TargetID      string  `parquet:"target_id"`
	Path          string  `parquet:"path"`
	Status        string  `parquet:"status"`
	LinesAdded    int32   `parquet:"lines_added"`
	LinesRemoved  int32   `parquet:"lines_removed"`
	HunkCount     int32   `parquet:"hunk_count"`
	FailureReason *string `parquet:"failure_reason,optional"`
	ComparedAt    int64   `parquet:"compared_at,timestamp(millisecond)"`
}

// Failed reports whether the file could not be diffed.
func (r FileDiffRecord) Failed() bool {
	return r.FailureReason != nil && *r.FailureReason != ""
}

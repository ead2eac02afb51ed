package datastore

import (
	"testing"
	"time"

	"github.com/snapdiff/snapdiff/internal/compare"
	"github.com/snapdiff/snapdiff/internal/differ"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordsFromResult_Nil(t *testing.T) {
	assert.Nil(t, RecordsFromResult(nil))
}

func TestRecordsFromResult_MapsOutcomes(t *testing.T) {
	startedAt := time.Date(2026, 8, 26, 8, 0, 0, 0, time.UTC)
	result := &compare.CompareResult{
		SessionID: "s1",
		BaseID:    "abc",
		TargetID:  "def",
		StartedAt: startedAt,
		Outcomes: []compare.FileOutcome{
			{
				Record: differ.ChangeRecord{Path: "ok.go", Status: differ.StatusModified},
				Diff: &differ.FileDiff{
					Path:         "ok.go",
					Status:       differ.StatusModified,
					Hunks:        make([]differ.Hunk, 2),
					LinesAdded:   4,
					LinesRemoved: 3,
				},
			},
			{
				Record:        differ.ChangeRecord{Path: "broken.bin", Status: differ.StatusAdded},
				FailureReason: "unreadable blob",
			},
		},
	}

	records := RecordsFromResult(result)

	require.Len(t, records, 2)

	ok := records[0]
	assert.Equal(t, "s1", ok.SessionID)
	assert.Equal(t, "abc", ok.BaseID)
	assert.Equal(t, "def", ok.TargetID)
	assert.Equal(t, "modified", ok.Status)
	assert.Equal(t, int32(4), ok.LinesAdded)
	assert.Equal(t, int32(3), ok.LinesRemoved)
	assert.Equal(t, int32(2), ok.HunkCount)
	assert.Equal(t, startedAt.UnixMilli(), ok.ComparedAt)
	assert.False(t, ok.Failed())

	broken := records[1]
	assert.Equal(t, "added", broken.Status)
	require.True(t, broken.Failed())
	assert.Equal(t, "unreadable blob", *broken.FailureReason)
}

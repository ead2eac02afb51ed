package differ

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileDiffer_ModifiedFile(t *testing.T) {
	fd, err := NewFileDiffer(DefaultFileDifferConfig(), zerolog.Nop())
	require.NoError(t, err)

	diff, err := fd.DiffVersions("main.go",
		FileVersion{Text: "a\nb\nc\n", Present: true},
		FileVersion{Text: "a\nx\nc\n", Present: true},
	)

	require.NoError(t, err)
	assert.Equal(t, "main.go", diff.Path)
	assert.Equal(t, StatusModified, diff.Status)
	assert.Equal(t, 1, diff.LinesAdded)
	assert.Equal(t, 1, diff.LinesRemoved)
	require.Len(t, diff.Hunks, 1)
}

func TestFileDiffer_AddedFile(t *testing.T) {
	fd, err := NewFileDiffer(DefaultFileDifferConfig(), zerolog.Nop())
	require.NoError(t, err)

	diff, err := fd.DiffVersions("new.txt",
		FileVersion{},
		FileVersion{Text: "hello\n", Present: true},
	)

	require.NoError(t, err)
	assert.Equal(t, StatusAdded, diff.Status)
	assert.Equal(t, 1, diff.LinesAdded)
	assert.Equal(t, 0, diff.LinesRemoved)
}

func TestFileDiffer_DeletedFile(t *testing.T) {
	fd, err := NewFileDiffer(DefaultFileDifferConfig(), zerolog.Nop())
	require.NoError(t, err)

	diff, err := fd.DiffVersions("old.txt",
		FileVersion{Text: "bye\n", Present: true},
		FileVersion{},
	)

	require.NoError(t, err)
	assert.Equal(t, StatusDeleted, diff.Status)
	assert.Equal(t, 0, diff.LinesAdded)
	assert.Equal(t, 1, diff.LinesRemoved)
}

func TestFileDiffer_EmptyFileIsNotAbsent(t *testing.T) {
	// A legitimately empty file must not be confused with a missing one.
	fd, err := NewFileDiffer(DefaultFileDifferConfig(), zerolog.Nop())
	require.NoError(t, err)

	diff, err := fd.DiffVersions("empty.txt",
		FileVersion{Text: "", Present: true},
		FileVersion{Text: "", Present: true},
	)

	require.NoError(t, err)
	assert.Equal(t, StatusModified, diff.Status)
	assert.Empty(t, diff.Hunks)
	assert.True(t, diff.Identical())
}

func TestFileDiffer_AddedEmptyFile(t *testing.T) {
	fd, err := NewFileDiffer(DefaultFileDifferConfig(), zerolog.Nop())
	require.NoError(t, err)

	diff, err := fd.DiffVersions("touched.txt",
		FileVersion{},
		FileVersion{Text: "", Present: true},
	)

	require.NoError(t, err)
	assert.Equal(t, StatusAdded, diff.Status)
	assert.Empty(t, diff.Hunks)
}

func TestFileDiffer_BothAbsentRejected(t *testing.T) {
	fd, err := NewFileDiffer(DefaultFileDifferConfig(), zerolog.Nop())
	require.NoError(t, err)

	diff, err := fd.DiffVersions("ghost.txt", FileVersion{}, FileVersion{})

	require.Error(t, err)
	assert.Nil(t, diff)
}

func TestFileDiffer_ContentSizeLimit(t *testing.T) {
	cfg := DefaultFileDifferConfig()
	cfg.MaxDiffFileSizeMB = 1
	fd, err := NewFileDiffer(cfg, zerolog.Nop())
	require.NoError(t, err)

	huge := strings.Repeat("x", 2*1024*1024)

	diff, err := fd.DiffVersions("big.bin",
		FileVersion{Text: huge, Present: true},
		FileVersion{Text: "small\n", Present: true},
	)

	require.Error(t, err)
	assert.Nil(t, diff)
}

func TestFileDiffer_InvalidContextSizeRejectedAtBuild(t *testing.T) {
	cfg := DefaultFileDifferConfig()
	cfg.ContextSize = -1

	fd, err := NewFileDiffer(cfg, zerolog.Nop())

	require.Error(t, err)
	assert.Nil(t, fd)
}

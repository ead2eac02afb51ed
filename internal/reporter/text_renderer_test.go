package reporter

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/snapdiff/snapdiff/internal/compare"
	"github.com/snapdiff/snapdiff/internal/config"
	"github.com/snapdiff/snapdiff/internal/differ"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFileDiff() *differ.FileDiff {
	return &differ.FileDiff{
		Path:   "pkg/thing.go",
		Status: differ.StatusModified,
		Hunks: []differ.Hunk{
			{
				Runs: []differ.LineRun{
					{Kind: differ.RunUnchanged, Lines: []string{"a\n"}},
					{Kind: differ.RunRemoved, Lines: []string{"b\n"}},
					{Kind: differ.RunAdded, Lines: []string{"x\n"}},
					{Kind: differ.RunUnchanged, Lines: []string{"c\n"}},
				},
			},
			{
				GapBefore: true,
				Runs: []differ.LineRun{
					{Kind: differ.RunUnchanged, Lines: []string{"m\n"}},
					{Kind: differ.RunAdded, Lines: []string{"n\n"}},
				},
			},
		},
		LinesAdded:   2,
		LinesRemoved: 1,
	}
}

func sampleResult() *compare.CompareResult {
	return &compare.CompareResult{
		SessionID:     "20260826-101500",
		BaseID:        "abc123",
		TargetID:      "def456",
		StartedAt:     time.Date(2026, 8, 26, 10, 15, 0, 0, time.UTC),
		FilesModified: 1,
		Outcomes: []compare.FileOutcome{
			{
				Record: differ.ChangeRecord{Path: "pkg/thing.go", Status: differ.StatusModified},
				Diff:   sampleFileDiff(),
			},
		},
	}
}

func TestTextRenderer_FileDiffPrefixesAndGap(t *testing.T) {
	renderer := NewTextRenderer()

	out := renderer.RenderFileDiff(sampleFileDiff())

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, "=== modified: pkg/thing.go (+2 -1)", lines[0])
	assert.Equal(t, []string{" a", "-b", "+x", " c", "...", " m", "+n"}, lines[1:])
}

func TestTextRenderer_LineWithoutTerminator(t *testing.T) {
	renderer := NewTextRenderer()
	diff := &differ.FileDiff{
		Path:   "f",
		Status: differ.StatusModified,
		Hunks: []differ.Hunk{{
			Runs: []differ.LineRun{{Kind: differ.RunAdded, Lines: []string{"no newline"}}},
		}},
		LinesAdded: 1,
	}

	out := renderer.RenderFileDiff(diff)

	assert.True(t, strings.HasSuffix(out, "+no newline\n"))
}

func TestTextRenderer_ResultSummaryAndFailures(t *testing.T) {
	renderer := NewTextRenderer()
	result := sampleResult()
	result.Warnings = []differ.WalkWarning{{Path: "locked", Reason: "permission denied"}}
	result.Outcomes = append(result.Outcomes, compare.FileOutcome{
		Record:        differ.ChangeRecord{Path: "big.bin", Status: differ.StatusModified},
		FailureReason: "content too large to diff",
	})

	out := renderer.RenderResult(result)

	assert.Contains(t, out, "Comparing abc123 -> def456 (session 20260826-101500)")
	assert.Contains(t, out, "0 added, 0 removed, 1 modified")
	assert.Contains(t, out, "warning: locked: permission denied")
	assert.Contains(t, out, "=== modified: big.bin (skipped: content too large to diff)")
	assert.Contains(t, out, "=== modified: pkg/thing.go (+2 -1)")
}

func TestTextRenderer_OutcomeWithoutDiffRendersPlaceholder(t *testing.T) {
	// An outcome can legitimately carry neither a diff nor a failure reason
	// only through a bug upstream; the renderer must degrade, not crash.
	renderer := NewTextRenderer()
	result := sampleResult()
	result.Outcomes = append(result.Outcomes, compare.FileOutcome{
		Record: differ.ChangeRecord{Path: "undiffed.txt", Status: differ.StatusModified},
	})

	var out string
	require.NotPanics(t, func() {
		out = renderer.RenderResult(result)
	})
	assert.Contains(t, out, "=== modified: undiffed.txt (diff unavailable)")
}

func TestReporter_GenerateTextReport(t *testing.T) {
	cfg := config.NewDefaultReporterConfig()
	cfg.Format = "text"
	cfg.OutputDir = t.TempDir()

	rep, err := NewReporterBuilder(zerolog.Nop()).
		WithReporterConfig(&cfg).
		Build()
	require.NoError(t, err)

	path, err := rep.GenerateReport(sampleResult(), "")

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "compare-20260826-101500.txt"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "+x")
}

func TestReporter_GenerateHTMLReport(t *testing.T) {
	cfg := config.NewDefaultReporterConfig()
	cfg.Format = "html"
	cfg.OutputDir = t.TempDir()

	rep, err := NewReporterBuilder(zerolog.Nop()).
		WithReporterConfig(&cfg).
		Build()
	require.NoError(t, err)

	path, err := rep.GenerateReport(sampleResult(), "")

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".html"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(content)
	assert.Contains(t, html, "pkg/thing.go")
	assert.Contains(t, html, "line-added")
	assert.Contains(t, html, "+2 -1")
}

func TestReporter_UnsupportedFormatRejected(t *testing.T) {
	cfg := config.NewDefaultReporterConfig()
	cfg.Format = "pdf"
	cfg.OutputDir = t.TempDir()

	rep, err := NewReporterBuilder(zerolog.Nop()).
		WithReporterConfig(&cfg).
		Build()
	require.NoError(t, err)

	path, err := rep.GenerateReport(sampleResult(), "")

	require.Error(t, err)
	assert.Empty(t, path)
}

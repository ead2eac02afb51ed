package reporter

import (
	"fmt"
	"strings"

	"github.com/snapdiff/snapdiff/internal/compare"
	"github.com/snapdiff/snapdiff/internal/differ"
)

const gapMarker = "..."

// TextRenderer renders comparison results as unified plain-text diffs.
type TextRenderer struct{}

// NewTextRenderer creates a new TextRenderer.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

// RenderResult renders all file outcomes of a comparison, sorted by path.
func (tr *TextRenderer) RenderResult(result *compare.CompareResult) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Comparing %s -> %s (session %s)\n", result.BaseID, result.TargetID, result.SessionID))
	sb.WriteString(fmt.Sprintf("%d added, %d removed, %d modified\n", result.FilesAdded, result.FilesRemoved, result.FilesModified))

	for _, warning := range result.Warnings {
		sb.WriteString(fmt.Sprintf("warning: %s: %s\n", warning.Path, warning.Reason))
	}

	for _, outcome := range result.Outcomes {
		sb.WriteByte('\n')
		if outcome.Failed() {
			sb.WriteString(fmt.Sprintf("=== %s: %s (skipped: %s)\n", outcome.Record.Status, outcome.Record.Path, outcome.FailureReason))
			continue
		}
		if outcome.Diff == nil {
			sb.WriteString(fmt.Sprintf("=== %s: %s (diff unavailable)\n", outcome.Record.Status, outcome.Record.Path))
			continue
		}
		sb.WriteString(tr.RenderFileDiff(outcome.Diff))
	}

	return sb.String()
}

// RenderFileDiff renders one file diff with hunk gap markers and
// line prefixes in the unified style.
func (tr *TextRenderer) RenderFileDiff(diff *differ.FileDiff) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("=== %s: %s (+%d -%d)\n", diff.Status, diff.Path, diff.LinesAdded, diff.LinesRemoved))

	for i, hunk := range diff.Hunks {
		if hunk.GapBefore || i > 0 {
			sb.WriteString(gapMarker)
			sb.WriteByte('\n')
		}
		for _, run := range hunk.Runs {
			prefix := runPrefix(run.Kind)
			for _, line := range run.Lines {
				sb.WriteString(prefix)
				sb.WriteString(line)
				if !strings.HasSuffix(line, "\n") {
					sb.WriteByte('\n')
				}
			}
		}
	}

	return sb.String()
}

func runPrefix(kind differ.RunKind) string {
	switch kind {
	case differ.RunAdded:
		return "+"
	case differ.RunRemoved:
		return "-"
	default:
		return " "
	}
}

package differ

import (
	"github.com/snapdiff/snapdiff/internal/common"
)

// DefaultContextSize is the number of unchanged lines shown on each side of a
// changed region.
const DefaultContextSize = 3

// HunkSegmenter repackages an edit script into display-ready hunks bounded by
// context lines. Segmentation is a pure function of (script, contextSize).
type HunkSegmenter struct {
	contextSize int
}

// NewHunkSegmenter creates a segmenter with the given context size. A
// negative context size is rejected.
func NewHunkSegmenter(contextSize int) (*HunkSegmenter, error) {
	if contextSize < 0 {
		return nil, common.NewValidationError("context_size", contextSize, "context size cannot be negative")
	}
	return &HunkSegmenter{contextSize: contextSize}, nil
}

// Segment walks the edit script with an Idle/InHunk state machine. Unchanged
// runs of more than mergeThreshold lines split hunks; shorter ones are
// absorbed whole as connective context.
func (hs *HunkSegmenter) Segment(script []LineRun) []Hunk {
	script = CoalesceRuns(script)
	if !scriptHasChanges(script) {
		return nil
	}

	// An unchanged gap of at most 2×context keeps adjacent changes in one hunk
	mergeThreshold := 2 * hs.contextSize

	var hunks []Hunk
	var current *Hunk        // nil while Idle
	var pendingLead []string // leading context for the next hunk, set while Idle
	gapBefore := false

	closeCurrent := func() {
		hunks = append(hunks, *current)
		current = nil
	}

	for i, run := range script {
		last := i == len(script)-1

		if run.Kind != RunUnchanged {
			if current == nil {
				current = &Hunk{GapBefore: gapBefore}
				if len(pendingLead) > 0 {
					current.Runs = append(current.Runs, LineRun{Kind: RunUnchanged, Lines: pendingLead})
				}
				pendingLead = nil
			}
			current.Runs = append(current.Runs, run)
			continue
		}

		if current == nil {
			// Idle: only the trailing context lines can ever be shown; the
			// rest precedes all remaining changes and is dropped.
			pendingLead = tailLines(run.Lines, hs.contextSize)
			continue
		}

		if last {
			// Final unchanged run: trailing context only, never more than
			// contextSize lines.
			if trail := headLines(run.Lines, hs.contextSize); len(trail) > 0 {
				current.Runs = append(current.Runs, LineRun{Kind: RunUnchanged, Lines: trail})
			}
			closeCurrent()
			continue
		}

		if len(run.Lines) <= mergeThreshold {
			// Close enough to the next change: absorb the whole run
			current.Runs = append(current.Runs, run)
			continue
		}

		// Gap too wide: close with trailing context, stage leading context
		// for the next hunk and mark the elision.
		if trail := headLines(run.Lines, hs.contextSize); len(trail) > 0 {
			current.Runs = append(current.Runs, LineRun{Kind: RunUnchanged, Lines: trail})
		}
		closeCurrent()
		pendingLead = tailLines(run.Lines, hs.contextSize)
		gapBefore = true
	}

	if current != nil {
		closeCurrent()
	}

	return hunks
}

// scriptHasChanges reports whether the script contains any added or removed run
func scriptHasChanges(script []LineRun) bool {
	for _, run := range script {
		if run.Kind != RunUnchanged && len(run.Lines) > 0 {
			return true
		}
	}
	return false
}

// headLines returns at most n leading lines
func headLines(lines []string, n int) []string {
	if len(lines) <= n {
		return lines
	}
	return lines[:n]
}

// tailLines returns at most n trailing lines
func tailLines(lines []string, n int) []string {
	if len(lines) <= n {
		return lines
	}
	return lines[len(lines)-n:]
}

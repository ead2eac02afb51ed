package differ

import (
	"github.com/sergi/go-diff/diffmatchpatch"
)

// EditScriptConfig holds configuration for edit script computation
type EditScriptConfig struct {
	// SemanticCleanup merges diff fragments at the line-token level to favor
	// human-readable scripts over strictly minimal ones.
	SemanticCleanup bool
}

// DefaultEditScriptConfig returns default configuration
func DefaultEditScriptConfig() EditScriptConfig {
	return EditScriptConfig{
		SemanticCleanup: false,
	}
}

// EditScriptComputer computes line-granularity edit scripts between two texts
type EditScriptComputer struct {
	dmp    *diffmatchpatch.DiffMatchPatch
	config EditScriptConfig
}

// NewEditScriptComputer creates a new edit script computer
func NewEditScriptComputer(config EditScriptConfig) *EditScriptComputer {
	return &EditScriptComputer{
		dmp:    diffmatchpatch.New(),
		config: config,
	}
}

// Compute returns the line-level edit script between original and modified.
// Each line token carries its terminator, so concatenating Unchanged+Removed
// runs reproduces original exactly and Unchanged+Added reproduces modified.
func (esc *EditScriptComputer) Compute(original, modified string) []LineRun {
	if original == modified {
		if original == "" {
			return nil
		}
		return []LineRun{{Kind: RunUnchanged, Lines: SplitLines(original)}}
	}

	// Line mode: map whole lines to runes, diff the rune strings, map back.
	// The diff then never splits inside a line.
	charsA, charsB, lineArray := esc.dmp.DiffLinesToChars(original, modified)
	diffs := esc.dmp.DiffMain(charsA, charsB, false)
	if esc.config.SemanticCleanup {
		diffs = esc.dmp.DiffCleanupSemantic(diffs)
	}
	diffs = esc.dmp.DiffCharsToLines(diffs, lineArray)

	script := make([]LineRun, 0, len(diffs))
	for _, d := range diffs {
		lines := SplitLines(d.Text)
		if len(lines) == 0 {
			continue
		}
		script = append(script, LineRun{
			Kind:  runKindForDiff(d.Type),
			Lines: lines,
		})
	}

	return CoalesceRuns(script)
}

// runKindForDiff maps a diffmatchpatch operation to a RunKind
func runKindForDiff(op diffmatchpatch.Operation) RunKind {
	switch op {
	case diffmatchpatch.DiffInsert:
		return RunAdded
	case diffmatchpatch.DiffDelete:
		return RunRemoved
	default:
		return RunUnchanged
	}
}

// CoalesceRuns merges consecutive runs of the same kind. The segmenter relies
// on this holding regardless of the underlying diff algorithm's output shape.
func CoalesceRuns(script []LineRun) []LineRun {
	if len(script) == 0 {
		return script
	}

	coalesced := make([]LineRun, 0, len(script))
	for _, run := range script {
		if len(run.Lines) == 0 {
			continue
		}
		if n := len(coalesced); n > 0 && coalesced[n-1].Kind == run.Kind {
			coalesced[n-1].Lines = append(coalesced[n-1].Lines, run.Lines...)
			continue
		}
		// Copy the lines so coalescing never aliases caller-owned slices
		lines := make([]string, len(run.Lines))
		copy(lines, run.Lines)
		coalesced = append(coalesced, LineRun{Kind: run.Kind, Lines: lines})
	}

	return coalesced
}

package differ

// ChangeStatus classifies a path-level change between two snapshots
type ChangeStatus string

const (
	StatusAdded    ChangeStatus = "added"
	StatusModified ChangeStatus = "modified"
	StatusDeleted  ChangeStatus = "deleted"
)

// ChangeRecord describes one changed blob path between two snapshots.
// Paths are forward-slash separated, relative, with no leading "./".
type ChangeRecord struct {
	Path   string
	Status ChangeStatus
}

// RunKind classifies a contiguous block of the line-based edit script
type RunKind int

const (
	RunUnchanged RunKind = iota
	RunAdded
	RunRemoved
)

// String returns string representation of RunKind
func (rk RunKind) String() string {
	switch rk {
	case RunAdded:
		return "added"
	case RunRemoved:
		return "removed"
	default:
		return "unchanged"
	}
}

// LineRun is a classified contiguous block of lines. Lines retain their
// trailing terminator, except possibly the final line of a file lacking one.
type LineRun struct {
	Kind  RunKind
	Lines []string
}

// Hunk is the unit of diff display: an ordered sequence of line runs bounded
// by context lines. GapBefore marks that elided unchanged content precedes it.
type Hunk struct {
	Runs      []LineRun
	GapBefore bool
}

// LineCounts returns the number of added and removed lines in the hunk
func (h *Hunk) LineCounts() (added, removed int) {
	for _, run := range h.Runs {
		switch run.Kind {
		case RunAdded:
			added += len(run.Lines)
		case RunRemoved:
			removed += len(run.Lines)
		}
	}
	return added, removed
}

// FileVersion carries one side of a file comparison. Present distinguishes a
// file absent from a snapshot from a legitimately empty file.
type FileVersion struct {
	Text    string
	Present bool
}

// FileDiff is the result of diffing one file's two versions
type FileDiff struct {
	Path         string
	Status       ChangeStatus
	Hunks        []Hunk
	LinesAdded   int
	LinesRemoved int
}

// Identical reports whether the diff found no line-level changes
func (fd *FileDiff) Identical() bool {
	return len(fd.Hunks) == 0
}

// WalkWarning records a tree entry that could not be read during the walk;
// the walk continued without it.
type WalkWarning struct {
	Path   string
	Reason string
}

// TreeDiffResult holds the changed-path records of a snapshot-pair diff and
// any per-entry warnings accumulated along the way.
type TreeDiffResult struct {
	Records  []ChangeRecord
	Warnings []WalkWarning
}

// Partial reports whether any entries were skipped during the walk
func (r *TreeDiffResult) Partial() bool {
	return len(r.Warnings) > 0
}

package differ

import (
	"context"
	"path"
	"sort"

	"github.com/rs/zerolog"

	"github.com/snapdiff/snapdiff/internal/common"
)

// EntryKind classifies a tree entry
type EntryKind int

const (
	// EntryBlob is a file entry
	EntryBlob EntryKind = iota
	// EntryTree is a directory entry
	EntryTree
	// EntryUnknown marks an entry whose kind or content identity could not be
	// read; the walk skips it with a warning
	EntryUnknown
)

// TreeEntry is one named child of a directory inside a snapshot
type TreeEntry struct {
	Name      string
	Kind      EntryKind
	ContentID string // content-addressed identity of a blob, empty for trees
}

// Snapshot is an opaque handle to a resolved tree snapshot
type Snapshot interface {
	// ID returns a stable identifier for the snapshot, e.g. a tree hash
	ID() string
}

// SnapshotSource supplies snapshot content to the differ. Implementations
// must be safe for concurrent use.
type SnapshotSource interface {
	// ListEntries returns the named children of dir ("" for the root) inside
	// the snapshot
	ListEntries(ctx context.Context, snap Snapshot, dir string) ([]TreeEntry, error)
	// ReadBlob returns the content of the blob at path inside the snapshot
	ReadBlob(ctx context.Context, snap Snapshot, path string) (string, error)
}

// TreeDiffer walks two snapshots in lock-step and emits per-path change
// records for blobs. It is stateless across invocations.
type TreeDiffer struct {
	source SnapshotSource
	logger zerolog.Logger
}

// TreeDifferBuilder provides a fluent interface for creating TreeDiffer
type TreeDifferBuilder struct {
	source SnapshotSource
	logger zerolog.Logger
}

// NewTreeDifferBuilder creates a new builder
func NewTreeDifferBuilder(logger zerolog.Logger) *TreeDifferBuilder {
	return &TreeDifferBuilder{logger: logger}
}

// WithSource sets the snapshot source
func (b *TreeDifferBuilder) WithSource(source SnapshotSource) *TreeDifferBuilder {
	b.source = source
	return b
}

// Build creates a new TreeDiffer instance
func (b *TreeDifferBuilder) Build() (*TreeDiffer, error) {
	if b.source == nil {
		return nil, common.NewValidationError("source", b.source, "snapshot source cannot be nil")
	}

	return &TreeDiffer{
		source: b.source,
		logger: b.logger.With().Str("component", "TreeDiffer").Logger(),
	}, nil
}

// NewTreeDiffer creates a TreeDiffer over the given source
func NewTreeDiffer(source SnapshotSource, logger zerolog.Logger) (*TreeDiffer, error) {
	return NewTreeDifferBuilder(logger).WithSource(source).Build()
}

// DiffTrees walks base and target in lock-step and returns one ChangeRecord
// per changed blob path, in lexicographic depth-first order. Entries that
// cannot be read are skipped and surfaced as warnings on the result.
func (td *TreeDiffer) DiffTrees(ctx context.Context, base, target Snapshot) (*TreeDiffResult, error) {
	if base == nil {
		return nil, NewSnapshotResolutionError("base", common.ErrInvalidInput)
	}
	if target == nil {
		return nil, NewSnapshotResolutionError("target", common.ErrInvalidInput)
	}

	result := &TreeDiffResult{}
	if err := td.diffDir(ctx, base, target, "", true, true, result); err != nil {
		return nil, err
	}

	td.logger.Debug().
		Str("base", base.ID()).
		Str("target", target.ID()).
		Int("changes", len(result.Records)).
		Int("warnings", len(result.Warnings)).
		Msg("Tree diff completed")

	return result, nil
}

// diffDir diffs one directory level. inBase/inTarget report whether the
// directory exists on each side; a missing side contributes no entries.
func (td *TreeDiffer) diffDir(ctx context.Context, base, target Snapshot, dir string, inBase, inTarget bool, result *TreeDiffResult) error {
	if err := ctx.Err(); err != nil {
		return common.WrapError(err, "tree walk cancelled")
	}

	baseEntries := td.listSide(ctx, base, dir, inBase, result)
	targetEntries := td.listSide(ctx, target, dir, inTarget, result)

	for _, name := range unionOfNames(baseEntries, targetEntries) {
		b, hasBase := baseEntries[name]
		t, hasTarget := targetEntries[name]
		entryPath := joinPath(dir, name)

		if hasBase && b.Kind == EntryUnknown {
			result.Warnings = append(result.Warnings, WalkWarning{
				Path:   entryPath,
				Reason: "entry unreadable in base snapshot",
			})
			hasBase = false
		}
		if hasTarget && t.Kind == EntryUnknown {
			result.Warnings = append(result.Warnings, WalkWarning{
				Path:   entryPath,
				Reason: "entry unreadable in target snapshot",
			})
			hasTarget = false
		}

		if err := td.diffEntry(ctx, base, target, entryPath, b, t, hasBase, hasTarget, result); err != nil {
			return err
		}
	}

	return nil
}

// diffEntry classifies one named entry present on either side
func (td *TreeDiffer) diffEntry(ctx context.Context, base, target Snapshot, entryPath string, b, t TreeEntry, hasBase, hasTarget bool, result *TreeDiffResult) error {
	switch {
	case hasBase && hasTarget && b.Kind == EntryBlob && t.Kind == EntryBlob:
		// Identity comparison over content-addressed IDs, never bytes
		if b.ContentID != t.ContentID {
			result.Records = append(result.Records, ChangeRecord{Path: entryPath, Status: StatusModified})
		}
		return nil

	case hasBase && hasTarget && b.Kind == EntryTree && t.Kind == EntryTree:
		return td.diffDir(ctx, base, target, entryPath, true, true, result)

	case hasBase && hasTarget:
		// Type flip: the blob side is a deletion or addition of the file,
		// and the tree side contributes its blob leaves.
		if b.Kind == EntryBlob {
			result.Records = append(result.Records, ChangeRecord{Path: entryPath, Status: StatusDeleted})
			return td.diffDir(ctx, base, target, entryPath, false, true, result)
		}
		result.Records = append(result.Records, ChangeRecord{Path: entryPath, Status: StatusAdded})
		return td.diffDir(ctx, base, target, entryPath, true, false, result)

	case hasBase:
		if b.Kind == EntryBlob {
			result.Records = append(result.Records, ChangeRecord{Path: entryPath, Status: StatusDeleted})
			return nil
		}
		return td.diffDir(ctx, base, target, entryPath, true, false, result)

	case hasTarget:
		if t.Kind == EntryBlob {
			result.Records = append(result.Records, ChangeRecord{Path: entryPath, Status: StatusAdded})
			return nil
		}
		return td.diffDir(ctx, base, target, entryPath, false, true, result)
	}

	return nil
}

// listSide lists one snapshot's entries for dir, converting a listing failure
// into a warning and an empty map so the walk continues.
func (td *TreeDiffer) listSide(ctx context.Context, snap Snapshot, dir string, present bool, result *TreeDiffResult) map[string]TreeEntry {
	if !present {
		return nil
	}

	entries, err := td.source.ListEntries(ctx, snap, dir)
	if err != nil {
		walkErr := NewTreeWalkError(dir, err)
		td.logger.Warn().Err(walkErr).Str("snapshot", snap.ID()).Msg("Skipping unreadable directory")
		result.Warnings = append(result.Warnings, WalkWarning{
			Path:   dir,
			Reason: walkErr.Error(),
		})
		return nil
	}

	byName := make(map[string]TreeEntry, len(entries))
	for _, e := range entries {
		byName[e.Name] = e
	}
	return byName
}

// unionOfNames returns the sorted union of entry names from both sides
func unionOfNames(base, target map[string]TreeEntry) []string {
	seen := make(map[string]struct{}, len(base)+len(target))
	names := make([]string, 0, len(base)+len(target))
	for name := range base {
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	for name := range target {
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// joinPath joins a parent directory and child name with forward slashes
func joinPath(dir, name string) string {
	if dir == "" {
		return name
	}
	return path.Join(dir, name)
}

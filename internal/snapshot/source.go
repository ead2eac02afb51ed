package snapshot

import (
	"context"
	"errors"

	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/rs/zerolog"

	"github.com/snapdiff/snapdiff/internal/differ"
)

// ErrBlobNotFound indicates a path does not exist as a file in a snapshot
var ErrBlobNotFound = errors.New("blob not found in snapshot")

// ErrNotGitSnapshot indicates a snapshot handle from a different source was
// passed to the git source
var ErrNotGitSnapshot = errors.New("snapshot was not produced by the git resolver")

// GitSource reads snapshot content out of a git object store. It implements
// differ.SnapshotSource and is safe for concurrent use: go-git object reads
// are independent and the source itself holds no mutable state.
type GitSource struct {
	logger zerolog.Logger
}

// NewGitSource creates a new git-backed snapshot source
func NewGitSource(logger zerolog.Logger) *GitSource {
	return &GitSource{
		logger: logger.With().Str("component", "GitSource").Logger(),
	}
}

// ListEntries returns the children of dir ("" for the root) in the snapshot
func (gs *GitSource) ListEntries(ctx context.Context, snap differ.Snapshot, dir string) ([]differ.TreeEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	gitSnap, ok := snap.(*GitSnapshot)
	if !ok {
		return nil, ErrNotGitSnapshot
	}

	tree := gitSnap.tree
	if dir != "" {
		subtree, err := tree.Tree(dir)
		if err != nil {
			return nil, differ.NewTreeWalkError(dir, err)
		}
		tree = subtree
	}

	entries := make([]differ.TreeEntry, 0, len(tree.Entries))
	for _, e := range tree.Entries {
		switch e.Mode {
		case filemode.Dir:
			entries = append(entries, differ.TreeEntry{
				Name: e.Name,
				Kind: differ.EntryTree,
			})
		case filemode.Regular, filemode.Executable, filemode.Symlink:
			entries = append(entries, differ.TreeEntry{
				Name:      e.Name,
				Kind:      differ.EntryBlob,
				ContentID: e.Hash.String(),
			})
		case filemode.Submodule:
			// Submodule pointers have no readable blob; they are not part of
			// either tree's file content.
			gs.logger.Debug().Str("path", dir+"/"+e.Name).Msg("Skipping submodule entry")
		default:
			entries = append(entries, differ.TreeEntry{
				Name: e.Name,
				Kind: differ.EntryUnknown,
			})
		}
	}

	return entries, nil
}

// ReadBlob returns the content of the file at path inside the snapshot
func (gs *GitSource) ReadBlob(ctx context.Context, snap differ.Snapshot, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	gitSnap, ok := snap.(*GitSnapshot)
	if !ok {
		return "", ErrNotGitSnapshot
	}

	file, err := gitSnap.tree.File(path)
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return "", differ.NewBlobReadError(snap.ID(), path, ErrBlobNotFound)
		}
		return "", differ.NewBlobReadError(snap.ID(), path, err)
	}

	content, err := file.Contents()
	if err != nil {
		return "", differ.NewBlobReadError(snap.ID(), path, err)
	}

	return content, nil
}

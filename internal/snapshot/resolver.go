package snapshot

import (
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/rs/zerolog"

	"github.com/snapdiff/snapdiff/internal/common"
	"github.com/snapdiff/snapdiff/internal/differ"
)

// GitSnapshot is a resolved, immutable view of a repository tree at one
// point in history. It implements differ.Snapshot.
type GitSnapshot struct {
	name string
	tree *object.Tree
	hash plumbing.Hash
}

// ID returns the content-addressed tree hash
func (s *GitSnapshot) ID() string {
	return s.tree.Hash.String()
}

// Name returns the reference name the snapshot was resolved from
func (s *GitSnapshot) Name() string {
	return s.name
}

// CommitHash returns the commit the snapshot points at
func (s *GitSnapshot) CommitHash() string {
	return s.hash.String()
}

// Resolver resolves reference names (branches, tags, hashes, HEAD) to
// snapshots of a repository
type Resolver struct {
	repo   *git.Repository
	logger zerolog.Logger
}

// NewResolver opens the repository at repoPath, walking up to find the .git
// directory the way git itself does
func NewResolver(repoPath string, logger zerolog.Logger) (*Resolver, error) {
	repo, err := git.PlainOpenWithOptions(repoPath, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, common.WrapError(err, "failed to open git repository at "+repoPath)
	}

	return NewResolverFromRepository(repo, logger), nil
}

// NewResolverFromRepository wraps an already-open repository
func NewResolverFromRepository(repo *git.Repository, logger zerolog.Logger) *Resolver {
	return &Resolver{
		repo:   repo,
		logger: logger.With().Str("component", "SnapshotResolver").Logger(),
	}
}

// Resolve resolves name to a snapshot. Resolution failures are fatal for the
// snapshot pair and reported as SnapshotResolutionError.
func (r *Resolver) Resolve(name string) (*GitSnapshot, error) {
	if name == "" {
		return nil, differ.NewSnapshotResolutionError(name, common.ErrInvalidInput)
	}

	hash, err := r.repo.ResolveRevision(plumbing.Revision(name))
	if err != nil {
		return nil, differ.NewSnapshotResolutionError(name, err)
	}

	commit, err := r.repo.CommitObject(*hash)
	if err != nil {
		return nil, differ.NewSnapshotResolutionError(name, err)
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, differ.NewSnapshotResolutionError(name, err)
	}

	r.logger.Debug().
		Str("name", name).
		Str("commit", hash.String()).
		Str("tree", tree.Hash.String()).
		Msg("Snapshot resolved")

	return &GitSnapshot{name: name, tree: tree, hash: *hash}, nil
}

// Repository returns the underlying repository
func (r *Resolver) Repository() *git.Repository {
	return r.repo
}

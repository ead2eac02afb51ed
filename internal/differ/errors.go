package differ

import "fmt"

// SnapshotResolutionError indicates a snapshot name could not be resolved to
// a root tree. The caller cannot proceed with that snapshot pair.
type SnapshotResolutionError struct {
	Name    string
	Wrapped error
}

func (e *SnapshotResolutionError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("failed to resolve snapshot '%s': %v", e.Name, e.Wrapped)
	}
	return fmt.Sprintf("failed to resolve snapshot '%s'", e.Name)
}

func (e *SnapshotResolutionError) Unwrap() error {
	return e.Wrapped
}

// NewSnapshotResolutionError creates a new snapshot resolution error
func NewSnapshotResolutionError(name string, wrapped error) *SnapshotResolutionError {
	return &SnapshotResolutionError{Name: name, Wrapped: wrapped}
}

// TreeWalkError indicates a single tree entry could not be read. It is
// recoverable: the walk skips the entry and records a warning.
type TreeWalkError struct {
	Path    string
	Wrapped error
}

func (e *TreeWalkError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("failed to read tree entry '%s': %v", e.Path, e.Wrapped)
	}
	return fmt.Sprintf("failed to read tree entry '%s'", e.Path)
}

func (e *TreeWalkError) Unwrap() error {
	return e.Wrapped
}

// NewTreeWalkError creates a new tree walk error
func NewTreeWalkError(path string, wrapped error) *TreeWalkError {
	return &TreeWalkError{Path: path, Wrapped: wrapped}
}

// BlobReadError indicates a file's content could not be fetched from a
// snapshot. It is fatal for that file's diff only.
type BlobReadError struct {
	Snapshot string
	Path     string
	Wrapped  error
}

func (e *BlobReadError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("failed to read blob '%s' from snapshot '%s': %v", e.Path, e.Snapshot, e.Wrapped)
	}
	return fmt.Sprintf("failed to read blob '%s' from snapshot '%s'", e.Path, e.Snapshot)
}

func (e *BlobReadError) Unwrap() error {
	return e.Wrapped
}

// NewBlobReadError creates a new blob read error
func NewBlobReadError(snapshot, path string, wrapped error) *BlobReadError {
	return &BlobReadError{Snapshot: snapshot, Path: path, Wrapped: wrapped}
}

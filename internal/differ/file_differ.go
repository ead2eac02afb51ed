package differ

import (
	"github.com/rs/zerolog"

	"github.com/snapdiff/snapdiff/internal/common"
)

// FileDifferConfig holds configuration for file diffing
type FileDifferConfig struct {
	ContextSize       int
	MaxDiffFileSizeMB int
	SemanticCleanup   bool
}

// DefaultFileDifferConfig returns default configuration
func DefaultFileDifferConfig() FileDifferConfig {
	return FileDifferConfig{
		ContextSize:       DefaultContextSize,
		MaxDiffFileSizeMB: 10,
		SemanticCleanup:   false,
	}
}

// FileDiffer computes display-ready hunks for a single file's two versions
type FileDiffer struct {
	computer      *EditScriptComputer
	segmenter     *HunkSegmenter
	sizeValidator *ContentSizeValidator
	logger        zerolog.Logger
}

// FileDifferBuilder provides a fluent interface for creating FileDiffer
type FileDifferBuilder struct {
	config FileDifferConfig
	logger zerolog.Logger
}

// NewFileDifferBuilder creates a new builder
func NewFileDifferBuilder(logger zerolog.Logger) *FileDifferBuilder {
	return &FileDifferBuilder{
		config: DefaultFileDifferConfig(),
		logger: logger,
	}
}

// WithConfig sets the file differ configuration
func (b *FileDifferBuilder) WithConfig(cfg FileDifferConfig) *FileDifferBuilder {
	b.config = cfg
	return b
}

// Build creates a new FileDiffer instance
func (b *FileDifferBuilder) Build() (*FileDiffer, error) {
	segmenter, err := NewHunkSegmenter(b.config.ContextSize)
	if err != nil {
		return nil, common.WrapError(err, "failed to build file differ")
	}

	return &FileDiffer{
		computer: NewEditScriptComputer(EditScriptConfig{
			SemanticCleanup: b.config.SemanticCleanup,
		}),
		segmenter:     segmenter,
		sizeValidator: NewContentSizeValidator(b.config.MaxDiffFileSizeMB),
		logger:        b.logger.With().Str("component", "FileDiffer").Logger(),
	}, nil
}

// NewFileDiffer creates a FileDiffer with the given configuration
func NewFileDiffer(cfg FileDifferConfig, logger zerolog.Logger) (*FileDiffer, error) {
	return NewFileDifferBuilder(logger).WithConfig(cfg).Build()
}

// DiffVersions diffs two versions of the file at path. Presence flags decide
// the change status so an absent version is never confused with an empty one.
func (fd *FileDiffer) DiffVersions(path string, original, modified FileVersion) (*FileDiff, error) {
	if !original.Present && !modified.Present {
		return nil, common.NewValidationError("versions", path, "file absent from both snapshots")
	}

	if err := fd.sizeValidator.ValidateSize(original.Text, modified.Text); err != nil {
		return nil, common.WrapError(err, "content too large to diff: "+path)
	}

	script := fd.computer.Compute(original.Text, modified.Text)
	hunks := fd.segmenter.Segment(script)

	result := &FileDiff{
		Path:   path,
		Status: statusForVersions(original, modified),
		Hunks:  hunks,
	}
	for _, h := range hunks {
		added, removed := h.LineCounts()
		result.LinesAdded += added
		result.LinesRemoved += removed
	}

	fd.logger.Debug().
		Str("path", path).
		Int("hunks", len(hunks)).
		Int("lines_added", result.LinesAdded).
		Int("lines_removed", result.LinesRemoved).
		Msg("File diff computed")

	return result, nil
}

// statusForVersions derives the change status from presence flags
func statusForVersions(original, modified FileVersion) ChangeStatus {
	switch {
	case !original.Present:
		return StatusAdded
	case !modified.Present:
		return StatusDeleted
	default:
		return StatusModified
	}
}

// DiffFile computes the hunks between two whole-file texts with the given
// context size. It assumes both versions exist; callers that know a side is
// absent should use FileDiffer.DiffVersions instead.
func DiffFile(original, modified string, contextSize int) ([]Hunk, error) {
	segmenter, err := NewHunkSegmenter(contextSize)
	if err != nil {
		return nil, err
	}

	computer := NewEditScriptComputer(DefaultEditScriptConfig())
	return segmenter.Segment(computer.Compute(original, modified)), nil
}

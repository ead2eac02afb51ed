package compare

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/snapdiff/snapdiff/internal/common"
	"github.com/snapdiff/snapdiff/internal/common/batchprocessor"
	"github.com/snapdiff/snapdiff/internal/config"
	"github.com/snapdiff/snapdiff/internal/differ"
)

// FileOutcome carries the per-file result of a comparison. A file that could
// not be diffed keeps its change record and carries FailureReason instead of
// a diff, so one unreadable file never sinks the whole comparison.
type FileOutcome struct {
	Record        differ.ChangeRecord
	Diff          *differ.FileDiff
	FailureReason string
}

// Failed reports whether this file's diff is unavailable
func (fo FileOutcome) Failed() bool {
	return fo.FailureReason != ""
}

// CompareResult is the aggregate outcome of comparing two snapshots
type CompareResult struct {
	SessionID     string
	BaseID        string
	TargetID      string
	Outcomes      []FileOutcome // in tree-walk emission order
	Warnings      []differ.WalkWarning
	StartedAt     time.Time
	Duration      time.Duration
	FilesAdded    int
	FilesRemoved  int
	FilesModified int
}

// Service runs snapshot comparisons. It is stateless and reentrant: all
// inputs arrive as parameters and concurrent comparisons do not interfere.
type Service struct {
	source     differ.SnapshotSource
	treeDiffer *differ.TreeDiffer
	fileDiffer *differ.FileDiffer
	batcher    *batchprocessor.BatchProcessor
	limiter    *common.ResourceLimiter
	sessionID  string
	logger     zerolog.Logger
}

// ServiceBuilder provides a fluent interface for creating a compare Service
type ServiceBuilder struct {
	source        differ.SnapshotSource
	diffConfig    differ.FileDifferConfig
	batchConfig   batchprocessor.BatchProcessorConfig
	limiterConfig common.ResourceLimiterConfig
	sessionID     string
	logger        zerolog.Logger
}

// NewServiceBuilder creates a new builder
func NewServiceBuilder(logger zerolog.Logger) *ServiceBuilder {
	return &ServiceBuilder{
		diffConfig:    differ.DefaultFileDifferConfig(),
		batchConfig:   batchprocessor.DefaultBatchProcessorConfig(),
		limiterConfig: common.DefaultResourceLimiterConfig(),
		logger:        logger,
	}
}

// WithSource sets the snapshot source
func (b *ServiceBuilder) WithSource(source differ.SnapshotSource) *ServiceBuilder {
	b.source = source
	return b
}

// WithDiffConfig sets the file differ configuration
func (b *ServiceBuilder) WithDiffConfig(cfg differ.FileDifferConfig) *ServiceBuilder {
	b.diffConfig = cfg
	return b
}

// WithBatchConfig sets the fan-out batching configuration
func (b *ServiceBuilder) WithBatchConfig(cfg batchprocessor.BatchProcessorConfig) *ServiceBuilder {
	b.batchConfig = cfg
	return b
}

// WithSessionID pins the session identifier used for all comparisons run by
// this service. Unset, every Compare call generates its own.
func (b *ServiceBuilder) WithSessionID(sessionID string) *ServiceBuilder {
	b.sessionID = sessionID
	return b
}

// WithGlobalConfig derives all tunables from the application configuration
func (b *ServiceBuilder) WithGlobalConfig(gCfg *config.GlobalConfig) *ServiceBuilder {
	b.diffConfig = differ.FileDifferConfig{
		ContextSize:       gCfg.DiffConfig.ContextLines,
		MaxDiffFileSizeMB: gCfg.DiffConfig.MaxDiffFileSizeMB,
		SemanticCleanup:   gCfg.DiffConfig.SemanticCleanup,
	}
	b.batchConfig = batchprocessor.BatchProcessorConfig{
		BatchSize:          gCfg.CompareBatchConfig.BatchSize,
		MaxConcurrentBatch: gCfg.CompareBatchConfig.MaxConcurrentBatch,
		BatchTimeout:       time.Duration(gCfg.CompareBatchConfig.BatchTimeoutMinutes) * time.Minute,
	}
	b.limiterConfig = common.ResourceLimiterConfig{
		MaxMemoryMB:        gCfg.ResourceLimiterConfig.MaxMemoryMB,
		MaxGoroutines:      gCfg.ResourceLimiterConfig.MaxGoroutines,
		SystemMemThreshold: gCfg.ResourceLimiterConfig.SystemMemThreshold,
	}
	return b
}

// Build creates the Service
func (b *ServiceBuilder) Build() (*Service, error) {
	if b.source == nil {
		return nil, common.NewValidationError("source", b.source, "snapshot source cannot be nil")
	}

	treeDiffer, err := differ.NewTreeDiffer(b.source, b.logger)
	if err != nil {
		return nil, common.WrapError(err, "failed to build tree differ")
	}

	fileDiffer, err := differ.NewFileDiffer(b.diffConfig, b.logger)
	if err != nil {
		return nil, common.WrapError(err, "failed to build file differ")
	}

	return &Service{
		source:     b.source,
		treeDiffer: treeDiffer,
		fileDiffer: fileDiffer,
		batcher:    batchprocessor.NewBatchProcessor(b.batchConfig, b.logger),
		limiter:    common.NewResourceLimiter(b.limiterConfig, b.logger),
		sessionID:  b.sessionID,
		logger:     b.logger.With().Str("component", "CompareService").Logger(),
	}, nil
}

// NewSessionID returns an identifier for one comparison run
func NewSessionID() string {
	return time.Now().Format("20060102-150405")
}

// Compare diffs the target snapshot against the base snapshot. Per-file
// failures are carried on the corresponding FileOutcome; only snapshot-level
// failures abort the comparison.
func (s *Service) Compare(ctx context.Context, base, target differ.Snapshot) (*CompareResult, error) {
	startedAt := time.Now()

	treeResult, err := s.treeDiffer.DiffTrees(ctx, base, target)
	if err != nil {
		return nil, common.WrapError(err, "tree diff failed")
	}

	sessionID := s.sessionID
	if sessionID == "" {
		sessionID = NewSessionID()
	}

	result := &CompareResult{
		SessionID: sessionID,
		BaseID:    base.ID(),
		TargetID:  target.ID(),
		Warnings:  treeResult.Warnings,
		StartedAt: startedAt,
	}

	outcomes := make([]FileOutcome, len(treeResult.Records))
	position := make(map[string]int, len(treeResult.Records))
	paths := make([]string, len(treeResult.Records))
	for i, record := range treeResult.Records {
		outcomes[i] = FileOutcome{Record: record}
		position[record.Path] = i
		paths[i] = record.Path

		switch record.Status {
		case differ.StatusAdded:
			result.FilesAdded++
		case differ.StatusDeleted:
			result.FilesRemoved++
		case differ.StatusModified:
			result.FilesModified++
		}
	}

	// Every batch writes only its own outcome slots, so no locking is needed
	// beyond the batch processor's own synchronization.
	batchResults, batchErr := s.batcher.ProcessBatches(ctx, paths, func(batchCtx context.Context, batch []string, batchIndex int) error {
		for _, path := range batch {
			if err := batchCtx.Err(); err != nil {
				return err
			}
			idx := position[path]
			outcomes[idx] = s.diffOne(batchCtx, base, target, outcomes[idx].Record)
		}
		return nil
	})
	if batchErr != nil {
		return nil, common.WrapError(batchErr, "file diff fan-out interrupted")
	}
	// Cancellation can land during the final batch, in which case the batch
	// processor reports it on the batch result rather than as a top-level error.
	if err := ctx.Err(); err != nil {
		return nil, common.WrapError(err, "file diff fan-out interrupted")
	}

	s.failUnprocessedOutcomes(batchResults, paths, outcomes, position)

	result.Outcomes = outcomes
	result.Duration = time.Since(startedAt)

	s.logger.Info().
		Str("session_id", result.SessionID).
		Str("base", result.BaseID).
		Str("target", result.TargetID).
		Int("files_changed", len(outcomes)).
		Int("warnings", len(result.Warnings)).
		Dur("duration", result.Duration).
		Msg("Comparison completed")

	return result, nil
}

// failUnprocessedOutcomes marks the outcomes an aborted batch never reached
// (batch timeout, mid-batch abort) as failed with the batch's error, so every
// outcome leaves Compare with either a diff or an explicit failure reason.
func (s *Service) failUnprocessedOutcomes(batchResults []batchprocessor.BatchResult, paths []string, outcomes []FileOutcome, position map[string]int) {
	var batches [][]string
	for _, br := range batchResults {
		if br.Error == nil {
			continue
		}
		if batches == nil {
			batches = s.batcher.SplitIntoBatches(paths)
		}
		if br.BatchIndex >= len(batches) {
			continue
		}

		reason := br.Error.Error()
		for _, path := range batches[br.BatchIndex] {
			outcome := &outcomes[position[path]]
			if outcome.Diff == nil && outcome.FailureReason == "" {
				outcome.FailureReason = reason
			}
		}

		s.logger.Warn().
			Err(br.Error).
			Int("batch_index", br.BatchIndex).
			Msg("Batch aborted, unprocessed files marked as failed")
	}
}

// diffOne fetches both versions of one changed path and diffs them
func (s *Service) diffOne(ctx context.Context, base, target differ.Snapshot, record differ.ChangeRecord) FileOutcome {
	outcome := FileOutcome{Record: record}

	if err := s.limiter.CheckAll(); err != nil {
		s.logger.Warn().Err(err).Str("path", record.Path).Msg("Skipping content diff under resource pressure")
		outcome.FailureReason = err.Error()
		return outcome
	}

	original := differ.FileVersion{}
	modified := differ.FileVersion{}

	if record.Status != differ.StatusAdded {
		text, err := s.source.ReadBlob(ctx, base, record.Path)
		if err != nil {
			outcome.FailureReason = err.Error()
			return outcome
		}
		original = differ.FileVersion{Text: text, Present: true}
	}

	if record.Status != differ.StatusDeleted {
		text, err := s.source.ReadBlob(ctx, target, record.Path)
		if err != nil {
			outcome.FailureReason = err.Error()
			return outcome
		}
		modified = differ.FileVersion{Text: text, Present: true}
	}

	diff, err := s.fileDiffer.DiffVersions(record.Path, original, modified)
	if err != nil {
		outcome.FailureReason = err.Error()
		return outcome
	}

	outcome.Diff = diff
	return outcome
}

package batchprocessor

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// BatchProcessorConfig holds configuration for batch processing
type BatchProcessorConfig struct {
	BatchSize          int           // Max paths per batch
	MaxConcurrentBatch int           // Max concurrent batches (1 means sequential)
	BatchTimeout       time.Duration // Timeout per batch
}

// DefaultBatchProcessorConfig returns default configuration
func DefaultBatchProcessorConfig() BatchProcessorConfig {
	return BatchProcessorConfig{
		BatchSize:          64,
		MaxConcurrentBatch: 4,
		BatchTimeout:       10 * time.Minute,
	}
}

// BatchResult holds the result of processing one batch of paths
type BatchResult struct {
	BatchIndex int
	Success    bool
	Error      error
	Processed  int
	Timestamp  time.Time
}

// ProcessFunc processes one batch of paths. Implementations must be safe for
// concurrent invocation across batches.
type ProcessFunc func(ctx context.Context, batch []string, batchIndex int) error

// BatchProcessor splits a changed-path list into batches and runs a ProcessFunc
// over them, sequentially or concurrently depending on configuration.
type BatchProcessor struct {
	config BatchProcessorConfig
	logger zerolog.Logger
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(config BatchProcessorConfig, logger zerolog.Logger) *BatchProcessor {
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultBatchProcessorConfig().BatchSize
	}
	if config.MaxConcurrentBatch <= 0 {
		config.MaxConcurrentBatch = 1
	}
	if config.BatchTimeout <= 0 {
		config.BatchTimeout = DefaultBatchProcessorConfig().BatchTimeout
	}

	return &BatchProcessor{
		config: config,
		logger: logger.With().Str("component", "BatchProcessor").Logger(),
	}
}

// SplitIntoBatches splits a slice of paths into batches
func (bp *BatchProcessor) SplitIntoBatches(paths []string) [][]string {
	if len(paths) <= bp.config.BatchSize {
		return [][]string{paths}
	}

	var batches [][]string
	for i := 0; i < len(paths); i += bp.config.BatchSize {
		end := i + bp.config.BatchSize
		if end > len(paths) {
			end = len(paths)
		}
		batches = append(batches, paths[i:end])
	}

	return batches
}

// ProcessBatches runs processFunc over all batches. A failing batch does not
// stop the remaining batches; its error is recorded on the corresponding
// BatchResult. Context cancellation stops scheduling of new batches.
func (bp *BatchProcessor) ProcessBatches(
	ctx context.Context,
	paths []string,
	processFunc ProcessFunc,
) ([]BatchResult, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	batches := bp.SplitIntoBatches(paths)
	bp.logger.Debug().
		Int("total_paths", len(paths)).
		Int("batch_count", len(batches)).
		Int("batch_size", bp.config.BatchSize).
		Msg("Starting batch processing")

	if bp.config.MaxConcurrentBatch == 1 {
		return bp.processSequentially(ctx, batches, processFunc)
	}

	return bp.processConcurrently(ctx, batches, processFunc)
}

// processSequentially processes batches one by one
func (bp *BatchProcessor) processSequentially(
	ctx context.Context,
	batches [][]string,
	processFunc ProcessFunc,
) ([]BatchResult, error) {
	results := make([]BatchResult, 0, len(batches))

	for i, batch := range batches {
		select {
		case <-ctx.Done():
			bp.logger.Info().
				Int("completed_batches", i).
				Int("total_batches", len(batches)).
				Msg("Batch processing interrupted by context cancellation")
			return results, ctx.Err()
		default:
		}

		batchCtx, cancel := context.WithTimeout(ctx, bp.config.BatchTimeout)
		err := processFunc(batchCtx, batch, i)
		cancel()

		results = append(results, BatchResult{
			BatchIndex: i,
			Success:    err == nil,
			Error:      err,
			Processed:  len(batch),
			Timestamp:  time.Now(),
		})

		if err != nil {
			bp.logger.Error().
				Err(err).
				Int("batch_index", i).
				Msg("Batch processing failed")
			// Continue processing other batches even if one fails
		}
	}

	return results, nil
}

// processConcurrently processes batches concurrently with a semaphore limit
func (bp *BatchProcessor) processConcurrently(
	ctx context.Context,
	batches [][]string,
	processFunc ProcessFunc,
) ([]BatchResult, error) {
	semaphore := make(chan struct{}, bp.config.MaxConcurrentBatch)
	results := make([]BatchResult, len(batches))
	var wg sync.WaitGroup
	var mu sync.Mutex

	for i, batch := range batches {
		select {
		case <-ctx.Done():
			bp.logger.Info().
				Int("started_batches", i).
				Int("total_batches", len(batches)).
				Msg("Batch processing interrupted by context cancellation")
			wg.Wait()
			return results[:i], ctx.Err()
		case semaphore <- struct{}{}:
		}

		wg.Add(1)
		go func(batchIndex int, batchData []string) {
			defer wg.Done()
			defer func() { <-semaphore }()

			batchCtx, cancel := context.WithTimeout(ctx, bp.config.BatchTimeout)
			defer cancel()

			err := processFunc(batchCtx, batchData, batchIndex)

			result := BatchResult{
				BatchIndex: batchIndex,
				Success:    err == nil,
				Error:      err,
				Processed:  len(batchData),
				Timestamp:  time.Now(),
			}

			mu.Lock()
			results[batchIndex] = result
			mu.Unlock()

			if err != nil {
				bp.logger.Error().
					Err(err).
					Int("batch_index", batchIndex).
					Msg("Concurrent batch processing failed")
			}
		}(i, batch)
	}

	wg.Wait()
	return results, nil
}

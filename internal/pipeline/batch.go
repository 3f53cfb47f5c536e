package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/mediaredact/internal/model"
)

// DefaultConcurrency is the number of notifications filtered at once
// when WithConcurrency is not given.
const DefaultConcurrency = 10

// BatchProcessor filters many notifications concurrently.
// It uses errgroup to manage goroutines and respect the concurrency limit.
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each notification.
	// Steps hold no per-notification state, but a fresh pipeline keeps
	// step order and options from leaking between goroutines.
	pipelineFactory func() *Pipeline

	// concurrency is the maximum number of notifications in flight.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent notifications.
// Non-positive values keep DefaultConcurrency.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
// Filter.Pipeline is the usual factory.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch filters the notifications in place and returns them in
// input order. Notifications whose activity is not a new post are
// returned untouched. A failed pipeline is recorded in its notification
// and does not stop the others; the returned error is non-nil only when
// ctx ends before every notification was started.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, notifications []*model.Notification) ([]*model.Notification, error) {
	err := bp.ProcessBatchWithCallback(ctx, notifications, nil)
	return notifications, err
}

// ProcessBatchWithCallback filters the notifications and calls callback
// with each finished notification and its index in the input slice.
//
// The callback is called from the goroutine that finished the
// notification, so it must be safe for concurrent use. A nil callback is
// allowed.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	notifications []*model.Notification,
	callback func(n *model.Notification, index int),
) error {
	bp.logger.Debug("starting batch processing",
		"total", len(notifications),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, n := range notifications {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			if err := bp.pipelineFactory().Execute(ctx, n); err != nil {
				bp.logger.Warn("notification filtering failed",
					"source", n.Source,
					"error", err,
				)
			}

			if callback != nil {
				callback(n, i)
			}
			return nil
		})
	}

	err := g.Wait()

	bp.logger.Debug("batch processing complete",
		"total", len(notifications),
		"elapsed", time.Since(startTime),
	)

	return err
}

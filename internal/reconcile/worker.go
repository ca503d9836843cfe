// Package reconcile closes the persist/publish gap: a crash after the task is
// durably finalized but before the broker acknowledged the event leaves the
// record unpublished. The worker periodically re-publishes such records.
// Delivery stays at-least-once; consumers deduplicate on registrationId.
package reconcile

import (
	"context"
	"log/slog"
	"time"

	"dokdig/internal/events"
	"dokdig/internal/task/metrics"
	"dokdig/internal/task/models"
)

// Store lists finalized tasks pending publish and stamps acknowledgments.
type Store interface {
	ListPendingPublish(ctx context.Context, limit int) ([]models.Task, error)
	MarkPublished(ctx context.Context, taskID string, at time.Time) error
}

// Publisher publishes finalized records, blocking for acknowledgment.
type Publisher interface {
	Publish(ctx context.Context, record events.FinalizedRecord) error
}

// Worker sweeps pending-publish tasks on a fixed interval.
type Worker struct {
	store     Store
	publisher Publisher
	interval  time.Duration
	batchSize int
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// NewWorker constructs a republish worker.
func NewWorker(store Store, publisher Publisher, interval time.Duration, batchSize int, logger *slog.Logger, m *metrics.Metrics) *Worker {
	return &Worker{
		store:     store,
		publisher: publisher,
		interval:  interval,
		batchSize: batchSize,
		logger:    logger,
		metrics:   m,
	}
}

// Run sweeps until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

// sweep republishes one batch. Individual failures are logged and retried on
// the next sweep; one bad record must not block the rest.
func (w *Worker) sweep(ctx context.Context) {
	tasks, err := w.store.ListPendingPublish(ctx, w.batchSize)
	if err != nil {
		w.logger.ErrorContext(ctx, "list pending publish failed", "error", err)
		return
	}
	for _, task := range tasks {
		if task.Registration == nil || task.FinalizedAt == nil {
			// Should be unreachable given the store predicate.
			w.logger.ErrorContext(ctx, "pending-publish task missing registration",
				"task_id", task.TaskID)
			continue
		}
		if err := w.publisher.Publish(ctx, events.NewFinalizedRecord(task, false)); err != nil {
			w.logger.WarnContext(ctx, "republish failed",
				"task_id", task.TaskID, "error", err)
			continue
		}
		if err := w.store.MarkPublished(ctx, task.TaskID, time.Now()); err != nil {
			w.logger.WarnContext(ctx, "failed to stamp publish acknowledgment",
				"task_id", task.TaskID, "error", err)
			continue
		}
		w.metrics.RecordRepublished()
		w.logger.InfoContext(ctx, "republished finalized record",
			"task_id", task.TaskID,
			"registration_id", task.RegistrationID.String())
	}
}

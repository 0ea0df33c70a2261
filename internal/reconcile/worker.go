package reconcile

import (
	"context"
	"log"
	"time"
)

// PendingSource lists sessions whose local payment state is still undecided
// after a grace period.
type PendingSource interface {
	PendingSessions(ctx context.Context, olderThan time.Time, limit int) ([]string, error)
}

// OutcomeSink persists terminal reconciliation outcomes.
type OutcomeSink interface {
	RecordOutcome(ctx context.Context, sessionID string, state State) error
}

// Worker sweeps pending payment transactions and runs one reconciler per
// session. Sessions are handled sequentially, so no two reconcilers ever
// confirm the same session concurrently. The webhook normally settles a
// session long before the sweep reaches it; the worker catches the ones where
// webhook delivery failed.
type Worker struct {
	tick        time.Duration
	gracePeriod time.Duration
	batchSize   int
	pending     PendingSource
	sink        OutcomeSink
	reconciler  *Reconciler
}

func NewWorker(pending PendingSource, sink OutcomeSink, reconciler *Reconciler) *Worker {
	return &Worker{
		tick:        time.Minute,
		gracePeriod: 5 * time.Minute,
		batchSize:   20,
		pending:     pending,
		sink:        sink,
		reconciler:  reconciler,
	}
}

func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			w.sweep(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (w *Worker) sweep(ctx context.Context) {
	olderThan := time.Now().Add(-w.gracePeriod)
	sessions, err := w.pending.PendingSessions(ctx, olderThan, w.batchSize)
	if err != nil {
		log.Printf("failed to list pending sessions: %v", err)
		return
	}

	for _, sessionID := range sessions {
		result, err := w.reconciler.Run(ctx, sessionID)
		if err != nil {
			// context cancelled mid-poll; stop without recording anything
			return
		}

		if errRecord := w.sink.RecordOutcome(ctx, sessionID, result.State); errRecord != nil {
			log.Printf("failed to record outcome %s for session %s: %v", result.State, sessionID, errRecord)
			continue
		}

		if result.State != StateSuccess {
			log.Printf("session %s reconciled to %s after %d attempts", sessionID, result.State, result.Attempts)
		}
	}
}

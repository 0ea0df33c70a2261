package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/abnormalforhad/Spicy-website/internal/domain"
	"github.com/abnormalforhad/Spicy-website/internal/payments"
	"github.com/abnormalforhad/Spicy-website/internal/reconcile"
)

// Status reports the payment state for a session. An already-paid transaction
// is answered locally without a provider round trip; otherwise the provider is
// queried and any change is persisted before answering.
func (s *Service) Status(ctx context.Context, sessionID string) (*payments.SessionStatus, error) {
	txn, err := s.txns.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if txn.PaymentStatus == domain.PaymentStatusPaid {
		return &payments.SessionStatus{
			Status:        payments.SessionComplete,
			PaymentStatus: payments.PaymentPaid,
		}, nil
	}

	status, err := s.sessions.GetSessionStatus(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := s.applyProviderStatus(ctx, txn, status); err != nil {
		return nil, err
	}

	return status, nil
}

func (s *Service) applyProviderStatus(ctx context.Context, txn *domain.PaymentTransaction, status *payments.SessionStatus) error {
	switch {
	case status.PaymentStatus == payments.PaymentPaid,
		status.PaymentStatus == payments.PaymentNoPaymentRequired && status.Status == payments.SessionComplete:
		return s.markPaid(ctx, txn)
	case status.Status == payments.SessionExpired:
		if txn.PaymentStatus == domain.PaymentStatusExpired {
			return nil
		}
		return s.txns.UpdatePaymentStatus(ctx, txn.SessionID, domain.PaymentStatusExpired, domain.TransactionStatusFailed)
	default:
		return nil
	}
}

// ApplyWebhook records the payment outcome delivered by the provider webhook,
// the authoritative settlement path.
func (s *Service) ApplyWebhook(ctx context.Context, sessionID string, payment domain.PaymentStatus) error {
	txn, err := s.txns.GetBySessionID(ctx, sessionID)
	if err != nil {
		return err
	}

	switch payment {
	case domain.PaymentStatusPaid:
		if txn.PaymentStatus == domain.PaymentStatusPaid {
			return nil // webhook redelivery
		}
		return s.markPaid(ctx, txn)
	case domain.PaymentStatusExpired:
		return s.txns.UpdatePaymentStatus(ctx, sessionID, domain.PaymentStatusExpired, domain.TransactionStatusFailed)
	case domain.PaymentStatusFailed:
		return s.txns.UpdatePaymentStatus(ctx, sessionID, domain.PaymentStatusFailed, domain.TransactionStatusFailed)
	default:
		return nil
	}
}

// PendingSessions lists sessions whose transactions are still initiated after
// the grace period. Feeds the reconcile worker.
func (s *Service) PendingSessions(ctx context.Context, olderThan time.Time, limit int) ([]string, error) {
	return s.txns.ListPendingSessions(ctx, olderThan, limit)
}

// RecordOutcome persists a terminal reconciliation outcome. Error and timeout
// outcomes are deliberately not recorded: the session stays pending and the
// next sweep (or the webhook) settles it.
func (s *Service) RecordOutcome(ctx context.Context, sessionID string, state reconcile.State) error {
	switch state {
	case reconcile.StateSuccess:
		txn, err := s.txns.GetBySessionID(ctx, sessionID)
		if err != nil {
			return err
		}
		if txn.PaymentStatus == domain.PaymentStatusPaid {
			return nil
		}
		return s.markPaid(ctx, txn)
	case reconcile.StateExpired:
		return s.txns.UpdatePaymentStatus(ctx, sessionID, domain.PaymentStatusExpired, domain.TransactionStatusFailed)
	case reconcile.StateError, reconcile.StateTimeout:
		return nil
	default:
		return fmt.Errorf("unexpected reconciliation state %q for session %s", state, sessionID)
	}
}

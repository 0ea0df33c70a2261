package checkout

import (
	"context"
	"sync"
	"time"

	"github.com/abnormalforhad/Spicy-website/internal/domain"
	"github.com/abnormalforhad/Spicy-website/internal/events"
	"github.com/abnormalforhad/Spicy-website/internal/payments"
	"github.com/abnormalforhad/Spicy-website/internal/repository"
)

type mockOrderRepo struct {
	m         sync.Mutex
	orders    map[string]*domain.Order
	createErr error
	linkErr   error
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[string]*domain.Order)}
}

func (m *mockOrderRepo) CreateOrder(_ context.Context, o *domain.Order) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	cp := *o
	m.orders[o.ID] = &cp
	return nil
}

func (m *mockOrderRepo) GetOrder(_ context.Context, id string) (*domain.Order, error) {
	m.m.Lock()
	defer m.m.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *mockOrderRepo) SetOrderSession(_ context.Context, orderID, sessionID string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.linkErr != nil {
		return m.linkErr
	}
	o, ok := m.orders[orderID]
	if !ok {
		return repository.ErrOrderNotFound
	}
	o.StripeSessionID = sessionID
	return nil
}

func (m *mockOrderRepo) SetOrderStatus(_ context.Context, orderID string, status domain.OrderStatus) error {
	m.m.Lock()
	defer m.m.Unlock()
	o, ok := m.orders[orderID]
	if !ok {
		return repository.ErrOrderNotFound
	}
	o.Status = status
	return nil
}

func (m *mockOrderRepo) single() *domain.Order {
	m.m.Lock()
	defer m.m.Unlock()
	for _, o := range m.orders {
		cp := *o
		return &cp
	}
	return nil
}

type mockTxnRepo struct {
	m         sync.Mutex
	txns      map[string]*domain.PaymentTransaction
	createErr error
	updateErr error
}

func newMockTxnRepo() *mockTxnRepo {
	return &mockTxnRepo{txns: make(map[string]*domain.PaymentTransaction)}
}

func (m *mockTxnRepo) CreateTransaction(_ context.Context, t *domain.PaymentTransaction) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	cp := *t
	m.txns[t.SessionID] = &cp
	return nil
}

func (m *mockTxnRepo) GetBySessionID(_ context.Context, sessionID string) (*domain.PaymentTransaction, error) {
	m.m.Lock()
	defer m.m.Unlock()
	t, ok := m.txns[sessionID]
	if !ok {
		return nil, repository.ErrTransactionNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *mockTxnRepo) UpdatePaymentStatus(_ context.Context, sessionID string, payment domain.PaymentStatus, status domain.TransactionStatus) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	t, ok := m.txns[sessionID]
	if !ok {
		return repository.ErrTransactionNotFound
	}
	t.PaymentStatus = payment
	t.Status = status
	return nil
}

func (m *mockTxnRepo) ListPendingSessions(_ context.Context, _ time.Time, _ int) ([]string, error) {
	m.m.Lock()
	defer m.m.Unlock()
	var out []string
	for id, t := range m.txns {
		if t.PaymentStatus == domain.PaymentStatusInitiated {
			out = append(out, id)
		}
	}
	return out, nil
}

func (m *mockTxnRepo) bySession(sessionID string) *domain.PaymentTransaction {
	m.m.Lock()
	defer m.m.Unlock()
	t, ok := m.txns[sessionID]
	if !ok {
		return nil
	}
	cp := *t
	return &cp
}

type mockSessionService struct {
	m          sync.Mutex
	createReq  *payments.CreateSessionRequest
	createRef  *payments.SessionRef
	createErr  error
	status     *payments.SessionStatus
	statusErr  error
	statusReqs int
}

func (m *mockSessionService) CreateSession(_ context.Context, req *payments.CreateSessionRequest) (*payments.SessionRef, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.createReq = req
	if m.createErr != nil {
		return nil, m.createErr
	}
	return m.createRef, nil
}

func (m *mockSessionService) GetSessionStatus(_ context.Context, _ string) (*payments.SessionStatus, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.statusReqs++
	if m.statusErr != nil {
		return nil, m.statusErr
	}
	return m.status, nil
}

func (m *mockSessionService) statusCalls() int {
	m.m.Lock()
	defer m.m.Unlock()
	return m.statusReqs
}

type mockPublisher struct {
	m      sync.Mutex
	events []events.OrderPaid
	err    error
}

func (m *mockPublisher) PublishOrderPaid(_ context.Context, event events.OrderPaid) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}

func (m *mockPublisher) Close() error { return nil }

func (m *mockPublisher) published() []events.OrderPaid {
	m.m.Lock()
	defer m.m.Unlock()
	return append([]events.OrderPaid(nil), m.events...)
}

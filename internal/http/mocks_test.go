package http

import (
	"context"
	"sync"

	"github.com/abnormalforhad/Spicy-website/internal/checkout"
	"github.com/abnormalforhad/Spicy-website/internal/domain"
	"github.com/abnormalforhad/Spicy-website/internal/payments"
	"github.com/abnormalforhad/Spicy-website/internal/repository"
)

type mockCatalog struct {
	m         sync.Mutex
	products  []domain.Product
	err       error
	created   []domain.Product
	seeded    int64
	seedCalls int
}

func (m *mockCatalog) List(_ context.Context) ([]domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.products, nil
}

func (m *mockCatalog) Featured(_ context.Context) ([]domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.Product
	for _, p := range m.products {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockCatalog) Get(_ context.Context, id string) (*domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, p := range m.products {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (m *mockCatalog) Create(_ context.Context, p *domain.Product) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	p.ID = "generated-id"
	m.created = append(m.created, *p)
	return nil
}

func (m *mockCatalog) Seed(_ context.Context) (int64, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	m.seedCalls++
	return m.seeded, nil
}

type mockCheckoutService struct {
	m         sync.Mutex
	initReq   *checkout.CheckoutRequest
	ref       *payments.SessionRef
	initErr   error
	status    *payments.SessionStatus
	statusErr error
}

func (m *mockCheckoutService) Initiate(_ context.Context, req *checkout.CheckoutRequest) (*payments.SessionRef, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.initReq = req
	if m.initErr != nil {
		return nil, m.initErr
	}
	return m.ref, nil
}

func (m *mockCheckoutService) Status(_ context.Context, _ string) (*payments.SessionStatus, error) {
	if m.statusErr != nil {
		return nil, m.statusErr
	}
	return m.status, nil
}

type mockWebhookApplier struct {
	m         sync.Mutex
	sessionID string
	payment   domain.PaymentStatus
	calls     int
	err       error
}

func (m *mockWebhookApplier) ApplyWebhook(_ context.Context, sessionID string, payment domain.PaymentStatus) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.calls++
	if m.err != nil {
		return m.err
	}
	m.sessionID = sessionID
	m.payment = payment
	return nil
}

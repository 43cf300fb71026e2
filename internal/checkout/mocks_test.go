package checkout

import (
	"context"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/electromart/storefront/internal/backend"
	"github.com/electromart/storefront/internal/domain"
	"github.com/electromart/storefront/internal/session"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.Out = io.Discard
	return log
}

// mockCartAPI implements backend.CartAPI for composer tests.
type mockCartAPI struct {
	mu         sync.Mutex
	cart       *domain.Cart
	err        error
	fetchCalls int
}

func (m *mockCartAPI) FetchCart(context.Context, session.Session) (*domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchCalls++
	if m.err != nil {
		return nil, m.err
	}
	return m.cart, nil
}

func (m *mockCartAPI) AddToCart(context.Context, session.Session, int64, int) error {
	return m.err
}

func (m *mockCartAPI) RemoveCartItem(context.Context, session.Session, int64) (*domain.Cart, error) {
	return m.cart, m.err
}

func (m *mockCartAPI) DeleteCart(context.Context, session.Session) error {
	return m.err
}

func (m *mockCartAPI) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fetchCalls
}

// mockCheckoutAPI implements backend.CheckoutAPI for pipeline tests.
type mockCheckoutAPI struct {
	mu      sync.Mutex
	result  domain.OrderResult
	err     error
	calls   int
	lastReq backend.CheckoutRequestDTO
}

func (m *mockCheckoutAPI) SubmitOrder(_ context.Context, _ session.Session, req backend.CheckoutRequestDTO) (domain.OrderResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return domain.OrderResult{}, m.err
	}
	return m.result, nil
}

func (m *mockCheckoutAPI) submitted() (int, backend.CheckoutRequestDTO) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls, m.lastReq
}

func (m *mockCheckoutAPI) setErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

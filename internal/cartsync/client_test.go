package cartsync

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/electromart/storefront/internal/backend"
	"github.com/electromart/storefront/internal/domain"
	"github.com/electromart/storefront/internal/events"
	"github.com/electromart/storefront/internal/session"
)

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

func (m *mockCartAPI) AddToCart(context.Context, session.Session, int64, int) error { return m.err }

func (m *mockCartAPI) RemoveCartItem(context.Context, session.Session, int64) (*domain.Cart, error) {
	return m.cart, m.err
}

func (m *mockCartAPI) DeleteCart(context.Context, session.Session) error { return m.err }

func (m *mockCartAPI) setCart(cart *domain.Cart) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cart = cart
}

func (m *mockCartAPI) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fetchCalls
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.Out = io.Discard
	return log
}

func authedSession() session.Static {
	return session.Static{Session: session.Session{Token: "tok"}}
}

func TestFetchCart_StoresSnapshot(t *testing.T) {
	api := &mockCartAPI{cart: &domain.Cart{ID: 1, Items: []domain.CartItem{
		{ID: 1, ProductID: 10, Quantity: 2, Price: 1000},
		{ID: 2, ProductID: 20, Quantity: 1, Price: 500},
	}}}
	store := NewMemoryStore()
	sut := New(api, authedSession(), store, "k1", events.NewBus(), testLogger())

	cart, err := sut.FetchCart(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, cart.ItemCount())

	stored, err := store.Get(context.Background(), "k1")
	require.NoError(t, err)
	assert.Equal(t, cart, stored)
}

func TestFetchCart_NotFoundIsEmptyCart(t *testing.T) {
	api := &mockCartAPI{err: backend.ErrNotFound}
	sut := New(api, authedSession(), NewMemoryStore(), "k1", events.NewBus(), testLogger())

	cart, err := sut.FetchCart(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0, cart.ItemCount())
}

func TestFetchCart_Unauthenticated(t *testing.T) {
	api := &mockCartAPI{}
	sut := New(api, session.Static{}, NewMemoryStore(), "k1", events.NewBus(), testLogger())

	_, err := sut.FetchCart(context.Background())
	require.ErrorIs(t, err, session.ErrUnauthenticated)
	assert.Equal(t, 0, api.calls(), "no network call without a valid session")
	assert.Equal(t, 0, sut.ItemCount(context.Background()))
}

func TestSnapshot_ReadsStoreFirst(t *testing.T) {
	api := &mockCartAPI{cart: &domain.Cart{Items: []domain.CartItem{{ID: 1, Quantity: 1}}}}
	sut := New(api, authedSession(), NewMemoryStore(), "k1", events.NewBus(), testLogger())

	_, err := sut.FetchCart(context.Background())
	require.NoError(t, err)

	// Backend goes down; the confirmed snapshot still serves.
	api.err = fmt.Errorf("backend down")
	cart, err := sut.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, cart.ItemCount())
	assert.Equal(t, 1, api.calls())
}

func TestCartChangedNotification_TriggersRefetch(t *testing.T) {
	api := &mockCartAPI{cart: &domain.Cart{Items: []domain.CartItem{{ID: 1, Quantity: 1}}}}
	bus := events.NewBus()
	sut := New(api, authedSession(), NewMemoryStore(), "k1", bus, testLogger())

	assert.Equal(t, 1, sut.ItemCount(context.Background()))

	// Another surface mutates the cart; the backend now holds more.
	api.setCart(&domain.Cart{Items: []domain.CartItem{{ID: 1, Quantity: 1}, {ID: 2, Quantity: 4}}})
	bus.PublishCartChanged()

	assert.Equal(t, 5, sut.ItemCount(context.Background()))
}

func TestClose_StopsListening(t *testing.T) {
	api := &mockCartAPI{cart: &domain.Cart{}}
	bus := events.NewBus()
	sut := New(api, authedSession(), NewMemoryStore(), "k1", bus, testLogger())

	sut.Close()
	bus.PublishCartChanged()
	assert.Equal(t, 0, api.calls())
}

func TestReplace_InstallsMutationResponse(t *testing.T) {
	api := &mockCartAPI{cart: &domain.Cart{Items: []domain.CartItem{{ID: 1, Quantity: 9}}}}
	store := NewMemoryStore()
	sut := New(api, authedSession(), store, "k1", events.NewBus(), testLogger())

	sut.Replace(context.Background(), &domain.Cart{Items: []domain.CartItem{{ID: 2, Quantity: 1}}})

	cart, err := sut.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, cart.ItemCount())
	assert.Equal(t, 0, api.calls(), "replacement must not trigger a fetch")
}

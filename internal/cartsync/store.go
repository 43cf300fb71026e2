package cartsync

import (
	"context"
	"errors"
	"sync"

	"github.com/electromart/storefront/internal/domain"
)

// SnapshotStore holds the last confirmed cart snapshot per shopper key. The
// sync client is its only writer; everything else reads a copy.
type SnapshotStore interface {
	Get(ctx context.Context, key string) (*domain.Cart, error)
	Set(ctx context.Context, key string, cart *domain.Cart) error
	Delete(ctx context.Context, key string) error
}

var ErrSnapshotMiss = errors.New("snapshot miss")

// MemoryStore is the single-process store. Tests use it directly.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string]*domain.Cart
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string]*domain.Cart)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (*domain.Cart, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cart, ok := m.carts[key]
	if !ok {
		return nil, ErrSnapshotMiss
	}
	return cart, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, cart *domain.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[key] = cart
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, key)
	return nil
}

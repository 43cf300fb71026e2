package app

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/electromart/storefront/internal/cartsync"
	"github.com/electromart/storefront/internal/events"
	"github.com/electromart/storefront/internal/mutation"
	"github.com/electromart/storefront/internal/session"
)

// API is everything the per-shopper components call on the backend.
type API interface {
	mutation.API
}

// Shopper is one signed-in shopper's component wiring: their own
// notification bus, cart sync client and mutation engine. It is the Go
// analog of one browser session's component tree.
type Shopper struct {
	Session session.Accessor
	Bus     *events.Bus
	Cart    *cartsync.Client
	Engine  *mutation.Engine
}

// Registry hands out Shopper wirings keyed by bearer credential, creating
// them lazily on first use.
type Registry struct {
	api   API
	store cartsync.SnapshotStore
	log   *logrus.Logger

	mu       sync.Mutex
	shoppers map[string]*Shopper
}

func NewRegistry(api API, store cartsync.SnapshotStore, log *logrus.Logger) *Registry {
	return &Registry{
		api:      api,
		store:    store,
		log:      log,
		shoppers: make(map[string]*Shopper),
	}
}

func (r *Registry) Shopper(token string) *Shopper {
	key := shopperKey(token)

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.shoppers[key]; ok {
		return s
	}

	sess := session.Static{Session: session.Session{Token: token}}
	bus := events.NewBus()
	cart := cartsync.New(r.api, sess, r.store, key, bus, r.log)
	s := &Shopper{
		Session: sess,
		Bus:     bus,
		Cart:    cart,
		Engine:  mutation.NewEngine(r.api, sess, cart, bus, r.log),
	}
	r.shoppers[key] = s
	return s
}

// shopperKey keeps raw credentials out of snapshot store keys.
func shopperKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:8])
}

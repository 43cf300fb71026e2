package mutation

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/electromart/storefront/internal/backend"
	"github.com/electromart/storefront/internal/cartsync"
	"github.com/electromart/storefront/internal/domain"
	"github.com/electromart/storefront/internal/events"
	"github.com/electromart/storefront/internal/session"
)

// API is the slice of the backend the engine mutates through.
type API interface {
	backend.CartAPI
	backend.WishlistAPI
}

// Engine performs wishlist and cart mutations for one shopper. The two
// operation kinds follow different disciplines on purpose: wishlist
// membership is a cheap reversible boolean, flipped optimistically and
// rolled back on failure; cart contents feed price totals and are only ever
// replaced from a confirmed backend response.
type Engine struct {
	api  API
	sess session.Accessor
	cart *cartsync.Client
	bus  *events.Bus
	log  *logrus.Logger

	mu       sync.Mutex
	loaded   bool
	member   map[int64]bool                // product id -> wishlisted
	items    map[int64]domain.WishlistItem // product id -> server item (for removes)
	inflight map[int64]bool                // product ids with a toggle in flight
}

func NewEngine(api API, sess session.Accessor, cart *cartsync.Client, bus *events.Bus, log *logrus.Logger) *Engine {
	return &Engine{
		api:      api,
		sess:     sess,
		cart:     cart,
		bus:      bus,
		log:      log,
		member:   make(map[int64]bool),
		items:    make(map[int64]domain.WishlistItem),
		inflight: make(map[int64]bool),
	}
}

// Wishlist returns the shopper's saved items, refreshing the engine's
// membership view from the backend.
func (e *Engine) Wishlist(ctx context.Context) ([]domain.WishlistItem, error) {
	sess, err := e.sess.Current(ctx)
	if err != nil {
		return nil, session.ErrUnauthenticated
	}
	items, err := e.api.Wishlist(ctx, sess)
	if err != nil {
		return nil, mapAuth(err)
	}
	e.replaceWishlist(items)
	return items, nil
}

// Wishlisted reports the displayed membership boolean for a product.
func (e *Engine) Wishlisted(productID int64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.member[productID]
}

// ToggleWishlist flips membership for a product. The local boolean changes
// before the network call and reverts if the call fails. While a toggle for
// the product is in flight, further toggles for it are ignored and the
// current displayed state is returned unchanged.
func (e *Engine) ToggleWishlist(ctx context.Context, productID int64) (bool, error) {
	sess, err := e.sess.Current(ctx)
	if err != nil {
		return false, session.ErrUnauthenticated
	}
	if err := e.ensureWishlist(ctx, sess); err != nil {
		return false, err
	}

	e.mu.Lock()
	if e.inflight[productID] {
		state := e.member[productID]
		e.mu.Unlock()
		return state, nil
	}
	e.inflight[productID] = true
	was := e.member[productID]
	item, hasItem := e.items[productID]
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		delete(e.inflight, productID)
		e.mu.Unlock()
	}()

	_, err = run(
		func() { e.setMember(productID, !was) },
		func() { e.setMember(productID, was) },
		func() error {
			if was {
				if !hasItem {
					// Added earlier this session without a list refresh;
					// the server id is unknown until we re-read the list.
					fresh, errList := e.api.Wishlist(ctx, sess)
					if errList != nil {
						return errList
					}
					e.replaceWishlist(fresh)
					e.mu.Lock()
					item, hasItem = e.items[productID]
					e.mu.Unlock()
					if !hasItem {
						return nil // already gone server-side
					}
				}
				updated, errRemove := e.api.RemoveWishlist(ctx, sess, item.ID)
				if errRemove != nil {
					return errRemove
				}
				e.replaceWishlist(updated)
				return nil
			}
			return e.api.AddWishlist(ctx, sess, productID)
		},
		func() {
			if !was {
				// Ack-only add: the server item id arrives on the next
				// list read.
				e.mu.Lock()
				e.loaded = false
				e.mu.Unlock()
			}
		},
	)
	if err != nil {
		e.log.WithError(err).WithField("product_id", productID).Warn("wishlist toggle rolled back")
		return was, mapAuth(err)
	}
	return !was, nil
}

// RemoveWishlistItem deletes a saved item by its wishlist id (the wishlist
// view's remove button). The displayed list is replaced from the response.
func (e *Engine) RemoveWishlistItem(ctx context.Context, wishlistItemID int64) ([]domain.WishlistItem, error) {
	sess, err := e.sess.Current(ctx)
	if err != nil {
		return nil, session.ErrUnauthenticated
	}
	items, err := e.api.RemoveWishlist(ctx, sess, wishlistItemID)
	if err != nil {
		return nil, mapAuth(err)
	}
	e.replaceWishlist(items)
	return items, nil
}

// AddToCart adds a product. No local count is guessed at: on success the
// cart-changed topic fires and the sync client re-fetches the truth.
func (e *Engine) AddToCart(ctx context.Context, productID int64, quantity int) error {
	sess, err := e.sess.Current(ctx)
	if err != nil {
		return session.ErrUnauthenticated
	}

	_, err = run(nil, nil,
		func() error { return e.api.AddToCart(ctx, sess, productID, quantity) },
		func() { e.bus.PublishCartChanged() },
	)
	return mapAuth(err)
}

// RemoveCartItem removes one line item. The backend's response body is the
// new authoritative snapshot.
func (e *Engine) RemoveCartItem(ctx context.Context, cartItemID int64) (*domain.Cart, error) {
	sess, err := e.sess.Current(ctx)
	if err != nil {
		return nil, session.ErrUnauthenticated
	}

	var updated *domain.Cart
	_, err = run(nil, nil,
		func() error {
			cart, errRemove := e.api.RemoveCartItem(ctx, sess, cartItemID)
			if errRemove != nil {
				return errRemove
			}
			updated = cart
			return nil
		},
		func() {
			e.cart.Replace(ctx, updated)
			e.bus.PublishCartChanged()
		},
	)
	if err != nil {
		return nil, mapAuth(err)
	}
	return updated, nil
}

// DeleteCart empties the whole cart. The destructive call is only issued
// once the caller passes the shopper's explicit confirmation.
func (e *Engine) DeleteCart(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	sess, err := e.sess.Current(ctx)
	if err != nil {
		return session.ErrUnauthenticated
	}

	_, err = run(nil, nil,
		func() error { return e.api.DeleteCart(ctx, sess) },
		func() {
			e.cart.Replace(ctx, &domain.Cart{})
			e.bus.PublishCartChanged()
		},
	)
	return mapAuth(err)
}

func (e *Engine) ensureWishlist(ctx context.Context, sess session.Session) error {
	e.mu.Lock()
	loaded := e.loaded
	e.mu.Unlock()
	if loaded {
		return nil
	}
	items, err := e.api.Wishlist(ctx, sess)
	if err != nil {
		return mapAuth(err)
	}
	e.replaceWishlist(items)
	return nil
}

func (e *Engine) replaceWishlist(items []domain.WishlistItem) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.member = make(map[int64]bool, len(items))
	e.items = make(map[int64]domain.WishlistItem, len(items))
	for _, it := range items {
		e.member[it.ProductID] = true
		e.items[it.ProductID] = it
	}
	e.loaded = true
}

func (e *Engine) setMember(productID int64, v bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if v {
		e.member[productID] = true
	} else {
		delete(e.member, productID)
	}
}

func mapAuth(err error) error {
	if errors.Is(err, backend.ErrAuthRequired) {
		return session.ErrUnauthenticated
	}
	return err
}

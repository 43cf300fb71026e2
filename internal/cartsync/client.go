package cartsync

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/electromart/storefront/internal/backend"
	"github.com/electromart/storefront/internal/domain"
	"github.com/electromart/storefront/internal/events"
	"github.com/electromart/storefront/internal/session"
)

const refreshTimeout = 10 * time.Second

// Client keeps one shopper's cart snapshot eventually consistent with the
// backend. It owns the snapshot exclusively: the only writes are a
// successful fetch or a mutation's own replacement response (via Replace).
// It subscribes to the cart-changed topic and re-fetches on every signal.
type Client struct {
	api   backend.CartAPI
	sess  session.Accessor
	store SnapshotStore
	key   string
	sfg   singleflight.Group
	log   *logrus.Logger
	unsub func()
}

func New(api backend.CartAPI, sess session.Accessor, store SnapshotStore, key string, bus *events.Bus, log *logrus.Logger) *Client {
	c := &Client{
		api:   api,
		sess:  sess,
		store: store,
		key:   key,
		log:   log,
	}
	c.unsub = bus.SubscribeCartChanged(c.refresh)
	return c
}

// Close detaches the client from the notification channel. A refresh
// already in flight discards into the store keyed by a shopper who is gone;
// nothing reads it again.
func (c *Client) Close() {
	c.unsub()
}

// FetchCart hits the backend and replaces the stored snapshot. A backend
// 404 is a valid empty cart, not an error. Concurrent calls for the same
// shopper collapse into one round trip.
func (c *Client) FetchCart(ctx context.Context) (*domain.Cart, error) {
	v, err, _ := c.sfg.Do(c.key, func() (interface{}, error) {
		sess, err := c.sess.Current(ctx)
		if err != nil {
			return nil, err
		}

		cart, err := c.api.FetchCart(ctx, sess)
		switch {
		case errors.Is(err, backend.ErrNotFound):
			cart = &domain.Cart{}
		case errors.Is(err, backend.ErrAuthRequired):
			return nil, session.ErrUnauthenticated
		case err != nil:
			return nil, err
		}

		if errSet := c.store.Set(ctx, c.key, cart); errSet != nil {
			c.log.WithError(errSet).Warn("cart snapshot store set failed")
		}
		return cart, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Cart), nil
}

// Snapshot returns the last confirmed cart, fetching only when the store
// has nothing for this shopper yet.
func (c *Client) Snapshot(ctx context.Context) (*domain.Cart, error) {
	cart, err := c.store.Get(ctx, c.key)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, ErrSnapshotMiss) {
		c.log.WithError(err).Warn("cart snapshot store get failed")
	}
	return c.FetchCart(ctx)
}

// ItemCount derives the header badge number. Unauthenticated or failed
// reads count as zero.
func (c *Client) ItemCount(ctx context.Context) int {
	cart, err := c.Snapshot(ctx)
	if err != nil {
		return 0
	}
	return cart.ItemCount()
}

// Replace installs a cart returned by a mutation response as the confirmed
// snapshot, without another fetch.
func (c *Client) Replace(ctx context.Context, cart *domain.Cart) {
	if err := c.store.Set(ctx, c.key, cart); err != nil {
		c.log.WithError(err).Warn("cart snapshot replace failed")
	}
}

func (c *Client) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()
	if _, err := c.FetchCart(ctx); err != nil && !errors.Is(err, session.ErrUnauthenticated) {
		c.log.WithError(err).Warn("cart refresh after change notification failed")
	}
}

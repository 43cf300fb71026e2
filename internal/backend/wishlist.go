package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/electromart/storefront/internal/domain"
	"github.com/electromart/storefront/internal/session"
)

type WishlistAPI interface {
	Wishlist(ctx context.Context, sess session.Session) ([]domain.WishlistItem, error)
	AddWishlist(ctx context.Context, sess session.Session, productID int64) error
	RemoveWishlist(ctx context.Context, sess session.Session, wishlistItemID int64) ([]domain.WishlistItem, error)
}

type addWishlistRequest struct {
	ProductID int64 `json:"productId"`
}

func (c *Client) Wishlist(ctx context.Context, sess session.Session) ([]domain.WishlistItem, error) {
	var items []domain.WishlistItem
	if err := c.doJSON(ctx, sess, http.MethodGet, "/wishlist", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) AddWishlist(ctx context.Context, sess session.Session, productID int64) error {
	return c.doJSON(ctx, sess, http.MethodPost, "/wishlist", addWishlistRequest{ProductID: productID}, nil)
}

// RemoveWishlist deletes one saved item and returns the fresh list from the
// backend.
func (c *Client) RemoveWishlist(ctx context.Context, sess session.Session, wishlistItemID int64) ([]domain.WishlistItem, error) {
	var items []domain.WishlistItem
	path := fmt.Sprintf("/wishlist/%d", wishlistItemID)
	if err := c.doJSON(ctx, sess, http.MethodDelete, path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

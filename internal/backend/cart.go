package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/electromart/storefront/internal/domain"
	"github.com/electromart/storefront/internal/session"
)

// CartAPI is the slice of the backend the cart components need.
type CartAPI interface {
	FetchCart(ctx context.Context, sess session.Session) (*domain.Cart, error)
	AddToCart(ctx context.Context, sess session.Session, productID int64, quantity int) error
	RemoveCartItem(ctx context.Context, sess session.Session, cartItemID int64) (*domain.Cart, error)
	DeleteCart(ctx context.Context, sess session.Session) error
}

type addToCartRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// FetchCart returns the authoritative cart. A backend 404 surfaces as
// ErrNotFound; the sync client treats that as a valid empty cart.
func (c *Client) FetchCart(ctx context.Context, sess session.Session) (*domain.Cart, error) {
	var cart domain.Cart
	if err := c.doJSON(ctx, sess, http.MethodGet, "/cart", nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) AddToCart(ctx context.Context, sess session.Session, productID int64, quantity int) error {
	body := addToCartRequest{ProductID: productID, Quantity: quantity}
	return c.doJSON(ctx, sess, http.MethodPost, "/cart/add", body, nil)
}

// RemoveCartItem deletes one line item. The backend answers with the updated
// cart, which replaces the snapshot wholesale.
func (c *Client) RemoveCartItem(ctx context.Context, sess session.Session, cartItemID int64) (*domain.Cart, error) {
	var cart domain.Cart
	path := fmt.Sprintf("/cart/items/%d", cartItemID)
	if err := c.doJSON(ctx, sess, http.MethodDelete, path, nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) DeleteCart(ctx context.Context, sess session.Session) error {
	return c.doJSON(ctx, sess, http.MethodDelete, "/cart", nil, nil)
}

package backend

import (
	"context"
	"net/http"

	"github.com/electromart/storefront/internal/domain"
	"github.com/electromart/storefront/internal/session"
)

type CheckoutAPI interface {
	SubmitOrder(ctx context.Context, sess session.Session, req CheckoutRequestDTO) (domain.OrderResult, error)
}

// CheckoutRequestDTO is the POST /checkout wire shape. Exactly one of
// CartItemIDs or DirectProductID/DirectProductQuantity is populated; the
// submission pipeline builds it from the CheckoutSource sum type so the
// other variant's fields are never set.
type CheckoutRequestDTO struct {
	domain.Address
	PaymentMethod         domain.PaymentMethod `json:"paymentMethod"`
	CartItemIDs           []int64              `json:"cartItemIds,omitempty"`
	DirectProductID       *int64               `json:"directProductId,omitempty"`
	DirectProductQuantity *int                 `json:"directProductQuantity,omitempty"`
	IdempotencyKey        string               `json:"idempotencyKey"`
}

func (c *Client) SubmitOrder(ctx context.Context, sess session.Session, req CheckoutRequestDTO) (domain.OrderResult, error) {
	var result domain.OrderResult
	if err := c.doJSON(ctx, sess, http.MethodPost, "/checkout", req, &result); err != nil {
		return domain.OrderResult{}, err
	}
	return result, nil
}

package checkout

import (
	"context"
	"sync"

	"github.com/electromart/storefront/internal/cartsync"
	"github.com/electromart/storefront/internal/domain"
)

// Composer resolves a checkout entry into a normalized line list. A direct
// "buy now" item resolves locally; a cart subset is filtered out of a fresh
// authoritative cart fetch. Reaching checkout with no source never enters
// Resolving at all: the caller gets ErrNoSource and redirects to the cart.
type Composer struct {
	cart *cartsync.Client

	mu     sync.Mutex
	state  ComposeState
	source domain.CheckoutSource
	lines  []domain.CheckoutLine
	err    error
}

func NewComposer(cart *cartsync.Client) *Composer {
	return &Composer{cart: cart, state: ComposeIdle}
}

func (c *Composer) State() ComposeState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Lines returns the resolved list; valid only once State is Resolved.
func (c *Composer) Lines() []domain.CheckoutLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lines
}

func (c *Composer) Source() domain.CheckoutSource {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.source
}

func (c *Composer) Resolve(ctx context.Context, source domain.CheckoutSource) ([]domain.CheckoutLine, error) {
	switch src := source.(type) {
	case domain.DirectItem:
		lines := []domain.CheckoutLine{{
			ProductID: src.ProductID,
			Name:      src.Name,
			Quantity:  src.Quantity,
			Price:     src.Price,
			ImageURL:  src.ImageURL,
		}}
		c.setResolved(source, lines)
		return lines, nil

	case domain.CartSubset:
		if len(src.CartItemIDs) == 0 {
			return nil, ErrNoSource
		}
		c.setState(ComposeResolving, source)

		cart, err := c.cart.FetchCart(ctx)
		if err != nil {
			c.setFailed(err)
			return nil, err
		}

		wanted := make(map[int64]bool, len(src.CartItemIDs))
		for _, id := range src.CartItemIDs {
			wanted[id] = true
		}
		var lines []domain.CheckoutLine
		for _, it := range cart.Items {
			if !wanted[it.ID] {
				continue
			}
			lines = append(lines, domain.CheckoutLine{
				ProductID: it.ProductID,
				Name:      it.ProductName,
				Quantity:  it.Quantity,
				Price:     it.Price,
				ImageURL:  it.ImageURL,
			})
		}
		if len(lines) == 0 {
			// Stale selection: the ids were removed by another surface.
			c.setFailed(ErrStaleSelection)
			return nil, ErrStaleSelection
		}
		c.setResolved(source, lines)
		return lines, nil

	default:
		// No source information at all; stay Idle.
		return nil, ErrNoSource
	}
}

func (c *Composer) setState(s ComposeState, source domain.CheckoutSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = s
	c.source = source
}

func (c *Composer) setResolved(source domain.CheckoutSource, lines []domain.CheckoutLine) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = ComposeResolved
	c.source = source
	c.lines = lines
	c.err = nil
}

func (c *Composer) setFailed(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = ComposeFailed
	c.lines = nil
	c.err = err
}

package domain

import "time"

// Cart is the backend-owned cart. The client never patches it field by
// field: every successful fetch or mutation response replaces it wholesale.
type Cart struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"userId"`
	Status    string     `json:"status"`
	Items     []CartItem `json:"cartItems"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type CartItem struct {
	ID          int64   `json:"id"`
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl"`
}

// ItemCount is the number the header badge shows: total units across all
// line items. Zero for a nil cart.
func (c *Cart) ItemCount() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// Item returns the line item with the given cart item id.
func (c *Cart) Item(cartItemID int64) (CartItem, bool) {
	if c == nil {
		return CartItem{}, false
	}
	for _, it := range c.Items {
		if it.ID == cartItemID {
			return it, true
		}
	}
	return CartItem{}, false
}

package domain

import "time"

// WishlistItem is a saved-for-later product reference, independent of the
// cart. Membership is a per-product boolean from the viewer's side.
type WishlistItem struct {
	ID        int64     `json:"wishlistItemId"`
	ProductID int64     `json:"productId"`
	Name      string    `json:"productName"`
	Price     float64   `json:"productPrice"`
	ImageURL  string    `json:"productImageUrl"`
	AddedAt   time.Time `json:"addedAt"`
}

package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/electromart/storefront/internal/app"
)

// WishlistHandler serves the wishlist view and the product card's heart
// button.
type WishlistHandler struct {
	shoppers *app.Registry
}

func NewWishlistHandler(shoppers *app.Registry) *WishlistHandler {
	return &WishlistHandler{shoppers: shoppers}
}

type ToggleRequestDTO struct {
	ProductID int64 `json:"productId"`
}

type ToggleResponseDTO struct {
	ProductID  int64 `json:"productId"`
	Wishlisted bool  `json:"wishlisted"`
}

// GET /api/wishlist
func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	shopper := h.shoppers.Shopper(tokenFromContext(r.Context()))

	items, err := shopper.Engine.Wishlist(r.Context())
	if err != nil {
		respondCoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// POST /api/wishlist/toggle
func (h *WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	shopper := h.shoppers.Shopper(tokenFromContext(r.Context()))

	var req ToggleRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "productId must be positive")
		return
	}

	wishlisted, err := shopper.Engine.ToggleWishlist(r.Context(), req.ProductID)
	if err != nil {
		respondCoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ToggleResponseDTO{ProductID: req.ProductID, Wishlisted: wishlisted})
}

// DELETE /api/wishlist/{id}
func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	shopper := h.shoppers.Shopper(tokenFromContext(r.Context()))

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "wishlist item id must be numeric")
		return
	}

	items, err := shopper.Engine.RemoveWishlistItem(r.Context(), id)
	if err != nil {
		respondCoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

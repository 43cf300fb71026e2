package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/electromart/storefront/internal/app"
)

// CartHandler serves the header badge and the cart view.
type CartHandler struct {
	shoppers *app.Registry
}

func NewCartHandler(shoppers *app.Registry) *CartHandler {
	return &CartHandler{shoppers: shoppers}
}

type AddItemRequestDTO struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type CartCountDTO struct {
	Count int `json:"count"`
}

// GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	shopper := h.shoppers.Shopper(tokenFromContext(r.Context()))

	cart, err := shopper.Cart.FetchCart(r.Context())
	if err != nil {
		respondCoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

// GET /api/cart/count
func (h *CartHandler) Count(w http.ResponseWriter, r *http.Request) {
	shopper := h.shoppers.Shopper(tokenFromContext(r.Context()))
	respondJSON(w, http.StatusOK, CartCountDTO{Count: shopper.Cart.ItemCount(r.Context())})
}

// POST /api/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	shopper := h.shoppers.Shopper(tokenFromContext(r.Context()))

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "productId must be positive")
		return
	}
	if req.Quantity == 0 {
		// Surfaces that add a single unit (wishlist, product card) omit it.
		req.Quantity = 1
	}
	if req.Quantity < 1 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	if err := shopper.Engine.AddToCart(r.Context(), req.ProductID, req.Quantity); err != nil {
		respondCoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// DELETE /api/cart/items/{id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	shopper := h.shoppers.Shopper(tokenFromContext(r.Context()))

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "cart item id must be numeric")
		return
	}

	cart, err := shopper.Engine.RemoveCartItem(r.Context(), id)
	if err != nil {
		respondCoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

// DELETE /api/cart?confirm=true
func (h *CartHandler) DeleteCart(w http.ResponseWriter, r *http.Request) {
	shopper := h.shoppers.Shopper(tokenFromContext(r.Context()))

	confirmed := r.URL.Query().Get("confirm") == "true"
	if err := shopper.Engine.DeleteCart(r.Context(), confirmed); err != nil {
		respondCoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package http

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/electromart/storefront/internal/app"
	"github.com/electromart/storefront/internal/backend"
	"github.com/electromart/storefront/internal/checkout"
	"github.com/electromart/storefront/internal/domain"
)

// CheckoutHandler serves the checkout view: summary preview and order
// placement. Each request is one checkout attempt with its own composer
// and pipeline; retries keep their idempotency key through the DTO.
type CheckoutHandler struct {
	shoppers *app.Registry
	api      backend.CheckoutAPI
	log      *logrus.Logger
}

func NewCheckoutHandler(shoppers *app.Registry, api backend.CheckoutAPI, log *logrus.Logger) *CheckoutHandler {
	return &CheckoutHandler{shoppers: shoppers, api: api, log: log}
}

type DirectItemDTO struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"imageUrl"`
}

type CheckoutRequestDTO struct {
	CartItemIDs []int64        `json:"cartItemIds,omitempty"`
	DirectItem  *DirectItemDTO `json:"directItem,omitempty"`

	AddressLine1   string `json:"addressLine1"`
	AddressLine2   string `json:"addressLine2,omitempty"`
	District       string `json:"district"`
	State          string `json:"state"`
	Country        string `json:"country"`
	Phone          string `json:"phoneNumber"`
	AltPhone       string `json:"alternativePhoneNumber,omitempty"`
	PaymentMethod  string `json:"paymentMethod"`
	IdempotencyKey string `json:"idempotencyKey,omitempty"`
}

type CheckoutPreviewDTO struct {
	Items   []domain.CheckoutLine `json:"items"`
	Summary domain.OrderSummary   `json:"summary"`
}

type OrderPlacedDTO struct {
	OrderID int64               `json:"orderId"`
	Summary domain.OrderSummary `json:"summary"`
}

// source builds the tagged checkout source from the request. A body that
// populates both shapes is rejected here; a body with neither yields nil,
// which the composer turns into the redirect-to-cart signal.
func (dto *CheckoutRequestDTO) source(w http.ResponseWriter) (domain.CheckoutSource, bool) {
	if len(dto.CartItemIDs) > 0 && dto.DirectItem != nil {
		respondError(w, http.StatusBadRequest, "ambiguous_checkout_source",
			"provide either cartItemIds or directItem, not both")
		return nil, false
	}
	if dto.DirectItem != nil {
		return domain.DirectItem{
			ProductID: dto.DirectItem.ProductID,
			Name:      dto.DirectItem.Name,
			Quantity:  dto.DirectItem.Quantity,
			Price:     dto.DirectItem.Price,
			ImageURL:  dto.DirectItem.ImageURL,
		}, true
	}
	if len(dto.CartItemIDs) > 0 {
		return domain.CartSubset{CartItemIDs: dto.CartItemIDs}, true
	}
	return nil, true
}

// POST /api/checkout/preview
func (h *CheckoutHandler) Preview(w http.ResponseWriter, r *http.Request) {
	shopper := h.shoppers.Shopper(tokenFromContext(r.Context()))

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	source, ok := req.source(w)
	if !ok {
		return
	}

	composer := checkout.NewComposer(shopper.Cart)
	lines, err := composer.Resolve(r.Context(), source)
	if err != nil {
		respondCoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, CheckoutPreviewDTO{Items: lines, Summary: checkout.Summarize(lines)})
}

// POST /api/checkout
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	shopper := h.shoppers.Shopper(tokenFromContext(r.Context()))

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	source, ok := req.source(w)
	if !ok {
		return
	}

	composer := checkout.NewComposer(shopper.Cart)
	lines, err := composer.Resolve(r.Context(), source)
	if err != nil {
		respondCoreError(w, err)
		return
	}

	form := checkout.Form{
		Address: domain.Address{
			Line1:    req.AddressLine1,
			Line2:    req.AddressLine2,
			District: req.District,
			State:    req.State,
			Country:  req.Country,
			Phone:    req.Phone,
			AltPhone: req.AltPhone,
		},
		Payment:        domain.PaymentMethod(req.PaymentMethod),
		IdempotencyKey: req.IdempotencyKey,
	}

	pipeline := checkout.NewPipeline(h.api, shopper.Session, shopper.Bus, h.log)
	result, err := pipeline.Submit(r.Context(), composer.Source(), form)
	if err != nil {
		// Let the client resubmit the same attempt without risking a
		// duplicate order.
		if key := pipeline.IdempotencyKey(); key != "" {
			w.Header().Set("X-Idempotency-Key", key)
		}
		respondCoreError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, OrderPlacedDTO{
		OrderID: result.OrderID,
		Summary: checkout.Summarize(lines),
	})
}

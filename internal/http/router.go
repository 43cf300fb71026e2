package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/electromart/storefront/internal/app"
	"github.com/electromart/storefront/internal/backend"
)

func NewRouter(shoppers *app.Registry, api backend.CheckoutAPI, log *logrus.Logger, timeout time.Duration) chi.Router {
	cartHandler := NewCartHandler(shoppers)
	wishlistHandler := NewWishlistHandler(shoppers)
	checkoutHandler := NewCheckoutHandler(shoppers, api, log)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(timeout))
	r.Use(BearerMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Get("/count", cartHandler.Count)
			r.Post("/items", cartHandler.AddItem)
			r.Delete("/items/{id}", cartHandler.RemoveItem)
			r.Delete("/", cartHandler.DeleteCart)
		})
		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", wishlistHandler.GetWishlist)
			r.Post("/toggle", wishlistHandler.Toggle)
			r.Delete("/{id}", wishlistHandler.RemoveItem)
		})
		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", checkoutHandler.PlaceOrder)
			r.Post("/preview", checkoutHandler.Preview)
		})
	})

	return r
}

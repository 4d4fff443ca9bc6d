package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Lixing-Zhang/foodie-storefront/internal/handlers"
	"github.com/Lixing-Zhang/foodie-storefront/internal/middleware"
	"github.com/Lixing-Zhang/foodie-storefront/internal/web"
)

// routes bundles everything the router mounts
type routes struct {
	health      *handlers.HealthHandler
	restaurants *handlers.RestaurantHandler
	carts       *handlers.CartHandler
	checkout    *handlers.CheckoutHandler
	orders      *handlers.OrderHandler
	promo       *handlers.PromoHandler
	pages       *web.Handler
	apiKeys     []string
	cartTTL     time.Duration
}

func newRouter(rt routes, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", middleware.APIKeyHeader},
		ExposedHeaders:   []string{"Link", "Location"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(middleware.CartSession(rt.cartTTL))

	r.Get("/health", rt.health.ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			handlers.WriteError(w, http.StatusNotFound, "Not found", log)
		})

		r.Get("/restaurants", rt.restaurants.ListRestaurants)
		r.Get("/restaurants/{restaurantId}", rt.restaurants.GetRestaurant)
		r.Get("/restaurants/{restaurantId}/menu", rt.restaurants.GetMenu)

		r.Get("/cart", rt.carts.GetCart)
		r.Post("/cart/items", rt.carts.AddItem)
		r.Put("/cart/items/{itemId}", rt.carts.UpdateItem)
		r.Delete("/cart/items/{itemId}", rt.carts.RemoveItem)

		r.Post("/checkout", rt.checkout.PlaceOrder)

		r.Get("/orders/{orderId}", rt.orders.GetOrder)
		r.Get("/orders/{orderId}/stepper", rt.orders.GetStepper)
		r.With(middleware.APIKeyAuth(rt.apiKeys, log)).Put("/orders/{orderId}/status", rt.orders.UpdateStatus)

		r.Get("/promo/stats", rt.promo.GetStats)
		r.Get("/promo/{code}", rt.promo.ValidatePromo)
	})

	rt.pages.Routes(r)

	return r
}

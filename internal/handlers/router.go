package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Lixing-Zhang/kart-challenge/checkout/internal/config"
	"github.com/Lixing-Zhang/kart-challenge/checkout/internal/middleware"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// RouterDeps collects what the HTTP API is built from
type RouterDeps struct {
	Auth      config.AuthConfig
	Logger    *slog.Logger
	Products  *ProductHandler
	Customers *CustomerHandler
	Checkout  *CheckoutHandler
}

// NewRouter wires middleware and routes
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "api_key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", NewHealthHandler(deps.Logger, Version).ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/product", deps.Products.ListProducts)
		r.Get("/product/{productId}", deps.Products.GetProduct)
		r.Get("/customer/{customerId}", deps.Customers.GetCustomer)

		r.With(middleware.APIKeyAuth(deps.Auth)).Post("/checkout", deps.Checkout.Checkout)
	})

	return r
}

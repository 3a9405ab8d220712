// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/classycouture/internal/middleware"
)

// Router wires the handlers to URL paths.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router whose CORS and rate limits come from the
// handler's security config.
func NewRouter(handler *Handler) *Router {
	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(ChiMiddlewareConfigFromSecurity(&handler.config.Security)),
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	h := router.handler
	r := chi.NewRouter()

	// Global middleware, applied to every route in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is answered
	r.Use(chimiddleware.Compress(5, "application/json"))
	r.Use(h.perfMon.Middleware)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitCustom(RateLimitHealth))
		r.Use(APISecurityHeaders())
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)

		// The upgrade has its own budget; connections are long lived.
		r.With(router.chiMiddleware.RateLimitCustom(RateLimitWebSocket)).Get("/ws", h.WebSocket)

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())

			r.Get("/products", h.Products)
			r.Get("/products/{id}", h.Product)
			r.Get("/products/{id}/reviews", h.Reviews)
			r.With(router.chiMiddleware.RateLimitCustom(RateLimitWrite)).Post("/products/{id}/reviews", h.SubmitReview)
			r.Get("/categories", h.Categories)

			r.Route("/newsletter", func(r chi.Router) {
				r.Use(router.chiMiddleware.RateLimitCustom(RateLimitNewsletter))
				r.Post("/subscribe", h.NewsletterSubscribe)
				r.Post("/unsubscribe", h.NewsletterUnsubscribe)
			})

			r.Route("/recommendations", func(r chi.Router) {
				r.Get("/similar/{productID}", h.SimilarProducts)
				r.Get("/frequently-bought-together/{productID}", h.FrequentlyBoughtTogether)
				r.Get("/bundles/{productID}", h.BundleSuggestions)
				r.Get("/personalized/{userID}", h.PersonalizedRecommendations)
				r.Get("/you-may-also-like/{userID}/{productID}", h.YouMayAlsoLike)
				r.Get("/trending", h.TrendingProducts)
				r.Get("/new-arrivals", h.NewArrivals)
				r.Get("/best-sellers", h.BestSellers)
			})
		})

		if token := h.config.Security.AdminToken; token != "" {
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.AdminToken(token))
				r.Use(router.chiMiddleware.RateLimitCustom(RateLimitWrite))

				r.Post("/products", h.CreateProduct)
				r.Put("/products/{id}", h.UpdateProduct)
				r.Delete("/products/{id}", h.DeleteProduct)
				r.Put("/products/{id}/price", h.SetPrice)
				r.Put("/products/{id}/stock", h.SetStock)
				r.Post("/categories", h.CreateCategory)
				r.Post("/users", h.CreateUser)
				r.Post("/orders", h.CreateOrder)
				r.Get("/orders/{id}", h.GetOrder)
				r.Put("/orders/{id}/status", h.UpdateOrderStatus)
				r.Post("/orders/{id}/cancel", h.CancelOrder)
				r.Get("/performance", h.Performance)
			})
		}
	})

	return r
}

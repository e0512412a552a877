package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(apiHandler *APIHandler, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)       // Basic request logging
	r.Use(middleware.Recoverer)    // Recover from panics
	r.Use(middleware.StripSlashes) // Ensure consistent path handling
	r.Use(CORS(allowedOrigins))

	// All API routes will be under /api
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok"}`))
		})

		// Catalog routes (read-only, no session required)
		r.Get("/products", apiHandler.ListProductsHandler)
		r.Get("/products/{productID}", apiHandler.GetProductHandler)
		r.Get("/products/{productID}/related", apiHandler.RelatedProductsHandler)
		r.Get("/categories", apiHandler.ListCategoriesHandler)

		// Session-scoped routes: chat and cart
		r.Group(func(r chi.Router) {
			r.Use(apiHandler.SessionMiddleware)

			r.Post("/chat", apiHandler.ChatHandler)
			r.Get("/chat/history", apiHandler.ChatHistoryHandler)
			r.Post("/chat/agent", apiHandler.RequestAgentHandler)

			r.Get("/cart", apiHandler.GetCartHandler)
			r.Post("/cart/items", apiHandler.AddCartItemHandler)
			r.Put("/cart/items/{productID}", apiHandler.UpdateCartItemHandler)
			r.Delete("/cart/items/{productID}", apiHandler.RemoveCartItemHandler)
			r.Delete("/cart", apiHandler.ClearCartHandler)
		})
	})

	return r
}

package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"luxestore.com/storefront/internal/core"
	"luxestore.com/storefront/internal/session"
	"luxestore.com/storefront/internal/store"
)

const relatedProductsLimit = 4

type APIHandler struct {
	store    *store.SQLiteStore
	resolver *core.Resolver
	sessions *session.Manager
}

func NewAPIHandler(s *store.SQLiteStore, r *core.Resolver, m *session.Manager) *APIHandler {
	return &APIHandler{store: s, resolver: r, sessions: m}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// --- Chat ---

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Reply  string `json:"reply"`
	Source string `json:"source"`
	Reason string `json:"reason,omitempty"`
}

// ChatHandler resolves one chat turn. The failure path is absorbed by the
// resolver, so the endpoint always answers 200 with a reply; 400 is reserved
// for malformed request bodies.
func (h *APIHandler) ChatHandler(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	sess := sessionFromContext(r.Context())
	sess.Append(session.OriginUser, req.Message)

	result := h.resolver.Resolve(r.Context(), req.Message)
	sess.Append(session.OriginAssistant, result.Reply)

	writeJSON(w, http.StatusOK, ChatResponse{
		Reply:  result.Reply,
		Source: string(result.Source),
		Reason: result.Reason,
	})
}

func (h *APIHandler) ChatHistoryHandler(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	writeJSON(w, http.StatusOK, sess.Messages())
}

type RequestAgentResponse struct {
	Reply          string `json:"reply"`
	AgentRequested bool   `json:"agent_requested"`
}

func (h *APIHandler) RequestAgentHandler(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	msg, _ := sess.RequestAgent()
	writeJSON(w, http.StatusOK, RequestAgentResponse{
		Reply:          msg.Text,
		AgentRequested: true,
	})
}

// --- Catalog ---

func (h *APIHandler) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	sortBy := r.URL.Query().Get("sort")

	products, err := h.store.ListProducts(category, sortBy)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		http.Error(w, "Failed to list products", http.StatusInternalServerError)
		return
	}
	if products == nil {
		products = []store.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *APIHandler) GetProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	product, err := h.store.GetProduct(id)
	if err != nil {
		log.Printf("Error getting product %d: %v", id, err)
		http.Error(w, "Failed to get product", http.StatusInternalServerError)
		return
	}
	if product == nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *APIHandler) RelatedProductsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	products, err := h.store.RelatedProducts(id, relatedProductsLimit)
	if err != nil {
		log.Printf("Error getting related products for %d: %v", id, err)
		http.Error(w, "Failed to get related products", http.StatusInternalServerError)
		return
	}
	if products == nil {
		products = []store.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *APIHandler) ListCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := h.store.Categories()
	if err != nil {
		log.Printf("Error listing categories: %v", err)
		http.Error(w, "Failed to list categories", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// --- Cart ---

type CartResponse struct {
	Items []session.CartLine `json:"items"`
	Total float64            `json:"total"`
	Count int                `json:"count"`
}

func cartResponse(c *session.Cart) CartResponse {
	return CartResponse{
		Items: c.Lines(),
		Total: c.Total(),
		Count: c.Count(),
	}
}

func (h *APIHandler) GetCartHandler(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	writeJSON(w, http.StatusOK, cartResponse(sess.Cart()))
}

type AddCartItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity,omitempty"`
}

func (h *APIHandler) AddCartItemHandler(w http.ResponseWriter, r *http.Request) {
	var req AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	product, err := h.store.GetProduct(req.ProductID)
	if err != nil {
		log.Printf("Error getting product %d for cart: %v", req.ProductID, err)
		http.Error(w, "Failed to add to cart", http.StatusInternalServerError)
		return
	}
	if product == nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	sess := sessionFromContext(r.Context())
	for i := 0; i < quantity; i++ {
		sess.Cart().Add(*product)
	}
	writeJSON(w, http.StatusOK, cartResponse(sess.Cart()))
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateCartItemHandler sets the line quantity; zero or negative removes the
// line entirely.
func (h *APIHandler) UpdateCartItemHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	var req UpdateCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	sess := sessionFromContext(r.Context())
	sess.Cart().UpdateQuantity(id, req.Quantity)
	writeJSON(w, http.StatusOK, cartResponse(sess.Cart()))
}

func (h *APIHandler) RemoveCartItemHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	sess := sessionFromContext(r.Context())
	sess.Cart().Remove(id)
	writeJSON(w, http.StatusOK, cartResponse(sess.Cart()))
}

func (h *APIHandler) ClearCartHandler(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	sess.Cart().Clear()
	writeJSON(w, http.StatusOK, cartResponse(sess.Cart()))
}

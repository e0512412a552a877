package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luxestore.com/storefront/internal/core"
	"luxestore.com/storefront/internal/session"
	"luxestore.com/storefront/internal/store"
)

const testBaseURL = "https://store.example.com"

// newTestRouter wires the full stack against an in-memory catalog with no
// remote credential, so every chat turn resolves through the local fallback.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	dbStore, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { dbStore.Close() })

	catalog, err := dbStore.ListProducts("", store.SortFeatured)
	require.NoError(t, err)

	replyTable := core.NewReplyTable(catalog, testBaseURL)
	resolver := core.NewResolver(nil, core.NewFallbackResolver(replyTable))

	manager := session.NewManager(time.Hour)
	t.Cleanup(manager.Stop)

	return NewRouter(NewAPIHandler(dbStore, resolver, manager), []string{"*"})
}

// doRequest performs one request against the router, carrying the session
// cookie when provided, and returns the recorder plus any session cookie the
// response set.
func doRequest(t *testing.T, router http.Handler, method, path, body string, cookie *http.Cookie) (*httptest.ResponseRecorder, *http.Cookie) {
	t.Helper()

	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.Name == "luxestore_session" {
			return w, c
		}
	}
	return w, cookie
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
	return v
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w, _ := doRequest(t, router, http.MethodGet, "/api/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestChatFallsBackWithoutCredential(t *testing.T) {
	router := newTestRouter(t)

	w, cookie := doRequest(t, router, http.MethodPost, "/api/chat", `{"message":"Do you have running shoes?"}`, nil)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, cookie, "chat must establish a session cookie")

	resp := decodeJSON[ChatResponse](t, w)
	assert.Equal(t, "fallback", resp.Source)
	assert.Equal(t, core.ReasonNoAPIKey, resp.Reason)
	assert.Contains(t, resp.Reply, "159.99")
	assert.Contains(t, resp.Reply, testBaseURL+"/product/5")
}

func TestChatRejectsMalformedBody(t *testing.T) {
	router := newTestRouter(t)

	w, _ := doRequest(t, router, http.MethodPost, "/api/chat", `{"message": `, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatEmptyMessageResolvesToErrorSource(t *testing.T) {
	router := newTestRouter(t)

	w, _ := doRequest(t, router, http.MethodPost, "/api/chat", `{"message":""}`, nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeJSON[ChatResponse](t, w)
	assert.Equal(t, "error", resp.Source)
	assert.NotEmpty(t, resp.Reply)
}

func TestChatHistoryAccumulatesTurns(t *testing.T) {
	router := newTestRouter(t)

	_, cookie := doRequest(t, router, http.MethodPost, "/api/chat", `{"message":"thanks"}`, nil)
	require.NotNil(t, cookie)

	w, _ := doRequest(t, router, http.MethodGet, "/api/chat/history", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)

	msgs := decodeJSON[[]session.ChatMessage](t, w)
	require.Len(t, msgs, 3, "greeting, user turn, assistant reply")
	assert.Equal(t, session.OriginAssistant, msgs[0].Origin)
	assert.Equal(t, session.OriginUser, msgs[1].Origin)
	assert.Equal(t, "thanks", msgs[1].Text)
	assert.Equal(t, session.OriginAssistant, msgs[2].Origin)
	for i, m := range msgs {
		assert.Equal(t, i+1, m.ID)
	}
}

func TestRequestAgent(t *testing.T) {
	router := newTestRouter(t)

	w, cookie := doRequest(t, router, http.MethodPost, "/api/chat/agent", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeJSON[RequestAgentResponse](t, w)
	assert.True(t, resp.AgentRequested)
	assert.Contains(t, resp.Reply, "live agent")

	// History carries the notice exactly once even after a repeat request.
	doRequest(t, router, http.MethodPost, "/api/chat/agent", "", cookie)
	h, _ := doRequest(t, router, http.MethodGet, "/api/chat/history", "", cookie)
	msgs := decodeJSON[[]session.ChatMessage](t, h)
	assert.Len(t, msgs, 2)
}

func TestListProducts(t *testing.T) {
	router := newTestRouter(t)

	w, _ := doRequest(t, router, http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	products := decodeJSON[[]store.Product](t, w)
	assert.Len(t, products, 8)

	w, _ = doRequest(t, router, http.MethodGet, "/api/products?category=Footwear", "", nil)
	products = decodeJSON[[]store.Product](t, w)
	require.Len(t, products, 1)
	assert.Equal(t, "Running Shoes", products[0].Name)

	w, _ = doRequest(t, router, http.MethodGet, "/api/products?sort=price-low", "", nil)
	products = decodeJSON[[]store.Product](t, w)
	require.NotEmpty(t, products)
	assert.Equal(t, "Leather Wallet", products[0].Name)
}

func TestGetProduct(t *testing.T) {
	router := newTestRouter(t)

	w, _ := doRequest(t, router, http.MethodGet, "/api/products/5", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	p := decodeJSON[store.Product](t, w)
	assert.Equal(t, "Running Shoes", p.Name)

	w, _ = doRequest(t, router, http.MethodGet, "/api/products/999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doRequest(t, router, http.MethodGet, "/api/products/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRelatedProductsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w, _ := doRequest(t, router, http.MethodGet, "/api/products/1/related", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	products := decodeJSON[[]store.Product](t, w)
	require.Len(t, products, 3)
	for _, p := range products {
		assert.Equal(t, "Electronics", p.Category)
		assert.NotEqual(t, int64(1), p.ID)
	}
}

func TestListCategories(t *testing.T) {
	router := newTestRouter(t)

	w, _ := doRequest(t, router, http.MethodGet, "/api/categories", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Electronics", "Accessories", "Footwear"}, decodeJSON[[]string](t, w))
}

func TestCartLifecycle(t *testing.T) {
	router := newTestRouter(t)

	// Empty cart on a fresh session.
	w, cookie := doRequest(t, router, http.MethodGet, "/api/cart", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cart := decodeJSON[CartResponse](t, w)
	assert.Zero(t, cart.Count)
	assert.Empty(t, cart.Items)

	// Adding the same product twice merges into one line.
	w, cookie = doRequest(t, router, http.MethodPost, "/api/cart/items", `{"product_id":5}`, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	w, cookie = doRequest(t, router, http.MethodPost, "/api/cart/items", `{"product_id":5}`, cookie)
	cart = decodeJSON[CartResponse](t, w)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 2, cart.Count)
	assert.InDelta(t, 2*159.99, cart.Total, 1e-9)

	// Add with an explicit quantity.
	w, cookie = doRequest(t, router, http.MethodPost, "/api/cart/items", `{"product_id":2,"quantity":3}`, cookie)
	cart = decodeJSON[CartResponse](t, w)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, 5, cart.Count)

	// Updating to zero removes the line.
	w, cookie = doRequest(t, router, http.MethodPut, "/api/cart/items/5", `{"quantity":0}`, cookie)
	cart = decodeJSON[CartResponse](t, w)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(2), cart.Items[0].Product.ID)
	assert.Equal(t, 3, cart.Count)

	// Remove and clear.
	w, cookie = doRequest(t, router, http.MethodDelete, "/api/cart/items/2", "", cookie)
	cart = decodeJSON[CartResponse](t, w)
	assert.Empty(t, cart.Items)

	doRequest(t, router, http.MethodPost, "/api/cart/items", `{"product_id":1}`, cookie)
	w, _ = doRequest(t, router, http.MethodDelete, "/api/cart", "", cookie)
	cart = decodeJSON[CartResponse](t, w)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Total)
}

func TestAddUnknownProductToCart(t *testing.T) {
	router := newTestRouter(t)

	w, _ := doRequest(t, router, http.MethodPost, "/api/cart/items", `{"product_id":999}`, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/products", strings.NewReader(""))
	req.Header.Set("Origin", "https://storefront.example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://storefront.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

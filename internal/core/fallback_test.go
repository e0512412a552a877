package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luxestore.com/storefront/internal/store"
)

const testBaseURL = "https://store.example.com"

func testCatalog(t *testing.T) []store.Product {
	t.Helper()
	s, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	products, err := s.ListProducts("", store.SortFeatured)
	require.NoError(t, err)
	require.NotEmpty(t, products)
	return products
}

func testFallback(t *testing.T) *FallbackResolver {
	t.Helper()
	return NewFallbackResolver(NewReplyTable(testCatalog(t), testBaseURL))
}

func TestRespondIsTotal(t *testing.T) {
	fallback := testFallback(t)

	inputs := []string{
		"",
		"   ",
		"hi",
		"Do you have running shoes?",
		"qwertyuiop zxcvbnm",
		"🙂🙂🙂",
		strings.Repeat("lorem ipsum ", 200),
		"'; DROP TABLE products; --",
	}
	for _, input := range inputs {
		assert.NotEmpty(t, fallback.Respond(input), "input %q", input)
	}
}

func TestRespondIsDeterministic(t *testing.T) {
	fallback := testFallback(t)

	first := fallback.Respond("Do you have running shoes?")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, fallback.Respond("Do you have running shoes?"))
	}
	assert.Equal(t, fallback.Respond("THANKS"), fallback.Respond("thanks"))
}

func TestRespondShoesTemplate(t *testing.T) {
	reply := testFallback(t).Respond("Do you have running shoes?")

	assert.Contains(t, reply, "159.99")
	assert.Contains(t, reply, testBaseURL+"/product/5")
	assert.Contains(t, reply, "Running Shoes")
}

func TestRespondGratitudeTemplate(t *testing.T) {
	reply := testFallback(t).Respond("thanks")
	assert.Equal(t, "You're very welcome! Is there anything else I can assist you with today?", reply)
}

func TestRespondDefaultTemplate(t *testing.T) {
	reply := testFallback(t).Respond("xyzzy")
	assert.Contains(t, reply, testBaseURL+"/shop")
	assert.Contains(t, reply, "Show me headphones")
}

func TestPricingReplySpansCatalog(t *testing.T) {
	reply := testFallback(t).Respond("how much do your products cost")
	assert.Contains(t, reply, "$79.99")
	assert.Contains(t, reply, "$1,299.99")
}

func TestStockReplyCountsCatalog(t *testing.T) {
	reply := testFallback(t).Respond("is everything in stock")
	assert.Contains(t, reply, "8 premium products")
	assert.Contains(t, reply, "Electronics, Accessories, and Footwear")
}

func TestRenderUnknownCategoryFallsBackToDefault(t *testing.T) {
	table := NewReplyTable(testCatalog(t), testBaseURL)
	assert.Equal(t, table.Render(CategoryDefault), table.Render(Category("no-such-category")))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$79.99", formatPrice(79.99))
	assert.Equal(t, "$159.99", formatPrice(159.99))
	assert.Equal(t, "$1,299.99", formatPrice(1299.99))
	assert.Equal(t, "$1,234,567.80", formatPrice(1234567.8))
}

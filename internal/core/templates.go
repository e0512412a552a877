package core

import (
	"fmt"
	"strings"

	"luxestore.com/storefront/internal/store"
)

// ApologyReply is returned when a turn cannot be resolved through either the
// remote or the local path.
const ApologyReply = "I'm sorry, something went wrong on our end. Please try again, or request a live agent for immediate assistance."

// productCategories maps product-keyword intents to catalog product ids.
// These ids match the seeded catalog; reply templates for missing ids are
// skipped so a trimmed catalog degrades to the default reply.
var productCategories = map[Category]int64{
	CategoryHeadphones: 1,
	CategoryWatch:      2,
	CategoryBackpack:   3,
	CategoryWallet:     4,
	CategoryShoes:      5,
	CategorySunglasses: 6,
	CategorySpeaker:    7,
	CategoryCamera:     8,
}

// productLeads varies the opening phrase per product intent.
var productLeads = map[Category]string{
	CategoryHeadphones: "Check out our %s for %s: %s",
	CategoryWatch:      "Our %s is available for %s: %s",
	CategoryBackpack:   "Check out our %s for %s: %s",
	CategoryWallet:     "Our %s is %s: %s",
	CategoryShoes:      "Our %s are %s: %s",
	CategorySunglasses: "View our %s for %s: %s",
	CategorySpeaker:    "View our %s for %s: %s",
	CategoryCamera:     "Our %s is %s: %s",
}

// ReplyTable is the static category-to-response mapping used by the local
// fallback path. It is built once from the catalog so product names, prices,
// and deep links always agree with what the store actually sells.
type ReplyTable struct {
	replies map[Category]string
}

func NewReplyTable(products []store.Product, baseURL string) *ReplyTable {
	shopURL := baseURL + "/shop"
	byID := make(map[int64]store.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	replies := map[Category]string{
		CategoryGreeting:   "Hello! Welcome to LuxeStore. How may I assist you today?",
		CategoryGratitude:  "You're very welcome! Is there anything else I can assist you with today?",
		CategoryCompliment: "Thank you for the kind words! I'm here to help you find what you need. Is there anything specific I can assist you with today?",
		CategorySiteComplaint: "I apologize for your experience. Your feedback is valuable to us. Could you specify what you'd like to see improved? " +
			"I can also connect you with our team via the 'Request Live Agent' button for further assistance.",
		CategorySiteDesign: "Thank you for your feedback on our design. We continuously work to improve our user experience. " +
			"What specific changes would you suggest? Feel free to request a live agent if you'd like to discuss this in detail.",
		CategoryComplaint: "I apologize for the inconvenience. I'm here to help resolve this. Could you provide more details about the issue? " +
			"Alternatively, click 'Request Live Agent' for immediate assistance.",
		CategoryLinkRequest: "Browse all products: " + shopURL + "\n\nTell me what you're looking for and I'll send you the direct link!",
		CategoryShipping: "We offer free shipping on orders over $100. Standard delivery takes 3-5 business days. " +
			"Express shipping (1-2 days) is available for $15. We ship nationwide.",
		CategoryReturns: "We have a 30-day return policy. Products must be unused and in original packaging. " +
			"Returns are free, and refunds are processed within 5-7 business days.",
		CategoryPayment: "We accept all major credit cards, PayPal, Apple Pay, and Google Pay. " +
			"All transactions are secured with 256-bit encryption for your protection.",
		CategoryDiscount: "Sign up for our newsletter to receive 10% off your first order. We also run regular promotional sales. " +
			"Currently, all orders over $100 qualify for free shipping.",
		CategoryQuality: "Our products maintain an average 4.7/5 star rating from over 10,000 customers. " +
			"We work directly with manufacturers to ensure premium quality and offer a 100% satisfaction guarantee.",
		CategoryBrowse: "Browse our full catalog: " + shopURL + "\n\nOr tell me what specific product you're interested in and I'll send you the direct link!",
		CategoryAgent:  "For personalized assistance, please click the 'Request Live Agent' button below. A team member will be with you within 2-3 minutes.",
		CategoryDefault: "I'm here to help! I can provide direct links to any product.\n\n" +
			"Try asking:\n• 'Show me headphones'\n• 'Link to running shoes'\n• 'Do you have cameras?'\n\n" +
			"Or browse all: " + shopURL,
	}

	for category, productID := range productCategories {
		p, ok := byID[productID]
		if !ok {
			continue
		}
		lead, ok := productLeads[category]
		if !ok {
			lead = "Check out our %s for %s: %s"
		}
		link := fmt.Sprintf("%s/product/%d", baseURL, p.ID)
		replies[category] = fmt.Sprintf(lead, p.Name, formatPrice(p.Price), link) + "\n\n" + p.Description + "!"
	}

	if len(products) > 0 {
		replies[CategoryPricing] = pricingReply(products, shopURL)
		replies[CategoryStock] = stockReply(products)
		replies[CategoryCatalogSummary] = catalogSummaryReply(products, shopURL)
	}

	return &ReplyTable{replies: replies}
}

// Render is a pure lookup. Unknown categories render the default reply so
// the fallback path can never produce an empty string.
func (t *ReplyTable) Render(category Category) string {
	if reply, ok := t.replies[category]; ok {
		return reply
	}
	return t.replies[CategoryDefault]
}

func pricingReply(products []store.Product, shopURL string) string {
	min, max := products[0].Price, products[0].Price
	for _, p := range products[1:] {
		if p.Price < min {
			min = p.Price
		}
		if p.Price > max {
			max = p.Price
		}
	}
	return fmt.Sprintf("Our products range from %s to %s. View all: %s\n\nFree shipping on orders over $100!",
		formatPrice(min), formatPrice(max), shopURL)
}

func stockReply(products []store.Product) string {
	return fmt.Sprintf("We currently have %d premium products in stock across our %s categories. "+
		"All items are ready to ship. Which category would you like to explore?",
		len(products), joinWithAnd(categoryNames(products)))
}

func catalogSummaryReply(products []store.Product, shopURL string) string {
	var b strings.Builder
	b.WriteString("We offer:\n")
	for _, category := range categoryNames(products) {
		var names []string
		for _, p := range products {
			if p.Category == category {
				names = append(names, strings.ToLower(p.Name))
			}
		}
		fmt.Fprintf(&b, "• %s (%s)\n", category, strings.Join(names, ", "))
	}
	b.WriteString("\nBrowse all: " + shopURL + " or ask me for a specific product link!")
	return b.String()
}

// categoryNames returns distinct categories in catalog order.
func categoryNames(products []store.Product) []string {
	seen := make(map[string]bool)
	var names []string
	for _, p := range products {
		if !seen[p.Category] {
			seen[p.Category] = true
			names = append(names, p.Category)
		}
	}
	return names
}

func joinWithAnd(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
	}
}

// formatPrice renders a dollar amount with a thousands separator, e.g.
// 1299.99 becomes $1,299.99.
func formatPrice(amount float64) string {
	s := fmt.Sprintf("%.2f", amount)
	dot := strings.IndexByte(s, '.')
	whole, frac := s[:dot], s[dot:]
	for i := len(whole) - 3; i > 0; i -= 3 {
		whole = whole[:i] + "," + whole[i:]
	}
	return "$" + whole + frac
}

package core

import (
	"regexp"
	"strings"
)

// Category is the intent assigned to a user message by the classifier.
type Category string

const (
	CategoryGreeting       Category = "greeting"
	CategoryGratitude      Category = "gratitude"
	CategoryCompliment     Category = "compliment"
	CategorySiteComplaint  Category = "site-complaint"
	CategorySiteDesign     Category = "site-design"
	CategoryComplaint      Category = "complaint"
	CategoryHeadphones     Category = "headphones"
	CategoryWatch          Category = "watch"
	CategorySpeaker        Category = "speaker"
	CategoryCamera         Category = "camera"
	CategoryShoes          Category = "shoes"
	CategoryBackpack       Category = "backpack"
	CategoryWallet         Category = "wallet"
	CategorySunglasses     Category = "sunglasses"
	CategoryLinkRequest    Category = "link-request"
	CategoryPricing        Category = "pricing"
	CategoryShipping       Category = "shipping"
	CategoryReturns        Category = "returns"
	CategoryPayment        Category = "payment"
	CategoryDiscount       Category = "discount"
	CategoryQuality        Category = "quality"
	CategoryStock          Category = "stock"
	CategoryBrowse         Category = "browse"
	CategoryCatalogSummary Category = "catalog-summary"
	CategoryAgent          Category = "agent-request"
	CategoryDefault        Category = "default"
)

type rule struct {
	category Category
	pattern  *regexp.Regexp
}

// rules is evaluated top to bottom and the first match wins. The order is a
// deliberate priority (greetings before product keywords, product keywords
// before generic purchase phrases), so a message matching several rules
// always resolves to the earliest one. Patterns match against the
// lowercased message.
var rules = []rule{
	{CategoryGreeting, regexp.MustCompile(`^(hi|hello|hey|good morning|good afternoon|good evening|sup|yo)$`)},
	{CategoryGratitude, regexp.MustCompile(`thank|thanks|thx|appreciate`)},
	{CategoryCompliment, regexp.MustCompile(`good job|great|awesome|amazing|excellent|love it|fantastic|wonderful|nice|cool|impressive|well done`)},
	{CategorySiteComplaint, eitherOrder(`website|site|store|page`, `don'?t like|hate|ugly|bad|terrible|not good|dislike`)},
	{CategorySiteDesign, eitherOrder(`website|site|store|page`, `look|design|layout|appearance`)},
	{CategoryComplaint, regexp.MustCompile(`problem|issue|complaint|not working|broken|error`)},
	{CategoryHeadphones, regexp.MustCompile(`headphone|earphone|earbud|audio`)},
	{CategoryWatch, regexp.MustCompile(`watch|smartwatch`)},
	{CategorySpeaker, regexp.MustCompile(`speaker|bluetooth`)},
	{CategoryCamera, regexp.MustCompile(`camera|photography`)},
	{CategoryShoes, regexp.MustCompile(`shoe|footwear|sneaker|running|trainer`)},
	{CategoryBackpack, regexp.MustCompile(`backpack|bag`)},
	{CategoryWallet, regexp.MustCompile(`wallet`)},
	{CategorySunglasses, regexp.MustCompile(`sunglass|shades`)},
	{CategoryLinkRequest, regexp.MustCompile(`link|url|where to buy|show me|buy|purchase`)},
	{CategoryPricing, regexp.MustCompile(`how much|price|cost|expensive|cheap`)},
	{CategoryShipping, regexp.MustCompile(`ship|deliver|delivery|shipping|send`)},
	{CategoryReturns, regexp.MustCompile(`return|refund|exchange|money back|send back`)},
	{CategoryPayment, regexp.MustCompile(`payment|pay|card|visa|mastercard|paypal|apple pay`)},
	{CategoryDiscount, regexp.MustCompile(`discount|sale|deal|coupon|promo|offer`)},
	{CategoryQuality, regexp.MustCompile(`quality|good|worth|recommend|review|rating`)},
	{CategoryStock, regexp.MustCompile(`in stock|available|stock|inventory`)},
	{CategoryBrowse, regexp.MustCompile(`browse|shop|see|show|looking for|want to`)},
	{CategoryCatalogSummary, regexp.MustCompile(`(what|which|tell me).*(sell|have|offer|product)`)},
	{CategoryAgent, regexp.MustCompile(`agent|human|person|talk to someone|contact|help|support`)},
}

// eitherOrder builds a pattern requiring one match from each group,
// in whichever order they appear in the message.
func eitherOrder(first, second string) *regexp.Regexp {
	return regexp.MustCompile(`(` + first + `).*(` + second + `)|(` + second + `).*(` + first + `)`)
}

// Classify maps free-text input to an intent category. Matching is
// case-insensitive and returns CategoryDefault when no rule matches.
func Classify(text string) Category {
	msg := strings.ToLower(strings.TrimSpace(text))
	for _, r := range rules {
		if r.pattern.MatchString(msg) {
			return r.category
		}
	}
	return CategoryDefault
}

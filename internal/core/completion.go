package core

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"luxestore.com/storefront/internal/store"
)

const completionModelName = "gemini-1.5-flash-latest"

// CompletionClient sends a single-turn completion request to the hosted
// model. Each call is stateless: it carries the fixed store-context system
// instruction and the raw user message, never conversation history.
type CompletionClient struct {
	client            *genai.Client
	systemInstruction string
}

// NewCompletionClient builds the remote client. An empty API key yields a
// disabled client whose Complete always fails with ErrNoCredential; this is
// the expected configuration for fallback-only deployments, not an error.
func NewCompletionClient(ctx context.Context, apiKey string, products []store.Product, baseURL string) (*CompletionClient, error) {
	if apiKey == "" {
		return &CompletionClient{}, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &CompletionClient{
		client:            client,
		systemInstruction: buildSystemInstruction(products, baseURL),
	}, nil
}

func (c *CompletionClient) Enabled() bool {
	return c != nil && c.client != nil
}

func (c *CompletionClient) Close() {
	if c.client != nil {
		if err := c.client.Close(); err != nil {
			log.Printf("Error closing GenAI client: %v", err)
		}
	}
}

// Complete performs one outbound completion call. Single attempt, no
// retries; every failure mode maps onto the resolver's error taxonomy.
func (c *CompletionClient) Complete(ctx context.Context, message string) (string, error) {
	if !c.Enabled() {
		return "", ErrNoCredential
	}

	model := c.client.GenerativeModel(completionModelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(c.systemInstruction)},
	}

	temp := float32(0.7)
	maxTokens := int32(150)
	model.GenerationConfig = genai.GenerationConfig{
		Temperature:     &temp,
		MaxOutputTokens: &maxTokens,
	}

	resp, err := model.GenerateContent(ctx, genai.Text(message))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyCompletion
	}

	var reply strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			reply.WriteString(string(txt))
		} else {
			log.Printf("Completion response part was not text: %T", part)
		}
	}

	if strings.TrimSpace(reply.String()) == "" {
		return "", ErrEmptyCompletion
	}
	return reply.String(), nil
}

// buildSystemInstruction renders the store context the model answers from:
// the catalog with prices and deep links, store policies, and the
// link-formatting directive.
func buildSystemInstruction(products []store.Product, baseURL string) string {
	var b strings.Builder
	b.WriteString("You are a helpful customer service assistant for LuxeStore, a premium e-commerce website.\n\n")
	b.WriteString("Store Information & Product Links:\n")

	for _, category := range categoryNames(products) {
		fmt.Fprintf(&b, "\n%s:\n", strings.ToUpper(category))
		for _, p := range products {
			if p.Category != category {
				continue
			}
			fmt.Fprintf(&b, "%d. %s - %s\n   Link: %s/product/%d\n", p.ID, p.Name, formatPrice(p.Price), baseURL, p.ID)
		}
	}

	fmt.Fprintf(&b, "\nOther Pages:\n- Shop All: %s/shop\n- Collections: %s/collections\n- Contact: %s/contact\n", baseURL, baseURL, baseURL)

	b.WriteString(`
Store Policies:
- Free shipping on orders over $100
- 3-5 business days standard delivery
- 30-day return policy
- We accept all major credit cards, PayPal, Apple Pay, Google Pay
- Average rating: 4.7/5 stars
- 10,000+ happy customers

Guidelines:
- Be professional, helpful, and concise (2-3 sentences max)
- ALWAYS provide DIRECT PRODUCT LINKS when customers ask about specific products
`)
	fmt.Fprintf(&b, "- Example: \"Here's our Running Shoes for $159.99: %s/product/5\"\n", baseURL)
	b.WriteString(`- If you don't know something specific, suggest contacting a live agent
- Stay focused on helping customers find products and answering store-related questions
- For complaints, apologize professionally and offer to escalate to a live agent`)

	return b.String()
}

package services

import (
	"context"
	"fmt"
	"strings"

	"product-chatbot-backend/models"
	"product-chatbot-backend/utils"
)

// Completer is the generative fallback collaborator. Implementations
// must never fail: on error they return the fallback sentinel text.
type Completer interface {
	Complete(ctx context.Context, prompt string) string
}

// displayLimit caps list-style answers.
const displayLimit = 6

const (
	emptyMessageReply = "Sorry, I didn't receive a message. Please ask about a product or say 'hi'."
	greetingReply     = "Hello! 👋 How can I help you today? Ask about a product name, category, price range, or rating."
	farewellReply     = "Goodbye! If you need anything else, just ask."
	catalogDownReply  = "Sorry — I couldn't load products right now. Please try again later."
)

// ChatbotService answers catalog questions with deterministic rules
// first and the generative fallback last. It holds no per-request
// state; every call works on its own catalog snapshot.
type ChatbotService struct {
	aiService        Completer
	catalog          CatalogProvider
	intentClassifier *utils.IntentClassifier
}

func NewChatbotService(aiService Completer, catalog CatalogProvider) *ChatbotService {
	return &ChatbotService{
		aiService:        aiService,
		catalog:          catalog,
		intentClassifier: utils.NewIntentClassifier(),
	}
}

// ProcessMessage runs the message through the response pipeline and
// always produces a non-empty reply; there is no error path.
//
// Branch order: empty message, greeting, farewell (both before the
// catalog fetch), product resolution, category listing, category
// filter, numeric filter, generic fallback.
func (s *ChatbotService) ProcessMessage(ctx context.Context, req models.ChatRequest) *models.ChatResponse {
	txt := strings.TrimSpace(req.Message)
	if txt == "" {
		return models.NewTextResponse(emptyMessageReply, models.IntentFallback)
	}

	if s.intentClassifier.IsGreeting(txt) {
		return models.NewTextResponse(greetingReply, models.IntentGreeting)
	}
	if s.intentClassifier.IsFarewell(txt) {
		return models.NewTextResponse(farewellReply, models.IntentFarewell)
	}

	products, err := s.catalog.FetchProducts(ctx)
	if err != nil || len(products) == 0 {
		return models.NewTextResponse(catalogDownReply, models.IntentFallback)
	}

	// A catalog-wide rating filter wins over a product-name match:
	// "ratings above 4" is a filter query even if a title happens to
	// match part of it.
	if !s.intentClassifier.HasRatingFilter(txt) {
		if product := ResolveProduct(txt, products); product != nil {
			return s.answerProduct(ctx, txt, *product)
		}
	}

	lowerTxt := strings.ToLower(txt)

	if s.intentClassifier.IsCategoryListing(lowerTxt) {
		return s.listCategories(products)
	}

	for _, c := range Categories(products) {
		if strings.Contains(lowerTxt, c) {
			return s.answerCategory(products, c)
		}
	}

	priceRange := utils.ExtractPriceRange(txt)
	minRating := s.intentClassifier.MinRating(txt)
	filters := models.SearchFilters{
		MinPrice:  priceRange.Low,
		MaxPrice:  priceRange.High,
		MinRating: minRating,
	}
	if filtered := FilterProducts(products, filters); len(filtered) > 0 {
		return s.answerFiltered(filtered, priceRange, minRating)
	}

	return models.NewTextResponse(s.aiService.Complete(ctx, genericPrompt(req.Message)), models.IntentFallback)
}

// answerProduct answers for a single resolved product: a deterministic
// template when exactly one of the price/stock/rating intents is
// present, otherwise a fact-grounded prompt to the fallback.
func (s *ChatbotService) answerProduct(ctx context.Context, txt string, product models.Product) *models.ChatResponse {
	facts := buildProductFacts(product)

	wantsPrice := s.intentClassifier.WantsPrice(txt)
	wantsStock := s.intentClassifier.WantsStock(txt)
	wantsRating := s.intentClassifier.WantsRating(txt)

	switch {
	case wantsPrice && !wantsStock && !wantsRating:
		return models.NewTextResponse(fmt.Sprintf(
			"%s is priced at $%.2f. After a %.2f%% discount the final price is $%.2f.",
			facts.Name, facts.Price, facts.Discount, facts.ActualPrice,
		), models.IntentProductQuery)
	case wantsStock && !wantsPrice && !wantsRating:
		return models.NewTextResponse(fmt.Sprintf(
			"Currently we have %d unit(s) of %s in stock.",
			facts.Stock, facts.Name,
		), models.IntentProductQuery)
	case wantsRating && !wantsPrice && !wantsStock:
		return models.NewTextResponse(fmt.Sprintf(
			"%s has an average rating of %g stars.",
			facts.Name, facts.Rating,
		), models.IntentProductQuery)
	}

	reply := s.aiService.Complete(ctx, productPrompt(txt, facts))
	if IsFallbackSentinel(reply) {
		reply = localSummary(facts)
	}
	return models.NewTextResponse(reply, models.IntentProductQuery)
}

func (s *ChatbotService) listCategories(products []models.Product) *models.ChatResponse {
	categories := Categories(products)
	for i, c := range categories {
		categories[i] = capitalize(c)
	}
	return models.NewTextResponse(
		"We currently offer products in these categories:\n- "+strings.Join(categories, "\n- "),
		models.IntentCategoryListing,
	)
}

func (s *ChatbotService) answerCategory(products []models.Product, category string) *models.ChatResponse {
	items := SearchByCategory(products, category)
	if len(items) == 0 {
		return models.NewTextResponse(
			fmt.Sprintf("Sorry — I couldn't find items in '%s'.", category),
			models.IntentCategoryFilter,
		)
	}
	return models.NewTextResponse(
		fmt.Sprintf("I found these items in *%s*:\n%s", category, formatProductLines(items)),
		models.IntentCategoryFilter,
	)
}

func (s *ChatbotService) answerFiltered(filtered []models.Product, priceRange models.PriceRange, minRating *float64) *models.ChatResponse {
	var header string
	switch {
	case minRating != nil:
		header = fmt.Sprintf("Here are some products rated above %g:\n", *minRating)
	case priceRange.High != nil:
		header = fmt.Sprintf("Here are some products under $%g:\n", *priceRange.High)
	case priceRange.Low != nil:
		header = fmt.Sprintf("Here are some products above $%g:\n", *priceRange.Low)
	default:
		header = "Here are some matching products:\n"
	}
	return models.NewTextResponse(header+formatProductLines(filtered), models.IntentNumericFilter)
}

func buildProductFacts(p models.Product) models.ProductFacts {
	brand := p.Brand
	if brand == "" {
		brand = "Unknown"
	}
	category := p.Category
	if category == "" {
		category = "Unknown"
	}
	return models.ProductFacts{
		Name:        p.Title,
		Description: p.Description,
		Price:       p.Price,
		Discount:    p.DiscountPercentage,
		ActualPrice: ComputeActualPrice(p.Price, p.DiscountPercentage),
		Rating:      p.Rating,
		Stock:       p.Stock,
		Brand:       brand,
		Category:    category,
	}
}

func formatProductLines(items []models.Product) string {
	if len(items) > displayLimit {
		items = items[:displayLimit]
	}
	lines := make([]string, 0, len(items))
	for _, it := range items {
		actual := ComputeActualPrice(it.Price, it.DiscountPercentage)
		lines = append(lines, fmt.Sprintf(
			"%s — $%.2f (orig $%.2f, %g%% off), rating %g, stock %d",
			it.Title, actual, it.Price, it.DiscountPercentage, it.Rating, it.Stock,
		))
	}
	return strings.Join(lines, "\n")
}

// localSummary is the degraded one-paragraph reply used when the
// fallback is unreachable but product facts are at hand.
func localSummary(facts models.ProductFacts) string {
	return fmt.Sprintf(
		"%s — %s Price: $%.2f (after %.2f%% off: $%.2f), rating %g, stock %d.",
		facts.Name, facts.Description, facts.Price,
		facts.Discount, facts.ActualPrice, facts.Rating, facts.Stock,
	)
}

func productPrompt(message string, facts models.ProductFacts) string {
	return fmt.Sprintf(`You are a helpful and friendly e-commerce assistant. Use only the facts below to answer the customer's query naturally and helpfully.
Customer message: %q

Product facts:
- Name: %s
- Brand: %s
- Category: %s
- Description: %s
- Price: $%.2f
- Discount: %.2f%%
- Final price (after discount): $%.2f
- Rating: %g
- Stock: %d

Write a concise, friendly response (1-3 short paragraphs) that answers the user's question using these facts. If the user is vague, offer helpful next steps or a follow-up question.`,
		message, facts.Name, facts.Brand, facts.Category, facts.Description,
		facts.Price, facts.Discount, facts.ActualPrice, facts.Rating, facts.Stock,
	)
}

func genericPrompt(message string) string {
	return fmt.Sprintf(`You are a friendly shopping assistant.
The user said: %q
If the message is not specifically about a product, reply in a short conversational way, but avoid making up product facts. If unsure, offer guidance on what they can ask.`,
		message,
	)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

package services

import (
	"strings"

	"product-chatbot-backend/models"
	"product-chatbot-backend/utils"
)

// resolverTier is one resolution strategy. Tiers run in priority order;
// the first one returning a product wins.
type resolverTier func(message string, products []models.Product) *models.Product

var resolverTiers = []resolverTier{
	exactTitleMatch,
	normalizedSubstringMatch,
	tokenOverlapMatch,
}

// ResolveProduct finds the single best-matching product for a message,
// or nil when nothing matches. The rating-filter guard that suppresses
// resolution for catalog-wide queries is applied by the caller.
func ResolveProduct(message string, products []models.Product) *models.Product {
	for _, tier := range resolverTiers {
		if p := tier(message, products); p != nil {
			return p
		}
	}
	return nil
}

// exactTitleMatch: the whole message is exactly a product title.
func exactTitleMatch(message string, products []models.Product) *models.Product {
	lower := strings.ToLower(message)
	for i := range products {
		if strings.ToLower(products[i].Title) == lower {
			return &products[i]
		}
	}
	return nil
}

// normalizedSubstringMatch: the normalized title appears inside the
// normalized message, so "Tell me about Kiwis" finds "Kiwi".
func normalizedSubstringMatch(message string, products []models.Product) *models.Product {
	normText := utils.NormalizeText(message)
	for i := range products {
		if strings.Contains(normText, utils.NormalizeWord(products[i].Title)) {
			return &products[i]
		}
	}
	return nil
}

// tokenOverlapMatch: score each product by the number of normalized
// message tokens shared with its title words. Ties keep the first
// product in catalog order; a best score of zero is no match.
func tokenOverlapMatch(message string, products []models.Product) *models.Product {
	tokens := utils.Tokens(utils.NormalizeText(message))
	if len(tokens) == 0 {
		return nil
	}
	tokenSet := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		tokenSet[t] = struct{}{}
	}

	var best *models.Product
	bestScore := 0
	for i := range products {
		titleWords := make(map[string]struct{})
		for _, w := range strings.Fields(strings.ToLower(products[i].Title)) {
			titleWords[utils.NormalizeWord(w)] = struct{}{}
		}
		score := 0
		for t := range tokenSet {
			if _, ok := titleWords[t]; ok {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = &products[i]
		}
	}
	return best
}

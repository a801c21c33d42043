package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// Matches "what categories do you have", "types of products", etc.
	// Known limitation: any message containing "categories" triggers it.
	categoryListingPattern = regexp.MustCompile(`(?i)\b(categories|types of products|what.*categories)\b`)

	// Matches "rating above 4", "ratings greater than 3.5", etc.
	ratingFilterPattern = regexp.MustCompile(`(?i)ratings?\s*(?:above|over|greater than)\s*(\d+(?:\.\d+)?)`)
)

// IntentClassifier holds the fixed keyword vocabularies used to
// classify a message. All checks are case-insensitive substring tests
// over the lowercased message; the vocabularies are initialized once
// and never mutated.
type IntentClassifier struct {
	greetings       []string
	farewells       []string
	priceInquiries  []string
	stockInquiries  []string
	ratingInquiries []string
}

func NewIntentClassifier() *IntentClassifier {
	return &IntentClassifier{
		greetings: []string{
			"hi", "hello", "hey", "good morning", "good afternoon",
			"good evening", "greetings",
		},
		farewells: []string{
			"bye", "goodbye", "see you", "take care",
		},
		priceInquiries: []string{
			"price", "cost", "how much", "what is the price", "priced",
		},
		stockInquiries: []string{
			"stock", "available", "availability", "in stock",
		},
		ratingInquiries: []string{
			"rating", "ratings", "review", "reviews", "stars",
		},
	}
}

func (ic *IntentClassifier) IsGreeting(message string) bool {
	return ic.containsAnyKeyword(message, ic.greetings)
}

func (ic *IntentClassifier) IsFarewell(message string) bool {
	return ic.containsAnyKeyword(message, ic.farewells)
}

func (ic *IntentClassifier) WantsPrice(message string) bool {
	return ic.containsAnyKeyword(message, ic.priceInquiries)
}

func (ic *IntentClassifier) WantsStock(message string) bool {
	return ic.containsAnyKeyword(message, ic.stockInquiries)
}

func (ic *IntentClassifier) WantsRating(message string) bool {
	return ic.containsAnyKeyword(message, ic.ratingInquiries)
}

// IsCategoryListing reports whether the message asks which categories
// exist at all ("what categories do you have?").
func (ic *IntentClassifier) IsCategoryListing(message string) bool {
	return categoryListingPattern.MatchString(message)
}

// HasRatingFilter reports whether the message contains a catalog-wide
// rating threshold. Such messages suppress single-product resolution
// because they are filter queries, not product lookups.
func (ic *IntentClassifier) HasRatingFilter(message string) bool {
	return ratingFilterPattern.MatchString(message)
}

// MinRating extracts the rating threshold, if any.
func (ic *IntentClassifier) MinRating(message string) *float64 {
	m := ratingFilterPattern.FindStringSubmatch(message)
	if m == nil {
		return nil
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	return &v
}

func (ic *IntentClassifier) containsAnyKeyword(message string, keywords []string) bool {
	message = strings.ToLower(message)
	for _, keyword := range keywords {
		if strings.Contains(message, keyword) {
			return true
		}
	}
	return false
}

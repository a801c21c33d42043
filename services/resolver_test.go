package services

import (
	"testing"

	"product-chatbot-backend/models"
)

func testCatalog() []models.Product {
	return []models.Product{
		{ID: 1, Title: "Kiwi", Category: "groceries", Price: 2.5, Rating: 4.5},
		{ID: 2, Title: "Green Apple", Category: "groceries", Price: 1.2, Rating: 4.0},
		{ID: 3, Title: "Apple Juice", Category: "beverages", Price: 3.0, Rating: 3.8},
		{ID: 4, Title: "Laptop Pro", Category: "electronics", Price: 999, Rating: 4.8},
	}
}

func TestResolveExactTitle(t *testing.T) {
	p := ResolveProduct("kiwi", testCatalog())
	if p == nil || p.ID != 1 {
		t.Fatalf("expected exact match on Kiwi, got %+v", p)
	}

	p = ResolveProduct("GREEN APPLE", testCatalog())
	if p == nil || p.ID != 2 {
		t.Fatalf("expected exact match on Green Apple, got %+v", p)
	}
}

func TestResolveNormalizedSubstring(t *testing.T) {
	p := ResolveProduct("What's the price of Kiwi?", testCatalog())
	if p == nil || p.ID != 1 {
		t.Fatalf("expected substring match on Kiwi, got %+v", p)
	}

	// plural in the message still finds the singular title
	p = ResolveProduct("Tell me about Kiwis", testCatalog())
	if p == nil || p.ID != 1 {
		t.Fatalf("expected plural-normalized match on Kiwi, got %+v", p)
	}
}

func TestResolveTokenOverlap(t *testing.T) {
	// "juice" overlaps only with Apple Juice
	p := ResolveProduct("got any juice for sale", testCatalog())
	if p == nil || p.ID != 3 {
		t.Fatalf("expected overlap match on Apple Juice, got %+v", p)
	}
}

func TestResolveTieBreakKeepsCatalogOrder(t *testing.T) {
	// "apple" scores 1 against both apple products; the earlier one wins
	p := ResolveProduct("looking for an apple basket", testCatalog())
	if p == nil || p.ID != 2 {
		t.Fatalf("expected first apple product on tie, got %+v", p)
	}
}

func TestResolveNoMatch(t *testing.T) {
	if p := ResolveProduct("quantum flux capacitor", testCatalog()); p != nil {
		t.Fatalf("expected no match, got %+v", p)
	}
	if p := ResolveProduct("zz", testCatalog()); p != nil {
		t.Fatalf("expected no match for short tokens, got %+v", p)
	}
	if p := ResolveProduct("anything", nil); p != nil {
		t.Fatalf("expected no match on empty catalog, got %+v", p)
	}
}

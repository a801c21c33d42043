package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"product-chatbot-backend/config"
	"product-chatbot-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CatalogProvider supplies the product snapshot a chat request runs
// against. Implementations own their caching and failure policy; the
// chatbot service only sees an ordered, read-only slice.
type CatalogProvider interface {
	FetchProducts(ctx context.Context) ([]models.Product, error)
}

// ComputeActualPrice applies the discount percentage and rounds to two
// decimals. Out-of-range or non-finite discounts degrade to the
// original price unchanged.
func ComputeActualPrice(price, discountPct float64) float64 {
	if math.IsNaN(discountPct) || math.IsInf(discountPct, 0) || discountPct < 0 || discountPct > 100 {
		return price
	}
	actual := math.Round(price*(1-discountPct/100)*100) / 100
	if math.IsNaN(actual) || math.IsInf(actual, 0) {
		return price
	}
	return actual
}

// FilterProducts applies the conjunctive predicates price >= MinPrice,
// price <= MaxPrice and rating >= MinRating, preserving catalog order.
// No result cap is applied here; display capping is the composer's job.
func FilterProducts(products []models.Product, filters models.SearchFilters) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if filters.MinPrice != nil && p.Price < *filters.MinPrice {
			continue
		}
		if filters.MaxPrice != nil && p.Price > *filters.MaxPrice {
			continue
		}
		if filters.MinRating != nil && p.Rating < *filters.MinRating {
			continue
		}
		out = append(out, p)
	}
	return out
}

// SearchByCategory returns products whose category equals the given
// one, case-insensitively, preserving catalog order.
func SearchByCategory(products []models.Product, category string) []models.Product {
	c := strings.ToLower(strings.TrimSpace(category))
	if c == "" {
		return nil
	}
	out := make([]models.Product, 0)
	for _, p := range products {
		if strings.ToLower(p.Category) == c {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the distinct lowercased category names, sorted.
// Products without a category are grouped under "unknown".
func Categories(products []models.Product) []string {
	seen := make(map[string]struct{})
	for _, p := range products {
		c := strings.ToLower(p.Category)
		if c == "" {
			c = "unknown"
		}
		seen[c] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// HTTPCatalogProvider fetches products from a DummyJSON-style endpoint.
type HTTPCatalogProvider struct {
	url        string
	httpClient *http.Client
}

func NewHTTPCatalogProvider(cfg config.CatalogConfig) *HTTPCatalogProvider {
	return &HTTPCatalogProvider{
		url: cfg.URL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (p *HTTPCatalogProvider) FetchProducts(ctx context.Context) ([]models.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog endpoint returned status %d", resp.StatusCode)
	}

	// DummyJSON wraps the list as {"products": [...]}; a bare array is
	// accepted too.
	var wrapped struct {
		Products []models.Product `json:"products"`
	}
	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Products != nil {
		return wrapped.Products, nil
	}
	var list []models.Product
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}
	return list, nil
}

// MongoCatalogProvider reads the catalog from the products collection.
type MongoCatalogProvider struct {
	collection *mongo.Collection
}

func NewMongoCatalogProvider(db *mongo.Database) *MongoCatalogProvider {
	return &MongoCatalogProvider{
		collection: db.Collection("products"),
	}
}

func (p *MongoCatalogProvider) FetchProducts(ctx context.Context) ([]models.Product, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "id", Value: 1}})
	cursor, err := p.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

// CachedCatalogProvider decorates a provider with an explicit cache
// policy: ttl == 0 disables caching, ttl > 0 expires the snapshot,
// ttl < 0 caches forever after the first successful fetch. Failed
// fetches are never cached.
type CachedCatalogProvider struct {
	inner CatalogProvider
	ttl   time.Duration

	mu        sync.RWMutex
	snapshot  []models.Product
	fetchedAt time.Time
}

func NewCachedCatalogProvider(inner CatalogProvider, ttl time.Duration) *CachedCatalogProvider {
	return &CachedCatalogProvider{
		inner: inner,
		ttl:   ttl,
	}
}

func (p *CachedCatalogProvider) FetchProducts(ctx context.Context) ([]models.Product, error) {
	if p.ttl != 0 {
		p.mu.RLock()
		if p.snapshot != nil && (p.ttl < 0 || time.Since(p.fetchedAt) < p.ttl) {
			snapshot := p.snapshot
			p.mu.RUnlock()
			return snapshot, nil
		}
		p.mu.RUnlock()
	}

	products, err := p.inner.FetchProducts(ctx)
	if err != nil {
		slog.Warn("catalog fetch failed", "error", err)
		return nil, err
	}

	if p.ttl != 0 {
		p.mu.Lock()
		p.snapshot = products
		p.fetchedAt = time.Now()
		p.mu.Unlock()
	}
	return products, nil
}

// Invalidate drops the cached snapshot so the next fetch hits the source.
func (p *CachedCatalogProvider) Invalidate() {
	p.mu.Lock()
	p.snapshot = nil
	p.fetchedAt = time.Time{}
	p.mu.Unlock()
}

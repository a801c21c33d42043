package services

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"product-chatbot-backend/config"
	"product-chatbot-backend/models"
)

func TestComputeActualPrice(t *testing.T) {
	cases := []struct {
		price, discount, want float64
	}{
		{100, 10, 90},
		{2.5, 10, 2.25},
		{19.99, 0, 19.99},
		{0, 50, 0},
		{100, 100, 0},
		{33.33, 33.33, 22.22},
		// out-of-range discounts degrade to the original price
		{100, -5, 100},
		{100, 150, 100},
		{100, math.NaN(), 100},
		{100, math.Inf(1), 100},
	}
	for _, tc := range cases {
		if got := ComputeActualPrice(tc.price, tc.discount); got != tc.want {
			t.Errorf("ComputeActualPrice(%v, %v) = %v, want %v", tc.price, tc.discount, got, tc.want)
		}
	}
}

func TestComputeActualPriceBounds(t *testing.T) {
	for d := 0.0; d <= 100; d += 12.5 {
		for _, p := range []float64{0, 0.01, 2.5, 19.99, 1000} {
			got := ComputeActualPrice(p, d)
			if got < 0 || got > p+0.005 {
				t.Errorf("ComputeActualPrice(%v, %v) = %v out of [0, price]", p, d, got)
			}
		}
	}
}

func TestFilterProducts(t *testing.T) {
	catalog := testCatalog()

	got := FilterProducts(catalog, models.SearchFilters{MinRating: f(4)})
	wantIDs := []int{1, 2, 4}
	if ids := productIDs(got); !reflect.DeepEqual(ids, wantIDs) {
		t.Errorf("min rating filter = %v, want %v", ids, wantIDs)
	}

	got = FilterProducts(catalog, models.SearchFilters{MinPrice: f(2), MaxPrice: f(10)})
	wantIDs = []int{1, 3}
	if ids := productIDs(got); !reflect.DeepEqual(ids, wantIDs) {
		t.Errorf("price band filter = %v, want %v", ids, wantIDs)
	}

	// no filters returns everything in catalog order
	got = FilterProducts(catalog, models.SearchFilters{})
	if ids := productIDs(got); !reflect.DeepEqual(ids, []int{1, 2, 3, 4}) {
		t.Errorf("empty filter = %v, want full catalog", ids)
	}

	// missing rating counts as zero
	noRating := []models.Product{{ID: 9, Title: "Mystery Box", Price: 5}}
	if out := FilterProducts(noRating, models.SearchFilters{MinRating: f(1)}); len(out) != 0 {
		t.Errorf("unrated product passed a min-rating filter: %v", out)
	}
}

func TestSearchByCategory(t *testing.T) {
	catalog := testCatalog()

	got := SearchByCategory(catalog, "Groceries")
	if ids := productIDs(got); !reflect.DeepEqual(ids, []int{1, 2}) {
		t.Errorf("SearchByCategory = %v, want [1 2]", ids)
	}
	if out := SearchByCategory(catalog, "toys"); len(out) != 0 {
		t.Errorf("unknown category returned %v", out)
	}
	if out := SearchByCategory(catalog, "  "); out != nil {
		t.Errorf("blank category returned %v", out)
	}
}

func TestCategories(t *testing.T) {
	catalog := append(testCatalog(), models.Product{ID: 5, Title: "No Category"})
	got := Categories(catalog)
	want := []string{"beverages", "electronics", "groceries", "unknown"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Categories = %v, want %v", got, want)
	}
}

type countingProvider struct {
	calls    int
	products []models.Product
	err      error
}

func (p *countingProvider) FetchProducts(ctx context.Context) ([]models.Product, error) {
	p.calls++
	return p.products, p.err
}

func TestCachedCatalogProviderTTL(t *testing.T) {
	inner := &countingProvider{products: testCatalog()}
	cached := NewCachedCatalogProvider(inner, time.Hour)

	for i := 0; i < 3; i++ {
		if _, err := cached.FetchProducts(context.Background()); err != nil {
			t.Fatalf("fetch %d: %v", i, err)
		}
	}
	if inner.calls != 1 {
		t.Errorf("expected 1 upstream fetch within TTL, got %d", inner.calls)
	}

	cached.Invalidate()
	if _, err := cached.FetchProducts(context.Background()); err != nil {
		t.Fatal(err)
	}
	if inner.calls != 2 {
		t.Errorf("expected refetch after Invalidate, got %d calls", inner.calls)
	}
}

func TestCachedCatalogProviderExpiry(t *testing.T) {
	inner := &countingProvider{products: testCatalog()}
	cached := NewCachedCatalogProvider(inner, time.Nanosecond)

	cached.FetchProducts(context.Background())
	time.Sleep(time.Millisecond)
	cached.FetchProducts(context.Background())

	if inner.calls != 2 {
		t.Errorf("expected expired snapshot to refetch, got %d calls", inner.calls)
	}
}

func TestCachedCatalogProviderDisabled(t *testing.T) {
	inner := &countingProvider{products: testCatalog()}
	cached := NewCachedCatalogProvider(inner, 0)

	cached.FetchProducts(context.Background())
	cached.FetchProducts(context.Background())

	if inner.calls != 2 {
		t.Errorf("expected no caching with ttl 0, got %d calls", inner.calls)
	}
}

func TestCachedCatalogProviderForever(t *testing.T) {
	inner := &countingProvider{products: testCatalog()}
	cached := NewCachedCatalogProvider(inner, -1)

	for i := 0; i < 5; i++ {
		cached.FetchProducts(context.Background())
	}
	if inner.calls != 1 {
		t.Errorf("expected a single upstream fetch with ttl < 0, got %d calls", inner.calls)
	}
}

func TestHTTPCatalogProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"products": [{"id": 1, "title": "Kiwi", "price": 2.5}], "total": 1}`))
	}))
	defer srv.Close()

	p := NewHTTPCatalogProvider(config.CatalogConfig{URL: srv.URL, Timeout: 2 * time.Second})
	products, err := p.FetchProducts(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(products) != 1 || products[0].Title != "Kiwi" {
		t.Errorf("products = %+v", products)
	}
}

func TestHTTPCatalogProviderBareArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": 1, "title": "Kiwi", "price": 2.5}]`))
	}))
	defer srv.Close()

	p := NewHTTPCatalogProvider(config.CatalogConfig{URL: srv.URL, Timeout: 2 * time.Second})
	products, err := p.FetchProducts(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(products) != 1 {
		t.Errorf("products = %+v", products)
	}
}

func TestHTTPCatalogProviderErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewHTTPCatalogProvider(config.CatalogConfig{URL: srv.URL, Timeout: 2 * time.Second})
	if _, err := p.FetchProducts(context.Background()); err == nil {
		t.Error("expected error on non-200 response")
	}
}

func productIDs(products []models.Product) []int {
	ids := make([]int, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}

func f(v float64) *float64 { return &v }

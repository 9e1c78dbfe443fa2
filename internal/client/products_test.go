// ABOUTME: Tests for the product catalog endpoint wrappers
// ABOUTME: Verifies query encoding and paged listing decode

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestProducts_QueryEncoding(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/products" {
			t.Errorf("expected path /api/v1/products, got %s", r.URL.Path)
		}
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ProductPage{
			Content:       []Product{{ID: 1, Name: "Phone"}},
			PageNo:        2,
			PageSize:      10,
			TotalElements: 21,
			TotalPages:    3,
		})
	}))
	defer server.Close()

	c := New(server.URL)
	page, err := c.Products(context.Background(), ProductQuery{
		PageNo:   2,
		PageSize: 10,
		SortBy:   "price",
		SortDir:  "desc",
		Name:     "phone",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery.Get("pageNo") != "2" || gotQuery.Get("pageSize") != "10" {
		t.Errorf("expected paging params, got %v", gotQuery)
	}
	if gotQuery.Get("sortBy") != "price" || gotQuery.Get("sortDir") != "desc" {
		t.Errorf("expected sort params, got %v", gotQuery)
	}
	if gotQuery.Get("name") != "phone" {
		t.Errorf("expected name filter, got %v", gotQuery)
	}
	if len(page.Content) != 1 || page.TotalPages != 3 {
		t.Errorf("unexpected page decode: %+v", page)
	}
}

func TestProducts_EmptyQueryOmitsParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "" {
			t.Errorf("expected no query params, got %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ProductPage{})
	}))
	defer server.Close()

	c := New(server.URL)
	if _, err := c.Products(context.Background(), ProductQuery{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestProduct_ByID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/products/7" {
			t.Errorf("expected path /api/v1/products/7, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Product{ID: 7, Name: "USB Cable", StockQuantity: 3})
	}))
	defer server.Close()

	c := New(server.URL)
	p, err := c.Product(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != 7 || p.StockQuantity != 3 {
		t.Errorf("unexpected product: %+v", p)
	}
}

func TestProductsByCategory_EscapesName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.EscapedPath() != "/api/v1/products/category/Home%20%26%20Garden" {
			t.Errorf("expected escaped category path, got %s", r.URL.EscapedPath())
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]Product{{ID: 1}})
	}))
	defer server.Close()

	c := New(server.URL)
	products, err := c.ProductsByCategory(context.Background(), "Home & Garden")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 1 {
		t.Errorf("expected one product, got %d", len(products))
	}
}

func TestCategories(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/categories" {
			t.Errorf("expected path /api/v1/categories, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]Category{{ID: 1, Name: "Electronics"}, {ID: 2, Name: "Books"}})
	}))
	defer server.Close()

	c := New(server.URL)
	categories, err := c.Categories(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(categories) != 2 || categories[1].Name != "Books" {
		t.Errorf("unexpected categories: %+v", categories)
	}
}

// ABOUTME: Product catalog and category endpoints for the Epay API
// ABOUTME: Supports paging, sorting, and name search query parameters

package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Product is a catalog entry.
type Product struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stockQuantity"`
	ImageURL      string  `json:"imageUrl"`
	CategoryName  string  `json:"categoryName"`
}

// Category is a product category.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ProductQuery holds the optional catalog query parameters. Zero values are
// omitted so the backend's defaults apply.
type ProductQuery struct {
	PageNo   int
	PageSize int
	SortBy   string
	SortDir  string
	Name     string
}

// values encodes the query, skipping unset fields. PageNo 0 is a valid first
// page but the backend defaults to it anyway.
func (q ProductQuery) values() url.Values {
	v := url.Values{}
	if q.PageNo > 0 {
		v.Set("pageNo", strconv.Itoa(q.PageNo))
	}
	if q.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	if q.SortBy != "" {
		v.Set("sortBy", q.SortBy)
	}
	if q.SortDir != "" {
		v.Set("sortDir", q.SortDir)
	}
	if q.Name != "" {
		v.Set("name", q.Name)
	}
	return v
}

// ProductPage is a paged product listing.
type ProductPage struct {
	Content       []Product `json:"content"`
	PageNo        int       `json:"pageNo"`
	PageSize      int       `json:"pageSize"`
	TotalElements int64     `json:"totalElements"`
	TotalPages    int       `json:"totalPages"`
	Last          bool      `json:"last"`
}

// Products calls GET /products with the given query.
func (c *Client) Products(ctx context.Context, q ProductQuery) (*ProductPage, error) {
	var page ProductPage
	if err := c.getJSON(ctx, "/products", q.values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Product calls GET /products/{id}.
func (c *Client) Product(ctx context.Context, id int64) (*Product, error) {
	var p Product
	if err := c.getJSON(ctx, fmt.Sprintf("/products/%d", id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ProductsByCategory calls GET /products/category/{name}.
func (c *Client) ProductsByCategory(ctx context.Context, name string) ([]Product, error) {
	var products []Product
	if err := c.getJSON(ctx, "/products/category/"+url.PathEscape(name), nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Categories calls GET /categories.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.getJSON(ctx, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateProduct calls POST /products. Admin only.
func (c *Client) CreateProduct(ctx context.Context, p Product) (*Product, error) {
	var created Product
	if err := c.doJSON(ctx, http.MethodPost, "/products", p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProduct calls PUT /products/{id}. Admin only.
func (c *Client) UpdateProduct(ctx context.Context, id int64, p Product) (*Product, error) {
	var updated Product
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), p, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProduct calls DELETE /products/{id}. Admin only.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil)
}

// ABOUTME: Cart endpoints for the Epay API
// ABOUTME: Every mutation returns the full server-side cart

package client

import (
	"context"
	"fmt"
	"net/http"
)

// Cart is the server-authoritative cart state.
type Cart struct {
	ID    int64      `json:"id,omitempty"`
	Items []CartItem `json:"items"`
	Total float64    `json:"total"`
}

// CartItem is one line item. Subtotal is computed and owned by the backend.
type CartItem struct {
	ID       int64   `json:"id"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

// cartDelta is the request body for add and update mutations.
type cartDelta struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// GetCart calls GET /cart.
func (c *Client) GetCart(ctx context.Context) (*Cart, error) {
	var cart Cart
	if err := c.getJSON(ctx, "/cart", nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddToCart calls POST /cart/add with a product delta.
func (c *Client) AddToCart(ctx context.Context, productID int64, quantity int) (*Cart, error) {
	var cart Cart
	if err := c.doJSON(ctx, http.MethodPost, "/cart/add", cartDelta{ProductID: productID, Quantity: quantity}, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// UpdateCartItem calls PUT /cart/update. Quantity 0 is passed through
// unchanged; what it means is the backend's decision, not a client-side
// delete.
func (c *Client) UpdateCartItem(ctx context.Context, productID int64, quantity int) (*Cart, error) {
	var cart Cart
	if err := c.doJSON(ctx, http.MethodPut, "/cart/update", cartDelta{ProductID: productID, Quantity: quantity}, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// RemoveFromCart calls DELETE /cart/remove/{id}.
func (c *Client) RemoveFromCart(ctx context.Context, productID int64) (*Cart, error) {
	var cart Cart
	if err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/cart/remove/%d", productID), nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// ClearCart calls DELETE /cart/clear.
func (c *Client) ClearCart(ctx context.Context) (*Cart, error) {
	var cart Cart
	if err := c.doJSON(ctx, http.MethodDelete, "/cart/clear", nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

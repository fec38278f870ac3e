// Package catalog holds the view state of the product listing and detail
// screens and composes it from fetch results.
package catalog

import (
	"context"

	"github.com/aaravmahajanofficial/storefront-catalog/internal/filters"
	"github.com/aaravmahajanofficial/storefront-catalog/internal/models"
)

// PageLoader fetches one collection page. *client.Client satisfies it.
type PageLoader interface {
	ListProducts(ctx context.Context, f filters.Filters) (*models.ProductPage, error)
}

type ProductLoader interface {
	GetProduct(ctx context.Context, id string) (*models.ProductDetail, error)
}

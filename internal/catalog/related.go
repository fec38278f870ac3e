package catalog

import (
	"context"

	"github.com/aaravmahajanofficial/storefront-catalog/internal/filters"
	"github.com/aaravmahajanofficial/storefront-catalog/internal/models"
)

const (
	DefaultRelatedSampleSize = 4
	DefaultRelatedMax        = 3
)

// RelatedSelector picks "you might also like" products from a small
// unfiltered sample of the catalog.
type RelatedSelector struct {
	loader     PageLoader
	sampleSize int
	max        int
}

type RelatedOption func(*RelatedSelector)

func WithSampleSize(n int) RelatedOption {
	return func(s *RelatedSelector) {
		if n > 0 {
			s.sampleSize = n
		}
	}
}

func WithMaxRelated(n int) RelatedOption {
	return func(s *RelatedSelector) {
		if n > 0 {
			s.max = n
		}
	}
}

func NewRelatedSelector(loader PageLoader, opts ...RelatedOption) *RelatedSelector {
	s := &RelatedSelector{
		loader:     loader,
		sampleSize: DefaultRelatedSampleSize,
		max:        DefaultRelatedMax,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Related returns up to max products other than currentID. An empty result
// means there is nothing to show; it is not an error.
func (s *RelatedSelector) Related(ctx context.Context, currentID string) ([]models.Product, error) {

	page, err := s.loader.ListProducts(ctx, filters.Filters{}.WithLimit(s.sampleSize))
	if err != nil {
		return nil, err
	}

	return SelectRelated(page.Products, currentID, s.max), nil
}

// SelectRelated drops currentID and keeps the first limit of the rest in
// their original order.
func SelectRelated(products []models.Product, currentID string, limit int) []models.Product {

	related := make([]models.Product, 0, min(len(products), max(limit, 0)))

	for _, p := range products {
		if len(related) >= limit {
			break
		}

		if p.ID == currentID {
			continue
		}

		related = append(related, p)
	}

	return related
}

package catalog

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/aaravmahajanofficial/storefront-catalog/internal/errors"
	"github.com/aaravmahajanofficial/storefront-catalog/internal/models"
	"golang.org/x/sync/errgroup"
)

// DetailView is the product detail screen: the product plus the size the
// shopper picked and whether they marked it as a favorite.
type DetailView struct {
	Product models.ProductDetail

	mu       sync.Mutex
	size     string
	favorite bool
}

func NewDetailView(p models.ProductDetail) *DetailView {
	return &DetailView{Product: p}
}

// SelectSize accepts only sizes the product lists.
func (d *DetailView) SelectSize(size string) error {

	if !slices.Contains(d.Product.Sizes, size) {
		return errors.AddValidationError("size", "size "+size+" is not available for this product")
	}

	d.mu.Lock()
	d.size = size
	d.mu.Unlock()

	return nil
}

func (d *DetailView) SelectedSize() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.size
}

func (d *DetailView) CanAddToBag() bool {
	return d.SelectedSize() != ""
}

func (d *DetailView) ToggleFavorite() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.favorite = !d.favorite

	return d.favorite
}

func (d *DetailView) Favorite() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.favorite
}

// ProductPage is everything the detail screen shows.
type ProductPage struct {
	Detail  *DetailView
	Related []models.Product
}

// LoadProductPage fetches the product and its related products concurrently.
// A failed related fetch only hides the related section; a failed detail
// fetch fails the page and cancels the related fetch.
func LoadProductPage(ctx context.Context, products ProductLoader, related *RelatedSelector, id string) (*ProductPage, error) {

	g, gctx := errgroup.WithContext(ctx)

	var (
		detail *models.ProductDetail
		picks  []models.Product
	)

	g.Go(func() error {
		var err error
		detail, err = products.GetProduct(gctx, id)
		return err
	})

	g.Go(func() error {
		var err error
		picks, err = related.Related(gctx, id)
		if err != nil {
			slog.Warn("Related products unavailable", slog.String("product_id", id), slog.String("error", err.Error()))
			picks = nil
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if picks == nil {
		picks = []models.Product{}
	}

	return &ProductPage{Detail: NewDetailView(*detail), Related: picks}, nil
}

package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/storefront-catalog/internal/cache"
	"github.com/aaravmahajanofficial/storefront-catalog/internal/errors"
	"github.com/aaravmahajanofficial/storefront-catalog/internal/filters"
	"github.com/aaravmahajanofficial/storefront-catalog/internal/metrics"
	"github.com/aaravmahajanofficial/storefront-catalog/internal/models"
	"golang.org/x/sync/singleflight"
)

type Status int

const (
	StatusLoading Status = iota
	StatusFailed
	StatusEmpty
	StatusLoaded
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusFailed:
		return "failed"
	case StatusEmpty:
		return "empty"
	case StatusLoaded:
		return "loaded"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Card is a display product annotated with local state at render time.
type Card struct {
	models.Product
	Favorite bool `json:"favorite"`
}

type ViewModel struct {
	Filters    filters.Filters   `json:"filters"`
	Cards      []Card            `json:"cards"`
	Status     Status            `json:"status"`
	Err        error             `json:"-"`
	Pagination models.Pagination `json:"pagination"`
	PanelOpen  bool              `json:"panelOpen"`
}

// ErrorKind lets the view tell a failed request ("network") apart from a
// malformed payload ("schema"). It is empty when there is no error.
func (v ViewModel) ErrorKind() string {
	switch {
	case v.Err == nil:
		return ""
	case errors.IsNetworkError(v.Err):
		return "network"
	case errors.IsSchemaError(v.Err):
		return "schema"
	default:
		return "internal"
	}
}

func (v ViewModel) Summary() string {
	switch v.Status {
	case StatusLoading:
		return "Loading products..."
	case StatusFailed:
		return "Could not load products"
	case StatusEmpty:
		return "No products found"
	default:
		return fmt.Sprintf("Showing %d of %d products", len(v.Cards), v.Pagination.Total)
	}
}

// Composer owns the listing screen's state for the lifetime of one view.
// Each SetFilters starts one fetch cycle tagged with a generation; only the
// latest issued generation may write results back.
type Composer struct {
	loader PageLoader
	cache  cache.Cache
	ttl    time.Duration
	logger *slog.Logger
	group  singleflight.Group

	mu         sync.Mutex
	generation uint64
	filters    filters.Filters
	favorites  map[string]struct{}
	panelOpen  bool
	products   []models.Product
	pagination models.Pagination
	status     Status
	err        error
}

type ComposerOption func(*Composer)

// WithCache lets identical descriptors reuse a prior successful result.
func WithCache(c cache.Cache) ComposerOption {
	return func(cp *Composer) {
		cp.cache = c
	}
}

// WithTTL bounds how long a cached page is reused. Zero defers to the cache's default.
func WithTTL(ttl time.Duration) ComposerOption {
	return func(cp *Composer) {
		cp.ttl = ttl
	}
}

func WithLogger(logger *slog.Logger) ComposerOption {
	return func(cp *Composer) {
		cp.logger = logger
	}
}

func NewComposer(loader PageLoader, opts ...ComposerOption) *Composer {
	c := &Composer{
		loader:    loader,
		logger:    slog.Default(),
		favorites: make(map[string]struct{}),
		status:    StatusLoading,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SetFilters replaces the descriptor wholesale and starts exactly one fetch
// cycle for it. The returned channel is closed once the cycle has settled,
// whether its result was applied or discarded as stale.
func (c *Composer) SetFilters(ctx context.Context, f filters.Filters) <-chan struct{} {

	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.filters = f
	c.status = StatusLoading
	c.err = nil
	c.mu.Unlock()

	done := make(chan struct{})

	go func() {
		defer close(done)

		page, err := c.fetch(ctx, f)
		c.apply(gen, f, page, err)
	}()

	return done
}

// Load runs one cycle and waits for it.
func (c *Composer) Load(ctx context.Context, f filters.Filters) (ViewModel, error) {

	select {
	case <-c.SetFilters(ctx, f):
	case <-ctx.Done():
		return c.View(), ctx.Err()
	}

	view := c.View()

	return view, view.Err
}

func (c *Composer) fetch(ctx context.Context, f filters.Filters) (*models.ProductPage, error) {

	key := cache.Key(cache.ProductPageKeyPrefix, f.Key())

	if c.cache != nil {
		var cached models.ProductPage

		found, err := c.cache.Get(ctx, key, &cached)
		if err != nil {
			c.logger.Warn("Cache lookup failed", slog.String("key", key), slog.String("error", err.Error()))
		} else if found {
			metrics.CacheHit()
			return &cached, nil
		}

		metrics.CacheMiss()
	}

	// identical descriptors in flight share the first caller's request
	v, err, _ := c.group.Do(key, func() (any, error) {

		page, err := c.loader.ListProducts(ctx, f)
		if err != nil {
			return nil, err
		}

		if c.cache != nil {
			if err := c.cache.Set(ctx, key, page, c.ttl); err != nil {
				c.logger.Warn("Cache store failed", slog.String("key", key), slog.String("error", err.Error()))
			}
		}

		return page, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*models.ProductPage), nil
}

func (c *Composer) apply(gen uint64, f filters.Filters, page *models.ProductPage, err error) {

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		metrics.StaleResponse()
		c.logger.Debug("Discarding stale catalog response",
			slog.String("filters", f.Key()), slog.Uint64("generation", gen), slog.Uint64("latest", c.generation))
		return
	}

	if err != nil {
		c.status = StatusFailed
		c.err = err
		c.products = nil
		c.pagination = models.Pagination{}
		metrics.FetchCycle(StatusFailed.String())
		c.logger.Warn("Catalog fetch failed", slog.String("filters", f.Key()), slog.String("error", err.Error()))
		return
	}

	c.products = page.Products
	c.pagination = page.Pagination
	c.err = nil

	if len(page.Products) == 0 {
		c.status = StatusEmpty
	} else {
		c.status = StatusLoaded
	}

	metrics.FetchCycle(c.status.String())
}

// ToggleFavorite flips the favorite mark on id and reports the new state.
// It never refetches.
func (c *Composer) ToggleFavorite(id string) bool {

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.favorites[id]; ok {
		delete(c.favorites, id)
		return false
	}

	c.favorites[id] = struct{}{}

	return true
}

func (c *Composer) IsFavorite(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.favorites[id]

	return ok
}

func (c *Composer) TogglePanel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.panelOpen = !c.panelOpen

	return c.panelOpen
}

func (c *Composer) PanelOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.panelOpen
}

func (c *Composer) Filters() filters.Filters {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.filters
}

// Products returns the current product slice as fetched, without the
// favorite annotation.
func (c *Composer) Products() []models.Product {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.products
}

func (c *Composer) View() ViewModel {

	c.mu.Lock()
	defer c.mu.Unlock()

	cards := make([]Card, len(c.products))
	for i, p := range c.products {
		_, fav := c.favorites[p.ID]
		cards[i] = Card{Product: p, Favorite: fav}
	}

	return ViewModel{
		Filters:    c.filters,
		Cards:      cards,
		Status:     c.status,
		Err:        c.err,
		Pagination: c.pagination,
		PanelOpen:  c.panelOpen,
	}
}

package catalog_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/storefront-catalog/internal/cache"
	"github.com/aaravmahajanofficial/storefront-catalog/internal/catalog"
	"github.com/aaravmahajanofficial/storefront-catalog/internal/catalog/mocks"
	"github.com/aaravmahajanofficial/storefront-catalog/internal/client"
	"github.com/aaravmahajanofficial/storefront-catalog/internal/config"
	appErrors "github.com/aaravmahajanofficial/storefront-catalog/internal/errors"
	"github.com/aaravmahajanofficial/storefront-catalog/internal/filters"
	"github.com/aaravmahajanofficial/storefront-catalog/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pageOf(ids ...string) *models.ProductPage {
	products := make([]models.Product, len(ids))
	for i, id := range ids {
		products[i] = models.Product{ID: id, Name: "Product " + id, Type: "Men's Shoes", Price: 100, Colors: 1}
	}

	return &models.ProductPage{
		Products:   products,
		Pagination: models.Pagination{Page: 1, Limit: 20, Total: len(ids), TotalPages: 1},
	}
}

func ids(view catalog.ViewModel) []string {
	out := make([]string, len(view.Cards))
	for i, c := range view.Cards {
		out[i] = c.ID
	}
	return out
}

func TestComposerLoad(t *testing.T) {
	men := filters.Filters{}.WithGender("Men", true)

	t.Run("Success - Loaded", func(t *testing.T) {
		// Arrange
		loader := mocks.NewPageLoader(t)
		loader.On("ListProducts", mock.Anything, men).Return(pageOf("p1", "p2"), nil).Once()

		c := catalog.NewComposer(loader)

		// Act
		view, err := c.Load(t.Context(), men)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, catalog.StatusLoaded, view.Status)
		assert.Equal(t, []string{"p1", "p2"}, ids(view))
		assert.Equal(t, 2, view.Pagination.Total)
		assert.Equal(t, men, view.Filters)
		assert.Equal(t, "Showing 2 of 2 products", view.Summary())
	})

	t.Run("Success - Zero Results Is Not An Error", func(t *testing.T) {
		loader := mocks.NewPageLoader(t)
		loader.On("ListProducts", mock.Anything, men).Return(pageOf(), nil).Once()

		view, err := catalog.NewComposer(loader).Load(t.Context(), men)

		require.NoError(t, err)
		assert.Equal(t, catalog.StatusEmpty, view.Status)
		assert.Empty(t, view.Cards)
		assert.Empty(t, view.ErrorKind())
		assert.Equal(t, "No products found", view.Summary())
	})

	t.Run("Failure - Network Error", func(t *testing.T) {
		loader := mocks.NewPageLoader(t)
		loader.On("ListProducts", mock.Anything, men).
			Return(nil, appErrors.NetworkError("Failed to fetch products", http.StatusInternalServerError)).Once()

		view, err := catalog.NewComposer(loader).Load(t.Context(), men)

		require.Error(t, err)
		assert.Equal(t, catalog.StatusFailed, view.Status)
		assert.Equal(t, "network", view.ErrorKind())
		assert.Empty(t, view.Cards)
		assert.Equal(t, "Could not load products", view.Summary())
	})

	t.Run("Failure - Schema Error", func(t *testing.T) {
		loader := mocks.NewPageLoader(t)
		loader.On("ListProducts", mock.Anything, men).
			Return(nil, appErrors.AddSchemaError("data[0].price", "is required")).Once()

		view, err := catalog.NewComposer(loader).Load(t.Context(), men)

		require.Error(t, err)
		assert.Equal(t, catalog.StatusFailed, view.Status)
		assert.Equal(t, "schema", view.ErrorKind())
	})

	t.Run("Failure - Clears Previous Results", func(t *testing.T) {
		// Arrange
		women := filters.Filters{}.WithGender("Women", true)
		loader := mocks.NewPageLoader(t)
		loader.On("ListProducts", mock.Anything, men).Return(pageOf("p1"), nil).Once()
		loader.On("ListProducts", mock.Anything, women).
			Return(nil, appErrors.NetworkError("Failed to fetch products", http.StatusBadGateway)).Once()

		c := catalog.NewComposer(loader)
		_, err := c.Load(t.Context(), men)
		require.NoError(t, err)

		// Act
		view, err := c.Load(t.Context(), women)

		// Assert
		require.Error(t, err)
		assert.Empty(t, view.Cards, "no partial results after a failed cycle")
		assert.Equal(t, models.Pagination{}, view.Pagination)
	})
}

func TestComposerInitialState(t *testing.T) {
	c := catalog.NewComposer(mocks.NewPageLoader(t))

	view := c.View()

	assert.Equal(t, catalog.StatusLoading, view.Status)
	assert.Equal(t, "Loading products...", view.Summary())
	assert.False(t, c.PanelOpen())
	assert.Equal(t, filters.Filters{}, c.Filters())
}

func TestComposerStaleResponse(t *testing.T) {
	// Arrange
	older := filters.Filters{}.WithGender("Men", true)
	newer := filters.Filters{}.WithGender("Women", true)
	release := make(chan struct{})

	loader := mocks.NewPageLoader(t)
	loader.On("ListProducts", mock.Anything, older).
		Run(func(mock.Arguments) { <-release }).
		Return(pageOf("old1", "old2"), nil).Once()
	loader.On("ListProducts", mock.Anything, newer).Return(pageOf("new1"), nil).Once()

	c := catalog.NewComposer(loader)

	// Act
	olderDone := c.SetFilters(t.Context(), older)
	newerDone := c.SetFilters(t.Context(), newer)
	<-newerDone

	afterNewer := c.View()

	close(release)
	<-olderDone

	// Assert
	assert.Equal(t, []string{"new1"}, ids(afterNewer))

	final := c.View()
	assert.Equal(t, catalog.StatusLoaded, final.Status)
	assert.Equal(t, []string{"new1"}, ids(final), "the older cycle must not overwrite the newer one")
	assert.Equal(t, newer, final.Filters)
}

func TestComposerStaleFailureIsDiscarded(t *testing.T) {
	older := filters.Filters{}.WithSport("Running", true)
	newer := filters.Filters{}.WithSport("Tennis", true)
	release := make(chan struct{})

	loader := mocks.NewPageLoader(t)
	loader.On("ListProducts", mock.Anything, older).
		Run(func(mock.Arguments) { <-release }).
		Return(nil, appErrors.NetworkError("Failed to fetch products", http.StatusServiceUnavailable)).Once()
	loader.On("ListProducts", mock.Anything, newer).Return(pageOf("t1"), nil).Once()

	c := catalog.NewComposer(loader)

	olderDone := c.SetFilters(t.Context(), older)
	<-c.SetFilters(t.Context(), newer)
	close(release)
	<-olderDone

	view := c.View()
	assert.NoError(t, view.Err)
	assert.Equal(t, []string{"t1"}, ids(view))
}

func TestComposerFavorites(t *testing.T) {
	// Arrange
	f := filters.Filters{}.WithLimit(20)
	loader := mocks.NewPageLoader(t)
	loader.On("ListProducts", mock.Anything, f).Return(pageOf("p1", "p2"), nil).Once()

	c := catalog.NewComposer(loader)
	_, err := c.Load(t.Context(), f)
	require.NoError(t, err)

	before := c.Products()

	// Act
	on := c.ToggleFavorite("p2")
	view := c.View()

	// Assert
	assert.True(t, on)
	assert.True(t, c.IsFavorite("p2"))
	assert.False(t, view.Cards[0].Favorite)
	assert.True(t, view.Cards[1].Favorite)
	assert.Same(t, &before[0], &c.Products()[0], "favorites must not replace the product collection")

	assert.False(t, c.ToggleFavorite("p2"))
	assert.False(t, c.IsFavorite("p2"))

	// a favorite for an id not on screen is kept for later pages
	assert.True(t, c.ToggleFavorite("elsewhere"))
	assert.True(t, c.IsFavorite("elsewhere"))
}

func TestComposerPanel(t *testing.T) {
	c := catalog.NewComposer(mocks.NewPageLoader(t))

	assert.True(t, c.TogglePanel())
	assert.True(t, c.View().PanelOpen)
	assert.False(t, c.TogglePanel())
}

func TestComposerCache(t *testing.T) {
	men := filters.Filters{}.WithGender("Men", true)
	memory := func() cache.Cache {
		return cache.NewMemoryCache(&config.CacheConfig{DefaultTTL: time.Minute})
	}

	t.Run("Success - Identical Descriptor Reuses Result", func(t *testing.T) {
		// Arrange
		loader := mocks.NewPageLoader(t)
		loader.On("ListProducts", mock.Anything, men).Return(pageOf("p1"), nil).Once()

		c := catalog.NewComposer(loader, catalog.WithCache(memory()))

		// Act
		_, err := c.Load(t.Context(), men)
		require.NoError(t, err)

		view, err := c.Load(t.Context(), filters.Filters{}.WithGender("Men", true))

		// Assert
		require.NoError(t, err)
		assert.Equal(t, []string{"p1"}, ids(view))
	})

	t.Run("Success - Distinct Descriptors Are Independent", func(t *testing.T) {
		women := filters.Filters{}.WithGender("Women", true)
		loader := mocks.NewPageLoader(t)
		loader.On("ListProducts", mock.Anything, men).Return(pageOf("m1"), nil).Once()
		loader.On("ListProducts", mock.Anything, women).Return(pageOf("w1"), nil).Once()

		c := catalog.NewComposer(loader, catalog.WithCache(memory()))

		_, err := c.Load(t.Context(), men)
		require.NoError(t, err)
		view, err := c.Load(t.Context(), women)
		require.NoError(t, err)

		assert.Equal(t, []string{"w1"}, ids(view))
	})

	t.Run("Success - Errors Are Not Cached", func(t *testing.T) {
		loader := mocks.NewPageLoader(t)
		loader.On("ListProducts", mock.Anything, men).
			Return(nil, appErrors.NetworkError("Failed to fetch products", http.StatusBadGateway)).Once()
		loader.On("ListProducts", mock.Anything, men).Return(pageOf("p1"), nil).Once()

		c := catalog.NewComposer(loader, catalog.WithCache(memory()), catalog.WithTTL(time.Minute))

		_, err := c.Load(t.Context(), men)
		require.Error(t, err)

		view, err := c.Load(t.Context(), men)
		require.NoError(t, err)
		assert.Equal(t, catalog.StatusLoaded, view.Status)
	})
}

// Drives the composer through the real client against a fake catalog API.
func TestComposerWithClient(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus catalog.Status
		wantKind   string
	}{
		{
			name:       "Success - zero results",
			status:     http.StatusOK,
			body:       `{"data": [], "pagination": {"page": 1, "limit": 20, "total": 0, "totalPages": 0}}`,
			wantStatus: catalog.StatusEmpty,
		},
		{
			name:       "Failure - HTTP 500",
			status:     http.StatusInternalServerError,
			body:       `{"message": "boom"}`,
			wantStatus: catalog.StatusFailed,
			wantKind:   "network",
		},
		{
			name:   "Failure - missing price",
			status: http.StatusOK,
			body: `{"data": [{"id": "p1", "name": "Air", "category": "Shoes", "gender": "Men", "sport": "Running",
				"colors": ["red"], "sizes": ["9"], "imageUrl": "https://img/p1.png"}],
				"pagination": {"page": 1, "limit": 20, "total": 1, "totalPages": 1}}`,
			wantStatus: catalog.StatusFailed,
			wantKind:   "schema",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(srv.Close)

			cl, err := client.New(srv.URL)
			require.NoError(t, err)

			// Act
			view, _ := catalog.NewComposer(cl).Load(t.Context(), filters.Filters{})

			// Assert
			assert.Equal(t, tt.wantStatus, view.Status)
			assert.Equal(t, tt.wantKind, view.ErrorKind())
			assert.Empty(t, view.Cards)
		})
	}
}

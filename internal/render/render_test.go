package render_test

import (
	"bytes"
	"encoding/json"
	stdErrors "errors"
	"net/http"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/storefront-catalog/internal/catalog"
	appErrors "github.com/aaravmahajanofficial/storefront-catalog/internal/errors"
	"github.com/aaravmahajanofficial/storefront-catalog/internal/filters"
	"github.com/aaravmahajanofficial/storefront-catalog/internal/models"
	"github.com/aaravmahajanofficial/storefront-catalog/internal/render"
	"github.com/hellofresh/health-go/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadedView() catalog.ViewModel {
	return catalog.ViewModel{
		Filters: filters.Filters{}.WithGender("Women", true).WithPriceRange(filters.PriceRanges[1], true),
		Cards: []catalog.Card{
			{Product: models.Product{ID: "p1", Name: "Pegasus 41", Type: "Women's Shoes", Price: 129.99, Colors: 3,
				Badge: &models.Badge{Text: "20% OFF", Color: models.BadgeRed}}},
			{Product: models.Product{ID: "p2", Name: "Court Vision", Type: "Women's Shoes", Price: 75, Colors: 1}, Favorite: true},
		},
		Status:     catalog.StatusLoaded,
		Pagination: models.Pagination{Page: 1, Limit: 2, Total: 9, TotalPages: 5},
	}
}

func TestCatalog(t *testing.T) {
	t.Run("Success - Loaded", func(t *testing.T) {
		// Arrange
		var buf bytes.Buffer

		// Act
		err := render.New(&buf).Catalog(loadedView())

		// Assert
		require.NoError(t, err)
		out := buf.String()
		assert.Contains(t, out, "gender: Women · price: $50 - $100 · sort: Newest")
		assert.Contains(t, out, "Pegasus 41")
		assert.Contains(t, out, "$129.99")
		assert.Contains(t, out, "3 Colors")
		assert.Contains(t, out, "1 Color ")
		assert.Contains(t, out, "20% OFF")
		assert.Contains(t, out, "♥")
		assert.Contains(t, out, "Showing 2 of 9 products")
		assert.Contains(t, out, "(page 1 of 5)")
	})

	t.Run("Success - Empty", func(t *testing.T) {
		var buf bytes.Buffer

		err := render.New(&buf).Catalog(catalog.ViewModel{Status: catalog.StatusEmpty})

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "No products found")
		assert.NotContains(t, buf.String(), "Name")
	})

	t.Run("Success - Schema Failure Is Explained", func(t *testing.T) {
		var buf bytes.Buffer

		view := catalog.ViewModel{
			Status: catalog.StatusFailed,
			Err:    appErrors.AddSchemaError("data[0].price", "is required"),
		}

		err := render.New(&buf).Catalog(view)

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "Could not load products")
		assert.Contains(t, buf.String(), "could not read: Invalid field 'data[0].price': is required")
	})

	t.Run("Success - Custom Price Bounds", func(t *testing.T) {
		var buf bytes.Buffer

		f, err := filters.ParsePriceRange("20-40")
		require.NoError(t, err)

		view := catalog.ViewModel{Filters: filters.Filters{}.WithPriceRange(f, true).WithSort("price_desc"), Status: catalog.StatusEmpty}

		require.NoError(t, render.New(&buf).Catalog(view))
		assert.Contains(t, buf.String(), "price: $20.00 - $40.00 · sort: Price: High to Low")
	})
}

func TestProduct(t *testing.T) {
	rating := 4.5
	reviews := 120

	detail := catalog.NewDetailView(models.ProductDetail{
		Product:     models.Product{ID: "p1", Name: "Pegasus 41", Type: "Women's Shoes", Price: 129.99, Colors: 3},
		Description: "Responsive cushioning.",
		Sizes:       []string{"7", "8", "9"},
		Rating:      &rating,
		ReviewCount: &reviews,
	})
	require.NoError(t, detail.SelectSize("8"))

	t.Run("Success - With Related", func(t *testing.T) {
		var buf bytes.Buffer

		err := render.New(&buf).Product(&catalog.ProductPage{
			Detail:  detail,
			Related: []models.Product{{ID: "p2", Name: "Vomero 18", Type: "Women's Shoes", Price: 160, Colors: 2}},
		})

		require.NoError(t, err)
		out := buf.String()
		assert.Contains(t, out, "Pegasus 41")
		assert.Contains(t, out, "Rated 4.5 (120 reviews)")
		assert.Contains(t, out, "Sizes: 7 [8] 9")
		assert.Contains(t, out, "Ready to add to bag")
		assert.Contains(t, out, "You might also like")
		assert.Contains(t, out, "Vomero 18")
	})

	t.Run("Success - No Related Renders Nothing", func(t *testing.T) {
		var buf bytes.Buffer

		err := render.New(&buf).Product(&catalog.ProductPage{Detail: detail, Related: []models.Product{}})

		require.NoError(t, err)
		assert.NotContains(t, buf.String(), "You might also like")
	})
}

func TestHealth(t *testing.T) {
	var buf bytes.Buffer

	check := health.Check{
		Status:    health.StatusUnavailable,
		Failures:  map[string]string{"catalog-schema": "catalog response rejected", "catalog-api": "remote service is not available at the moment"},
		Component: health.Component{Name: "storefront-catalog", Version: "v1.2.0"},
	}

	require.NoError(t, render.New(&buf).Health(check))

	out := buf.String()
	assert.Contains(t, out, "storefront-catalog v1.2.0")
	assert.Contains(t, out, "Status: Unavailable")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("catalog-api")), bytes.Index(buf.Bytes(), []byte("catalog-schema")))
}

func TestSession(t *testing.T) {
	t.Run("Signed In", func(t *testing.T) {
		var buf bytes.Buffer

		s := &models.Session{AccessToken: "tok", Email: "jane@example.com", ExpiresAt: time.Date(2030, 1, 2, 3, 4, 0, 0, time.UTC)}

		require.NoError(t, render.New(&buf).Session(s))
		assert.Contains(t, buf.String(), "Signed in as jane@example.com")
		assert.Contains(t, buf.String(), "Session expires 2030-01-02 03:04 UTC")
	})

	t.Run("No Token", func(t *testing.T) {
		var buf bytes.Buffer

		require.NoError(t, render.New(&buf).Session(&models.Session{}))
		assert.Contains(t, buf.String(), "No session was issued")
	})
}

func TestJSON(t *testing.T) {
	t.Run("Success Envelope", func(t *testing.T) {
		var buf bytes.Buffer

		require.NoError(t, render.JSONSuccess(&buf, loadedView()))

		var got struct {
			Success bool `json:"success"`
			Data    struct {
				Status string `json:"status"`
				Cards  []struct {
					ID       string `json:"id"`
					Favorite bool   `json:"favorite"`
				} `json:"cards"`
				Filters map[string]any `json:"filters"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

		assert.True(t, got.Success)
		assert.Equal(t, "loaded", got.Data.Status)
		require.Len(t, got.Data.Cards, 2)
		assert.True(t, got.Data.Cards[1].Favorite)
		assert.Equal(t, "Women", got.Data.Filters["gender"])
	})

	t.Run("App Error Envelope", func(t *testing.T) {
		var buf bytes.Buffer

		err := appErrors.NetworkError("Failed to fetch products", http.StatusBadGateway).WithDetail("Bad Gateway")
		require.NoError(t, render.JSONError(&buf, err))

		var got render.APIResponse
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

		assert.False(t, got.Success)
		assert.Equal(t, appErrors.ErrCodeNetwork, got.Error.Code)
		assert.Equal(t, "Failed to fetch products", got.Error.Message)
		assert.Equal(t, []string{"Bad Gateway"}, got.Error.Details)
	})

	t.Run("Plain Error Envelope", func(t *testing.T) {
		var buf bytes.Buffer

		require.NoError(t, render.JSONError(&buf, stdErrors.New("boom")))

		var got render.APIResponse
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, appErrors.ErrCodeInternal, got.Error.Code)
	})
}

func TestError(t *testing.T) {
	var buf bytes.Buffer

	err := appErrors.NetworkError("Failed to fetch product", http.StatusNotFound).WithDetail("Not Found")
	require.NoError(t, render.New(&buf).Error(err))

	assert.Equal(t, "Failed to fetch product: Not Found\n", buf.String())
}

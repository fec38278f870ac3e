package health

import (
	"context"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/storefront-catalog/internal/catalog"
	"github.com/aaravmahajanofficial/storefront-catalog/internal/config"
	"github.com/aaravmahajanofficial/storefront-catalog/internal/filters"
	"github.com/hellofresh/health-go/v5"
	httpCheck "github.com/hellofresh/health-go/v5/checks/http"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
)

type Endpoints struct {
	// Catalog is probed with a one-item page so the payload shape is checked
	// as well as reachability.
	Catalog catalog.PageLoader
	// ProductsURL is the collection endpoint of the configured origin.
	ProductsURL string
}

func NewHealthChecker(cfg *config.Config, version string, endpoints *Endpoints) (*health.Health, error) {

	checks := []health.Config{
		{
			Name:      "catalog-api",
			Timeout:   cfg.API.Timeout,
			SkipOnErr: false,
			Check: httpCheck.New(httpCheck.Config{
				URL:            endpoints.ProductsURL,
				RequestTimeout: cfg.API.Timeout,
			}),
		},
		{
			Name:      "catalog-schema",
			Timeout:   cfg.API.Timeout,
			SkipOnErr: false,
			Check: func(ctx context.Context) error {
				if endpoints.Catalog == nil {
					return fmt.Errorf("catalog client is not initialized")
				}

				if _, err := endpoints.Catalog.ListProducts(ctx, filters.Filters{}.WithLimit(1)); err != nil {
					return fmt.Errorf("catalog response rejected: %w", err)
				}

				return nil
			},
		},
	}

	// the cache is optional, a broken one degrades instead of failing
	if cfg.Cache.Backend == "redis" {
		checks = append(checks, health.Config{
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: true,
			Check: healthRedis.New(healthRedis.Config{
				DSN: cfg.RedisConnect.GetDSN(),
			}),
		})
	}

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    cfg.Otel.ServiceName,
			Version: version,
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}

// Healthy reports whether every non-optional check passed.
func Healthy(c health.Check) bool {
	return c.Status == health.StatusOK || c.Status == health.StatusPartiallyAvailable
}

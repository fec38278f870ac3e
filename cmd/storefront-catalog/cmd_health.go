package main

import (
	"github.com/aaravmahajanofficial/storefront-catalog/internal/filters"
	"github.com/aaravmahajanofficial/storefront-catalog/internal/health"
	"github.com/aaravmahajanofficial/storefront-catalog/internal/render"
	"github.com/spf13/cobra"
)

func (a *app) healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the catalog API is reachable and sends valid pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {

			checker, err := health.NewHealthChecker(a.cfg, version, &health.Endpoints{
				Catalog:     a.client,
				ProductsURL: a.client.ProductsURL(filters.Filters{}.WithLimit(1)),
			})
			if err != nil {
				return err
			}

			result := checker.Measure(cmd.Context())

			if a.jsonOut {
				err = render.WriteJSON(a.out, result)
			} else {
				err = a.printer().Health(result)
			}
			if err != nil {
				return err
			}

			if !health.Healthy(result) {
				return errReported
			}

			return nil
		},
	}
}

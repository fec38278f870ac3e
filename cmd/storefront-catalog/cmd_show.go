package main

import (
	"github.com/aaravmahajanofficial/storefront-catalog/internal/catalog"
	"github.com/aaravmahajanofficial/storefront-catalog/internal/models"
	"github.com/aaravmahajanofficial/storefront-catalog/internal/render"
	"github.com/spf13/cobra"
)

type productJSON struct {
	models.ProductDetail
	SelectedSize string           `json:"selectedSize,omitempty"`
	Favorite     bool             `json:"favorite"`
	CanAddToBag  bool             `json:"canAddToBag"`
	Related      []models.Product `json:"related"`
}

func (a *app) relatedSelector() *catalog.RelatedSelector {
	return catalog.NewRelatedSelector(a.client,
		catalog.WithSampleSize(a.cfg.Catalog.RelatedSampleSize),
		catalog.WithMaxRelated(a.cfg.Catalog.RelatedMax),
	)
}

func (a *app) showCmd() *cobra.Command {

	var (
		size     string
		favorite bool
	)

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a product and products related to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {

			page, err := catalog.LoadProductPage(cmd.Context(), a.client, a.relatedSelector(), args[0])
			if err != nil {
				return err
			}

			if size != "" {
				if err := page.Detail.SelectSize(size); err != nil {
					return err
				}
			}

			if favorite {
				page.Detail.ToggleFavorite()
			}

			if a.jsonOut {
				return render.JSONSuccess(a.out, productJSON{
					ProductDetail: page.Detail.Product,
					SelectedSize:  page.Detail.SelectedSize(),
					Favorite:      page.Detail.Favorite(),
					CanAddToBag:   page.Detail.CanAddToBag(),
					Related:       page.Related,
				})
			}

			return a.printer().Product(page)
		},
	}

	cmd.Flags().StringVar(&size, "size", "", "select one of the product's sizes")
	cmd.Flags().BoolVar(&favorite, "favorite", false, "mark the product as a favorite")

	return cmd
}

func (a *app) relatedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "related <id>",
		Short: "List products related to a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {

			related, err := a.relatedSelector().Related(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if a.jsonOut {
				return render.JSONSuccess(a.out, related)
			}

			return a.printer().Related(related)
		},
	}
}

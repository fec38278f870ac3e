package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aaravmahajanofficial/storefront-catalog/internal/catalog"
	"github.com/aaravmahajanofficial/storefront-catalog/internal/filters"
	"github.com/aaravmahajanofficial/storefront-catalog/internal/render"
	"github.com/spf13/cobra"
)

type listFlags struct {
	gender     string
	category   string
	sport      string
	priceRange string
	search     string
	sort       string
	page       int
	limit      int
	favorites  []string
}

func (a *app) listCmd() *cobra.Command {

	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products matching the given filters",
		Example: `  storefront-catalog list --gender Women --sport Running
  storefront-catalog list --price-range '$50 - $100' --sort price_asc
  storefront-catalog list --price-range 20-40 --favorite p1 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {

			f, err := flags.filters(a.cfg.Catalog.DefaultLimit)
			if err != nil {
				return err
			}

			opts := []catalog.ComposerOption{catalog.WithTTL(a.cfg.Cache.DefaultTTL)}
			if c := a.openCache(cmd.Context()); c != nil {
				opts = append(opts, catalog.WithCache(c))
			}

			composer := catalog.NewComposer(a.client, opts...)

			for _, id := range flags.favorites {
				composer.ToggleFavorite(id)
			}

			view, loadErr := composer.Load(cmd.Context(), f)

			if a.jsonOut {
				if loadErr != nil {
					return loadErr
				}
				return render.JSONSuccess(a.out, view)
			}

			if err := a.printer().Catalog(view); err != nil {
				return err
			}

			if loadErr != nil {
				return errReported
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&flags.gender, "gender", "", "one of "+strings.Join(filters.Genders, ", "))
	cmd.Flags().StringVar(&flags.category, "category", "", "product category")
	cmd.Flags().StringVar(&flags.sport, "sport", "", "one of "+strings.Join(filters.Sports, ", "))
	cmd.Flags().StringVar(&flags.priceRange, "price-range", "", `a preset such as "$50 - $100" or "$150+", or "min-max" / "min+"`)
	cmd.Flags().StringVar(&flags.search, "search", "", "free-text search")
	cmd.Flags().StringVar(&flags.sort, "sort", "", "newest, price_asc, price_desc or popular")
	cmd.Flags().IntVar(&flags.page, "page", 0, "page number, starting at 1")
	cmd.Flags().IntVar(&flags.limit, "limit", 0, "page size (defaults to the configured limit)")
	cmd.Flags().StringSliceVar(&flags.favorites, "favorite", nil, "product ids to mark as favorites")

	return cmd
}

// filters applies each flag through the same controls the sidebar uses.
func (l listFlags) filters(defaultLimit int) (filters.Filters, error) {

	f := filters.Filters{}

	if l.gender != "" {
		if !slices.Contains(filters.Genders, l.gender) {
			return f, fmt.Errorf("unknown gender %q, want one of %s", l.gender, strings.Join(filters.Genders, ", "))
		}
		f = f.WithGender(l.gender, true)
	}

	if l.sport != "" {
		if !slices.Contains(filters.Sports, l.sport) {
			return f, fmt.Errorf("unknown sport %q, want one of %s", l.sport, strings.Join(filters.Sports, ", "))
		}
		f = f.WithSport(l.sport, true)
	}

	if l.priceRange != "" {
		r, err := filters.ParsePriceRange(l.priceRange)
		if err != nil {
			return f, err
		}
		f = f.WithPriceRange(r, true)
	}

	limit := l.limit
	if limit == 0 {
		limit = defaultLimit
	}

	f = f.WithCategory(l.category).
		WithSearch(l.search).
		WithSort(l.sort).
		WithPage(l.page).
		WithLimit(limit)

	if err := f.Validate(); err != nil {
		return f, err
	}

	return f, nil
}

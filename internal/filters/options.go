package filters

import (
	"fmt"
	"strconv"
)

type PriceRange struct {
	Label string
	Min   float64
	Max   *float64
}

// Matches reports whether the descriptor's bounds are exactly this range.
func (r PriceRange) Matches(f Filters) bool {
	if f.MinPrice == nil || *f.MinPrice != r.Min {
		return false
	}
	if r.Max == nil {
		return f.MaxPrice == nil
	}
	return f.MaxPrice != nil && *f.MaxPrice == *r.Max
}

var PriceRanges = []PriceRange{
	{Label: "$0 - $50", Min: 0, Max: float64Ptr(50)},
	{Label: "$50 - $100", Min: 50, Max: float64Ptr(100)},
	{Label: "$100 - $150", Min: 100, Max: float64Ptr(150)},
	{Label: "$150+", Min: 150},
}

// ParsePriceRange accepts a preset label or "min-max" / "min+".
func ParsePriceRange(s string) (PriceRange, error) {
	for _, r := range PriceRanges {
		if r.Label == s {
			return r, nil
		}
	}

	if n := len(s); n > 1 && s[n-1] == '+' {
		lo, err := strconv.ParseFloat(s[:n-1], 64)
		if err != nil {
			return PriceRange{}, fmt.Errorf("invalid price range %q: %w", s, err)
		}
		return PriceRange{Label: s, Min: lo}, nil
	}

	for i := 1; i < len(s); i++ {
		if s[i] != '-' {
			continue
		}
		lo, err := strconv.ParseFloat(s[:i], 64)
		if err != nil {
			return PriceRange{}, fmt.Errorf("invalid price range %q: %w", s, err)
		}
		hi, err := strconv.ParseFloat(s[i+1:], 64)
		if err != nil {
			return PriceRange{}, fmt.Errorf("invalid price range %q: %w", s, err)
		}
		return PriceRange{Label: s, Min: lo, Max: &hi}, nil
	}

	return PriceRange{}, fmt.Errorf("invalid price range %q", s)
}

var (
	Genders = []string{"Men", "Women", "Unisex"}
	Sports  = []string{"Basketball", "Football", "Running", "Soccer", "Tennis"}
)

type SortOption struct {
	Value string
	Label string
}

var SortOptions = []SortOption{
	{Value: "newest", Label: "Newest"},
	{Value: "price_asc", Label: "Price: Low to High"},
	{Value: "price_desc", Label: "Price: High to Low"},
	{Value: "popular", Label: "Most Popular"},
}

// SortLabel names the descriptor's sort order, "Newest" when unset or unknown.
func (f Filters) SortLabel() string {
	for _, opt := range SortOptions {
		if opt.Value == f.SortBy {
			return opt.Label
		}
	}
	return SortOptions[0].Label
}

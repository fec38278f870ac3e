// Package filters models the catalog view selection and serializes it into
// the query of a collection request.
//
// Filters is a value type. Every control returns a new value; the receiver is
// never changed.
package filters

import (
	"net/url"
	"strconv"
	"strings"
)

type Filters struct {
	Gender   string   `json:"gender,omitempty"`
	Category string   `json:"category,omitempty"`
	Sport    string   `json:"sport,omitempty"`
	MinPrice *float64 `json:"minPrice,omitempty" validate:"omitempty,gte=0"`
	MaxPrice *float64 `json:"maxPrice,omitempty" validate:"omitempty,gte=0"`
	Search   string   `json:"search,omitempty"`
	SortBy   string   `json:"sortBy,omitempty" validate:"omitempty,oneof=newest price_asc price_desc popular"`
	Page     *int     `json:"page,omitempty" validate:"omitempty,gte=1"`
	Limit    *int     `json:"limit,omitempty" validate:"omitempty,gte=1,lte=100"`
}

// Param is one serialized query field.
type Param struct {
	Key   string
	Value string
}

// Params returns the defined fields in declaration order. Text fields are
// defined when non-empty; numeric fields are defined when set, zero included.
func (f Filters) Params() []Param {
	params := make([]Param, 0, 9)

	addText := func(key, value string) {
		if value != "" {
			params = append(params, Param{Key: key, Value: value})
		}
	}
	// set values are sent even when zero, so an "Under $50" range still sends minPrice=0
	addFloat := func(key string, value *float64) {
		if value != nil {
			params = append(params, Param{Key: key, Value: strconv.FormatFloat(*value, 'f', -1, 64)})
		}
	}
	addInt := func(key string, value *int) {
		if value != nil {
			params = append(params, Param{Key: key, Value: strconv.Itoa(*value)})
		}
	}

	addText("gender", f.Gender)
	addText("category", f.Category)
	addText("sport", f.Sport)
	addFloat("minPrice", f.MinPrice)
	addFloat("maxPrice", f.MaxPrice)
	addText("search", f.Search)
	addText("sortBy", f.SortBy)
	addInt("page", f.Page)
	addInt("limit", f.Limit)

	return params
}

// Encode renders Params as a URL query without the leading '?'.
// url.Values is not used because it sorts keys.
func (f Filters) Encode() string {
	var b strings.Builder

	for i, p := range f.Params() {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}

	return b.String()
}

// Key identifies a descriptor value. Equal descriptors have equal keys.
func (f Filters) Key() string {
	return f.Encode()
}

// Equal reports whether both descriptors serialize the same way.
func (f Filters) Equal(other Filters) bool {
	return f.Key() == other.Key()
}

// WithGender applies a gender checkbox. Checking a value replaces any other
// gender; unchecking the active value clears the field; unchecking an inactive
// value leaves the descriptor as it is.
func (f Filters) WithGender(gender string, checked bool) Filters {
	f.Gender = toggle(f.Gender, gender, checked)
	return f
}

// WithSport applies a sport checkbox with the same rules as WithGender.
func (f Filters) WithSport(sport string, checked bool) Filters {
	f.Sport = toggle(f.Sport, sport, checked)
	return f
}

func toggle(current, value string, checked bool) string {
	if checked {
		return value
	}
	if current == value {
		return ""
	}
	return current
}

// WithPriceRange applies a price range checkbox. Both bounds change together.
func (f Filters) WithPriceRange(r PriceRange, checked bool) Filters {
	if !checked {
		f.MinPrice, f.MaxPrice = nil, nil
		return f
	}

	f.MinPrice = float64Ptr(r.Min)
	f.MaxPrice = nil
	if r.Max != nil {
		f.MaxPrice = float64Ptr(*r.Max)
	}

	return f
}

func (f Filters) WithCategory(category string) Filters {
	f.Category = category
	return f
}

func (f Filters) WithSearch(search string) Filters {
	f.Search = strings.TrimSpace(search)
	return f
}

func (f Filters) WithSort(sortBy string) Filters {
	f.SortBy = sortBy
	return f
}

// WithPage sets the page; a page below 1 clears it.
func (f Filters) WithPage(page int) Filters {
	f.Page = nil
	if page >= 1 {
		f.Page = intPtr(page)
	}
	return f
}

// WithLimit sets the page size; a limit below 1 clears it.
func (f Filters) WithLimit(limit int) Filters {
	f.Limit = nil
	if limit >= 1 {
		f.Limit = intPtr(limit)
	}
	return f
}

// ActivePriceRange returns the preset matching both bounds, if any.
func (f Filters) ActivePriceRange() (PriceRange, bool) {
	for _, r := range PriceRanges {
		if r.Matches(f) {
			return r, true
		}
	}
	return PriceRange{}, false
}

func float64Ptr(v float64) *float64 { return &v }
func intPtr(v int) *int             { return &v }

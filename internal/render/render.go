package render

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/aaravmahajanofficial/storefront-catalog/internal/catalog"
	"github.com/aaravmahajanofficial/storefront-catalog/internal/errors"
	"github.com/aaravmahajanofficial/storefront-catalog/internal/filters"
	"github.com/aaravmahajanofficial/storefront-catalog/internal/models"
	"github.com/charmbracelet/lipgloss"
	"github.com/hellofresh/health-go/v5"
)

type Renderer struct {
	w      io.Writer
	styles Styles
}

func New(w io.Writer) *Renderer {
	return &Renderer{w: w, styles: NewStyles(lipgloss.NewRenderer(w))}
}

func Price(p float64) string {
	return "$" + strconv.FormatFloat(p, 'f', 2, 64)
}

func colors(n int) string {
	if n == 1 {
		return "1 Color"
	}
	return strconv.Itoa(n) + " Colors"
}

func (r *Renderer) print(s string) error {
	_, err := io.WriteString(r.w, s)
	return err
}

func (r *Renderer) productTable(products []models.Product, favorite func(id string) bool) string {
	t := newTable("", "ID", "Name", "Type", "Price", "Colors", "Badge")

	for _, p := range products {
		mark := ""
		if favorite != nil && favorite(p.ID) {
			mark = r.styles.Favorite.Render("♥")
		}
		t.addRow(mark, p.ID, p.Name, p.Type, Price(p.Price), colors(p.Colors), r.styles.Badge(p.Badge))
	}

	return t.view(r.styles)
}

// Catalog draws the listing screen: active filters, the product grid and
// the pagination summary, or the error/empty state in its place.
func (r *Renderer) Catalog(v catalog.ViewModel) error {

	var sb strings.Builder

	sb.WriteString(r.styles.Title.Render("Products") + "\n")
	sb.WriteString(r.styles.Muted.Render(describeFilters(v.Filters)) + "\n\n")

	switch v.Status {
	case catalog.StatusFailed:
		sb.WriteString(r.styles.Error.Render(v.Summary()) + "\n")
		if v.Err != nil {
			sb.WriteString(r.styles.Muted.Render(failureReason(v)) + "\n")
		}
	case catalog.StatusEmpty, catalog.StatusLoading:
		sb.WriteString(v.Summary() + "\n")
	default:
		favorites := make(map[string]bool, len(v.Cards))
		products := make([]models.Product, len(v.Cards))
		for i, c := range v.Cards {
			products[i] = c.Product
			favorites[c.ID] = c.Favorite
		}

		sb.WriteString(r.productTable(products, func(id string) bool { return favorites[id] }))
		sb.WriteString("\n" + v.Summary())
		if v.Pagination.TotalPages > 1 {
			sb.WriteString(r.styles.Muted.Render(fmt.Sprintf("  (page %d of %d)", v.Pagination.Page, v.Pagination.TotalPages)))
		}
		sb.WriteString("\n")
	}

	return r.print(sb.String())
}

func failureReason(v catalog.ViewModel) string {
	switch v.ErrorKind() {
	case "schema":
		return "The catalog sent a response this client could not read: " + v.Err.Error()
	default:
		return v.Err.Error()
	}
}

func describeFilters(f filters.Filters) string {

	parts := make([]string, 0, 6)

	for _, p := range f.Params() {
		switch p.Key {
		case "minPrice", "maxPrice", "sortBy", "page", "limit":
			continue
		}
		parts = append(parts, p.Key+": "+p.Value)
	}

	if r, ok := f.ActivePriceRange(); ok {
		parts = append(parts, "price: "+r.Label)
	} else if f.MinPrice != nil || f.MaxPrice != nil {
		parts = append(parts, "price: "+priceBounds(f))
	}

	parts = append(parts, "sort: "+f.SortLabel())

	return strings.Join(parts, " · ")
}

func priceBounds(f filters.Filters) string {
	lo, hi := "any", "any"
	if f.MinPrice != nil {
		lo = Price(*f.MinPrice)
	}
	if f.MaxPrice != nil {
		hi = Price(*f.MaxPrice)
	}
	return lo + " - " + hi
}

// Product draws the detail screen followed by "You might also like".
func (r *Renderer) Product(p *catalog.ProductPage) error {

	d := p.Detail.Product

	var sb strings.Builder

	title := d.Name
	if p.Detail.Favorite() {
		title += " " + r.styles.Favorite.Render("♥")
	}
	sb.WriteString(r.styles.Title.Render(title) + "\n")
	sb.WriteString(d.Type + "  " + r.styles.Bold.Render(Price(d.Price)))
	if d.Badge != nil {
		sb.WriteString("  " + r.styles.Badge(d.Badge))
	}
	sb.WriteString("\n")

	if d.Rating != nil {
		line := fmt.Sprintf("Rated %.1f", *d.Rating)
		if d.ReviewCount != nil {
			line += fmt.Sprintf(" (%d reviews)", *d.ReviewCount)
		}
		sb.WriteString(r.styles.Muted.Render(line) + "\n")
	}

	if d.Description != "" {
		sb.WriteString("\n" + d.Description + "\n")
	}

	sb.WriteString("\n" + r.styles.Bold.Render("Sizes:") + " ")
	sizes := make([]string, len(d.Sizes))
	for i, s := range d.Sizes {
		if s == p.Detail.SelectedSize() {
			s = r.styles.Bold.Render("[" + s + "]")
		}
		sizes[i] = s
	}
	sb.WriteString(strings.Join(sizes, " ") + "\n")

	if p.Detail.CanAddToBag() {
		sb.WriteString(r.styles.Muted.Render("Ready to add to bag") + "\n")
	} else {
		sb.WriteString(r.styles.Muted.Render("Select a size to add to bag") + "\n")
	}

	if err := r.print(sb.String()); err != nil {
		return err
	}

	return r.Related(p.Related)
}

// Related draws nothing for an empty selection.
func (r *Renderer) Related(products []models.Product) error {
	if len(products) == 0 {
		return nil
	}

	return r.print("\n" + r.styles.Title.Render("You might also like") + "\n" + r.productTable(products, nil))
}

func (r *Renderer) Health(c health.Check) error {

	var sb strings.Builder

	status := r.styles.Bold.Foreground(Success).Render(string(c.Status))
	if c.Status != health.StatusOK {
		status = r.styles.Error.Render(string(c.Status))
	}

	sb.WriteString(r.styles.Title.Render(c.Component.Name) + " " + r.styles.Muted.Render(c.Component.Version) + "\n")
	sb.WriteString("Status: " + status + "\n")

	names := make([]string, 0, len(c.Failures))
	for name := range c.Failures {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		sb.WriteString(r.styles.Error.Render("  ✗ "+name) + ": " + c.Failures[name] + "\n")
	}

	return r.print(sb.String())
}

func (r *Renderer) Session(s *models.Session) error {

	var sb strings.Builder

	if s == nil || s.AccessToken == "" {
		sb.WriteString("Done. No session was issued; sign in to continue.\n")
		return r.print(sb.String())
	}

	who := s.Email
	if who == "" {
		who = s.Subject
	}

	if who != "" {
		sb.WriteString("Signed in as " + r.styles.Bold.Render(who) + "\n")
	} else {
		sb.WriteString("Signed in\n")
	}

	if !s.ExpiresAt.IsZero() {
		sb.WriteString(r.styles.Muted.Render("Session expires "+s.ExpiresAt.Format("2006-01-02 15:04 MST")) + "\n")
	}

	return r.print(sb.String())
}

func (r *Renderer) Error(err error) error {

	if appErr, ok := errors.IsAppError(err); ok {
		return r.print(r.styles.Error.Render(appErr.Message) + detail(r.styles, appErr.Detail) + "\n")
	}

	return r.print(r.styles.Error.Render(err.Error()) + "\n")
}

func detail(s Styles, d string) string {
	if d == "" {
		return ""
	}
	return s.Muted.Render(": " + d)
}

// Package render draws catalog view models in the terminal or as JSON.
package render

import (
	"github.com/aaravmahajanofficial/storefront-catalog/internal/models"
	"github.com/charmbracelet/lipgloss"
)

var (
	Destructive = lipgloss.Color("#e53935")
	Success     = lipgloss.Color("#8BC34A")
	Info        = lipgloss.Color("#2196F3")
	Muted       = lipgloss.Color("#8a93a3")
	Favorite    = lipgloss.Color("#FFC107")
)

type Styles struct {
	Title    lipgloss.Style
	Bold     lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Favorite lipgloss.Style
	Badges   map[models.BadgeColor]lipgloss.Style
}

// NewStyles binds every style to r so the color profile follows the output.
func NewStyles(r *lipgloss.Renderer) Styles {
	badge := func(c lipgloss.Color) lipgloss.Style {
		return r.NewStyle().Bold(true).Foreground(c)
	}

	return Styles{
		Title:    r.NewStyle().Bold(true).Underline(true),
		Bold:     r.NewStyle().Bold(true),
		Body:     r.NewStyle(),
		Muted:    r.NewStyle().Foreground(Muted),
		Error:    r.NewStyle().Bold(true).Foreground(Destructive),
		Favorite: r.NewStyle().Foreground(Favorite),
		Badges: map[models.BadgeColor]lipgloss.Style{
			models.BadgeRed:   badge(Destructive),
			models.BadgeGreen: badge(Success),
			models.BadgeBlue:  badge(Info),
		},
	}
}

func (s Styles) Badge(b *models.Badge) string {
	if b == nil {
		return ""
	}

	style, ok := s.Badges[b.Color]
	if !ok {
		style = s.Badges[models.BadgeBlue]
	}

	return style.Render(b.Text)
}

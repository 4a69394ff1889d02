package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MrSnakeDoc/poetry/internal/domain"
	"github.com/MrSnakeDoc/poetry/internal/view"
)

type palette struct {
	Accent lipgloss.Color
	Muted  lipgloss.Color
	Border lipgloss.Color
	Fav    lipgloss.Color
}

var (
	lightPalette = palette{
		Accent: lipgloss.Color("#101F38"),
		Muted:  lipgloss.Color("#6b7280"),
		Border: lipgloss.Color("#d6dae0"),
		Fav:    lipgloss.Color("#e53935"),
	}
	darkPalette = palette{
		Accent: lipgloss.Color("#8BC34A"),
		Muted:  lipgloss.Color("#9ca3af"),
		Border: lipgloss.Color("#2a3850"),
		Fav:    lipgloss.Color("#e57373"),
	}
)

// Text renders poems as bordered terminal cards. Poem text is printed
// literally; the terminal never interprets it as markup.
type Text struct {
	W     io.Writer
	Width int // card width, 0 means 60
}

func NewText(w io.Writer) *Text {
	return &Text{W: w}
}

func (t *Text) Render(v view.View) error {
	p := lightPalette
	if v.Theme.IsDark() {
		p = darkPalette
	}
	width := t.Width
	if width <= 0 {
		width = 60
	}

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1).
		Width(width)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(p.Accent)
	metaStyle := lipgloss.NewStyle().Foreground(p.Muted)
	favStyle := lipgloss.NewStyle().Foreground(p.Fav)

	var b strings.Builder
	b.WriteString(metaStyle.Render(header(v)))
	b.WriteString("\n")

	if len(v.Poems) == 0 {
		b.WriteString(cardStyle.Render(EmptyMessage))
		b.WriteString("\n")
		_, err := io.WriteString(t.W, b.String())
		return err
	}

	for _, poem := range v.Poems {
		title := titleStyle.Render(poem.Title)
		if poem.IsFavorite {
			title += " " + favStyle.Render("♥")
		}
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			metaStyle.Render(fmt.Sprintf("%s · %s", poem.Author, strings.TrimSpace(poem.Category))),
			"",
			poem.Body,
			metaStyle.Render(poem.ID),
		)
		b.WriteString(cardStyle.Render(content))
		b.WriteString("\n")
	}

	_, err := io.WriteString(t.W, b.String())
	return err
}

func header(v view.View) string {
	parts := []string{fmt.Sprintf("%d of %d poems", len(v.Poems), v.Total)}
	if v.Mode == view.ModeFavorites {
		parts = append(parts, "favorites")
	}
	if v.Criteria.Author != "" {
		parts = append(parts, "author="+v.Criteria.Author)
	}
	if v.Criteria.Category != "" {
		parts = append(parts, "category="+v.Criteria.Category)
	}
	if v.Criteria.Query != "" {
		parts = append(parts, fmt.Sprintf("query=%q", v.Criteria.Query))
	}
	return strings.Join(parts, "  ")
}

// Lines prints one value per line, used for facet listings.
func Lines(w io.Writer, values []string) error {
	style := lipgloss.NewStyle().Foreground(lightPalette.Accent)
	for _, v := range values {
		if _, err := fmt.Fprintln(w, style.Render(v)); err != nil {
			return err
		}
	}
	return nil
}

// ThemeLabel describes a display mode for terminal output.
func ThemeLabel(t domain.Theme) string {
	if t.IsDark() {
		return "dark"
	}
	return "light"
}

package render

import (
	"embed"
	"html/template"
	"io"
	"strings"
	"unicode"

	"github.com/MrSnakeDoc/poetry/internal/domain"
	"github.com/MrSnakeDoc/poetry/internal/view"
)

//go:embed templates/page.html
var templatesFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templatesFS, "templates/page.html"))

// HTML renders a full page. Poem text is escaped with domain.EscapeHTML and
// handed to the template as trusted markup, so the five significant
// characters always come out as the same entities.
type HTML struct {
	W      io.Writer
	Notice string // shown above the add form, e.g. after rejected input
}

func NewHTML(w io.Writer) *HTML {
	return &HTML{W: w}
}

type option struct {
	Value    string
	Label    template.HTML
	Selected bool
}

type card struct {
	ID            string
	Author        template.HTML
	Title         template.HTML
	Category      template.HTML
	CategoryClass string
	Body          template.HTML
	Favorite      bool
}

type page struct {
	Dark         bool
	Favorites    bool
	ShowAddForm  bool
	Query        string
	Notice       string
	Empty        string
	ReturnTo     string
	HomeURL      string
	FavoritesURL string
	AddURL       string
	Authors      []option
	Categories   []option
	Cards        []card
}

func (h *HTML) Render(v view.View) error {
	return pageTmpl.Execute(h.W, h.page(v))
}

func (h *HTML) page(v view.View) page {
	p := page{
		Dark:        v.Theme.IsDark(),
		Favorites:   v.Mode == view.ModeFavorites,
		ShowAddForm: v.ShowAddForm,
		Query:       v.Criteria.Query,
		Notice:      h.Notice,
		Empty:       EmptyMessage,
		ReturnTo:    Path(Query(v)),
		Authors:     options(v.Authors, v.Criteria.Author),
		Categories:  options(v.Categories, v.Criteria.Category),
		Cards:       make([]card, 0, len(v.Poems)),
	}

	home := Query(v)
	home.Del("view")
	home.Del("add")
	p.HomeURL = Path(home)

	fav := Query(v)
	fav.Del("add")
	fav.Set("view", "favorites")
	p.FavoritesURL = Path(fav)

	add := Query(v)
	add.Del("view")
	if v.ShowAddForm {
		add.Del("add")
	} else {
		add.Set("add", "1")
	}
	p.AddURL = Path(add)

	for _, poem := range v.Poems {
		p.Cards = append(p.Cards, card{
			ID:            poem.ID,
			Author:        trusted(poem.Author),
			Title:         trusted(poem.Title),
			Category:      trusted(poem.Category),
			CategoryClass: className(poem.Category),
			Body:          trusted(poem.Body),
			Favorite:      poem.IsFavorite,
		})
	}
	return p
}

func trusted(s string) template.HTML {
	return template.HTML(domain.EscapeHTML(s))
}

func options(values []string, selected string) []option {
	out := make([]option, 0, len(values))
	for _, v := range values {
		out = append(out, option{Value: v, Label: trusted(v), Selected: v == selected})
	}
	return out
}

// className reduces a category label to a CSS-safe token.
func className(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

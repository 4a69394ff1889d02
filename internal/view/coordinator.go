// Package view holds the transient UI state of one catalog session and
// turns every user event into a single full recompute and render.
package view

import (
	"context"
	"errors"
	"strings"

	"github.com/MrSnakeDoc/poetry/internal/domain"
)

// Catalog is the slice of catalog.Store the coordinator drives.
type Catalog interface {
	List() []domain.Poem
	Add(ctx context.Context, author, title, category, body string) (domain.Poem, error)
	ToggleFavorite(ctx context.Context, id string) (domain.Poem, bool, error)
}

// Presenter materialises a computed view.
type Presenter interface {
	Render(View) error
}

type Mode string

const (
	ModeHome      Mode = "home"
	ModeFavorites Mode = "favorites"
)

// View is everything a presenter needs for one frame.
type View struct {
	Poems       []domain.Poem   `json:"poems"`
	Criteria    domain.Criteria `json:"criteria"`
	Mode        Mode            `json:"mode"`
	ShowAddForm bool            `json:"showAddForm"`
	Authors     []string        `json:"authors"`
	Categories  []string        `json:"categories"`
	Total       int             `json:"total"`
	Theme       domain.Theme    `json:"theme"`
}

// State is the part of a session that lives outside the catalog.
type State struct {
	Query       string
	Author      string
	Category    string
	Favorites   bool
	ShowAddForm bool
}

// Input carries the add-poem form fields.
type Input struct {
	Author   string `json:"author"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Body     string `json:"body"`
}

// Coordinator is not safe for concurrent use. The HTTP front-end builds
// one per request and restores its state from the URL.
type Coordinator struct {
	catalog   Catalog
	presenter Presenter

	state State
	theme domain.Theme
	last  View
}

func New(catalog Catalog, presenter Presenter) *Coordinator {
	return &Coordinator{
		catalog:   catalog,
		presenter: presenter,
		theme:     domain.ThemeLight,
	}
}

// Restore replaces the transient state without rendering.
func (c *Coordinator) Restore(s State) {
	c.state = s
}

func (c *Coordinator) State() State { return c.state }

// SetTheme records the display mode shown by the next render.
func (c *Coordinator) SetTheme(t domain.Theme) {
	c.theme = t
}

// Last returns the most recently rendered view.
func (c *Coordinator) Last() View { return c.last }

func (c *Coordinator) SetQuery(q string) error {
	c.state.Query = q
	return c.Refresh()
}

func (c *Coordinator) SetAuthor(author string) error {
	c.state.Author = author
	return c.Refresh()
}

func (c *Coordinator) SetCategory(category string) error {
	c.state.Category = category
	return c.Refresh()
}

func (c *Coordinator) ShowFavorites() error {
	c.state.Favorites = true
	c.state.ShowAddForm = false
	return c.Refresh()
}

// ShowHome leaves favorites mode and closes the add form. Filters stay.
func (c *Coordinator) ShowHome() error {
	c.state.Favorites = false
	c.state.ShowAddForm = false
	return c.Refresh()
}

// ToggleAddForm opens or closes the add form and returns to the full list.
func (c *Coordinator) ToggleAddForm() error {
	c.state.ShowAddForm = !c.state.ShowAddForm
	c.state.Favorites = false
	return c.Refresh()
}

// AddPoem adds a poem, closes the form and selects the new poem's author so
// it is visible. Rejected input leaves state untouched; the view is
// re-rendered either way.
func (c *Coordinator) AddPoem(ctx context.Context, in Input) (domain.Poem, error) {
	p, err := c.catalog.Add(ctx, in.Author, in.Title, in.Category, in.Body)
	if err != nil {
		return domain.Poem{}, errors.Join(err, c.Refresh())
	}

	c.state.ShowAddForm = false
	c.state.Author = p.Author
	return p, c.Refresh()
}

// ToggleFavorite flips the favorite flag. An unknown id is a no-op that
// still re-renders.
func (c *Coordinator) ToggleFavorite(ctx context.Context, id string) (domain.Poem, bool, error) {
	p, found, err := c.catalog.ToggleFavorite(ctx, id)
	if err != nil {
		return domain.Poem{}, false, errors.Join(err, c.Refresh())
	}
	return p, found, c.Refresh()
}

// Compute builds the current view without rendering it.
func (c *Coordinator) Compute() View {
	all := c.catalog.List()
	criteria := c.criteria()

	mode := ModeHome
	if c.state.Favorites {
		mode = ModeFavorites
	}

	return View{
		Poems:       domain.Apply(all, criteria),
		Criteria:    criteria,
		Mode:        mode,
		ShowAddForm: c.state.ShowAddForm,
		Authors:     domain.Authors(all),
		Categories:  domain.Categories(all),
		Total:       len(all),
		Theme:       c.theme,
	}
}

// Refresh recomputes the view over the full collection and renders it.
func (c *Coordinator) Refresh() error {
	c.last = c.Compute()
	if c.presenter == nil {
		return nil
	}
	return c.presenter.Render(c.last)
}

func (c *Coordinator) criteria() domain.Criteria {
	return domain.Criteria{
		Query:         strings.TrimSpace(c.state.Query),
		Author:        c.state.Author,
		Category:      c.state.Category,
		FavoritesOnly: c.state.Favorites,
	}
}

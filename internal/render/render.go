// Package render materialises view.View values as HTML, terminal text or
// JSON.
package render

import (
	"net/url"

	"github.com/MrSnakeDoc/poetry/internal/view"
)

// EmptyMessage is shown when no poem matches the current filters.
const EmptyMessage = "No poems found. Try clearing filters or search."

// Query encodes the view's transient state as URL query parameters, the
// inverse of ParseState.
func Query(v view.View) url.Values {
	q := url.Values{}
	if v.Criteria.Query != "" {
		q.Set("q", v.Criteria.Query)
	}
	if v.Criteria.Author != "" {
		q.Set("author", v.Criteria.Author)
	}
	if v.Criteria.Category != "" {
		q.Set("category", v.Criteria.Category)
	}
	if v.Mode == view.ModeFavorites {
		q.Set("view", "favorites")
	}
	if v.ShowAddForm {
		q.Set("add", "1")
	}
	return q
}

// ParseState reads the transient state carried in a URL query.
func ParseState(q url.Values) view.State {
	return view.State{
		Query:       q.Get("q"),
		Author:      q.Get("author"),
		Category:    q.Get("category"),
		Favorites:   q.Get("view") == "favorites",
		ShowAddForm: q.Get("add") == "1",
	}
}

// Path returns "/" with the given query, if any.
func Path(q url.Values) string {
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}

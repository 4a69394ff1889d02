package domain

import "strings"

// Criteria is the transient filter state. The zero value selects everything.
type Criteria struct {
	Query         string `json:"query,omitempty"`    // case-insensitive substring of title or body
	Author        string `json:"author,omitempty"`   // exact match when set
	Category      string `json:"category,omitempty"` // exact match when set
	FavoritesOnly bool   `json:"favoritesOnly,omitempty"`
}

// IsZero reports whether c filters nothing out.
func (c Criteria) IsZero() bool {
	return !c.FavoritesOnly && c.Author == "" && c.Category == "" && strings.TrimSpace(c.Query) == ""
}

// Apply returns the poems matching every criterion, in input order.
//
// Steps run in a fixed order: favorites, author, category, query. The input
// slice is never modified and the result never aliases it.
func Apply(poems []Poem, c Criteria) []Poem {
	q := strings.ToLower(strings.TrimSpace(c.Query))

	out := make([]Poem, 0, len(poems))
	for _, p := range poems {
		if c.FavoritesOnly && !p.IsFavorite {
			continue
		}
		if c.Author != "" && p.Author != c.Author {
			continue
		}
		if c.Category != "" && p.Category != c.Category {
			continue
		}
		if q != "" && !matchesQuery(p, q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// matchesQuery expects q already lower-cased.
func matchesQuery(p Poem, q string) bool {
	return strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Body), q)
}

package domain

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Authors returns the distinct authors of poems in collation order.
func Authors(poems []Poem) []string {
	return distinctSorted(poems, func(p Poem) string { return p.Author })
}

// Categories returns the distinct categories of poems in collation order.
func Categories(poems []Poem) []string {
	return distinctSorted(poems, func(p Poem) string { return p.Category })
}

func distinctSorted(poems []Poem, field func(Poem) string) []string {
	seen := make(map[string]struct{}, len(poems))
	out := make([]string, 0, len(poems))
	for _, p := range poems {
		v := field(p)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	// A Collator is not safe for concurrent use.
	collate.New(language.English).SortStrings(out)
	return out
}

package domain

import (
	"reflect"
	"testing"
)

func TestAuthors(t *testing.T) {
	poems := []Poem{
		{Author: "Rumi"},
		{Author: "Emily Dickinson"},
		{Author: "Rumi"},
		{Author: ""},
		{Author: "Maya Angelou"},
	}

	want := []string{"Emily Dickinson", "Maya Angelou", "Rumi"}
	if got := Authors(poems); !reflect.DeepEqual(got, want) {
		t.Errorf("Authors() = %v, want %v", got, want)
	}
}

func TestAuthorsCollation(t *testing.T) {
	poems := []Poem{{Author: "Zoe"}, {Author: "Émile"}, {Author: "Adam"}}

	// Byte order would put "Émile" last.
	want := []string{"Adam", "Émile", "Zoe"}
	if got := Authors(poems); !reflect.DeepEqual(got, want) {
		t.Errorf("Authors() = %v, want %v", got, want)
	}
}

func TestCategoriesKeepsIrregularLabels(t *testing.T) {
	poems := []Poem{{Category: "Love"}, {Category: "Love 💕"}, {Category: "Love"}}

	got := Categories(poems)
	if len(got) != 2 {
		t.Errorf("Categories() = %v, want two distinct labels", got)
	}
}

package seed

import (
	"fmt"

	"github.com/MrSnakeDoc/poetry/internal/domain"
)

// Mapper converts a seed document into domain poems.
type Mapper struct {
	newID func() string
}

// NewMapper creates a mapper that assigns ids with domain.NewID.
func NewMapper() *Mapper {
	return &Mapper{newID: domain.NewID}
}

// MapPoems flattens the document in file order. Every poem gets a fresh id
// and starts unfavorited. Text is kept verbatim; entries with a blank
// (empty or whitespace-only) author, title, category or body are skipped.
func (m *Mapper) MapPoems(f File) ([]domain.Poem, error) {
	var poems []domain.Poem

	for _, entry := range f {
		for _, p := range entry.Poems {
			poem := domain.Poem{
				ID:       m.newID(),
				Author:   entry.Author,
				Title:    p.Title,
				Category: p.Category,
				Body:     p.Body,
			}
			if poem.Validate() != nil {
				continue
			}
			poems = append(poems, poem)
		}
	}

	if len(poems) == 0 {
		return nil, fmt.Errorf("no valid poems found in seed")
	}

	return poems, nil
}

// Default loads the embedded dataset.
func Default() ([]domain.Poem, error) {
	f, err := NewLoader("").Load()
	if err != nil {
		return nil, err
	}
	return NewMapper().MapPoems(f)
}

package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Poem is one catalog entry.
//
// ID is assigned once at creation and never reused. Every other text field
// is kept verbatim, including line breaks in Body.
type Poem struct {
	ID         string `json:"id"`
	Author     string `json:"author"`
	Title      string `json:"title"`
	Category   string `json:"category"`
	Body       string `json:"body"`
	IsFavorite bool   `json:"isFavorite"`
}

// NewPoem trims the four text fields and builds an unfavorited poem with a
// fresh id. Any field left empty after trimming yields ErrInvalidInput.
func NewPoem(author, title, category, body string) (Poem, error) {
	p := Poem{
		Author:   strings.TrimSpace(author),
		Title:    strings.TrimSpace(title),
		Category: strings.TrimSpace(category),
		Body:     strings.TrimSpace(body),
	}
	if err := p.validateFields(); err != nil {
		return Poem{}, err
	}
	p.ID = NewID()
	return p, nil
}

// Validate reports whether p satisfies the record invariants: a non-empty
// id and non-blank author, title, category and body.
func (p Poem) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return &FieldError{Field: "id"}
	}
	return p.validateFields()
}

func (p Poem) validateFields() error {
	switch {
	case strings.TrimSpace(p.Author) == "":
		return &FieldError{Field: "author"}
	case strings.TrimSpace(p.Title) == "":
		return &FieldError{Field: "title"}
	case strings.TrimSpace(p.Category) == "":
		return &FieldError{Field: "category"}
	case strings.TrimSpace(p.Body) == "":
		return &FieldError{Field: "body"}
	}
	return nil
}

// NewID returns an opaque, collision-resistant identifier. UUIDv7 packs a
// millisecond timestamp with random bits.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Clone returns a copy of poems so callers cannot alias the owner's slice.
func Clone(poems []Poem) []Poem {
	out := make([]Poem, len(poems))
	copy(out, poems)
	return out
}

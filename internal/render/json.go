package render

import (
	"encoding/json"
	"io"

	"github.com/MrSnakeDoc/poetry/internal/domain"
	"github.com/MrSnakeDoc/poetry/internal/view"
)

// JSON writes the view as a single JSON document.
type JSON struct {
	W      io.Writer
	Indent bool
}

func NewJSON(w io.Writer) *JSON {
	return &JSON{W: w}
}

func (j *JSON) Render(v view.View) error {
	if v.Poems == nil {
		v.Poems = []domain.Poem{}
	}
	enc := json.NewEncoder(j.W)
	if j.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

package seed

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoaderEmbeddedDefault(t *testing.T) {
	loader := NewLoader("")
	if loader.Source() != "embedded" {
		t.Errorf("Source() = %q, want embedded", loader.Source())
	}

	f, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(f) != 10 {
		t.Errorf("default seed has %d authors, want 10", len(f))
	}
	for _, entry := range f {
		if len(entry.Poems) != 5 {
			t.Errorf("author %s has %d poems, want 5", entry.Author, len(entry.Poems))
		}
	}
}

func TestLoaderLoadFile(t *testing.T) {
	tmpDir := t.TempDir()
	yamlPath := filepath.Join(tmpDir, "seed.yaml")

	yamlContent := `---
- author: Rumi
  poems:
    - title: Two Cups
      category: Friendship
      body: |
        We share tea and silence—
        both grow warmer together.
`

	if err := os.WriteFile(yamlPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}

	f, err := NewLoader(yamlPath).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(f) != 1 || len(f[0].Poems) != 1 {
		t.Fatalf("Load() = %+v, want one author with one poem", f)
	}
	if got, want := f[0].Poems[0].Body, "We share tea and silence—\nboth grow warmer together.\n"; got != want {
		t.Errorf("Body = %q, want %q", got, want)
	}
}

func TestLoaderLoadFileNotFound(t *testing.T) {
	_, err := NewLoader("/nonexistent/path/seed.yaml").Load()
	if err == nil {
		t.Error("Load() with non-existent file should return error")
	}
}

func TestParseInvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("- author: [unclosed")); err == nil {
		t.Error("Parse() should reject malformed yaml")
	}
}

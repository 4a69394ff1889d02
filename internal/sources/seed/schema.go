package seed

// File is the top-level shape of a seed YAML document: a list of authors,
// each with their poems.
type File []AuthorEntry

type AuthorEntry struct {
	Author string      `yaml:"author"`
	Poems  []PoemEntry `yaml:"poems"`
}

type PoemEntry struct {
	Title    string `yaml:"title"`
	Category string `yaml:"category"`
	Body     string `yaml:"body"`
}

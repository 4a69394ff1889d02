package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/MrSnakeDoc/poetry/internal/domain"
	"github.com/MrSnakeDoc/poetry/internal/logger"
)

// Snapshotter persists the whole collection at once.
type Snapshotter interface {
	Save(ctx context.Context, poems []domain.Poem) error
	Load(ctx context.Context) ([]domain.Poem, bool, error)
}

// Source tells where the collection came from at startup.
type Source string

const (
	SourceStorage Source = "storage"
	SourceSeed    Source = "seed"
)

// Store owns the ordered collection, newest first. Every successful
// mutation is persisted before it becomes visible; a failed write leaves
// the collection as it was.
type Store struct {
	mu     sync.RWMutex
	poems  []domain.Poem
	issued map[string]struct{} // every id ever seen by this process

	snaps          Snapshotter
	log            logger.Logger
	validateOnLoad bool
	newID          func() string
}

type Option func(*Store)

// WithValidateOnLoad drops stored poems that break the record invariants
// (blank fields, missing or duplicate id) instead of adopting them as-is.
func WithValidateOnLoad(v bool) Option {
	return func(s *Store) { s.validateOnLoad = v }
}

// WithIDGenerator replaces domain.NewID.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

func New(snaps Snapshotter, log logger.Logger, opts ...Option) *Store {
	s := &Store{
		poems:  []domain.Poem{},
		issued: make(map[string]struct{}),
		snaps:  snaps,
		log:    log,
		newID:  domain.NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SeedFunc produces the default collection. It is only called when storage
// holds no usable snapshot.
type SeedFunc func() ([]domain.Poem, error)

// Initialize adopts the stored snapshot, or falls back to seed and persists
// it right away. A failed seed write is returned, but the seeded
// collection stays in memory.
func (s *Store) Initialize(ctx context.Context, seed []domain.Poem) (Source, error) {
	return s.InitializeFrom(ctx, func() ([]domain.Poem, error) { return seed, nil })
}

// InitializeFrom is Initialize with a lazily built seed. When seed fails the
// source is empty and nothing is adopted.
func (s *Store) InitializeFrom(ctx context.Context, seed SeedFunc) (Source, error) {
	loaded, ok, err := s.snaps.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read stored poems: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if ok {
		if s.validateOnLoad {
			loaded = s.sanitize(loaded)
		}
		s.adoptLocked(loaded)
		s.log.Info("loaded poems from storage", logger.Int("count", len(loaded)))
		return SourceStorage, nil
	}

	poems, err := seed()
	if err != nil {
		return "", fmt.Errorf("failed to load seed dataset: %w", err)
	}

	s.adoptLocked(domain.Clone(poems))
	s.log.Info("no stored poems, seeding defaults", logger.Int("count", len(poems)))
	if err := s.snaps.Save(ctx, s.poems); err != nil {
		return SourceSeed, fmt.Errorf("failed to persist seed: %w", err)
	}
	return SourceSeed, nil
}

func (s *Store) adoptLocked(poems []domain.Poem) {
	if poems == nil {
		poems = []domain.Poem{}
	}
	s.poems = poems
	for _, p := range poems {
		s.issued[p.ID] = struct{}{}
	}
}

func (s *Store) sanitize(poems []domain.Poem) []domain.Poem {
	seen := make(map[string]struct{}, len(poems))
	kept := make([]domain.Poem, 0, len(poems))
	for _, p := range poems {
		if err := p.Validate(); err != nil {
			continue
		}
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		kept = append(kept, p)
	}
	if dropped := len(poems) - len(kept); dropped > 0 {
		s.log.Warn("dropped invalid stored poems",
			logger.Int("dropped", dropped),
			logger.Int("kept", len(kept)))
	}
	return kept
}

// Add validates and prepends a new poem. Blank fields yield
// domain.ErrInvalidInput with no mutation and no write.
func (s *Store) Add(ctx context.Context, author, title, category, body string) (domain.Poem, error) {
	p, err := domain.NewPoem(author, title, category, body)
	if err != nil {
		return domain.Poem{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextIDLocked()

	next := make([]domain.Poem, 0, len(s.poems)+1)
	next = append(next, p)
	next = append(next, s.poems...)

	if err := s.snaps.Save(ctx, next); err != nil {
		return domain.Poem{}, err
	}

	s.poems = next
	s.issued[p.ID] = struct{}{}
	return p, nil
}

func (s *Store) nextIDLocked() string {
	for {
		id := s.newID()
		if _, taken := s.issued[id]; !taken && id != "" {
			return id
		}
	}
}

// ToggleFavorite flips IsFavorite on the poem with id. found is false, with
// no write, when nothing matches.
func (s *Store) ToggleFavorite(ctx context.Context, id string) (p domain.Poem, found bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return domain.Poem{}, false, nil
	}

	next := domain.Clone(s.poems)
	next[idx].IsFavorite = !next[idx].IsFavorite

	if err := s.snaps.Save(ctx, next); err != nil {
		return s.poems[idx], true, err
	}

	s.poems = next
	return next[idx], true, nil
}

func (s *Store) indexLocked(id string) int {
	for i := range s.poems {
		if s.poems[i].ID == id {
			return i
		}
	}
	return -1
}

// List returns a copy of the collection, newest first.
func (s *Store) List() []domain.Poem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.Clone(s.poems)
}

// Get retrieves a poem by id.
func (s *Store) Get(id string) (domain.Poem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if idx := s.indexLocked(id); idx >= 0 {
		return s.poems[idx], true
	}
	return domain.Poem{}, false
}

// Count returns the number of poems in the collection.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.poems)
}

// FavoriteCount returns how many poems are marked favorite.
func (s *Store) FavoriteCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, p := range s.poems {
		if p.IsFavorite {
			n++
		}
	}
	return n
}

// Authors returns the author option set for the current collection.
func (s *Store) Authors() []string {
	return domain.Authors(s.List())
}

// Categories returns the category option set for the current collection.
func (s *Store) Categories() []string {
	return domain.Categories(s.List())
}

package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/poetry/internal/domain"
	"github.com/MrSnakeDoc/poetry/internal/logger"
	"github.com/MrSnakeDoc/poetry/internal/storage"
)

// fakeSnapshots records every write and can be told to fail.
type fakeSnapshots struct {
	mu      sync.Mutex
	stored  []domain.Poem
	present bool
	saves   int
	loadErr error
	saveErr error
}

func (f *fakeSnapshots) Save(_ context.Context, poems []domain.Poem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.stored = domain.Clone(poems)
	f.present = true
	return nil
}

func (f *fakeSnapshots) Load(context.Context) ([]domain.Poem, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, false, f.loadErr
	}
	return domain.Clone(f.stored), f.present, nil
}

func (f *fakeSnapshots) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves
}

func seedPoems() []domain.Poem {
	return []domain.Poem{
		{ID: "s1", Author: "Rumi", Title: "Rise as Light", Category: "Motivation", Body: "Wake with the dawn"},
		{ID: "s2", Author: "John Keats", Title: "Autumn Room", Category: "Life", Body: "I stitch amber afternoons"},
	}
}

func emptyStore(t *testing.T) (*Store, *fakeSnapshots) {
	t.Helper()
	snaps := &fakeSnapshots{stored: []domain.Poem{}, present: true}
	s := New(snaps, logger.Nop())
	_, err := s.Initialize(context.Background(), seedPoems())
	require.NoError(t, err)
	return s, snaps
}

func TestInitializeSeedsWhenAbsent(t *testing.T) {
	snaps := &fakeSnapshots{}
	s := New(snaps, logger.Nop())

	src, err := s.Initialize(context.Background(), seedPoems())
	require.NoError(t, err)

	assert.Equal(t, SourceSeed, src)
	assert.Equal(t, seedPoems(), s.List())
	assert.Equal(t, 1, snaps.saveCount(), "seed must be persisted immediately")
	assert.Equal(t, seedPoems(), snaps.stored)
}

func TestInitializeAdoptsStoredAsIs(t *testing.T) {
	stored := []domain.Poem{
		{ID: "x", Author: "", Title: "no author", Category: "C", Body: "B"},
		{ID: "x", Author: "A", Title: "dup id", Category: "C", Body: "B"},
	}
	snaps := &fakeSnapshots{stored: stored, present: true}
	s := New(snaps, logger.Nop())

	src, err := s.Initialize(context.Background(), seedPoems())
	require.NoError(t, err)

	assert.Equal(t, SourceStorage, src)
	assert.Equal(t, stored, s.List())
	assert.Zero(t, snaps.saveCount(), "adopting storage must not rewrite it")
}

func TestInitializeValidateOnLoad(t *testing.T) {
	stored := []domain.Poem{
		{ID: "1", Author: "A", Title: "ok", Category: "C", Body: "B"},
		{ID: "2", Author: " ", Title: "blank author", Category: "C", Body: "B"},
		{ID: "1", Author: "A", Title: "dup id", Category: "C", Body: "B"},
		{ID: "", Author: "A", Title: "no id", Category: "C", Body: "B"},
	}
	snaps := &fakeSnapshots{stored: stored, present: true}
	s := New(snaps, logger.Nop(), WithValidateOnLoad(true))

	_, err := s.Initialize(context.Background(), nil)
	require.NoError(t, err)

	got := s.List()
	require.Len(t, got, 1)
	assert.Equal(t, "ok", got[0].Title)
}

func TestInitializeLoadError(t *testing.T) {
	boom := errors.New("redis down")
	s := New(&fakeSnapshots{loadErr: boom}, logger.Nop())

	_, err := s.Initialize(context.Background(), seedPoems())
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, s.Count())
}

func TestInitializeSeedWriteFailureKeepsSeed(t *testing.T) {
	boom := errors.New("disk full")
	s := New(&fakeSnapshots{saveErr: boom}, logger.Nop())

	src, err := s.Initialize(context.Background(), seedPoems())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, SourceSeed, src)
	assert.Equal(t, 2, s.Count())
}

func TestInitializeFromSkipsSeedWhenStored(t *testing.T) {
	snaps := &fakeSnapshots{stored: seedPoems()[:1], present: true}
	s := New(snaps, logger.Nop())

	called := false
	src, err := s.InitializeFrom(context.Background(), func() ([]domain.Poem, error) {
		called = true
		return nil, errors.New("unreadable seed file")
	})
	require.NoError(t, err)

	assert.Equal(t, SourceStorage, src)
	assert.False(t, called, "seed must not be built when storage has poems")
	assert.Equal(t, 1, s.Count())
}

func TestInitializeFromSeedError(t *testing.T) {
	boom := errors.New("unreadable seed file")
	snaps := &fakeSnapshots{}
	s := New(snaps, logger.Nop())

	src, err := s.InitializeFrom(context.Background(), func() ([]domain.Poem, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, src)
	assert.Zero(t, s.Count())
	assert.Zero(t, snaps.saveCount())
}

func TestInitializeFallsBackOnCorruptedStorage(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	require.NoError(t, kv.Set(ctx, storage.KeyData, "{not json"))

	s := New(storage.NewSnapshots(kv, logger.Nop()), logger.Nop())
	src, err := s.Initialize(ctx, seedPoems())
	require.NoError(t, err)

	assert.Equal(t, SourceSeed, src)
	assert.Equal(t, seedPoems(), s.List())

	raw, err := kv.Get(ctx, storage.KeyData)
	require.NoError(t, err)
	assert.Contains(t, raw, "Rise as Light", "corrupted blob is replaced by the seed")
}

func TestAddPrependsAndPersists(t *testing.T) {
	s, snaps := emptyStore(t)

	p, err := s.Add(context.Background(), "A", "Hello World", "Life", "line1\nline2")
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.False(t, p.IsFavorite)
	assert.Equal(t, "line1\nline2", p.Body)

	q, err := s.Add(context.Background(), "B", "Second", "Love", "body")
	require.NoError(t, err)

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, q.ID, list[0].ID, "newest first")
	assert.Equal(t, p.ID, list[1].ID)
	assert.Equal(t, 2, snaps.saveCount())
	assert.Equal(t, list, snaps.stored)
}

func TestAddThenFilter(t *testing.T) {
	s, _ := emptyStore(t)

	_, err := s.Add(context.Background(), "A", "Hello World", "Life", "line1\nline2")
	require.NoError(t, err)

	got := domain.Apply(s.List(), domain.Criteria{Query: "hello"})
	require.Len(t, got, 1)
	assert.Equal(t, "Hello World", got[0].Title)
}

func TestAddRejectsBlankFields(t *testing.T) {
	s, snaps := emptyStore(t)
	before := s.List()

	_, err := s.Add(context.Background(), "", "T", "Love", "body")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = s.Add(context.Background(), "A", "T", "Love", "   \n")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Equal(t, before, s.List())
	assert.Zero(t, snaps.saveCount(), "rejected input must not write")
}

func TestAddRollsBackOnWriteFailure(t *testing.T) {
	s, snaps := emptyStore(t)
	snaps.saveErr = errors.New("quota exceeded")

	_, err := s.Add(context.Background(), "A", "T", "Love", "body")
	assert.ErrorIs(t, err, snaps.saveErr)
	assert.Zero(t, s.Count())
}

func TestAddSkipsIssuedIDs(t *testing.T) {
	ids := []string{"s1", "s1", "", "fresh"}
	next := 0
	gen := func() string {
		id := ids[next]
		next++
		return id
	}

	snaps := &fakeSnapshots{}
	s := New(snaps, logger.Nop(), WithIDGenerator(gen))
	_, err := s.Initialize(context.Background(), seedPoems())
	require.NoError(t, err)

	p, err := s.Add(context.Background(), "A", "T", "C", "B")
	require.NoError(t, err)
	assert.Equal(t, "fresh", p.ID)
}

func TestAddUniqueIDs(t *testing.T) {
	s, _ := emptyStore(t)
	ctx := context.Background()

	const n = 2000
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		p, err := s.Add(ctx, "A", fmt.Sprintf("T%d", i), "C", "B")
		require.NoError(t, err)
		_, dup := seen[p.ID]
		require.False(t, dup, "duplicate id %s", p.ID)
		seen[p.ID] = struct{}{}
	}
}

func TestToggleFavorite(t *testing.T) {
	s, snaps := emptyStore(t)
	ctx := context.Background()
	p, err := s.Add(ctx, "A", "T", "C", "B")
	require.NoError(t, err)

	got, found, err := s.ToggleFavorite(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, got.IsFavorite)
	assert.True(t, snaps.stored[0].IsFavorite)

	got, _, err = s.ToggleFavorite(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, got.IsFavorite, "toggling twice restores the original value")

	stored, ok := s.Get(p.ID)
	require.True(t, ok)
	assert.False(t, stored.IsFavorite)
	assert.Equal(t, 3, snaps.saveCount())
}

func TestToggleFavoriteMiss(t *testing.T) {
	s, snaps := emptyStore(t)

	_, found, err := s.ToggleFavorite(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Zero(t, snaps.saveCount())
}

func TestToggleFavoriteRollsBackOnWriteFailure(t *testing.T) {
	s, snaps := emptyStore(t)
	ctx := context.Background()
	p, err := s.Add(ctx, "A", "T", "C", "B")
	require.NoError(t, err)

	snaps.saveErr = errors.New("quota exceeded")
	_, found, err := s.ToggleFavorite(ctx, p.ID)
	assert.True(t, found)
	assert.Error(t, err)

	stored, _ := s.Get(p.ID)
	assert.False(t, stored.IsFavorite)
}

func TestListReturnsCopy(t *testing.T) {
	snaps := &fakeSnapshots{}
	s := New(snaps, logger.Nop())
	_, err := s.Initialize(context.Background(), seedPoems())
	require.NoError(t, err)

	list := s.List()
	list[0].Title = "mutated"
	list[0].IsFavorite = true

	again := s.List()
	assert.Equal(t, "Rise as Light", again[0].Title)
	assert.False(t, again[0].IsFavorite)
}

func TestFacetsAndCounts(t *testing.T) {
	snaps := &fakeSnapshots{}
	s := New(snaps, logger.Nop())
	_, err := s.Initialize(context.Background(), seedPoems())
	require.NoError(t, err)

	_, _, err = s.ToggleFavorite(context.Background(), "s2")
	require.NoError(t, err)

	assert.Equal(t, []string{"John Keats", "Rumi"}, s.Authors())
	assert.Equal(t, []string{"Life", "Motivation"}, s.Categories())
	assert.Equal(t, 2, s.Count())
	assert.Equal(t, 1, s.FavoriteCount())
}

func TestConcurrentMutations(t *testing.T) {
	s, _ := emptyStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, _ = s.Add(ctx, "A", fmt.Sprintf("T%d", i), "C", "B")
		}(i)
		go func() {
			defer wg.Done()
			_ = s.List()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, s.Count())
}

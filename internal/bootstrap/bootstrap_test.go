package bootstrap

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/poetry/internal/catalog"
	"github.com/MrSnakeDoc/poetry/internal/domain"
	"github.com/MrSnakeDoc/poetry/internal/logger"
	"github.com/MrSnakeDoc/poetry/internal/storage"
	"github.com/MrSnakeDoc/poetry/internal/view"
)

type recorder struct{ views []view.View }

func (r *recorder) Render(v view.View) error {
	r.views = append(r.views, v)
	return nil
}

// readOnlyKV serves reads from an in-memory map and refuses every write.
type readOnlyKV struct{ *storage.MemoryKV }

func (readOnlyKV) Set(context.Context, string, string) error { return errors.New("disk full") }

func seed() ([]domain.Poem, error) {
	return []domain.Poem{
		{ID: "s1", Author: "Rumi", Title: "Rise as Light", Category: "Motivation", Body: "Wake"},
		{ID: "s2", Author: "Keats", Title: "Autumn", Category: "Life", Body: "amber"},
	}, nil
}

func setup(kv storage.KV) (*Bootstrap, *catalog.Store) {
	store := catalog.New(storage.NewSnapshots(kv, logger.Nop()), logger.Nop())
	return New(store, storage.NewPreferences(kv), seed, logger.Nop()), store
}

func TestRunSeedsEmptyStorage(t *testing.T) {
	kv := storage.NewMemoryKV()
	b, store := setup(kv)
	rec := &recorder{}

	res, err := b.Run(context.Background(), view.New(store, rec))
	require.NoError(t, err)

	assert.Equal(t, catalog.SourceSeed, res.Source)
	assert.Equal(t, domain.ThemeLight, res.Theme)
	assert.Equal(t, []string{"Keats", "Rumi"}, res.Authors)
	assert.Equal(t, 2, res.Count)

	raw, err := kv.Get(context.Background(), storage.KeyData)
	require.NoError(t, err)
	assert.Contains(t, raw, `"Rise as Light"`)

	require.Len(t, rec.views, 1)
	assert.Len(t, rec.views[0].Poems, 2)
}

func TestRunAdoptsStoredPoemsAndTheme(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	require.NoError(t, kv.Set(ctx, storage.KeyData, `[{"id":"x","author":"Oliver","title":"Geese","category":"Nature","body":"soft animal","isFavorite":true}]`))
	require.NoError(t, kv.Set(ctx, storage.KeyTheme, "dark"))

	b, store := setup(kv)
	rec := &recorder{}

	res, err := b.Run(ctx, view.New(store, rec))
	require.NoError(t, err)

	assert.Equal(t, catalog.SourceStorage, res.Source)
	assert.Equal(t, domain.ThemeDark, res.Theme)
	assert.Equal(t, []string{"Oliver"}, res.Authors)
	require.Len(t, rec.views, 1)
	assert.Equal(t, domain.ThemeDark, rec.views[0].Theme)
}

func TestRunFallsBackOnCorruptedStorage(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	require.NoError(t, kv.Set(ctx, storage.KeyData, "{not json"))

	b, _ := setup(kv)
	res, err := b.Run(ctx, nil)
	require.NoError(t, err)

	assert.Equal(t, catalog.SourceSeed, res.Source)
	assert.Equal(t, 2, res.Count)
}

func TestRunToleratesSeedWriteFailure(t *testing.T) {
	b, store := setup(readOnlyKV{storage.NewMemoryKV()})

	res, err := b.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, catalog.SourceSeed, res.Source)
	assert.Equal(t, 2, store.Count())
}

func TestRunSeedError(t *testing.T) {
	store := catalog.New(storage.NewSnapshots(storage.NewMemoryKV(), logger.Nop()), logger.Nop())
	b := New(store, storage.NewPreferences(storage.NewMemoryKV()), func() ([]domain.Poem, error) {
		return nil, errors.New("bad yaml")
	}, logger.Nop())

	_, err := b.Run(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad yaml")
}

func TestRunIgnoresBrokenSeedWhenStored(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	require.NoError(t, kv.Set(ctx, storage.KeyData, `[{"id":"x","author":"Oliver","title":"Geese","category":"Nature","body":"soft animal"}]`))

	store := catalog.New(storage.NewSnapshots(kv, logger.Nop()), logger.Nop())
	b := New(store, storage.NewPreferences(kv), func() ([]domain.Poem, error) {
		return nil, errors.New("bad yaml")
	}, logger.Nop())

	res, err := b.Run(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, catalog.SourceStorage, res.Source)
	assert.Equal(t, 1, res.Count)
}

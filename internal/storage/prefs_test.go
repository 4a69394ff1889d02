package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/poetry/internal/domain"
)

func TestPreferencesTheme(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	prefs := NewPreferences(kv)

	theme, err := prefs.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeLight, theme, "absent preference defaults to light")

	next, err := prefs.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, next)

	raw, err := kv.Get(ctx, KeyTheme)
	require.NoError(t, err)
	assert.Equal(t, "dark", raw)

	_, err = kv.Get(ctx, KeyData)
	assert.ErrorIs(t, err, ErrKeyNotFound, "theme must not touch the data key")

	require.NoError(t, prefs.SetTheme(ctx, domain.ThemeLight))
	theme, err = prefs.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeLight, theme)
}

func TestPreferencesUnknownValue(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(ctx, KeyTheme, "sepia"))

	theme, err := NewPreferences(kv).Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeLight, theme)
}

func TestPreferencesBackendError(t *testing.T) {
	prefs := NewPreferences(brokenKV{})

	_, err := prefs.ToggleTheme(context.Background())
	assert.ErrorIs(t, err, errBackend)
}

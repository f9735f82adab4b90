package ledger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_LoadMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "history.json"))

	led := store.Load()
	require.NotNil(t, led)
	assert.Equal(t, 0, led.Len())
}

func TestStore_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte("{ not json"), 0o600))

	led := NewStore(path).Load()
	require.NotNil(t, led)
	assert.Equal(t, 0, led.Len())
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	store := NewStore(path)

	led := New()
	led.Merge("11", jan25)
	led.Merge("6", jan25)
	led.Meta.LastUpdateID = 42
	require.NoError(t, store.Save(led))

	restored := store.Load()
	assert.Equal(t, []string{"6", "11"}, restored.Paid(jan25))
	assert.Equal(t, 42, restored.Meta.LastUpdateID)
}

func TestStore_SaveIsAdditiveAcrossRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	store := NewStore(path)

	first := New()
	first.Merge("6", jan25)
	first.Merge("7", feb25)
	require.NoError(t, store.Save(first))

	// A later run touches only January; February must survive the save.
	second := store.Load()
	second.Merge("11", jan25)
	require.NoError(t, store.Save(second))

	final := store.Load()
	assert.Equal(t, []string{"6", "11"}, final.Paid(jan25))
	assert.Equal(t, []string{"7"}, final.Paid(feb25))
}

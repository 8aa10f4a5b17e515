package flatfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/pharmatrack/pharmatrack/internal/domain/inventory"
)

func TestLoadMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.txt"))

	items, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "inventory.txt")
	store := NewStore(path)

	saved := []*domain.Item{
		{ProductID: 1, Name: "Paracetamol", Quantity: 100, Price: 5.0, Expiry: "01012030"},
		{ProductID: 3, Name: "Ibuprofen", Quantity: 40, Price: 3.25, Expiry: "15062031"},
	}
	require.NoError(t, store.Save(ctx, saved))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, saved[0], loaded[0])
	assert.Equal(t, saved[1], loaded[1])
}

func TestSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "inventory.txt")
	store := NewStore(path)

	require.NoError(t, store.Save(ctx, []*domain.Item{
		{ProductID: 1, Name: "Old", Quantity: 1, Price: 1, Expiry: "01012030"},
		{ProductID: 2, Name: "Stale", Quantity: 2, Price: 2, Expiry: "01012030"},
	}))
	require.NoError(t, store.Save(ctx, []*domain.Item{
		{ProductID: 5, Name: "Fresh", Quantity: 9, Price: 4.5, Expiry: "01012032"},
	}))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, int64(5), loaded[0].ProductID)
	assert.Equal(t, "Fresh", loaded[0].Name)
}

func TestLoadSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.txt")
	require.NoError(t, os.WriteFile(path, []byte("1 Paracetamol 100 5 01012030\n\n2 Ibuprofen 40 3.25 15062031\n"), 0o644))

	loaded, err := NewStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, loaded, 2)
}

func TestLoadRejectsMalformedLines(t *testing.T) {
	cases := map[string]string{
		"missing fields": "1 Paracetamol 100\n",
		"bad id":         "zero Paracetamol 100 5 01012030\n",
		"negative id":    "-1 Paracetamol 100 5 01012030\n",
		"bad quantity":   "1 Paracetamol many 5 01012030\n",
		"bad price":      "1 Paracetamol 100 free 01012030\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "inventory.txt")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

			_, err := NewStore(path).Load(context.Background())
			assert.Error(t, err)
		})
	}
}

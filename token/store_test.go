package token

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	dir := t.TempDir()

	t.Run("load and save round trip", func(t *testing.T) {
		path := filepath.Join(dir, "tokens.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"ETH": "0xAAA", "ZRX": "0xBBB"}`), 0o644))
		store := NewStore(path)

		tokens, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, AddressMap{"ETH": "0xAAA", "ZRX": "0xBBB"}, tokens)

		tokens["DAI"] = "0xCCC"
		require.NoError(t, store.Save(tokens))

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.JSONEq(t, `{"DAI": "0xCCC", "ETH": "0xAAA", "ZRX": "0xBBB"}`, string(raw))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewStore(filepath.Join(dir, "missing.json")).Load()
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"ETH": 1`), 0o644))
		_, err := NewStore(path).Load()
		assert.Error(t, err)
	})

	t.Run("null file loads as empty", func(t *testing.T) {
		path := filepath.Join(dir, "null.json")
		require.NoError(t, os.WriteFile(path, []byte(`null`), 0o644))
		tokens, err := NewStore(path).Load()
		require.NoError(t, err)
		assert.NotNil(t, tokens)
		assert.Empty(t, tokens)
	})
}

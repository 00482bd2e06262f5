package artifacts

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	document := json.RawMessage(`{"nics":{"ethernet1/1":"up"},"content_version":"8421-7321"}`)

	id, err := store.Save("fw_snapshot", document)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "fw_snapshot-"))

	loaded, err := store.Load(id)
	require.NoError(t, err)
	assert.JSONEq(t, string(document), string(loaded))
}

func TestStoreSaveGeneratesUniqueIDs(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.Save("fw_snapshot", json.RawMessage(`{}`))
	require.NoError(t, err)
	second, err := store.Save("fw_snapshot", json.RawMessage(`{}`))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestStoreLoadMissingEntry(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load("fw_snapshot-deadbeef")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry fw_snapshot-deadbeef not found")
}

func TestStoreLoadDirectPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "exported.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"routes":[]}`), 0644))

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	loaded, err := store.Load(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"routes":[]}`, string(loaded))
}

func TestStoreLoadRejectsCorruptDocument(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("not json"), 0644))

	_, err = store.Load("bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid JSON document")
}

func TestStoreSavePrettyPrints(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	id, err := store.Save("fw_snapshot", json.RawMessage(`{"a":1}`))
	require.NoError(t, err)

	data, err := os.ReadFile(store.Path(id))
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"a\": 1\n}", string(data))
}

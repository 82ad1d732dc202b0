package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStoreSetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("store.department", "legal"))
	require.NoError(t, store.Set("store.search_limit", 20))
	require.NoError(t, store.Set("watch.enabled", true))
	require.NoError(t, store.Set("watch.tags", []string{"inbox", "auto"}))

	assert.Equal(t, "legal", store.GetString("store.department"))
	assert.Equal(t, 20, store.GetInt("store.search_limit"))
	assert.True(t, store.GetBool("watch.enabled"))
	assert.Equal(t, []string{"inbox", "auto"}, store.GetStringSlice("watch.tags"))
}

func TestConfigStoreZeroValues(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "", store.GetString("missing"))
	assert.Equal(t, 0, store.GetInt("missing"))
	assert.False(t, store.GetBool("missing"))
	assert.Nil(t, store.GetStringSlice("missing"))

	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStorePersists(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("store.department", "legal"))
	require.NoError(t, store.Set("store.search_limit", 20))

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "legal", reopened.GetString("store.department"))
	assert.Equal(t, 20, reopened.GetInt("store.search_limit"))
}

func TestConfigStoreFlattensNestedTables(t *testing.T) {
	dir := t.TempDir()
	content := "[llm]\nprovider = \"openai\"\nmodel = \"gpt-4o-mini\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "openai", store.GetString("llm.provider"))
	assert.Equal(t, "gpt-4o-mini", store.GetString("llm.model"))
}

func TestConfigStoreRestrictedPermissions(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("llm.api_key", "secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

package cache_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foursquare/fsltool/cache"
)

func TestStore_PutGetSaveReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fsltool-cache.json.gz")

	s, err := cache.Load(path, nil)
	require.NoError(t, err)

	key := cache.Key([]byte("function a() { 1 }"))
	_, ok := s.Get(key)
	require.False(t, ok)

	s.Put(key, []byte(`{"a":"a_deadbeef"}`))
	require.NoError(t, s.Save())

	reloaded, err := cache.Load(path, nil)
	require.NoError(t, err)
	payload, ok := reloaded.Get(key)
	require.True(t, ok)
	require.JSONEq(t, `{"a":"a_deadbeef"}`, string(payload))
}

func TestStore_MissingFileStartsEmpty(t *testing.T) {
	s, err := cache.Load(filepath.Join(t.TempDir(), "does-not-exist.json"), nil)
	require.NoError(t, err)
	_, ok := s.Get("anything")
	require.False(t, ok)
}

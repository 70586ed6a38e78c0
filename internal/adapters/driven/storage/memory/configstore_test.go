package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.values)
	assert.Equal(t, ":memory:", store.Path())
}

func TestNewConfigStore_Seeded(t *testing.T) {
	store := NewConfigStore(
		map[string]any{"translation.provider": "google"},
		map[string]any{"translation.provider": "ollama", "repository.kind": "local"},
	)

	assert.Equal(t, "ollama", store.GetString("translation.provider"))
	assert.Equal(t, "local", store.GetString("repository.kind"))
}

func TestConfigStore_Set_Update(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("key1", "original"))
	require.NoError(t, store.Set("key1", "updated"))

	val, ok := store.Get("key1")
	assert.True(t, ok)
	assert.Equal(t, "updated", val)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"str":   "value",
		"int":   42,
		"int64": int64(7),
		"float": 2.5,
		"bool":  true,
		"strs":  []string{"a", "b"},
		"anys":  []any{"x", 1, "y"},
		"wrong": struct{}{},
	})

	assert.Equal(t, "value", store.GetString("str"))
	assert.Equal(t, "", store.GetString("int"))
	assert.Equal(t, 42, store.GetInt("int"))
	assert.Equal(t, 7, store.GetInt("int64"))
	assert.Equal(t, 2, store.GetInt("float"))
	assert.Equal(t, 2.5, store.GetFloat("float"))
	assert.Equal(t, 42.0, store.GetFloat("int"))
	assert.True(t, store.GetBool("bool"))
	assert.False(t, store.GetBool("str"))
	assert.Equal(t, []string{"a", "b"}, store.GetStringSlice("strs"))
	assert.Equal(t, []string{"x", "y"}, store.GetStringSlice("anys"))
	assert.Nil(t, store.GetStringSlice("wrong"))
	assert.Nil(t, store.GetStringSlice("missing"))
	assert.Zero(t, store.GetFloat("missing"))
}

func TestConfigStore_SaveLoadNoop(t *testing.T) {
	store := NewConfigStore(map[string]any{"k": "v"})

	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, "v", store.GetString("k"))
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := NewConfigStore()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("counter", n)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("counter")
		}()
	}
	wg.Wait()
}

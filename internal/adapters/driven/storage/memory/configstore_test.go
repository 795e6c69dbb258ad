package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetGetDelete(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("auth.token", "abc"))
	assert.Equal(t, "abc", store.GetString("auth.token"))

	require.NoError(t, store.Delete("auth.token"))
	_, ok := store.Get("auth.token")
	assert.False(t, ok)

	require.NoError(t, store.Delete("missing"))
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStoreWith(map[string]any{
		"a.int":    int64(7),
		"a.float":  float64(3),
		"a.bool":   true,
		"a.slice":  []any{"x", 1, "y"},
		"a.string": "s",
	})

	assert.Equal(t, 7, store.GetInt("a.int"))
	assert.Equal(t, 3, store.GetInt("a.float"))
	assert.Equal(t, 0, store.GetInt("a.string"))
	assert.True(t, store.GetBool("a.bool"))
	assert.False(t, store.GetBool("missing"))
	assert.Equal(t, []string{"x", "y"}, store.GetStringSlice("a.slice"))
	assert.Nil(t, store.GetStringSlice("a.int"))
	assert.Equal(t, "", store.GetString("a.int"))
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_SeedIsCopied(t *testing.T) {
	seed := map[string]any{"k": "v"}
	store := NewConfigStoreWith(seed)
	seed["k"] = "changed"

	assert.Equal(t, "v", store.GetString("k"))
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := NewConfigStore()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("k", n)
			_ = store.GetInt("k")
		}(i)
	}
	wg.Wait()
}

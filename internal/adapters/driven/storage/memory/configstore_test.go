package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("llm.provider", "ollama"))

	val, ok := store.Get("llm.provider")
	assert.True(t, ok)
	assert.Equal(t, "ollama", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("retrieval.top_k", int64(5)))
	require.NoError(t, store.Set("server.ask_rate", 0.5))
	require.NoError(t, store.Set("server.addr", ":8080"))

	assert.Equal(t, 5, store.GetInt("retrieval.top_k"))
	assert.Equal(t, 5.0, store.GetFloat("retrieval.top_k"))
	assert.Equal(t, 0.5, store.GetFloat("server.ask_rate"))
	assert.Equal(t, ":8080", store.GetString("server.addr"))

	// Mistyped and missing keys fall back to zero values.
	assert.Equal(t, "", store.GetString("retrieval.top_k"))
	assert.Equal(t, 0, store.GetInt("server.addr"))
	assert.Equal(t, 0.0, store.GetFloat("missing"))
}

func TestConfigStore_Path(t *testing.T) {
	assert.Equal(t, ":memory:", NewConfigStore().Path())
	assert.NoError(t, NewConfigStore().Load())
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("k", n)
			_ = store.GetInt("k")
		}(i)
	}
	wg.Wait()

	_, ok := store.Get("k")
	assert.True(t, ok)
}

package testing

import (
	"fmt"
	"testing"

	"github.com/ValentinKolb/jDB/lib/backend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory creates a new, empty backend for a single test.
type Factory func(t *testing.T) backend.IBackend

// RunBackendTests runs the conformance suite for a backend implementation.
func RunBackendTests(t *testing.T, name string, factory Factory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Set&Get", func(t *testing.T) {
			testSetGet(t, factory(t))
		})

		t.Run("Missing", func(t *testing.T) {
			testMissing(t, factory(t))
		})

		t.Run("Overwrite", func(t *testing.T) {
			testOverwrite(t, factory(t))
		})

		t.Run("Delete", func(t *testing.T) {
			testDelete(t, factory(t))
		})

		t.Run("Keys", func(t *testing.T) {
			testKeys(t, factory(t))
		})

		t.Run("EmptyValue", func(t *testing.T) {
			testEmptyValue(t, factory(t))
		})

		t.Run("ValueIsolation", func(t *testing.T) {
			testValueIsolation(t, factory(t))
		})

		t.Run("SpecialKeys", func(t *testing.T) {
			testSpecialKeys(t, factory(t))
		})

		t.Run("Closed", func(t *testing.T) {
			testClosed(t, factory(t))
		})
	})
}

// RunPersistenceTests checks that values survive closing and reopening a backend.
// open must return a backend for the same location on every call.
func RunPersistenceTests(t *testing.T, name string, open func() backend.IBackend) {
	t.Run(name+"/Reopen", func(t *testing.T) {
		b := open()
		require.NoError(t, b.Set("db", []byte(`{"a":{}}`)))
		require.NoError(t, b.Set("logs.txt", []byte(`[]`)))
		require.NoError(t, b.Delete("logs.txt"))
		require.NoError(t, b.Close())

		b = open()
		defer b.Close()
		value, ok, err := b.Get("db")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte(`{"a":{}}`), value)

		keys, err := b.Keys()
		require.NoError(t, err)
		assert.Equal(t, []string{"db"}, keys)
	})
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testSetGet(t *testing.T, b backend.IBackend) {
	defer b.Close()
	require.NoError(t, b.Set("key", []byte("value")))

	value, ok, err := b.Get("key")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("value"), value)
}

func testMissing(t *testing.T, b backend.IBackend) {
	defer b.Close()
	value, ok, err := b.Get("nope")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, value)
}

func testOverwrite(t *testing.T, b backend.IBackend) {
	defer b.Close()
	require.NoError(t, b.Set("key", []byte("a much longer first value")))
	require.NoError(t, b.Set("key", []byte("short")))

	value, ok, err := b.Get("key")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("short"), value)
}

func testDelete(t *testing.T, b backend.IBackend) {
	defer b.Close()
	require.NoError(t, b.Set("key", []byte("value")))
	require.NoError(t, b.Delete("key"))

	_, ok, err := b.Get("key")
	require.NoError(t, err)
	assert.False(t, ok)

	// deleting an absent key is fine
	require.NoError(t, b.Delete("key"))
}

func testKeys(t *testing.T, b backend.IBackend) {
	defer b.Close()
	keys, err := b.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)

	for i := 9; i >= 0; i-- {
		require.NoError(t, b.Set(fmt.Sprintf("key-%d", i), []byte{byte(i)}))
	}
	require.NoError(t, b.Delete("key-5"))

	keys, err = b.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"key-0", "key-1", "key-2", "key-3", "key-4",
		"key-6", "key-7", "key-8", "key-9",
	}, keys)
}

func testEmptyValue(t *testing.T, b backend.IBackend) {
	defer b.Close()
	require.NoError(t, b.Set("empty", []byte{}))
	require.NoError(t, b.Set("nil", nil))

	for _, key := range []string{"empty", "nil"} {
		value, ok, err := b.Get(key)
		require.NoError(t, err)
		assert.True(t, ok, key)
		assert.Len(t, value, 0, key)
	}
}

func testValueIsolation(t *testing.T, b backend.IBackend) {
	defer b.Close()
	input := []byte("value")
	require.NoError(t, b.Set("key", input))
	input[0] = 'X'

	value, _, err := b.Get("key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), value)

	value[0] = 'Y'
	again, _, err := b.Get("key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), again)
}

func testSpecialKeys(t *testing.T, b backend.IBackend) {
	defer b.Close()
	keys := []string{"", "..", "a/b", "logs.txt", "with space", "ümlaut", "%2F"}
	for i, key := range keys {
		require.NoError(t, b.Set(key, []byte{byte(i)}), key)
	}
	for i, key := range keys {
		value, ok, err := b.Get(key)
		require.NoError(t, err, key)
		assert.True(t, ok, key)
		assert.Equal(t, []byte{byte(i)}, value, key)
	}

	listed, err := b.Keys()
	require.NoError(t, err)
	assert.ElementsMatch(t, keys, listed)
}

func testClosed(t *testing.T, b backend.IBackend) {
	require.NoError(t, b.Set("key", []byte("value")))
	require.NoError(t, b.Close())

	_, _, err := b.Get("key")
	assert.ErrorIs(t, err, backend.ErrClosed)
	assert.ErrorIs(t, b.Set("key", nil), backend.ErrClosed)
	assert.ErrorIs(t, b.Delete("key"), backend.ErrClosed)
	_, err = b.Keys()
	assert.ErrorIs(t, err, backend.ErrClosed)
}

package persist

import (
	"errors"
	"testing"

	"github.com/ValentinKolb/jDB/lib/backend"
	"github.com/ValentinKolb/jDB/lib/backend/memory"
	"github.com/ValentinKolb/jDB/lib/cipher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAbsent(t *testing.T) {
	slot := NewSlot(memory.NewMemoryBackend(), Options{})
	blob, ok, err := slot.Read()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, blob)
	assert.Equal(t, DefaultKey, slot.Key())
}

func TestWriteRead(t *testing.T) {
	b := memory.NewMemoryBackend()
	slot := NewSlot(b, Options{Key: "main"})
	require.NoError(t, slot.Write([]byte(`{"a":{}}`)))

	blob, ok, err := slot.Read()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`{"a":{}}`), blob)

	raw, ok, err := b.Get("main")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`{"a":{}}`), raw)
}

func TestFallbackKeys(t *testing.T) {
	b := memory.NewMemoryBackend()
	require.NoError(t, b.Set("legacy", []byte(`{"old":{}}`)))
	require.NoError(t, b.Set("empty", []byte{}))

	slot := NewSlot(b, Options{Key: "custom", FallbackKeys: []string{"empty", "legacy"}})
	blob, ok, err := slot.Read()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`{"old":{}}`), blob)

	// once written, the primary key wins
	require.NoError(t, slot.Write([]byte(`{"new":{}}`)))
	blob, _, err = slot.Read()
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"new":{}}`), blob)

	legacy, _, err := b.Get("legacy")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"old":{}}`), legacy)
}

func TestEncryptedSlot(t *testing.T) {
	b := memory.NewMemoryBackend()
	slot := NewSlot(b, Options{Cipher: cipher.NewPassphrase("secret")})
	require.NoError(t, slot.Write([]byte(`{"sales":{}}`)))

	raw, _, err := b.Get(DefaultKey)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "sales")

	blob, ok, err := slot.Read()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`{"sales":{}}`), blob)

	plain := NewSlot(b, Options{})
	blob, ok, err = plain.Read()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotEqual(t, []byte(`{"sales":{}}`), blob)

	wrong := NewSlot(b, Options{Cipher: cipher.NewPassphrase("wrong")})
	_, _, err = wrong.Read()
	assert.ErrorIs(t, err, cipher.ErrAuthentication)
}

func TestUnsealedBlobWithCipher(t *testing.T) {
	b := memory.NewMemoryBackend()
	require.NoError(t, b.Set(DefaultKey, []byte(`{}`)))

	slot := NewSlot(b, Options{Cipher: cipher.NewPassphrase("secret")})
	_, _, err := slot.Read()
	assert.ErrorIs(t, err, cipher.ErrNotSealed)
}

func TestBackendErrors(t *testing.T) {
	b := memory.NewMemoryBackend()
	require.NoError(t, b.Close())

	slot := NewSlot(b, Options{})
	_, _, err := slot.Read()
	assert.True(t, errors.Is(err, backend.ErrClosed))
	assert.ErrorIs(t, slot.Write([]byte("{}")), backend.ErrClosed)
}

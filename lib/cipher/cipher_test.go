package cipher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lowCost keeps scrypt fast in tests
const lowCost = 1 << 10

func TestPlainPassesThrough(t *testing.T) {
	c := NewPlain()
	sealed, err := c.Seal([]byte(`{"a":{}}`))
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":{}}`), sealed)

	opened, err := c.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":{}}`), opened)
}

func TestPassphraseRoundTrip(t *testing.T) {
	c := newPassphrase("secret", lowCost)
	plain := []byte(`{"sales":{"orders":{"id":[[0,1]]}}}`)

	sealed, err := c.Seal(plain)
	require.NoError(t, err)
	assert.NotContains(t, string(sealed), "sales")

	opened, err := c.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, plain, opened)
}

func TestPassphraseEmptyPlaintext(t *testing.T) {
	c := newPassphrase("secret", lowCost)
	sealed, err := c.Seal(nil)
	require.NoError(t, err)

	opened, err := c.Open(sealed)
	require.NoError(t, err)
	assert.Empty(t, opened)
}

func TestPassphraseNoncesDiffer(t *testing.T) {
	c := newPassphrase("secret", lowCost)
	a, err := c.Seal([]byte("same"))
	require.NoError(t, err)
	b, err := c.Seal([]byte("same"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestPassphraseOtherInstanceSameKey(t *testing.T) {
	sealed, err := newPassphrase("secret", lowCost).Seal([]byte("data"))
	require.NoError(t, err)

	opened, err := newPassphrase("secret", lowCost).Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), opened)
}

func TestPassphraseWrongKey(t *testing.T) {
	sealed, err := newPassphrase("secret", lowCost).Seal([]byte("data"))
	require.NoError(t, err)

	_, err = newPassphrase("other", lowCost).Open(sealed)
	assert.ErrorIs(t, err, ErrAuthentication)
}

func TestPassphraseTampered(t *testing.T) {
	c := newPassphrase("secret", lowCost)
	sealed, err := c.Seal([]byte("data"))
	require.NoError(t, err)

	sealed[len(sealed)-1] ^= 0xff
	_, err = c.Open(sealed)
	assert.ErrorIs(t, err, ErrAuthentication)
}

func TestPassphraseNotSealed(t *testing.T) {
	c := newPassphrase("secret", lowCost)
	for _, blob := range [][]byte{nil, []byte("{}"), []byte(magic)} {
		_, err := c.Open(blob)
		assert.ErrorIs(t, err, ErrNotSealed)
	}
}

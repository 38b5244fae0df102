package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ValentinKolb/jDB/lib/backend"
	backendtesting "github.com/ValentinKolb/jDB/lib/backend/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test(t *testing.T) {
	backendtesting.RunBackendTests(t, "File", func(t *testing.T) backend.IBackend {
		b, err := NewFileBackend(t.TempDir())
		require.NoError(t, err)
		return b
	})

	dir := t.TempDir()
	backendtesting.RunPersistenceTests(t, "File", func() backend.IBackend {
		b, err := NewFileBackend(dir)
		require.NoError(t, err)
		return b
	})
}

func TestKeysIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	b, err := NewFileBackend(filepath.Join(dir, "nested"))
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, b.Set("db", []byte("{}")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "README"), []byte("hi"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", tempPrefix+"123"), []byte("partial"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested", "sub"+suffix), 0o755))

	keys, err := b.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"db"}, keys)
}

func TestSetLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	b, err := NewFileBackend(dir)
	require.NoError(t, err)
	defer b.Close()

	for i := 0; i < 3; i++ {
		require.NoError(t, b.Set("db", []byte{byte(i)}))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "db"+suffix, entries[0].Name())
}

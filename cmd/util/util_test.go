package util

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/ValentinKolb/jDB/lib/backend"
	"github.com/ValentinKolb/jDB/lib/config"
	"github.com/ValentinKolb/jDB/lib/serializer"
	"github.com/ValentinKolb/jDB/lib/store"
	"github.com/ValentinKolb/jDB/lib/store/lstore"
	"github.com/stretchr/testify/assert"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestWrapString(t *testing.T) {
	text := strings.Repeat("word ", 30)
	for _, line := range strings.Split(WrapString(text), "\n") {
		assert.LessOrEqual(t, len(line), Wrap)
	}
	assert.Equal(t, "short text", WrapString("  short   text "))
}

func TestParseValue(t *testing.T) {
	tests := map[string]any{
		`42`:        float64(42),
		`-1.5`:      -1.5,
		`true`:      true,
		`null`:      nil,
		`"42"`:      "42",
		`abc`:       "abc",
		`[1,"a"]`:   []any{float64(1), "a"},
		`{"a":1}`:   map[string]any{"a": float64(1)},
		`{broken`:   "{broken",
		`two words`: "two words",
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseValue(in), in)
	}
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, `{"a":[1,"x"]}`, FormatValue(map[string]any{"a": []any{1.0, "x"}}))
	assert.Equal(t, `null`, FormatValue(nil))
}

func testConfig(t *testing.T, impl backend.Implementation) *config.Config {
	path := t.TempDir()
	if impl == backend.ImplSQLite {
		path = filepath.Join(path, "jdb.sqlite")
	}
	return &config.Config{
		Backend:    impl,
		Path:       path,
		Key:        "jdb",
		Serializer: serializer.NameJSON,
		LogLevel:   "error",
		JournalKey: "logs.txt",
	}
}

func TestOpenSessionPersists(t *testing.T) {
	for _, impl := range []backend.Implementation{backend.ImplFile, backend.ImplSQLite} {
		t.Run(string(impl), func(t *testing.T) {
			conf := testConfig(t, impl)

			s, err := OpenSession(conf)
			require.NoError(t, err)
			require.NoError(t, s.Store.CreateDatabase("sales"))
			require.NoError(t, s.Store.CreateTable("sales", "orders", []string{"id"}))
			_, err = s.Store.AppendFieldContent("sales", "orders", "id", ParseValue("7"))
			require.NoError(t, err)
			require.NoError(t, s.Close())

			s, err = OpenSession(conf)
			require.NoError(t, err)
			defer s.Close()

			records, err := s.Store.Records("sales", "orders", "id")
			require.NoError(t, err)
			assert.Equal(t, store.Field{{Index: 0, Value: float64(7)}}, records)

			entries, err := s.Journal.Entries()
			require.NoError(t, err)
			messages := make([]string, len(entries))
			for i, e := range entries {
				messages[i] = e.Message
			}
			assert.Contains(t, messages, "Added content to field 'id' in table 'orders' of database 'sales'.")
			assert.Equal(t, "Database loaded with 1 database(s).", messages[len(messages)-1])
		})
	}
}

func TestOpenSessionEncrypted(t *testing.T) {
	conf := testConfig(t, backend.ImplFile)
	conf.EncryptionKey = "secret"
	conf.LoadPolicy = lstore.LoadStrict

	s, err := OpenSession(conf)
	require.NoError(t, err)
	require.NoError(t, s.Store.CreateDatabase("vault"))
	require.NoError(t, s.Close())

	conf.EncryptionKey = "wrong"
	_, err = OpenSession(conf)
	assert.ErrorIs(t, err, store.ErrPersistenceFailure)

	conf.EncryptionKey = "secret"
	s, err = OpenSession(conf)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, []string{"vault"}, s.Store.Databases())
}

func TestOpenSessionWrongKeyKeepsData(t *testing.T) {
	for _, impl := range []backend.Implementation{backend.ImplFile, backend.ImplSQLite} {
		t.Run(string(impl), func(t *testing.T) {
			conf := testConfig(t, impl)
			conf.EncryptionKey = "right"

			s, err := OpenSession(conf)
			require.NoError(t, err)
			require.NoError(t, s.Store.CreateDatabase("precious"))
			require.NoError(t, s.Close())

			// a mistyped key under the lenient policy opens an empty store...
			conf.EncryptionKey = "wrnog"
			conf.LoadPolicy = lstore.LoadLenient
			s, err = OpenSession(conf)
			require.NoError(t, err)
			assert.Empty(t, s.Store.Databases())
			assert.True(t, s.Store.Degraded())

			// ...that does not overwrite the stored data
			err = s.Store.CreateDatabase("typo")
			assert.ErrorIs(t, err, store.ErrPersistenceFailure)
			require.NoError(t, s.Close())

			conf.EncryptionKey = "right"
			conf.LoadPolicy = lstore.LoadStrict
			s, err = OpenSession(conf)
			require.NoError(t, err)
			defer s.Close()
			assert.Equal(t, []string{"precious"}, s.Store.Databases())
		})
	}
}

func TestLoadPolicyFlagDefaultsToStrict(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	SetupStoreFlags(cmd)
	flag := cmd.PersistentFlags().Lookup("load-policy")
	require.NotNil(t, flag)
	policy, err := lstore.ParseLoadPolicy(flag.DefValue)
	require.NoError(t, err)
	assert.Equal(t, lstore.LoadStrict, policy)
}

func TestOpenSessionWithoutJournal(t *testing.T) {
	conf := testConfig(t, backend.ImplMemory)
	conf.JournalKey = ""

	s, err := OpenSession(conf)
	require.NoError(t, err)
	defer s.Close()
	assert.Nil(t, s.Journal)
	require.NoError(t, s.Store.CreateDatabase("tmp"))
}

package util

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ValentinKolb/jDB/lib/backend"
	"github.com/ValentinKolb/jDB/lib/backend/file"
	"github.com/ValentinKolb/jDB/lib/backend/memory"
	"github.com/ValentinKolb/jDB/lib/backend/sqlite"
	"github.com/ValentinKolb/jDB/lib/cipher"
	"github.com/ValentinKolb/jDB/lib/config"
	"github.com/ValentinKolb/jDB/lib/logbook"
	"github.com/ValentinKolb/jDB/lib/persist"
	"github.com/ValentinKolb/jDB/lib/serializer"
	"github.com/ValentinKolb/jDB/lib/store/lstore"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// --------------------------------------------------------------------------
// Configuration
// --------------------------------------------------------------------------

// SetupStoreFlags adds the flags needed to open a store to a command
func SetupStoreFlags(cmd *cobra.Command) {
	key := "backend"
	cmd.PersistentFlags().String(key, "file", WrapString("Where the store is kept (memory, file, sqlite). The memory backend forgets everything when the command exits"))

	key = "path"
	cmd.PersistentFlags().String(key, "data", WrapString("Directory of the file backend or database file of the sqlite backend"))

	key = "key"
	cmd.PersistentFlags().String(key, persist.DefaultKey, WrapString("Backend key the store is written to"))

	key = "fallback-keys"
	cmd.PersistentFlags().StringSlice(key, nil, WrapString("Comma-separated list of keys that are read when the store key holds no data"))

	key = "serializer"
	cmd.PersistentFlags().String(key, string(serializer.NameJSON), WrapString("Serializer of the stored data (json, yaml)"))

	key = "encryption-key"
	cmd.PersistentFlags().String(key, "", WrapString("Passphrase the stored data is encrypted with. Empty means no encryption"))

	key = "load-policy"
	cmd.PersistentFlags().String(key, "strict", WrapString("What to do with stored data that cannot be read (wrong encryption key, corrupt data): strict fails, lenient starts with an empty store that refuses to save changes until 'db reset' is run"))

	key = "rename-policy"
	cmd.PersistentFlags().String(key, "overwrite", WrapString("What a rename does if the new name is taken: overwrite replaces it, reject fails"))

	key = "log-level"
	cmd.PersistentFlags().String(key, "warn", WrapString("Level of the log output on stderr (debug, info, warn, error)"))

	key = "journal-key"
	cmd.PersistentFlags().String(key, logbook.DefaultJournalKey, WrapString("Backend key of the persisted log journal. Empty disables the journal"))
}

// InitConfig initializes configuration from environment variables
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("jdb")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

// GetConfig reads the store configuration from viper
func GetConfig() (*config.Config, error) {
	loadPolicy, err := lstore.ParseLoadPolicy(viper.GetString("load-policy"))
	if err != nil {
		return nil, err
	}
	renamePolicy, err := lstore.ParseRenamePolicy(viper.GetString("rename-policy"))
	if err != nil {
		return nil, err
	}

	conf := &config.Config{
		Backend:       backend.Implementation(viper.GetString("backend")),
		Path:          viper.GetString("path"),
		Key:           viper.GetString("key"),
		FallbackKeys:  viper.GetStringSlice("fallback-keys"),
		Serializer:    serializer.Name(viper.GetString("serializer")),
		EncryptionKey: viper.GetString("encryption-key"),
		LoadPolicy:    loadPolicy,
		RenamePolicy:  renamePolicy,
		LogLevel:      viper.GetString("log-level"),
		JournalKey:    viper.GetString("journal-key"),
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// --------------------------------------------------------------------------
// Session
// --------------------------------------------------------------------------

// Session is an opened store together with the resources it depends on.
type Session struct {
	Store   *lstore.Store
	Journal *logbook.Journal // nil if the journal is disabled
	backend backend.IBackend
}

// Close releases the backend of the session.
func (s *Session) Close() error {
	return s.backend.Close()
}

// OpenBackend creates the backend selected by conf
func OpenBackend(conf *config.Config) (backend.IBackend, error) {
	switch conf.Backend {
	case backend.ImplMemory:
		return memory.NewMemoryBackend(), nil
	case backend.ImplFile:
		return file.NewFileBackend(conf.Path)
	case backend.ImplSQLite:
		return sqlite.NewSQLiteBackend(conf.Path)
	default:
		return nil, fmt.Errorf("invalid backend %s", conf.Backend)
	}
}

// OpenSession opens the backend, wires the store collaborators and loads the store.
func OpenSession(conf *config.Config) (*Session, error) {
	if err := logbook.InitLoggers(conf.LogLevel); err != nil {
		return nil, err
	}

	b, err := OpenBackend(conf)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s backend: %w", conf.Backend, err)
	}

	ser, err := serializer.New(conf.Serializer)
	if err != nil {
		_ = b.Close()
		return nil, err
	}

	var c cipher.ICipher
	if conf.EncryptionKey != "" {
		c = cipher.NewPassphrase(conf.EncryptionKey)
	}

	session := &Session{backend: b}
	log := logbook.NewLogger(logbook.LoggerStore)
	if conf.JournalKey != "" {
		session.Journal = logbook.NewJournal(b, conf.JournalKey, logbook.NewLogger(logbook.LoggerPersist))
		log = logbook.Tee(log, session.Journal)
	}

	session.Store = lstore.NewLocalStore(lstore.Options{
		Persistence: persist.NewSlot(b, persist.Options{
			Key:          conf.Key,
			FallbackKeys: conf.FallbackKeys,
			Cipher:       c,
		}),
		Serializer:   ser,
		Logger:       log,
		LoadPolicy:   conf.LoadPolicy,
		RenamePolicy: conf.RenamePolicy,
	})
	if err := session.Store.Load(); err != nil {
		_ = b.Close()
		return nil, err
	}
	return session, nil
}

// OpenSessionFromFlags binds the flags of cmd and opens a session from the resulting configuration
func OpenSessionFromFlags(cmd *cobra.Command) (*Session, error) {
	if err := BindCommandFlags(cmd); err != nil {
		return nil, err
	}
	conf, err := GetConfig()
	if err != nil {
		return nil, err
	}
	return OpenSession(conf)
}

// --------------------------------------------------------------------------
// Arguments
// --------------------------------------------------------------------------

// ParseValue interprets a command line argument as a json literal.
// Arguments that are not valid json are taken as plain strings, so
// `42` is a number, `"42"` and `abc` are strings and `{"a":1}` is an object.
func ParseValue(arg string) any {
	var v any
	if err := json.Unmarshal([]byte(arg), &v); err != nil {
		return arg
	}
	return v
}

// FormatValue renders a value as compact json for command output
func FormatValue(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

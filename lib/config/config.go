package config

import (
	"fmt"
	"strings"

	"github.com/ValentinKolb/jDB/lib/backend"
	"github.com/ValentinKolb/jDB/lib/logbook"
	"github.com/ValentinKolb/jDB/lib/serializer"
	"github.com/ValentinKolb/jDB/lib/store/lstore"
)

// Config holds everything needed to open a store from the command line.
type Config struct {
	// Storage
	Backend      backend.Implementation
	Path         string
	Key          string
	FallbackKeys []string

	// Encoding
	Serializer    serializer.Name
	EncryptionKey string

	// Store behavior
	LoadPolicy   lstore.LoadPolicy
	RenamePolicy lstore.RenamePolicy

	// Logging
	LogLevel   string
	JournalKey string
}

// Validate checks the combination of settings that cannot be checked field by field.
func (c *Config) Validate() error {
	switch c.Backend {
	case backend.ImplMemory:
	case backend.ImplFile, backend.ImplSQLite:
		if c.Path == "" {
			return fmt.Errorf("backend %s requires a path", c.Backend)
		}
	default:
		return fmt.Errorf("invalid backend %s (expected one of: memory, file, sqlite)", c.Backend)
	}
	if _, err := serializer.New(c.Serializer); err != nil {
		return err
	}
	if _, err := logbook.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.JournalKey != "" && c.JournalKey == c.Key {
		return fmt.Errorf("journal key and store key must differ (both are %q)", c.Key)
	}
	return nil
}

// String returns a formatted string representation of the configuration.
// The encryption key is never printed.
func (c *Config) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	orNone := func(s string) string {
		if s == "" {
			return "-"
		}
		return s
	}

	addSection("Storage")
	addField("Backend", string(c.Backend))
	addField("Path", orNone(c.Path))
	addField("Key", orNone(c.Key))
	addField("Fallback Keys", orNone(strings.Join(c.FallbackKeys, ", ")))

	addSection("Encoding")
	addField("Serializer", string(c.Serializer))
	addField("Encryption", fmt.Sprintf("%t", c.EncryptionKey != ""))

	addSection("Store")
	addField("Load Policy", c.LoadPolicy.String())
	addField("Rename Policy", c.RenamePolicy.String())

	addSection("Logging")
	addField("Log Level", c.LogLevel)
	addField("Journal Key", orNone(c.JournalKey))

	return sb.String()
}

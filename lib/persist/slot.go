package persist

import (
	"fmt"

	"github.com/ValentinKolb/jDB/lib/backend"
	"github.com/ValentinKolb/jDB/lib/cipher"
	"github.com/ValentinKolb/jDB/lib/store"
)

// DefaultKey is the backend key the store blob is written to if none is configured.
const DefaultKey = "jdb"

// Options configures a Slot.
type Options struct {
	// Key is the backend key the blob is written to and read from first.
	Key string
	// FallbackKeys are read in order when Key holds no blob, e.g. the key
	// a store was kept under before it was moved.
	FallbackKeys []string
	// Cipher seals blobs before they are written and opens them after
	// they are read. nil means no encryption.
	Cipher cipher.ICipher
}

// Slot implements store.IPersistence on top of a backend key.
type Slot struct {
	backend backend.IBackend
	key     string
	reads   []string
	cipher  cipher.ICipher
}

var _ store.IPersistence = (*Slot)(nil)

// NewSlot creates a slot for the given backend.
func NewSlot(b backend.IBackend, opts Options) *Slot {
	key := opts.Key
	if key == "" {
		key = DefaultKey
	}
	c := opts.Cipher
	if c == nil {
		c = cipher.NewPlain()
	}
	reads := make([]string, 0, 1+len(opts.FallbackKeys))
	reads = append(reads, key)
	for _, k := range opts.FallbackKeys {
		if k != "" && k != key {
			reads = append(reads, k)
		}
	}
	return &Slot{
		backend: b,
		key:     key,
		reads:   reads,
		cipher:  c,
	}
}

// Key returns the key the slot writes to.
func (s *Slot) Key() string {
	return s.key
}

// Read returns the first non-empty blob found under the slot's keys, opened
// with the configured cipher. A blob that cannot be opened is an error; it
// does not fall through to the next key.
func (s *Slot) Read() ([]byte, bool, error) {
	for _, key := range s.reads {
		sealed, ok, err := s.backend.Get(key)
		if err != nil {
			return nil, false, fmt.Errorf("failed to read %q: %w", key, err)
		}
		if !ok || len(sealed) == 0 {
			continue
		}
		blob, err := s.cipher.Open(sealed)
		if err != nil {
			return nil, false, fmt.Errorf("failed to open %q: %w", key, err)
		}
		return blob, true, nil
	}
	return nil, false, nil
}

// Write seals blob and stores it under the slot's key.
func (s *Slot) Write(blob []byte) error {
	sealed, err := s.cipher.Seal(blob)
	if err != nil {
		return fmt.Errorf("failed to seal blob: %w", err)
	}
	if err := s.backend.Set(s.key, sealed); err != nil {
		return fmt.Errorf("failed to write %q: %w", s.key, err)
	}
	return nil
}

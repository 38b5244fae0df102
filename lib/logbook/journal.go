package logbook

import (
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/ValentinKolb/jDB/lib/backend"
	"github.com/ValentinKolb/jDB/lib/store"
)

// DefaultJournalKey is the backend key the journal is kept under.
const DefaultJournalKey = "logs.txt"

// Entry is a single journal line.
type Entry struct {
	Time    time.Time      `json:"time"`
	Level   store.LogLevel `json:"level"`
	Message string         `json:"message"`
}

// String formats the entry as "[(d/m/y) (time h:m:s)][loginfo] message" in UTC.
func (e Entry) String() string {
	t := e.Time.UTC()
	return fmt.Sprintf("[(%d/%d/%d) (time %d:%d:%d)][log%s] %s",
		t.Day(), int(t.Month()), t.Year(),
		t.Hour(), t.Minute(), t.Second(),
		e.Level, e.Message)
}

// Journal is an append-only log persisted as a json array under a backend key.
// It implements store.ILogger; failures to persist are reported to the
// fallback logger and never reach the caller.
type Journal struct {
	backend  backend.IBackend
	key      string
	fallback store.ILogger
	now      func() time.Time

	mu      sync.Mutex
	entries []Entry
	loaded  bool
}

var _ store.ILogger = (*Journal)(nil)

// NewJournal creates a journal kept under key. fallback receives journal
// failures and may be nil.
func NewJournal(b backend.IBackend, key string, fallback store.ILogger) *Journal {
	if key == "" {
		key = DefaultJournalKey
	}
	if fallback == nil {
		fallback = Discard
	}
	return &Journal{
		backend:  b,
		key:      key,
		fallback: fallback,
		now:      time.Now,
	}
}

// load reads the persisted entries once. Must be called with mu held.
func (j *Journal) load() error {
	if j.loaded {
		return nil
	}
	data, ok, err := j.backend.Get(j.key)
	if err != nil {
		return fmt.Errorf("failed to read journal: %w", err)
	}
	var entries []Entry
	if ok && len(data) > 0 {
		if err := json.Unmarshal(data, &entries); err != nil {
			return fmt.Errorf("failed to decode journal: %w", err)
		}
	}
	j.entries = entries
	j.loaded = true
	return nil
}

// Record appends an entry and persists the journal.
func (j *Journal) Record(level store.LogLevel, msg string) {
	if err := j.append(Entry{Time: j.now().UTC(), Level: level, Message: msg}); err != nil {
		j.fallback.Record(store.LogError, err.Error())
	}
}

func (j *Journal) append(entry Entry) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if err := j.load(); err != nil {
		return err
	}
	entries := append(slices.Clip(j.entries), entry)
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode journal: %w", err)
	}
	if err := j.backend.Set(j.key, data); err != nil {
		return fmt.Errorf("failed to write journal: %w", err)
	}
	j.entries = entries
	return nil
}

// Entries returns a copy of all entries, oldest first.
func (j *Journal) Entries() ([]Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if err := j.load(); err != nil {
		return nil, err
	}
	return slices.Clone(j.entries), nil
}

// Clear removes all entries.
func (j *Journal) Clear() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if err := j.backend.Delete(j.key); err != nil {
		return fmt.Errorf("failed to clear journal: %w", err)
	}
	j.entries = nil
	j.loaded = true
	return nil
}

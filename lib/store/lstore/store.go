package lstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/ValentinKolb/jDB/lib/backend/memory"
	"github.com/ValentinKolb/jDB/lib/join"
	"github.com/ValentinKolb/jDB/lib/persist"
	"github.com/ValentinKolb/jDB/lib/serializer"
	"github.com/ValentinKolb/jDB/lib/store"
	"github.com/VictoriaMetrics/metrics"
)

// --------------------------------------------------------------------------
// Policies
// --------------------------------------------------------------------------

// LoadPolicy selects how Load reacts to a blob that cannot be read or decoded.
type LoadPolicy int

const (
	// LoadLenient logs the failure and continues with an empty store.
	LoadLenient LoadPolicy = iota
	// LoadStrict returns store.RetCPersistenceFailure and keeps the current state.
	LoadStrict
)

func (p LoadPolicy) String() string {
	switch p {
	case LoadLenient:
		return "lenient"
	case LoadStrict:
		return "strict"
	default:
		return "unknown"
	}
}

// ParseLoadPolicy converts "lenient" or "strict" to a LoadPolicy.
func ParseLoadPolicy(s string) (LoadPolicy, error) {
	switch strings.ToLower(s) {
	case "", "lenient":
		return LoadLenient, nil
	case "strict":
		return LoadStrict, nil
	default:
		return LoadLenient, fmt.Errorf("invalid load policy: %s. must be one of lenient, strict", s)
	}
}

// RenamePolicy selects what a rename does when the target name is taken.
type RenamePolicy int

const (
	// RenameOverwrite silently replaces the entry under the target name.
	RenameOverwrite RenamePolicy = iota
	// RenameRejectExisting fails with store.RetCAlreadyExists.
	RenameRejectExisting
)

func (p RenamePolicy) String() string {
	switch p {
	case RenameOverwrite:
		return "overwrite"
	case RenameRejectExisting:
		return "reject"
	default:
		return "unknown"
	}
}

// ParseRenamePolicy converts "overwrite" or "reject" to a RenamePolicy.
func ParseRenamePolicy(s string) (RenamePolicy, error) {
	switch strings.ToLower(s) {
	case "", "overwrite":
		return RenameOverwrite, nil
	case "reject":
		return RenameRejectExisting, nil
	default:
		return RenameOverwrite, fmt.Errorf("invalid rename policy: %s. must be one of overwrite, reject", s)
	}
}

// --------------------------------------------------------------------------
// Store
// --------------------------------------------------------------------------

// Options configures a local store. Every field is optional.
type Options struct {
	// Persistence receives the serialized store after every mutation.
	// Defaults to a slot on a fresh in-memory backend.
	Persistence store.IPersistence
	// Serializer defaults to the JSON serializer.
	Serializer store.ISerializer
	// Logger defaults to a logger that drops every record.
	Logger       store.ILogger
	LoadPolicy   LoadPolicy
	RenamePolicy RenamePolicy
	// Metrics is the set operation counters are registered in.
	// A private set is created if nil.
	Metrics *metrics.Set
	// Name is the value of the store label on every metric. Stores sharing
	// one Metrics set need distinct names, otherwise they share counters and
	// the jdb_databases gauge reports the first store only. Defaults to "jdb".
	Name string
}

// Store is the local implementation of store.IStore.
type Store struct {
	mu   sync.Mutex
	root store.Root

	persistence  store.IPersistence
	serializer   store.ISerializer
	logger       store.ILogger
	loadPolicy   LoadPolicy
	renamePolicy RenamePolicy
	metrics      *metrics.Set
	name         string

	// degraded is set when a lenient load replaced unreadable data with an
	// empty store. Mutations are not flushed until Save or Reset clears it.
	degraded bool
}

var _ store.IStore = (*Store)(nil)

// NewLocalStore creates an empty store. Call Load to read the persisted state.
func NewLocalStore(opts Options) *Store {
	s := &Store{
		root:         store.Root{},
		persistence:  opts.Persistence,
		serializer:   opts.Serializer,
		logger:       opts.Logger,
		loadPolicy:   opts.LoadPolicy,
		renamePolicy: opts.RenamePolicy,
		metrics:      opts.Metrics,
		name:         opts.Name,
	}
	if s.persistence == nil {
		s.persistence = persist.NewSlot(memory.NewMemoryBackend(), persist.Options{})
	}
	if s.serializer == nil {
		s.serializer, _ = serializer.New(serializer.NameJSON)
	}
	if s.logger == nil {
		s.logger = nopLogger{}
	}
	if s.metrics == nil {
		s.metrics = metrics.NewSet()
	}
	if s.name == "" {
		s.name = "jdb"
	}
	s.metrics.GetOrCreateGauge(s.metricName("jdb_databases", ""), func() float64 {
		s.mu.Lock()
		defer s.mu.Unlock()
		return float64(len(s.root))
	})
	return s
}

type nopLogger struct{}

func (nopLogger) Record(store.LogLevel, string) {}

// WriteMetrics writes the store metrics in Prometheus text format to w.
func (s *Store) WriteMetrics(w io.Writer) {
	s.metrics.WritePrometheus(w)
}

// --------------------------------------------------------------------------
// Outcome Protocol
// --------------------------------------------------------------------------

// metricName appends the store label and the extra labels to name.
func (s *Store) metricName(name, labels string) string {
	if labels != "" {
		labels = "," + labels
	}
	return fmt.Sprintf(`%s{store=%q%s}`, name, s.name, labels)
}

// count increments the counter of op for the outcome of err.
func (s *Store) count(op string, err error) {
	labels := fmt.Sprintf(`op=%q,result=%q`, op, store.CodeOf(err))
	s.metrics.GetOrCreateCounter(s.metricName("jdb_operations_total", labels)).Inc()
}

// fail logs err, counts it and returns it.
func (s *Store) fail(op string, err error) error {
	s.logger.Record(store.LogError, logMessage(err))
	s.count(op, err)
	return err
}

// succeed logs msg and counts a successful op.
func (s *Store) succeed(op, msg string) error {
	s.logger.Record(store.LogInfo, msg)
	s.count(op, nil)
	return nil
}

// commit flushes the store and records the outcome of op. It must be called
// with mu held after the in-memory mutation is complete. A flush failure
// does not roll the mutation back.
func (s *Store) commit(op, msg string) error {
	if s.degraded {
		return s.fail(op, store.NewError(store.RetCPersistenceFailure,
			"The stored database could not be loaded and is not overwritten. Save or reset the store explicitly to replace it."))
	}
	if err := s.flush(); err != nil {
		return s.fail(op, err)
	}
	return s.succeed(op, msg)
}

// flush serializes the whole store and writes it through the persistence collaborator.
func (s *Store) flush() error {
	defer s.metrics.GetOrCreateHistogram(s.metricName("jdb_flush_duration_seconds", "")).UpdateDuration(time.Now())

	blob, err := s.serializer.Serialize(s.root)
	if err != nil {
		return store.WrapError(store.RetCPersistenceFailure, "Error saving the database", err)
	}
	if err := s.persistence.Write(blob); err != nil {
		return store.WrapError(store.RetCPersistenceFailure, "Error saving the database", err)
	}
	return nil
}

func logMessage(err error) string {
	var e *store.Error
	if errors.As(err, &e) {
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Msg, e.Err)
		}
		return e.Msg
	}
	return err.Error()
}

// formatValue renders a value for log messages.
func formatValue(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// --------------------------------------------------------------------------
// Lookup
// --------------------------------------------------------------------------

// target is the result of resolve. Only the levels that were asked for are set.
type target struct {
	db    store.Database
	table store.Table
	field store.Field
}

// resolve walks the database/table/field cascade. names holds one to three
// names; the first missing level is reported as store.RetCNotFound.
func (s *Store) resolve(names ...string) (target, error) {
	var t target
	dbName := names[0]
	db, ok := s.root[dbName]
	if !ok {
		return t, notFoundDB(dbName)
	}
	t.db = db
	if len(names) < 2 {
		return t, nil
	}

	tableName := names[1]
	table, ok := db[tableName]
	if !ok {
		return t, notFoundTable(dbName, tableName)
	}
	t.table = table
	if len(names) < 3 {
		return t, nil
	}

	fieldName := names[2]
	field, ok := table[fieldName]
	if !ok {
		return t, store.NewError(store.RetCNotFound, fmt.Sprintf(
			"Field '%s' does not exist in table '%s' of database '%s'.", fieldName, tableName, dbName))
	}
	t.field = field
	return t, nil
}

func notFoundDB(db string) error {
	return store.NewError(store.RetCNotFound, fmt.Sprintf("Database '%s' does not exist.", db))
}

func notFoundTable(db, table string) error {
	return store.NewError(store.RetCNotFound, fmt.Sprintf("Table '%s' does not exist in database '%s'.", table, db))
}

// normalize converts value to the JSON data model or fails with store.RetCInvalidArgument.
func normalize(what string, value any) (any, error) {
	v, err := store.NormalizeValue(value)
	if err != nil {
		return nil, store.WrapError(store.RetCInvalidArgument, fmt.Sprintf("%s is not a JSON value", what), err)
	}
	return v, nil
}

// --------------------------------------------------------------------------
// Lifecycle
// --------------------------------------------------------------------------

func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	const op = "load"

	blob, ok, err := s.persistence.Read()
	if err != nil {
		return s.loadFailed(op, "Error reading the database", err)
	}
	if !ok {
		s.root = store.Root{}
		s.degraded = false
		return s.succeed(op, "No stored database found, starting with an empty database.")
	}

	root := store.Root{}
	if err := s.serializer.Deserialize(blob, &root); err != nil {
		return s.loadFailed(op, "Error parsing the database", err)
	}
	s.root = root
	s.degraded = false
	return s.succeed(op, fmt.Sprintf("Database loaded with %d database(s).", len(root)))
}

// loadFailed applies the load policy to a read or decode failure. A lenient
// load continues with an empty store but keeps the unreadable blob: later
// mutations fail until Save or Reset overwrites it on purpose.
func (s *Store) loadFailed(op, msg string, cause error) error {
	err := store.WrapError(store.RetCPersistenceFailure, msg, cause)
	if s.loadPolicy == LoadStrict {
		return s.fail(op, err)
	}
	s.logger.Record(store.LogError, logMessage(err))
	s.logger.Record(store.LogError, "Continuing with an empty database. Changes are not saved until the store is saved or reset explicitly.")
	s.root = store.Root{}
	s.degraded = true
	s.count(op, nil)
	return nil
}

// Degraded reports whether the last Load fell back to an empty store
// because the persisted one could not be read.
func (s *Store) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.degraded = false
	return s.commit("save", "Database saved.")
}

func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.root = store.Root{}
	s.degraded = false
	return s.commit("reset", "Database reset to an empty state.")
}

// --------------------------------------------------------------------------
// Database Operations
// --------------------------------------------------------------------------

func (s *Store) CreateDatabase(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	const op = "create_database"

	if _, ok := s.root[name]; ok {
		return s.fail(op, store.NewError(store.RetCAlreadyExists, fmt.Sprintf("Database '%s' already exists.", name)))
	}
	s.root[name] = store.Database{}
	return s.commit(op, fmt.Sprintf("Database '%s' created.", name))
}

func (s *Store) RenameDatabase(oldName, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	const op = "rename_database"

	t, err := s.resolve(oldName)
	if err != nil {
		return s.fail(op, err)
	}
	msg := fmt.Sprintf("Database name changed from '%s' to '%s'.", oldName, newName)
	if oldName == newName {
		return s.succeed(op, msg)
	}
	if _, taken := s.root[newName]; taken && s.renamePolicy == RenameRejectExisting {
		return s.fail(op, store.NewError(store.RetCAlreadyExists, fmt.Sprintf("Database '%s' already exists.", newName)))
	}
	s.root[newName] = t.db
	delete(s.root, oldName)
	return s.commit(op, msg)
}

func (s *Store) DeleteDatabase(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	const op = "delete_database"

	if _, err := s.resolve(name); err != nil {
		return s.fail(op, err)
	}
	delete(s.root, name)
	return s.commit(op, fmt.Sprintf("Deleted database '%s' and its content.", name))
}

// --------------------------------------------------------------------------
// Table Operations
// --------------------------------------------------------------------------

func (s *Store) CreateTable(db, table string, fields []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	const op = "create_table"

	t, err := s.resolve(db)
	if err != nil {
		return s.fail(op, err)
	}
	if _, ok := t.db[table]; ok {
		return s.fail(op, store.NewError(store.RetCAlreadyExists,
			fmt.Sprintf("Table '%s' already exists in database '%s'.", table, db)))
	}
	if fields == nil {
		return s.fail(op, store.NewError(store.RetCInvalidArgument, "Fields should be an array."))
	}

	newTable := make(store.Table, len(fields))
	for _, f := range fields {
		newTable[f] = store.Field{}
	}
	t.db[table] = newTable
	return s.commit(op, fmt.Sprintf("Table '%s' created in database '%s'.", table, db))
}

func (s *Store) RenameTable(db, oldTable, newTable string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	const op = "rename_table"

	t, err := s.resolve(db, oldTable)
	if err != nil {
		return s.fail(op, err)
	}
	msg := fmt.Sprintf("Table name changed from '%s' to '%s' in database '%s'.", oldTable, newTable, db)
	if oldTable == newTable {
		return s.succeed(op, msg)
	}
	if _, taken := t.db[newTable]; taken && s.renamePolicy == RenameRejectExisting {
		return s.fail(op, store.NewError(store.RetCAlreadyExists,
			fmt.Sprintf("Table '%s' already exists in database '%s'.", newTable, db)))
	}
	t.db[newTable] = t.table
	delete(t.db, oldTable)
	return s.commit(op, msg)
}

func (s *Store) DeleteTable(db, table string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	const op = "delete_table"

	t, err := s.resolve(db, table)
	if err != nil {
		return s.fail(op, err)
	}
	delete(t.db, table)
	return s.commit(op, fmt.Sprintf("Deleted table '%s' from database '%s'.", table, db))
}

func (s *Store) RenameField(db, table, oldField, newField string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	const op = "rename_field"

	t, err := s.resolve(db, table, oldField)
	if err != nil {
		return s.fail(op, err)
	}
	msg := fmt.Sprintf("Field '%s' in table '%s' of database '%s' was changed to '%s'.", oldField, table, db, newField)
	if oldField == newField {
		return s.succeed(op, msg)
	}
	if _, taken := t.table[newField]; taken && s.renamePolicy == RenameRejectExisting {
		return s.fail(op, store.NewError(store.RetCAlreadyExists,
			fmt.Sprintf("Field '%s' already exists in table '%s' of database '%s'.", newField, table, db)))
	}
	t.table[newField] = t.field
	delete(t.table, oldField)
	return s.commit(op, msg)
}

// --------------------------------------------------------------------------
// Field Content Operations
// --------------------------------------------------------------------------

func (s *Store) AppendFieldContent(db, table, field string, value any) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	const op = "append"

	t, err := s.resolve(db, table, field)
	if err != nil {
		return 0, s.fail(op, err)
	}
	v, err := normalize("value", value)
	if err != nil {
		return 0, s.fail(op, err)
	}

	index := len(t.field)
	t.table[field] = append(t.field, store.Record{Index: index, Value: v})
	return index, s.commit(op, fmt.Sprintf(
		"Added content to field '%s' in table '%s' of database '%s'.", field, table, db))
}

func (s *Store) SetContentAt(db, table, field string, index int, expected, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	const op = "set_content_at"

	t, err := s.resolve(db, table, field)
	if err != nil {
		return s.fail(op, err)
	}
	if index < 0 || index >= len(t.field) {
		return s.fail(op, store.NewError(store.RetCOutOfRange, fmt.Sprintf(
			"Invalid index '%d' for field '%s' in table '%s' of database '%s'.", index, field, table, db)))
	}
	exp, err := normalize("expected value", expected)
	if err != nil {
		return s.fail(op, err)
	}
	v, err := normalize("new value", value)
	if err != nil {
		return s.fail(op, err)
	}
	if !store.ValuesEqual(t.field[index].Value, exp) {
		return s.fail(op, store.NewError(store.RetCValueMismatch, fmt.Sprintf(
			"Old value '%s' does not match the value at index '%d' for field '%s' in table '%s' of database '%s'.",
			formatValue(exp), index, field, table, db)))
	}

	t.field[index].Value = v
	return s.commit(op, fmt.Sprintf(
		"Content of field '%s' in table '%s' of database '%s' was changed from '%s' to '%s' at index '%d'.",
		field, table, db, formatValue(exp), formatValue(v), index))
}

func (s *Store) SetAllMatching(db, table, field string, oldValue, newValue any) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	const op = "set_all_matching"

	t, err := s.resolve(db, table, field)
	if err != nil {
		return 0, s.fail(op, err)
	}
	oldV, err := normalize("old value", oldValue)
	if err != nil {
		return 0, s.fail(op, err)
	}
	newV, err := normalize("new value", newValue)
	if err != nil {
		return 0, s.fail(op, err)
	}

	replaced := 0
	for i := range t.field {
		if store.ValuesEqual(t.field[i].Value, oldV) {
			t.field[i].Value = store.CloneValue(newV)
			replaced++
		}
	}
	return replaced, s.commit(op, fmt.Sprintf(
		"All occurrences of '%s' in field '%s' of table '%s' in database '%s' were changed to '%s'.",
		formatValue(oldV), field, table, db, formatValue(newV)))
}

// --------------------------------------------------------------------------
// Join Operations
// --------------------------------------------------------------------------

func (s *Store) JoinTables(db, newTable string, sourceTables, fields []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	const op = "join_tables"

	t, err := s.resolve(db)
	if err != nil {
		return s.fail(op, err)
	}
	sources, err := join.Sources(s.root, []string{db}, sourceTables, join.WithinDatabase)
	if err != nil {
		return s.fail(op, err)
	}
	t.db[newTable] = join.Merge(sources, fields, join.WithinDatabase)
	return s.commit(op, fmt.Sprintf("Joined tables %s into a new table '%s' in database '%s'.",
		strings.Join(sourceTables, ", "), newTable, db))
}

func (s *Store) JoinDatabases(sourceDBs []string, newDB, newTable string, sourceTables, fields []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	const op = "join_databases"

	sources, err := join.Sources(s.root, sourceDBs, sourceTables, join.IntoNewDatabase)
	if err != nil {
		return s.fail(op, err)
	}
	s.root[newDB] = store.Database{newTable: join.Merge(sources, fields, join.IntoNewDatabase)}
	return s.commit(op, fmt.Sprintf(
		"Created new table '%s' in database '%s' with the specified fields from the specified databases and tables.",
		newTable, newDB))
}

func (s *Store) JoinIntoDatabase(sourceDBs []string, existingDB, newTable string, sourceTables, fields []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	const op = "join_into_database"

	t, err := s.resolve(existingDB)
	if err != nil {
		return s.fail(op, err)
	}
	sources, err := join.Sources(s.root, sourceDBs, sourceTables, join.IntoExistingDatabase)
	if err != nil {
		return s.fail(op, err)
	}
	t.db[newTable] = join.Merge(sources, fields, join.IntoExistingDatabase)
	return s.commit(op, fmt.Sprintf(
		"Created new table '%s' in database '%s' with the specified fields from the specified databases and tables.",
		newTable, existingDB))
}

// --------------------------------------------------------------------------
// Read Operations
// --------------------------------------------------------------------------

func (s *Store) Snapshot() store.Root {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.root.Clone()
}

func (s *Store) Databases() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return store.SortedKeys(s.root)
}

func (s *Store) Tables(db string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.resolve(db)
	if err != nil {
		return nil, s.fail("tables", err)
	}
	return store.SortedKeys(t.db), nil
}

func (s *Store) Fields(db, table string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.resolve(db, table)
	if err != nil {
		return nil, s.fail("fields", err)
	}
	return store.SortedKeys(t.table), nil
}

func (s *Store) Records(db, table, field string) (store.Field, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.resolve(db, table, field)
	if err != nil {
		return nil, s.fail("records", err)
	}
	return t.field.Clone(), nil
}

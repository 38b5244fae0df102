package store

import (
	"errors"
	"fmt"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// IStore is the interface for interacting with a document store.
// All write operations return only an error (nil on success, *Error otherwise),
// while read operations return the requested data along with an error.
// Every successful write operation flushes the whole store through the
// IPersistence collaborator before it returns.
type IStore interface {

	// --------------------------------------------------------------------------
	// Lifecycle
	// --------------------------------------------------------------------------

	// Load replaces the in-memory state with the persisted one.
	// An absent blob yields an empty store.
	Load() (err error)
	// Save serializes the in-memory state and writes it through the persistence collaborator.
	Save() (err error)
	// Reset clears all databases and persists the empty store.
	Reset() (err error)

	// --------------------------------------------------------------------------
	// Database Operations
	// --------------------------------------------------------------------------

	// CreateDatabase inserts an empty database. Fails with RetCAlreadyExists if the name is taken.
	CreateDatabase(name string) (err error)
	// RenameDatabase moves a database to a new name.
	RenameDatabase(oldName, newName string) (err error)
	// DeleteDatabase removes a database and every table it owns.
	DeleteDatabase(name string) (err error)

	// --------------------------------------------------------------------------
	// Table Operations
	// --------------------------------------------------------------------------

	// CreateTable inserts a table whose fields are initialized empty.
	// A nil field list is rejected with RetCInvalidArgument.
	CreateTable(db, table string, fields []string) (err error)
	// RenameTable moves a table to a new name within its database.
	RenameTable(db, oldTable, newTable string) (err error)
	// DeleteTable removes a table and its fields.
	DeleteTable(db, table string) (err error)
	// RenameField moves the records of a field to a new name, leaving them unchanged.
	RenameField(db, table, oldField, newField string) (err error)

	// --------------------------------------------------------------------------
	// Field Content Operations
	// --------------------------------------------------------------------------

	// AppendFieldContent appends a record tagged with the current field length.
	AppendFieldContent(db, table, field string, value any) (index int, err error)
	// SetContentAt replaces the value of the record at index if it currently holds expected.
	SetContentAt(db, table, field string, index int, expected, value any) (err error)
	// SetAllMatching replaces every record value equal to oldValue by newValue.
	SetAllMatching(db, table, field string, oldValue, newValue any) (replaced int, err error)

	// --------------------------------------------------------------------------
	// Join Operations
	// --------------------------------------------------------------------------

	// JoinTables merges fields of tables inside one database into a new table.
	JoinTables(db, newTable string, sourceTables, fields []string) (err error)
	// JoinDatabases merges tables from several databases into a brand-new database.
	JoinDatabases(sourceDBs []string, newDB, newTable string, sourceTables, fields []string) (err error)
	// JoinIntoDatabase merges tables from several databases into a table of an existing database.
	JoinIntoDatabase(sourceDBs []string, existingDB, newTable string, sourceTables, fields []string) (err error)

	// --------------------------------------------------------------------------
	// Read Operations
	// --------------------------------------------------------------------------

	// Snapshot returns a deep copy of the whole store.
	Snapshot() (root Root)
	// Databases returns the sorted database names.
	Databases() (names []string)
	// Tables returns the sorted table names of a database.
	Tables(db string) (names []string, err error)
	// Fields returns the sorted field names of a table.
	Fields(db, table string) (names []string, err error)
	// Records returns a copy of the records of a field.
	Records(db, table, field string) (records Field, err error)
}

// --------------------------------------------------------------------------
// Collaborators
// --------------------------------------------------------------------------

// IPersistence reads and writes the opaque blob holding the whole store.
// What Read returns must reconstitute exactly what the last Write stored.
type IPersistence interface {
	// Read returns the stored blob. The boolean is false if nothing was stored yet.
	Read() (blob []byte, ok bool, err error)
	// Write replaces the stored blob.
	Write(blob []byte) (err error)
}

// ISerializer converts the whole store from and to a blob.
type ISerializer interface {
	Serialize(root Root) ([]byte, error)
	Deserialize(b []byte, root *Root) error
}

// LogLevel is the severity of a log record.
type LogLevel int

const (
	LogInfo LogLevel = iota
	LogError
)

func (l LogLevel) String() string {
	switch l {
	case LogInfo:
		return "info"
	case LogError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText encodes the level by name.
func (l LogLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText decodes a level name.
func (l *LogLevel) UnmarshalText(b []byte) error {
	switch string(b) {
	case "info":
		*l = LogInfo
	case "error":
		*l = LogError
	default:
		return fmt.Errorf("invalid log level %q", b)
	}
	return nil
}

// ILogger records the outcome of store operations.
// Implementations must never fail the calling operation.
type ILogger interface {
	Record(level LogLevel, msg string)
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode),
// an error message and optionally the underlying cause.
type Error struct {
	Code RetCode // The return code
	Msg  string  // The error message.
	Err  error   // The cause (may be nil)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("StoreError (code %s): %s: %v", e.Code, e.Msg, e.Err)
	}
	return fmt.Sprintf("StoreError (code %s): %s", e.Code, e.Msg)
}

// Unwrap returns the cause of the error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a *Error with the same code.
// This makes errors.Is(err, store.ErrNotFound) work for any message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewError creates a new store error with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// WrapError creates a new store error with the given code, message and cause.
func WrapError(code RetCode, msg string, err error) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
		Err:  err,
	}
}

// CodeOf returns the code of err, RetCSuccess for nil and RetCInternalError
// for errors that are not store errors.
func CodeOf(err error) RetCode {
	if err == nil {
		return RetCSuccess
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return RetCInternalError
}

// Sentinels for errors.Is comparisons.
var (
	ErrNotFound           = NewError(RetCNotFound, "not found")
	ErrAlreadyExists      = NewError(RetCAlreadyExists, "already exists")
	ErrInvalidArgument    = NewError(RetCInvalidArgument, "invalid argument")
	ErrOutOfRange         = NewError(RetCOutOfRange, "out of range")
	ErrValueMismatch      = NewError(RetCValueMismatch, "value mismatch")
	ErrPersistenceFailure = NewError(RetCPersistenceFailure, "persistence failure")
)

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess            RetCode = iota // 0: Operation executed successfully.
	RetCInternalError                     // 1: Operation failed due to an internal error.
	RetCNotFound                          // 2: A referenced database, table or field is absent.
	RetCAlreadyExists                     // 3: Create target is already present.
	RetCInvalidArgument                   // 4: Malformed input.
	RetCOutOfRange                        // 5: Index outside the valid bounds.
	RetCValueMismatch                     // 6: Optimistic update precondition failed.
	RetCPersistenceFailure                // 7: The persistence collaborator failed.
)

func (c RetCode) String() string {
	switch c {
	case RetCSuccess:
		return "Success"
	case RetCInternalError:
		return "InternalError"
	case RetCNotFound:
		return "NotFound"
	case RetCAlreadyExists:
		return "AlreadyExists"
	case RetCInvalidArgument:
		return "InvalidArgument"
	case RetCOutOfRange:
		return "OutOfRange"
	case RetCValueMismatch:
		return "ValueMismatch"
	case RetCPersistenceFailure:
		return "PersistenceFailure"
	default:
		return "Unknown"
	}
}

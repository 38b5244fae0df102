package backend

import "errors"

// --------------------------------------------------------------------------
// Helper Types
// --------------------------------------------------------------------------

type Implementation string

const (
	ImplMemory Implementation = "memory"
	ImplFile   Implementation = "file"
	ImplSQLite Implementation = "sqlite"
)

// ErrClosed is returned by every operation on a closed backend.
var ErrClosed = errors.New("backend is closed")

// --------------------------------------------------------------------------
// Backend Interface
// --------------------------------------------------------------------------

// IBackend is a flat key-value storage for blobs. jDB keeps the serialized
// store and the log journal under separate keys of one backend.
//
// Implementations must copy values on the way in and out, so callers may
// reuse or modify the slices they pass or receive.
type IBackend interface {
	// Get returns the value stored for key. The boolean is false if the key is absent.
	Get(key string) (value []byte, ok bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) (err error)
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) (err error)
	// Keys returns all keys in ascending order.
	Keys() (keys []string, err error)
	// Close releases the resources of the backend.
	Close() (err error)
}

// Package persist connects a store to a backend: a Slot implements
// store.IPersistence by keeping the serialized store under one backend key,
// optionally sealed by a cipher.
//
// Reads try the primary key first and then the configured fallback keys, so
// a store written under an older key is still found. Writes always go to the
// primary key. Empty blobs count as absent.
package persist

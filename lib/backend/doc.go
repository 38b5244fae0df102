// Package backend defines the blob storage underneath jDB's persistence
// layer. A backend is a flat mapping from string keys to byte slices, the
// moral equivalent of a browser's key-value storage: the serialized store
// lives under one key and the log journal under another.
//
// Implementations:
//
//   - memory: xsync based map, nothing survives the process. Used by tests
//     and for throwaway stores.
//   - file: one file per key inside a directory, written atomically.
//   - sqlite: a single "kv" table in a SQLite database.
//
// The testing subpackage contains a conformance suite every implementation runs.
package backend

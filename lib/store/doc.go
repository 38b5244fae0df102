// Package store provides the data model and the high-level interface of the
// jDB document store. A store is a tree: a Root maps database names to
// Databases, a Database maps table names to Tables, a Table maps field names
// to Fields and a Field is an ordered list of index-tagged Records.
//
// The package focuses on:
//   - A unified interface (IStore) for every mutation, join and read operation
//   - Narrow collaborator interfaces for persistence, serialization and logging
//   - A typed error system so callers can react to specific failure kinds
//
// Key Components:
//
//   - IStore Interface: The core abstraction. Every write operation validates its
//     preconditions, applies the mutation in memory, flushes the whole store
//     through an IPersistence and records the outcome through an ILogger.
//
//   - Data Model: Root, Database, Table, Field and Record. All of them can be
//     deep copied with Clone. Records are encoded as [index, value] arrays and
//     values are normalized to the JSON data model (see NormalizeValue).
//
//   - Error System: *Error carries a RetCode (RetCNotFound, RetCAlreadyExists,
//     RetCInvalidArgument, RetCOutOfRange, RetCValueMismatch,
//     RetCPersistenceFailure). The exported sentinels make
//     errors.Is(err, store.ErrNotFound) work regardless of the message.
//
//   - Collaborators: IPersistence reads and writes a single opaque blob,
//     ISerializer converts a Root from and to that blob and ILogger receives
//     one record per operation outcome. Encryption is applied by the
//     persistence layer and is invisible to the store.
//
// Implementations:
//
//	The local store (lstore) is the in-process implementation of IStore.
//	Available in the "github.com/ValentinKolb/jDB/lib/store/lstore" package.
package store

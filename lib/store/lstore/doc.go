// Package lstore implements the local, in-process document store based on the
// store.IStore interface. The whole store is kept in memory as a store.Root and
// written in full through a store.IPersistence after every successful mutation.
//
// Key Features:
//   - Every store.IStore operation, including the three join variants
//   - Pluggable persistence, serialization and logging collaborators
//   - Configurable reaction to unreadable persisted data (LoadPolicy)
//   - Configurable rename collision handling (RenamePolicy)
//   - Per-store operation metrics in Prometheus text format
//
// Implementation Details:
//
//   - Outcome Protocol: A write operation resolves its target, validates its
//     arguments and applies the mutation in memory. It then flushes the whole
//     store and finally records the outcome. A failed flush is reported as
//     store.RetCPersistenceFailure and the in-memory mutation stays applied,
//     so memory and persisted state diverge until the next successful flush.
//     Every failure, including a failed lookup of a read operation, is
//     recorded at store.LogError with the offending names.
//
//   - Degraded Loads: Under LoadLenient an unreadable blob (wrong encryption
//     key, corrupt data, read error) yields an empty store, but the blob is
//     not overwritten: mutations fail with store.RetCPersistenceFailure
//     until Save or Reset replaces the stored data explicitly.
//
//   - Lookup: A single resolve helper walks the database, table and field
//     levels and reports the first missing one as store.RetCNotFound.
//
//   - Values: Values are normalized to the JSON data model before they are
//     stored or compared, so 5 and 5.0 are the same value and values that
//     cannot be encoded as JSON (including strings that are not valid UTF-8)
//     are rejected with store.RetCInvalidArgument.
//
//   - Joins: The merge itself lives in the join package. JoinTables fails on
//     any missing source table, JoinDatabases fails on a missing source
//     database but skips missing tables, and JoinIntoDatabase only requires
//     the target database to exist.
//
//   - Metrics: Operations are counted in a VictoriaMetrics set as
//     jdb_operations_total{store="...",op="...",result="..."}; flush
//     durations are tracked by the jdb_flush_duration_seconds histogram and
//     the number of databases by the jdb_databases gauge. The store label
//     (Options.Name) keeps stores apart that share one set.
//
// Thread Safety:
//
//	A mutex guards the root. Every operation runs to completion under the
//	lock, including the flush, so readers never observe a half applied
//	mutation. The store is still meant for a single logical writer; there
//	are no transactions across operations.
//
// Usage Example:
//
//	s := lstore.NewLocalStore(lstore.Options{
//		Persistence: persist.NewSlot(b, persist.Options{}),
//		Logger:      logbook.NewLogger(logbook.LoggerStore),
//	})
//	if err := s.Load(); err != nil {
//		return err
//	}
//	if err := s.CreateDatabase("sales"); err != nil {
//		return err
//	}
package lstore

// Package cmd implements the command-line interface for the jDB document
// store. It provides a hierarchical command structure that opens the
// configured store, runs one operation and writes the result back.
//
// The package is organized into several subpackages:
//
//   - db: Commands for database operations (create, rename, delete, list, reset)
//   - table: Commands for table operations (create, rename, delete, list, fields)
//   - field: Commands for field operations (rename, append, set, replace, get)
//   - join: Commands for the three join variants (tables, databases, into)
//   - inspect: Commands to look at a store (dump, logs, stats, config)
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See jdb -help for a list of all commands.
package cmd

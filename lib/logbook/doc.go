// Package logbook provides the logging collaborators of a jDB store.
//
// Key Components:
//
//   - Package loggers: InitLoggers installs a dragonboat logger factory that
//     writes "LEVEL | package | message" lines to stderr, and NewLogger
//     adapts a named package logger to store.ILogger.
//
//   - Journal: an append-only log persisted next to the store in the same
//     backend (key "logs.txt" by default). Entries are kept as a json array
//     and can be listed or cleared.
//
//   - Tee and Discard: fan out to several loggers, or drop everything.
//
// None of the loggers ever return an error to the store; the store never
// depends on logging for correctness.
package logbook

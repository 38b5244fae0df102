// Package config defines the configuration of a jDB store as assembled by the
// command line (flags, JDB_* environment variables and .env files).
package config

package join

import (
	"fmt"
	"strconv"

	"github.com/ValentinKolb/jDB/lib/store"
)

// --------------------------------------------------------------------------
// Policies
// --------------------------------------------------------------------------

// Strategy selects how a destination name is chosen for a field that is
// already bound by an earlier source.
type Strategy int

const (
	// PerFieldCounter names the n-th occurrence of a field "<field>repeat<n-1>".
	// The generated name is not checked against the destination, so a later
	// binding may overwrite an earlier one.
	PerFieldCounter Strategy = iota
	// SharedRetry starts a counter at 1 and increments it before every attempt,
	// trying "<field>repeat<k>" until the name is free. The first generated
	// name is therefore "<field>repeat2".
	SharedRetry
)

func (s Strategy) String() string {
	switch s {
	case PerFieldCounter:
		return "per-field-counter"
	case SharedRetry:
		return "shared-retry"
	default:
		return "unknown"
	}
}

// Order selects the nesting of the merge loops.
type Order int

const (
	// FieldMajor iterates the requested fields outer and the sources inner.
	FieldMajor Order = iota
	// SourceMajor iterates the sources outer and the requested fields inner.
	SourceMajor
)

func (o Order) String() string {
	switch o {
	case FieldMajor:
		return "field-major"
	case SourceMajor:
		return "source-major"
	default:
		return "unknown"
	}
}

// MissingPolicy selects what happens when a named source does not exist.
type MissingPolicy int

const (
	// FailOnMissing aborts the whole join with store.RetCNotFound.
	FailOnMissing MissingPolicy = iota
	// SkipMissing ignores the missing source.
	SkipMissing
)

func (p MissingPolicy) String() string {
	switch p {
	case FailOnMissing:
		return "fail"
	case SkipMissing:
		return "skip"
	default:
		return "unknown"
	}
}

// Plan bundles the policies of one join operation.
type Plan struct {
	Order           Order
	Strategy        Strategy
	MissingDatabase MissingPolicy
	MissingTable    MissingPolicy
}

func (p Plan) String() string {
	return fmt.Sprintf("order=%s strategy=%s missing-db=%s missing-table=%s",
		p.Order, p.Strategy, p.MissingDatabase, p.MissingTable)
}

// The plans used by the store operations.
var (
	// WithinDatabase is used by IStore.JoinTables.
	WithinDatabase = Plan{
		Order:           FieldMajor,
		Strategy:        PerFieldCounter,
		MissingDatabase: FailOnMissing,
		MissingTable:    FailOnMissing,
	}
	// IntoNewDatabase is used by IStore.JoinDatabases.
	IntoNewDatabase = Plan{
		Order:           SourceMajor,
		Strategy:        SharedRetry,
		MissingDatabase: FailOnMissing,
		MissingTable:    SkipMissing,
	}
	// IntoExistingDatabase is used by IStore.JoinIntoDatabase.
	IntoExistingDatabase = Plan{
		Order:           SourceMajor,
		Strategy:        SharedRetry,
		MissingDatabase: SkipMissing,
		MissingTable:    SkipMissing,
	}
)

// --------------------------------------------------------------------------
// Sources
// --------------------------------------------------------------------------

// Source is a resolved source table.
type Source struct {
	Database string
	Table    string
	Fields   store.Table
}

// Sources resolves every (database, table) pair against root, databases outer
// and tables inner. Missing databases and tables are handled according to
// the plan. No state is modified.
func Sources(root store.Root, dbs, tables []string, plan Plan) ([]Source, error) {
	sources := make([]Source, 0, len(dbs)*len(tables))
	for _, dbName := range dbs {
		db, ok := root[dbName]
		if !ok {
			if plan.MissingDatabase == FailOnMissing {
				return nil, store.NewError(store.RetCNotFound, fmt.Sprintf("Database '%s' does not exist.", dbName))
			}
			continue
		}
		for _, tableName := range tables {
			table, ok := db[tableName]
			if !ok {
				if plan.MissingTable == FailOnMissing {
					return nil, store.NewError(store.RetCNotFound, fmt.Sprintf("Table '%s' does not exist in database '%s'.", tableName, dbName))
				}
				continue
			}
			sources = append(sources, Source{Database: dbName, Table: tableName, Fields: table})
		}
	}
	return sources, nil
}

// --------------------------------------------------------------------------
// Merge
// --------------------------------------------------------------------------

// Merge builds a new table from the requested fields of the sources.
// The first occurrence of a field keeps its name, later occurrences are
// renamed according to the plan's strategy. The records of the result are
// deep copies, so mutating a source never changes the merged table.
func Merge(sources []Source, fields []string, plan Plan) store.Table {
	dest := make(store.Table)
	b := newBinder(plan.Strategy, dest)

	switch plan.Order {
	case SourceMajor:
		for _, src := range sources {
			for _, field := range fields {
				if records, ok := src.Fields[field]; ok {
					b.bind(field, records)
				}
			}
		}
	default:
		for _, field := range fields {
			for _, src := range sources {
				if records, ok := src.Fields[field]; ok {
					b.bind(field, records)
				}
			}
		}
	}
	return dest
}

// binder assigns destination names to source fields.
type binder struct {
	strategy Strategy
	dest     store.Table
	seen     map[string]int // occurrences per field (PerFieldCounter)
}

func newBinder(strategy Strategy, dest store.Table) *binder {
	return &binder{
		strategy: strategy,
		dest:     dest,
		seen:     make(map[string]int),
	}
}

func (b *binder) bind(field string, records store.Field) {
	b.dest[b.name(field)] = records.Clone()
}

func (b *binder) name(field string) string {
	switch b.strategy {
	case SharedRetry:
		if _, taken := b.dest[field]; !taken {
			return field
		}
		name := field
		k := 1
		for {
			if _, taken := b.dest[name]; !taken {
				return name
			}
			k++
			name = repeatName(field, k)
		}
	default:
		b.seen[field]++
		if n := b.seen[field]; n > 1 {
			return repeatName(field, n-1)
		}
		return field
	}
}

// repeatName returns the disambiguated name for the k-th repetition of field.
func repeatName(field string, k int) string {
	return field + "repeat" + strconv.Itoa(k)
}

package inspect

import (
	"fmt"
	"strings"

	"github.com/ValentinKolb/jDB/lib/store"
)

// Summary counts the elements of a store
type Summary struct {
	Databases int
	Tables    int
	Fields    int
	Records   int
}

// Summarize counts the databases, tables, fields and records of root
func Summarize(root store.Root) Summary {
	var s Summary
	s.Databases = len(root)
	for _, db := range root {
		s.Tables += len(db)
		for _, table := range db {
			s.Fields += len(table)
			for _, field := range table {
				s.Records += len(field)
			}
		}
	}
	return s
}

// String returns the summary in the same layout as the configuration output
func (s Summary) String() string {
	var sb strings.Builder
	sb.WriteString("\nSTORE\n")
	for _, row := range []struct {
		name  string
		count int
	}{
		{"Databases", s.Databases},
		{"Tables", s.Tables},
		{"Fields", s.Fields},
		{"Records", s.Records},
	} {
		sb.WriteString(fmt.Sprintf("  %-22s: %d\n", row.name, row.count))
	}
	return sb.String()
}

package inspect

import (
	"testing"

	"github.com/ValentinKolb/jDB/lib/store"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	root := store.Root{
		"empty": store.Database{},
		"sales": store.Database{
			"orders": store.Table{
				"id":   store.Field{{Index: 0, Value: 1.0}, {Index: 1, Value: 2.0}},
				"note": store.Field{},
			},
			"returns": store.Table{"id": store.Field{{Index: 0, Value: 1.0}}},
		},
	}

	s := Summarize(root)
	assert.Equal(t, Summary{Databases: 2, Tables: 2, Fields: 3, Records: 3}, s)
	assert.Contains(t, s.String(), "  Records               : 3\n")
	assert.Equal(t, Summary{}, Summarize(nil))
}

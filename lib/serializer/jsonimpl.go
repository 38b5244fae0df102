package serializer

import (
	"encoding/json"

	"github.com/ValentinKolb/jDB/lib/store"
)

// NewJSONSerializer creates a new serializer using indented json encoding
func NewJSONSerializer() store.ISerializer {
	return &jsonSerializerImpl{}
}

// jsonSerializerImpl implements the store.ISerializer interface using json encoding
type jsonSerializerImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store.ISerializer)
// --------------------------------------------------------------------------

func (j jsonSerializerImpl) Serialize(root store.Root) ([]byte, error) {
	if root == nil {
		root = store.Root{}
	}
	return json.MarshalIndent(root, "", "  ")
}

func (j jsonSerializerImpl) Deserialize(b []byte, root *store.Root) error {
	var decoded store.Root
	// unlike a json.Decoder, Unmarshal rejects data after the first value
	if err := json.Unmarshal(b, &decoded); err != nil {
		return err
	}
	if decoded == nil {
		decoded = store.Root{}
	}
	// null levels decode to nil maps and slices, which callers cannot write to
	for dbName, db := range decoded {
		if db == nil {
			db = store.Database{}
			decoded[dbName] = db
		}
		for tableName, table := range db {
			if table == nil {
				table = store.Table{}
				db[tableName] = table
			}
			for fieldName, field := range table {
				if field == nil {
					table[fieldName] = store.Field{}
				}
			}
		}
	}
	*root = decoded
	return nil
}

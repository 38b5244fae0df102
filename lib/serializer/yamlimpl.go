package serializer

import (
	"fmt"

	"github.com/ValentinKolb/jDB/lib/store"
	"gopkg.in/yaml.v3"
)

// NewYAMLSerializer creates a new serializer using yaml encoding.
// Records are written as 2-element sequences like in the json format.
func NewYAMLSerializer() store.ISerializer {
	return &yamlSerializerImpl{}
}

// yamlSerializerImpl implements the store.ISerializer interface using yaml encoding
type yamlSerializerImpl struct {
}

// yamlRoot mirrors store.Root with records as plain sequences
type yamlRoot map[string]map[string]map[string][][]any

// --------------------------------------------------------------------------
// Interface Methods (docu see store.ISerializer)
// --------------------------------------------------------------------------

func (y yamlSerializerImpl) Serialize(root store.Root) ([]byte, error) {
	out := make(yamlRoot, len(root))
	for dbName, db := range root {
		tables := make(map[string]map[string][][]any, len(db))
		for tableName, table := range db {
			fields := make(map[string][][]any, len(table))
			for fieldName, field := range table {
				records := make([][]any, len(field))
				for i, rec := range field {
					records[i] = []any{rec.Index, rec.Value}
				}
				fields[fieldName] = records
			}
			tables[tableName] = fields
		}
		out[dbName] = tables
	}
	return yaml.Marshal(out)
}

func (y yamlSerializerImpl) Deserialize(b []byte, root *store.Root) error {
	var in yamlRoot
	if err := yaml.Unmarshal(b, &in); err != nil {
		return err
	}

	decoded := make(store.Root, len(in))
	for dbName, tables := range in {
		db := make(store.Database, len(tables))
		for tableName, fields := range tables {
			table := make(store.Table, len(fields))
			for fieldName, records := range fields {
				field := make(store.Field, 0, len(records))
				for i, raw := range records {
					rec, err := decodeYAMLRecord(raw)
					if err != nil {
						return fmt.Errorf("%s.%s.%s[%d]: %w", dbName, tableName, fieldName, i, err)
					}
					field = append(field, rec)
				}
				table[fieldName] = field
			}
			db[tableName] = table
		}
		decoded[dbName] = db
	}
	*root = decoded
	return nil
}

// decodeYAMLRecord converts a decoded [index, value] sequence to a record.
// yaml decodes integers as int, so the value is normalized to the json data model.
func decodeYAMLRecord(raw []any) (store.Record, error) {
	if len(raw) != 2 {
		return store.Record{}, fmt.Errorf("record must have exactly 2 elements, got %d", len(raw))
	}
	index, ok := raw[0].(int)
	if !ok {
		return store.Record{}, fmt.Errorf("record index must be an integer, got %T", raw[0])
	}
	value, err := store.NormalizeValue(raw[1])
	if err != nil {
		return store.Record{}, err
	}
	return store.Record{Index: index, Value: value}, nil
}

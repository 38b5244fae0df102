package serializer

import (
	"reflect"
	"testing"

	"github.com/ValentinKolb/jDB/lib/store"
	"github.com/sebdah/goldie/v2"
)

// testSerializers is a map of serializer name to factory function
var testSerializers = map[string]func() store.ISerializer{
	"JSON": NewJSONSerializer,
	"YAML": NewYAMLSerializer,
}

// testRoots creates a set of stores with different shapes
func testRoots() []store.Root {
	return []store.Root{
		// Empty store
		{},

		// Empty database and empty table
		{
			"empty": store.Database{},
			"shop":  store.Database{"orders": store.Table{}},
		},

		// Field without records
		{
			"shop": store.Database{"orders": store.Table{"id": store.Field{}}},
		},

		// All kinds of values
		{
			"shop": store.Database{
				"orders": store.Table{
					"id": store.Field{
						{Index: 0, Value: float64(1)},
						{Index: 1, Value: float64(2.5)},
					},
					"meta": store.Field{
						{Index: 0, Value: nil},
						{Index: 1, Value: true},
						{Index: 2, Value: "text with: colon"},
						{Index: 3, Value: []any{"a", float64(1), false}},
						{Index: 4, Value: map[string]any{"nested": map[string]any{"n": float64(-3)}}},
						{Index: 5, Value: "true"},
					},
				},
			},
		},

		// Index tags that do not match the position
		{
			"db": store.Database{
				"t": store.Table{"f": store.Field{{Index: 7, Value: "x"}, {Index: 2, Value: "y"}}},
			},
		},
	}
}

// TestSerializerRoundTrip tests that stores can be serialized and deserialized correctly
func TestSerializerRoundTrip(t *testing.T) {
	roots := testRoots()

	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			serializer := factory()

			for i, root := range roots {
				// Serialize
				data, err := serializer.Serialize(root)
				if err != nil {
					t.Errorf("Failed to serialize store %d: %v", i, err)
					continue
				}

				// Deserialize
				var result store.Root
				err = serializer.Deserialize(data, &result)
				if err != nil {
					t.Errorf("Failed to deserialize store %d: %v", i, err)
					continue
				}

				// Compare
				if !reflect.DeepEqual(root, result) {
					t.Errorf("Store %d doesn't match after round trip:\nOriginal: %+v\nResult: %+v",
						i, root, result)
				}
			}
		})
	}
}

// TestSerializeNilRoot tests that a nil root is written as an empty store
func TestSerializeNilRoot(t *testing.T) {
	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			serializer := factory()
			data, err := serializer.Serialize(nil)
			if err != nil {
				t.Fatalf("Failed to serialize: %v", err)
			}
			var result store.Root
			if err := serializer.Deserialize(data, &result); err != nil {
				t.Fatalf("Failed to deserialize: %v", err)
			}
			if result == nil || len(result) != 0 {
				t.Errorf("Expected empty non-nil store, got %#v", result)
			}
		})
	}
}

// TestJSONFormat pins the on-disk json layout
func TestJSONFormat(t *testing.T) {
	root := store.Root{
		"sales": store.Database{
			"orders": store.Table{
				"amount": store.Field{
					{Index: 0, Value: 12.5},
					{Index: 1, Value: float64(3)},
				},
				"customer": store.Field{
					{Index: 0, Value: "ada"},
					{Index: 1, Value: map[string]any{"vip": true}},
				},
				"note": store.Field{},
			},
		},
	}

	data, err := NewJSONSerializer().Serialize(root)
	if err != nil {
		t.Fatalf("Failed to serialize: %v", err)
	}

	g := goldie.New(t)
	g.Assert(t, "json_format", data)
}

// TestInvalidData tests how the serializers handle corrupt or invalid data
func TestInvalidData(t *testing.T) {
	testCases := []struct {
		name       string
		serializer store.ISerializer
		data       []byte
	}{
		{
			name:       "JSON garbage",
			serializer: NewJSONSerializer(),
			data:       []byte("U2FsdGVkX1"),
		},
		{
			name:       "JSON record too short",
			serializer: NewJSONSerializer(),
			data:       []byte(`{"db":{"t":{"f":[[0]]}}}`),
		},
		{
			name:       "JSON record index not an integer",
			serializer: NewJSONSerializer(),
			data:       []byte(`{"db":{"t":{"f":[["0","x"]]}}}`),
		},
		{
			name:       "JSON top level array",
			serializer: NewJSONSerializer(),
			data:       []byte(`[1,2]`),
		},
		{
			name:       "JSON trailing garbage",
			serializer: NewJSONSerializer(),
			data:       []byte(`{} junk`),
		},
		{
			name:       "JSON concatenated documents",
			serializer: NewJSONSerializer(),
			data:       []byte(`{"a":{}}{"b":{}}`),
		},
		{
			name:       "JSON truncated",
			serializer: NewJSONSerializer(),
			data:       []byte(`{"db":{"t":`),
		},
		{
			name:       "YAML record too long",
			serializer: NewYAMLSerializer(),
			data:       []byte("db:\n  t:\n    f:\n      - [0, a, b]\n"),
		},
		{
			name:       "YAML record index not an integer",
			serializer: NewYAMLSerializer(),
			data:       []byte("db:\n  t:\n    f:\n      - [x, a]\n"),
		},
		{
			name:       "YAML wrong nesting",
			serializer: NewYAMLSerializer(),
			data:       []byte("db: [1, 2]\n"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var root store.Root
			if err := tc.serializer.Deserialize(tc.data, &root); err == nil {
				t.Errorf("Expected error but got none")
			}
		})
	}
}

// TestJSONTrailingWhitespace tests that a final newline is not mistaken for garbage
func TestJSONTrailingWhitespace(t *testing.T) {
	var root store.Root
	if err := NewJSONSerializer().Deserialize([]byte("{\"db\":{}}\n\n"), &root); err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}
	if !reflect.DeepEqual(root, store.Root{"db": store.Database{}}) {
		t.Errorf("Unexpected root: %#v", root)
	}
}

// TestNew tests the serializer lookup by name
func TestNew(t *testing.T) {
	for _, name := range []Name{NameJSON, NameYAML} {
		if _, err := New(name); err != nil {
			t.Errorf("New(%s) failed: %v", name, err)
		}
	}
	if _, err := New("binary"); err == nil {
		t.Errorf("Expected error for unknown serializer")
	}
}

// TestJSONNullLevels tests that null databases, tables and fields decode as empty containers
func TestJSONNullLevels(t *testing.T) {
	data := []byte(`{"a": null, "b": {"t": null, "u": {"f": null}}}`)

	var result store.Root
	if err := NewJSONSerializer().Deserialize(data, &result); err != nil {
		t.Fatalf("Failed to deserialize: %v", err)
	}

	expected := store.Root{
		"a": store.Database{},
		"b": store.Database{
			"t": store.Table{},
			"u": store.Table{"f": store.Field{}},
		},
	}
	if !reflect.DeepEqual(expected, result) {
		t.Errorf("Unexpected result:\nExpected: %#v\nResult: %#v", expected, result)
	}
}

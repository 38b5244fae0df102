package serializer

import (
	"fmt"

	"github.com/ValentinKolb/jDB/lib/store"
)

// Name identifies a serializer implementation.
type Name string

const (
	NameJSON Name = "json"
	NameYAML Name = "yaml"
)

// New creates the serializer with the given name.
func New(name Name) (store.ISerializer, error) {
	switch name {
	case NameJSON:
		return NewJSONSerializer(), nil
	case NameYAML:
		return NewYAMLSerializer(), nil
	default:
		return nil, fmt.Errorf("invalid serializer %s (expected one of: json, yaml)", name)
	}
}

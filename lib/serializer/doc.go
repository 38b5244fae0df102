// Package serializer converts the whole state of a jDB store (a store.Root)
// from and to a single blob. It provides a common constructor and multiple
// implementations of the store.ISerializer interface.
//
// Key Components:
//
//   - jsonSerializerImpl: Indented JSON. Records are written as [index, value]
//     arrays. This is the default format and the one other tools expect.
//
//   - yamlSerializerImpl: YAML with the same nesting. Handy for dumps that are
//     read by humans. Integer values are normalized back to the JSON number
//     model on load, so a YAML round trip yields the same store as a JSON one.
//
// Thread Safety:
//
//	All serializer implementations are stateless and safe for concurrent use
//	across multiple goroutines without additional synchronization.
//
// Usage:
//
//	s, err := serializer.New(serializer.NameJSON)
//	data, err := s.Serialize(root)
//	var loaded store.Root
//	err = s.Deserialize(data, &loaded)
package serializer

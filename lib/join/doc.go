// Package join implements the merge algorithm behind the store's join
// operations: a new table is built from the requested fields of several
// source tables, possibly spread over several databases.
//
// When more than one source contains a requested field, the first occurrence
// keeps the field name and every later occurrence receives a disambiguated
// "<field>repeat<k>" name. Two strategies exist and both are kept:
//
//   - PerFieldCounter: k is the occurrence count of the field minus one,
//     without checking whether the generated name is already bound.
//   - SharedRetry: k starts at 1 and is incremented before each attempt
//     until a free name is found, so the first repetition is "<field>repeat2".
//
// A Plan combines a Strategy with the loop Order and with the policies for
// missing databases and tables. WithinDatabase, IntoNewDatabase and
// IntoExistingDatabase are the plans of the three store operations.
//
// Usage Example:
//
//	sources, err := join.Sources(root, []string{"shop"}, []string{"orders", "returns"}, join.WithinDatabase)
//	if err != nil {
//		return err
//	}
//	merged := join.Merge(sources, []string{"id", "amount"}, join.WithinDatabase)
package join

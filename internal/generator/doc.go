// Package generator holds the synthetic treasury dataset generators.
//
// Each Generate* function is independent and stateless: it validates its
// parameters, builds a fresh random.Source from the seed, and returns typed
// records. The matching *Table function converts records into a
// table.Table with a fixed schema. Identical parameters always yield
// identical output.
package generator

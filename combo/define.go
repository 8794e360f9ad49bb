// Package combo models shader combo axes: named integer-valued defines
// and the generator that enumerates their Cartesian product.
package combo

// Define is one axis of a shader's combo space: a named integer interval
// with a static/dynamic classification. Immutable after construction.
type Define struct {
	Name   string
	Min    int32
	Max    int32
	Static bool
}

// Cardinality returns the number of values on the axis, Max - Min + 1.
func (d Define) Cardinality() uint64 {
	return uint64(int64(d.Max) - int64(d.Min) + 1)
}

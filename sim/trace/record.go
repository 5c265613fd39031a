// Package trace provides reaction-firing recording for run analysis.
// This package has no dependencies on sim/ — it stores pure data types.
package trace

// FiringRecord captures one application of a reaction. Exact methods always
// record Count 1; tau-leaping records the Poisson count of the leap.
type FiringRecord struct {
	Time     float64
	Reaction int // 0-based reaction index
	Count    int64
}

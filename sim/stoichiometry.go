package sim

import (
	"fmt"
	"slices"
)

// Stoichiometry is an immutable reaction-by-species matrix of net count
// changes. Row k is applied whenever reaction k fires.
type Stoichiometry struct {
	rows    [][]int64
	species int
}

// NewStoichiometry copies rows into a Stoichiometry. Rows must be non-empty
// and all of the same length.
func NewStoichiometry(rows [][]int64) (*Stoichiometry, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: stoichiometry has no reactions", ErrConfiguration)
	}
	width := len(rows[0])
	if width == 0 {
		return nil, fmt.Errorf("%w: stoichiometry has no species columns", ErrConfiguration)
	}
	copied := make([][]int64, len(rows))
	for k, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: stoichiometry row %d has %d columns, want %d", ErrConfiguration, k, len(row), width)
		}
		copied[k] = slices.Clone(row)
	}
	return &Stoichiometry{rows: copied, species: width}, nil
}

// Reactions returns the number of rows.
func (s *Stoichiometry) Reactions() int { return len(s.rows) }

// Species returns the number of columns.
func (s *Stoichiometry) Species() int { return s.species }

// Row returns a copy of reaction k's row.
func (s *Stoichiometry) Row(k int) []int64 { return slices.Clone(s.rows[k]) }

// row returns the stored row without copying; callers must not modify it.
func (s *Stoichiometry) row(k int) []int64 { return s.rows[k] }

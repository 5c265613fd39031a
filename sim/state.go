package sim

import (
	"fmt"
	"slices"
)

// State holds nonnegative integer species counts in a fixed species order.
// The key set never changes after construction; counts only change through
// whole stoichiometric rows applied by an engine.
type State struct {
	names  []string
	index  map[string]int
	counts []int64
}

// NewState creates a State with species in the given order.
// Names must be unique and non-empty, counts nonnegative.
func NewState(names []string, counts []int64) (*State, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: state has no species", ErrConfiguration)
	}
	if len(names) != len(counts) {
		return nil, fmt.Errorf("%w: %d species names but %d counts", ErrConfiguration, len(names), len(counts))
	}
	index := make(map[string]int, len(names))
	for i, name := range names {
		if name == "" {
			return nil, fmt.Errorf("%w: species %d has an empty name", ErrConfiguration, i)
		}
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("%w: duplicate species %q", ErrConfiguration, name)
		}
		if counts[i] < 0 {
			return nil, fmt.Errorf("%w: species %q has negative count %d", ErrConfiguration, name, counts[i])
		}
		index[name] = i
	}
	return &State{
		names:  slices.Clone(names),
		index:  index,
		counts: slices.Clone(counts),
	}, nil
}

// StateFromMap builds a State whose species follow order.
// Every species in order must be present in counts and vice versa.
func StateFromMap(order []string, counts map[string]int64) (*State, error) {
	if len(order) != len(counts) {
		return nil, fmt.Errorf("%w: order lists %d species, counts has %d", ErrConfiguration, len(order), len(counts))
	}
	values := make([]int64, len(order))
	for i, name := range order {
		n, ok := counts[name]
		if !ok {
			return nil, fmt.Errorf("%w: no count for species %q", ErrConfiguration, name)
		}
		values[i] = n
	}
	return NewState(order, values)
}

// Get returns the count of the named species. Unknown names panic, since
// propensities referencing a species the network does not have are a
// model bug.
func (s *State) Get(name string) int64 {
	i, ok := s.index[name]
	if !ok {
		panic(fmt.Sprintf("sim: unknown species %q", name))
	}
	return s.counts[i]
}

// Index returns the position of the named species and whether it exists.
func (s *State) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// At returns the count of the i-th species.
func (s *State) At(i int) int64 { return s.counts[i] }

// Len returns the number of species.
func (s *State) Len() int { return len(s.counts) }

// Names returns a copy of the species order.
func (s *State) Names() []string { return slices.Clone(s.names) }

// Counts returns a snapshot of the counts in species order.
func (s *State) Counts() []int64 { return slices.Clone(s.counts) }

// Clone returns an independent copy. The name index is shared because it
// is never mutated.
func (s *State) Clone() *State {
	return &State{
		names:  s.names,
		index:  s.index,
		counts: slices.Clone(s.counts),
	}
}

// applyRow adds n copies of a stoichiometric row to every species at once.
func (s *State) applyRow(row []int64, n int64) {
	for i, coeff := range row {
		s.counts[i] += coeff * n
	}
}

// clampNegative sets negative counts to zero and reports how many were set.
func (s *State) clampNegative() int {
	clamped := 0
	for i, n := range s.counts {
		if n < 0 {
			s.counts[i] = 0
			clamped++
		}
	}
	return clamped
}

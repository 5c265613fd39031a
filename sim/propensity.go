package sim

// Propensity evaluates the instantaneous firing rate of one reaction.
// Implementations must be pure functions of the state and never return a
// negative rate for a reachable state; engines do not check.
type Propensity interface {
	Evaluate(x *State) (float64, error)
}

// PropensityFunc adapts a plain rate law that cannot fail.
type PropensityFunc func(x *State) float64

// Evaluate calls f.
func (f PropensityFunc) Evaluate(x *State) (float64, error) { return f(x), nil }

// FalliblePropensityFunc adapts a rate law that can report a model fault.
type FalliblePropensityFunc func(x *State) (float64, error)

// Evaluate calls f.
func (f FalliblePropensityFunc) Evaluate(x *State) (float64, error) { return f(x) }

// PropensitySet lists one propensity per reaction, indexed like the
// stoichiometry rows.
type PropensitySet []Propensity

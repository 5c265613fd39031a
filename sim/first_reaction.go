package sim

import "math"

// FirstReaction implements Gillespie's first reaction method. Every step
// draws a fresh candidate time for each reaction and fires the earliest;
// the unused candidates are discarded.
type FirstReaction struct {
	network
	candidates []float64
}

// NewFirstReaction builds a first-reaction engine over a private copy of x0.
func NewFirstReaction(stoich *Stoichiometry, props PropensitySet, x0 *State, src RandomSource, opts ...Option) (*FirstReaction, error) {
	n, err := newNetwork(MethodFirstReaction, stoich, props, x0, src, opts)
	if err != nil {
		return nil, err
	}
	return &FirstReaction{network: n, candidates: make([]float64, len(props))}, nil
}

// Sim runs until the earliest candidate falls after tEnd or no reaction has
// positive propensity.
func (e *FirstReaction) Sim(tEnd float64) (*Trajectory, error) {
	traj, err := e.begin(tEnd)
	if err != nil {
		return nil, err
	}
	t := 0.0
	for {
		if _, err := e.evaluate(); err != nil {
			return nil, err
		}
		for k, w := range e.rates {
			if w > 0 {
				e.candidates[k] = e.src.Exponential(1 / w)
			} else {
				e.candidates[k] = math.Inf(1)
			}
		}

		k, tk := argmin(e.candidates)
		if k < 0 {
			traj.Absorbed = true
			break
		}
		if t+tk > tEnd {
			break
		}
		t += tk
		e.fire(k, 1, t)
		traj.record(t, e.x)
	}
	e.finish(traj)
	return traj, nil
}

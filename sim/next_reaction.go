package sim

import "math"

// NextReaction implements the modified next reaction method. Each reaction
// k carries an internal clock T_k (integrated propensity) and the next
// epoch P_k of its unit-rate Poisson process. Only the reaction that fires
// gets a new exponential draw.
type NextReaction struct {
	network
	epochs []float64 // P_k
	clocks []float64 // T_k
	deltas []float64

	// observe, when set, sees the chosen delta and the updated P and T
	// after every firing.
	observe func(delta float64, epochs, clocks []float64)
}

// NewNextReaction builds a modified-next-reaction engine over a private copy
// of x0.
func NewNextReaction(stoich *Stoichiometry, props PropensitySet, x0 *State, src RandomSource, opts ...Option) (*NextReaction, error) {
	n, err := newNetwork(MethodNextReaction, stoich, props, x0, src, opts)
	if err != nil {
		return nil, err
	}
	r := len(props)
	return &NextReaction{
		network: n,
		epochs:  make([]float64, r),
		clocks:  make([]float64, r),
		deltas:  make([]float64, r),
	}, nil
}

// Sim runs until the next firing would fall after tEnd or no reaction has
// positive propensity.
func (e *NextReaction) Sim(tEnd float64) (*Trajectory, error) {
	traj, err := e.begin(tEnd)
	if err != nil {
		return nil, err
	}
	for k := range e.epochs {
		e.epochs[k] = e.src.Exponential(1)
		e.clocks[k] = 0
	}

	t := 0.0
	for {
		if _, err := e.evaluate(); err != nil {
			return nil, err
		}
		for k, w := range e.rates {
			if w > 0 {
				// Rounding in the clock update can leave P_k a hair below T_k.
				e.deltas[k] = math.Max(0, (e.epochs[k]-e.clocks[k])/w)
			} else {
				e.deltas[k] = math.Inf(1)
			}
		}

		k, delta := argmin(e.deltas)
		if k < 0 {
			traj.Absorbed = true
			break
		}
		if t+delta > tEnd {
			break
		}

		// Clocks advance with the propensities frozen at the start of the step.
		for m, w := range e.rates {
			e.clocks[m] += w * delta
		}
		e.epochs[k] += e.src.Exponential(1)

		t += delta
		e.fire(k, 1, t)
		traj.record(t, e.x)
		if e.observe != nil {
			e.observe(delta, e.epochs, e.clocks)
		}
	}
	e.finish(traj)
	return traj, nil
}

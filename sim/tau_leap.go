package sim

import (
	"fmt"
	"math"
)

// TauLeap implements explicit tau-leaping with a fixed step. Each leap fires
// a Poisson number of every reaction using propensities frozen at the start
// of the leap, then applies all of them together.
type TauLeap struct {
	network
	tau    float64
	firing []int64
}

// NewTauLeap builds a tau-leaping engine over a private copy of x0.
// tau must be positive and finite.
func NewTauLeap(stoich *Stoichiometry, props PropensitySet, x0 *State, src RandomSource, tau float64, opts ...Option) (*TauLeap, error) {
	if math.IsNaN(tau) || math.IsInf(tau, 0) || tau <= 0 {
		return nil, fmt.Errorf("%w: %s: tau must be positive, got %v", ErrConfiguration, MethodTauLeap, tau)
	}
	n, err := newNetwork(MethodTauLeap, stoich, props, x0, src, opts)
	if err != nil {
		return nil, err
	}
	return &TauLeap{network: n, tau: tau, firing: make([]int64, len(props))}, nil
}

// Tau returns the leap size.
func (e *TauLeap) Tau() float64 { return e.tau }

// Sim leaps until the next leap would pass tEnd or no reaction has
// propensity left. Negative counts produced by a leap are clamped to zero;
// they are an artefact of the approximation, not an error. Leap i lands at
// exactly i*tau, so the leap count can exceed that of accumulating t += tau.
func (e *TauLeap) Sim(tEnd float64) (*Trajectory, error) {
	traj, err := e.begin(tEnd)
	if err != nil {
		return nil, err
	}
	for step := 1; ; step++ {
		// Multiplying avoids the drift of repeated t += tau.
		t := float64(step) * e.tau
		if t > tEnd {
			break
		}
		total, err := e.evaluate()
		if err != nil {
			return nil, err
		}
		if total == 0 {
			traj.Absorbed = true
			break
		}

		for k, w := range e.rates {
			lambda := w * e.tau
			if lambda < 0 {
				e.firing[k] = 0
				continue
			}
			e.firing[k] = e.src.Poisson(lambda)
		}
		for k, count := range e.firing {
			if count != 0 {
				e.fire(k, count, t)
			}
		}
		traj.Clamped += e.x.clampNegative()
		traj.record(t, e.x)
	}
	e.finish(traj)
	return traj, nil
}

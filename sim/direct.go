package sim

// DirectMethod implements Gillespie's direct method: one exponential waiting
// time from the total propensity, then one uniform draw to pick the reaction.
type DirectMethod struct {
	network
}

// NewDirectMethod builds a direct-method engine over a private copy of x0.
func NewDirectMethod(stoich *Stoichiometry, props PropensitySet, x0 *State, src RandomSource, opts ...Option) (*DirectMethod, error) {
	n, err := newNetwork(MethodDirect, stoich, props, x0, src, opts)
	if err != nil {
		return nil, err
	}
	return &DirectMethod{network: n}, nil
}

// Sim runs until the next event would fall after tEnd or the state is
// absorbing.
func (e *DirectMethod) Sim(tEnd float64) (*Trajectory, error) {
	traj, err := e.begin(tEnd)
	if err != nil {
		return nil, err
	}
	t := 0.0
	for {
		w0, err := e.evaluate()
		if err != nil {
			return nil, err
		}
		if w0 == 0 {
			traj.Absorbed = true
			break
		}
		wait := e.src.Exponential(1 / w0)
		if t+wait > tEnd {
			break
		}
		t += wait

		k := selectReaction(e.rates, w0, e.src.Uniform())
		e.fire(k, 1, t)
		traj.record(t, e.x)
	}
	e.finish(traj)
	return traj, nil
}

// selectReaction returns the smallest k with positive rate whose cumulative
// normalised propensity reaches u. If rounding leaves the total just short
// of u, the last reaction with positive rate is chosen.
func selectReaction(rates []float64, w0, u float64) int {
	cum := 0.0
	last := -1
	for k, w := range rates {
		if w <= 0 {
			continue
		}
		cum += w / w0
		last = k
		if cum >= u {
			return k
		}
	}
	return last
}

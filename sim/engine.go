package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/kinetic-sim/kinetic-sim/sim/trace"
)

// Engine runs one stochastic simulation up to a time horizon.
// Each implementation is single-use: it owns a private copy of the initial
// state and refuses a second Sim call.
type Engine interface {
	Sim(tEnd float64) (*Trajectory, error)
}

// Method names a simulation algorithm.
type Method string

const (
	// MethodDirect is Gillespie's direct method.
	MethodDirect Method = "ssa"
	// MethodFirstReaction is Gillespie's first reaction method.
	MethodFirstReaction Method = "frm"
	// MethodNextReaction is Anderson's modified next reaction method.
	MethodNextReaction Method = "mnrm"
	// MethodTauLeap is fixed-step explicit tau-leaping.
	MethodTauLeap Method = "tau-leap"
)

// methodAliases maps accepted spellings to canonical methods.
var methodAliases = map[string]Method{
	"ssa":       MethodDirect,
	"direct":    MethodDirect,
	"gillespie": MethodDirect,
	"frm":       MethodFirstReaction,
	"first":     MethodFirstReaction,
	"mnrm":      MethodNextReaction,
	"next":      MethodNextReaction,
	"tau-leap":  MethodTauLeap,
	"taulp":     MethodTauLeap,
	"tau":       MethodTauLeap,
}

// Methods lists the canonical method names in a stable order.
func Methods() []Method {
	return []Method{MethodDirect, MethodFirstReaction, MethodNextReaction, MethodTauLeap}
}

// ParseMethod resolves a method name or alias.
func ParseMethod(name string) (Method, error) {
	m, ok := methodAliases[name]
	if !ok {
		return "", fmt.Errorf("%w: unknown method %q (valid: ssa, frm, mnrm, tau-leap)", ErrConfiguration, name)
	}
	return m, nil
}

// Network bundles the data every engine consumes.
type Network struct {
	Stoichiometry *Stoichiometry
	Propensities  PropensitySet
	Initial       *State
}

// NewEngine builds the engine for method. tau is only read by MethodTauLeap.
func NewEngine(method Method, n Network, src RandomSource, tau float64, opts ...Option) (Engine, error) {
	switch method {
	case MethodDirect:
		return NewDirectMethod(n.Stoichiometry, n.Propensities, n.Initial, src, opts...)
	case MethodFirstReaction:
		return NewFirstReaction(n.Stoichiometry, n.Propensities, n.Initial, src, opts...)
	case MethodNextReaction:
		return NewNextReaction(n.Stoichiometry, n.Propensities, n.Initial, src, opts...)
	case MethodTauLeap:
		return NewTauLeap(n.Stoichiometry, n.Propensities, n.Initial, src, tau, opts...)
	default:
		return nil, fmt.Errorf("%w: unknown method %q", ErrConfiguration, method)
	}
}

// === Options ===

type options struct {
	trace *trace.SimulationTrace
}

// Option configures an engine at construction.
type Option func(*options)

// WithTrace records every firing into st. A nil trace or one at
// TraceLevelNone records nothing.
func WithTrace(st *trace.SimulationTrace) Option {
	return func(o *options) { o.trace = st }
}

// === Shared data contract ===

// network is the per-engine working set. Engines embed it for its data and
// helpers; it carries no algorithm of its own.
type network struct {
	method Method
	stoich *Stoichiometry
	props  PropensitySet
	x      *State
	src    RandomSource
	rates  []float64
	trace  *trace.SimulationTrace
	used   bool
	events int
}

func newNetwork(method Method, stoich *Stoichiometry, props PropensitySet, x0 *State, src RandomSource, opts []Option) (network, error) {
	if stoich == nil || x0 == nil {
		return network{}, fmt.Errorf("%w: %s needs a stoichiometry and an initial state", ErrConfiguration, method)
	}
	if stoich.Reactions() != len(props) {
		return network{}, fmt.Errorf("%w: %s: stoichiometry has %d reactions but %d propensities given",
			ErrConfiguration, method, stoich.Reactions(), len(props))
	}
	if stoich.Species() != x0.Len() {
		return network{}, fmt.Errorf("%w: %s: stoichiometry has %d species columns but state has %d species",
			ErrConfiguration, method, stoich.Species(), x0.Len())
	}
	for k, p := range props {
		if p == nil {
			return network{}, fmt.Errorf("%w: %s: propensity %d is nil", ErrConfiguration, method, k)
		}
	}
	if src == nil {
		return network{}, fmt.Errorf("%w: %s needs a random source", ErrConfiguration, method)
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return network{
		method: method,
		stoich: stoich,
		props:  props,
		x:      x0.Clone(),
		src:    src,
		rates:  make([]float64, len(props)),
		trace:  o.trace,
	}, nil
}

// begin validates the horizon, marks the engine used and opens a trajectory.
func (n *network) begin(tEnd float64) (*Trajectory, error) {
	if n.used {
		return nil, fmt.Errorf("%w: %s", ErrEngineUsed, n.method)
	}
	if math.IsNaN(tEnd) || tEnd <= 0 {
		return nil, fmt.Errorf("%w: %s: horizon must be positive, got %v", ErrConfiguration, n.method, tEnd)
	}
	n.used = true
	return newTrajectory(n.x), nil
}

// evaluate refreshes every propensity from the current state and returns
// their sum. NaN and infinite rates are rejected; negative rates pass through.
func (n *network) evaluate() (float64, error) {
	total := 0.0
	for k, p := range n.props {
		w, err := p.Evaluate(n.x)
		if err != nil {
			return 0, fmt.Errorf("%w: %s: reaction %d: %w", ErrPropensity, n.method, k, err)
		}
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return 0, fmt.Errorf("%w: %s: reaction %d: non-finite rate %v", ErrPropensity, n.method, k, w)
		}
		n.rates[k] = w
		total += w
	}
	return total, nil
}

// fire applies count firings of reaction k as one atomic row update.
func (n *network) fire(k int, count int64, t float64) {
	n.x.applyRow(n.stoich.row(k), count)
	n.events++
	if n.trace != nil {
		n.trace.RecordFiring(trace.FiringRecord{Time: t, Reaction: k, Count: count})
	}
}

func (n *network) finish(traj *Trajectory) {
	if !logrus.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	t, _ := traj.Final()
	logrus.WithFields(logrus.Fields{
		"method":    n.method,
		"snapshots": traj.Len(),
		"firings":   n.events,
		"absorbed":  traj.Absorbed,
		"clamped":   traj.Clamped,
		"last_time": t,
	}).Debug("run finished")
}

// argmin returns the index of the smallest finite value, preferring the
// lowest index on ties, or -1 when every value is +Inf.
func argmin(values []float64) (int, float64) {
	best, bestVal := -1, math.Inf(1)
	for k, v := range values {
		if v < bestVal {
			best, bestVal = k, v
		}
	}
	return best, bestVal
}

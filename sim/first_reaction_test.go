package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinetic-sim/kinetic-sim/sim/internal/testutil"
	"github.com/kinetic-sim/kinetic-sim/sim/trace"
)

func TestFirstReaction_EqualCandidates_LowerIndexFires(t *testing.T) {
	// GIVEN two reactions whose candidate times tie exactly
	n := Network{
		Stoichiometry: mustStoich(t, [][]int64{{-1, 1}, {1, -1}}),
		Propensities:  constRates(2, 2),
		Initial:       mustState(t, []string{"A", "B"}, []int64{5, 5}),
	}
	src := &testutil.ScriptedSource{Exponentials: []float64{0.2, 0.2, 100, 100}}
	e, err := NewFirstReaction(n.Stoichiometry, n.Propensities, n.Initial, src)
	require.NoError(t, err)

	// WHEN simulated
	traj, err := e.Sim(1)
	require.NoError(t, err)

	// THEN reaction 0 fired at the tied time
	require.Equal(t, 2, traj.Len())
	assert.InDelta(t, 0.1, traj.Times[1], 1e-12)
	assert.Equal(t, []int64{4, 6}, traj.States[1])
}

func TestFirstReaction_ResamplesEveryReactionEveryStep(t *testing.T) {
	// GIVEN three reactions, one with zero propensity
	n := Network{
		Stoichiometry: mustStoich(t, [][]int64{{1}, {-1}, {2}}),
		Propensities:  constRates(1, 0, 4),
		Initial:       mustState(t, []string{"A"}, []int64{3}),
	}
	src := &testutil.ScriptedSource{
		// step 1: R0=0.5, R2=0.4·0.25=0.1 → R2; step 2: R0=0.2, R2=0.25 → R0; step 3: both past horizon
		Exponentials: []float64{0.5, 0.4, 0.2, 1.0, 10, 10},
	}
	e, err := NewFirstReaction(n.Stoichiometry, n.Propensities, n.Initial, src)
	require.NoError(t, err)

	traj, err := e.Sim(1)
	require.NoError(t, err)

	// THEN every step draws one candidate per positive-propensity reaction,
	// discarding the losers
	assert.Equal(t, 6, src.Count("exponential"))
	assert.Equal(t, [][]int64{{3}, {5}, {6}}, traj.States)
	assert.InDeltaSlice(t, []float64{0, 0.1, 0.3}, traj.Times, 1e-12)
}

func TestFirstReaction_FiringOrderFromTrace(t *testing.T) {
	n := isomerization(t, 10, 0, 1, 1)
	st := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelFirings})
	e, err := NewFirstReaction(n.Stoichiometry, n.Propensities, n.Initial, NewSource(5), WithTrace(st))
	require.NoError(t, err)

	traj, err := e.Sim(0.5)
	require.NoError(t, err)

	// with B=0 initially the first firing must be A → B
	require.NotEmpty(t, st.Firings)
	assert.Equal(t, 0, st.Firings[0].Reaction)
	assert.Equal(t, traj.Len()-1, len(st.Firings))
}

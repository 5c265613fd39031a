package sim

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinetic-sim/kinetic-sim/sim/trace"
)

const testTau = 1e-3

// newTestEngine builds method on n with a seeded source.
func newTestEngine(t *testing.T, method Method, n Network, seed int64, opts ...Option) Engine {
	t.Helper()
	e, err := NewEngine(method, n, NewSource(seed), testTau, opts...)
	require.NoError(t, err)
	return e
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in   string
		want Method
	}{
		{"ssa", MethodDirect},
		{"gillespie", MethodDirect},
		{"frm", MethodFirstReaction},
		{"mnrm", MethodNextReaction},
		{"tau-leap", MethodTauLeap},
		{"taulp", MethodTauLeap},
	}
	for _, tt := range tests {
		got, err := ParseMethod(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
	_, err := ParseMethod("nrm")
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestNewEngine_ReactionCountMismatch_AllMethods(t *testing.T) {
	// GIVEN two stoichiometry rows but three propensities
	n := isomerization(t, 5, 5, 1, 1)
	n.Propensities = append(n.Propensities, constRates(1)...)

	for _, m := range Methods() {
		t.Run(string(m), func(t *testing.T) {
			_, err := NewEngine(m, n, NewSource(1), testTau)
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}
}

func TestNewEngine_SpeciesCountMismatch_AllMethods(t *testing.T) {
	n := isomerization(t, 5, 5, 1, 1)
	n.Initial = mustState(t, []string{"A", "B", "C"}, []int64{1, 1, 1})

	for _, m := range Methods() {
		t.Run(string(m), func(t *testing.T) {
			_, err := NewEngine(m, n, NewSource(1), testTau)
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}
}

func TestNewEngine_MissingCollaborators_AllMethods(t *testing.T) {
	n := isomerization(t, 5, 5, 1, 1)
	for _, m := range Methods() {
		t.Run(string(m), func(t *testing.T) {
			_, err := NewEngine(m, n, nil, testTau)
			assert.ErrorIs(t, err, ErrConfiguration, "nil source")

			bad := n
			bad.Propensities = PropensitySet{nil, n.Propensities[1]}
			_, err = NewEngine(m, bad, NewSource(1), testTau)
			assert.ErrorIs(t, err, ErrConfiguration, "nil propensity")

			bad = n
			bad.Initial = nil
			_, err = NewEngine(m, bad, NewSource(1), testTau)
			assert.ErrorIs(t, err, ErrConfiguration, "nil state")
		})
	}
}

func TestSim_NonPositiveHorizon_AllMethods(t *testing.T) {
	for _, m := range Methods() {
		for _, tEnd := range []float64{0, -1, math.NaN()} {
			t.Run(fmt.Sprintf("%s/%v", m, tEnd), func(t *testing.T) {
				e := newTestEngine(t, m, isomerization(t, 5, 5, 1, 1), 1)
				_, err := e.Sim(tEnd)
				assert.ErrorIs(t, err, ErrConfiguration)
			})
		}
	}
}

func TestSim_SecondCall_EngineUsed(t *testing.T) {
	for _, m := range Methods() {
		t.Run(string(m), func(t *testing.T) {
			e := newTestEngine(t, m, isomerization(t, 5, 5, 1, 1), 1)
			_, err := e.Sim(0.1)
			require.NoError(t, err)

			_, err = e.Sim(0.1)
			assert.ErrorIs(t, err, ErrEngineUsed)
		})
	}
}

func TestSim_PropensityFault_Propagates(t *testing.T) {
	// GIVEN a network whose second rate law fails
	n := isomerization(t, 5, 5, 1, 1)
	n.Propensities[1] = FalliblePropensityFunc(func(*State) (float64, error) {
		return 0, errModelFault
	})

	for _, m := range Methods() {
		t.Run(string(m), func(t *testing.T) {
			e := newTestEngine(t, m, n, 1)

			// WHEN the run starts
			traj, err := e.Sim(1)

			// THEN the fault surfaces immediately, wrapped
			assert.Nil(t, traj)
			assert.ErrorIs(t, err, ErrPropensity)
			assert.ErrorIs(t, err, errModelFault)
		})
	}
}

func TestSim_NonFiniteRate_IsPropensityError(t *testing.T) {
	for _, w := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		for _, m := range Methods() {
			t.Run(fmt.Sprintf("%s/%v", m, w), func(t *testing.T) {
				// GIVEN a single reaction whose rate law yields a non-finite value
				n := Network{
					Stoichiometry: mustStoich(t, [][]int64{{-1}}),
					Propensities:  constRates(w),
					Initial:       mustState(t, []string{"A"}, []int64{5}),
				}

				// WHEN the run starts
				traj, err := newTestEngine(t, m, n, 1).Sim(1)

				// THEN it fails fast instead of hanging or reporting absorption
				assert.Nil(t, traj)
				assert.ErrorIs(t, err, ErrPropensity)
			})
		}
	}
}

func TestSim_AbsorbingStart_EndsImmediately(t *testing.T) {
	// GIVEN a network in which nothing can fire
	n := isomerization(t, 0, 0, 1, 1)

	for _, m := range Methods() {
		t.Run(string(m), func(t *testing.T) {
			traj, err := newTestEngine(t, m, n, 1).Sim(1)

			// THEN the run returns normally with only the initial snapshot
			require.NoError(t, err)
			assert.True(t, traj.Absorbed)
			assert.Equal(t, []float64{0}, traj.Times)
			assert.Equal(t, [][]int64{{0, 0}}, traj.States)
		})
	}
}

func TestSim_DoesNotMutateCallerState(t *testing.T) {
	n := dimerization(t)
	for _, m := range Methods() {
		t.Run(string(m), func(t *testing.T) {
			_, err := newTestEngine(t, m, n, 7).Sim(1)
			require.NoError(t, err)
			assert.Equal(t, []int64{20, 0, 0, 10}, n.Initial.Counts())
		})
	}
}

func TestSim_TrajectoryInvariants(t *testing.T) {
	n := dimerization(t)
	rows := make([][]int64, n.Stoichiometry.Reactions())
	for k := range rows {
		rows[k] = n.Stoichiometry.Row(k)
	}

	for _, m := range Methods() {
		for seed := int64(1); seed <= 20; seed++ {
			t.Run(fmt.Sprintf("%s/seed=%d", m, seed), func(t *testing.T) {
				tEnd := 1.0
				traj, err := newTestEngine(t, m, n, seed).Sim(tEnd)
				require.NoError(t, err)

				require.Equal(t, len(traj.Times), len(traj.States))
				assert.Equal(t, 0.0, traj.Times[0])
				assert.Equal(t, []int64{20, 0, 0, 10}, traj.States[0])
				assert.Equal(t, []string{"X", "Y", "Z", "W"}, traj.Species)

				for i := 1; i < traj.Len(); i++ {
					if traj.Times[i] <= traj.Times[i-1] {
						t.Fatalf("time %d = %v not after %v", i, traj.Times[i], traj.Times[i-1])
					}
					if traj.Times[i] > tEnd {
						t.Fatalf("time %d = %v beyond horizon", i, traj.Times[i])
					}
					for j, c := range traj.States[i] {
						if c < 0 {
							t.Fatalf("snapshot %d species %d negative: %d", i, j, c)
						}
					}
					if m != MethodTauLeap && !isRow(rows, traj.States[i-1], traj.States[i]) {
						t.Fatalf("transition %d: %v → %v is not a whole stoichiometric row", i, traj.States[i-1], traj.States[i])
					}
				}
			})
		}
	}
}

// isRow reports whether next-prev equals exactly one row.
func isRow(rows [][]int64, prev, next []int64) bool {
	for _, row := range rows {
		match := true
		for j := range row {
			if next[j]-prev[j] != row[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func TestSim_SameSeed_IdenticalTrajectory(t *testing.T) {
	n := dimerization(t)
	for _, m := range Methods() {
		t.Run(string(m), func(t *testing.T) {
			// GIVEN two engines with identically seeded sources
			a, err := newTestEngine(t, m, n, 42).Sim(1)
			require.NoError(t, err)
			b, err := newTestEngine(t, m, n, 42).Sim(1)
			require.NoError(t, err)

			// THEN the trajectories are identical
			assert.Equal(t, a, b)
		})
	}
}

func TestSim_DifferentSeeds_DifferentTrajectory(t *testing.T) {
	n := dimerization(t)
	for _, m := range Methods() {
		t.Run(string(m), func(t *testing.T) {
			a, err := newTestEngine(t, m, n, 1).Sim(1)
			require.NoError(t, err)
			b, err := newTestEngine(t, m, n, 2).Sim(1)
			require.NoError(t, err)
			assert.NotEqual(t, a.States, b.States)
		})
	}
}

func TestSim_WithTrace_RecordsEveryFiring(t *testing.T) {
	n := dimerization(t)
	for _, m := range Methods() {
		t.Run(string(m), func(t *testing.T) {
			st := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelFirings})
			traj, err := newTestEngine(t, m, n, 3, WithTrace(st)).Sim(1)
			require.NoError(t, err)

			summary := trace.Summarize(st)
			if m == MethodTauLeap {
				assert.GreaterOrEqual(t, summary.TotalEvents, 1)
				return
			}
			// exact methods: one record and one snapshot per firing
			assert.Equal(t, traj.Len()-1, summary.TotalEvents)
			assert.Equal(t, int64(traj.Len()-1), summary.TotalFirings)
			if traj.Len() > 1 {
				last, _ := traj.Final()
				assert.Equal(t, last, summary.LastTime)
			}
		})
	}
}

func TestNewEngine_UnknownMethod(t *testing.T) {
	_, err := NewEngine(Method("euler"), isomerization(t, 1, 1, 1, 1), NewSource(1), testTau)
	assert.True(t, errors.Is(err, ErrConfiguration))
}

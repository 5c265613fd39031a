package sim

import (
	"errors"
	"testing"
)

// constRates returns propensities that ignore the state.
func constRates(rates ...float64) PropensitySet {
	props := make(PropensitySet, len(rates))
	for i, r := range rates {
		props[i] = PropensityFunc(func(*State) float64 { return r })
	}
	return props
}

func mustState(t testing.TB, names []string, counts []int64) *State {
	t.Helper()
	x, err := NewState(names, counts)
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	return x
}

func mustStoich(t testing.TB, rows [][]int64) *Stoichiometry {
	t.Helper()
	s, err := NewStoichiometry(rows)
	if err != nil {
		t.Fatalf("NewStoichiometry: %v", err)
	}
	return s
}

// isomerization returns A ⇌ B with mass-action rates kf·A and kb·B.
func isomerization(t testing.TB, a, b int64, kf, kb float64) Network {
	t.Helper()
	return Network{
		Stoichiometry: mustStoich(t, [][]int64{{-1, 1}, {1, -1}}),
		Propensities: PropensitySet{
			PropensityFunc(func(x *State) float64 { return kf * float64(x.Get("A")) }),
			PropensityFunc(func(x *State) float64 { return kb * float64(x.Get("B")) }),
		},
		Initial: mustState(t, []string{"A", "B"}, []int64{a, b}),
	}
}

// dimerization is the four-species regression network.
func dimerization(t testing.TB) Network {
	t.Helper()
	sq := func(n int64) float64 { return float64(n) * float64(n-1) }
	return Network{
		Stoichiometry: mustStoich(t, [][]int64{
			{-1, 1, 0, 0},
			{1, -1, 0, 0},
			{-2, 0, 1, 0},
			{2, 0, -1, 0},
			{1, 0, 0, -1},
			{-1, 0, 0, 1},
		}),
		Propensities: PropensitySet{
			PropensityFunc(func(x *State) float64 { return float64(x.Get("X")) }),
			PropensityFunc(func(x *State) float64 { return float64(x.Get("Y")) }),
			PropensityFunc(func(x *State) float64 { return sq(x.Get("X")) }),
			PropensityFunc(func(x *State) float64 { return 2 * float64(x.Get("Z")) }),
			PropensityFunc(func(x *State) float64 { return 0.1 * float64(x.Get("X")) * float64(x.Get("W")) }),
			PropensityFunc(func(x *State) float64 { return 0.05 * sq(x.Get("X")) }),
		},
		Initial: mustState(t, []string{"X", "Y", "Z", "W"}, []int64{20, 0, 0, 10}),
	}
}

var errModelFault = errors.New("rate law blew up")

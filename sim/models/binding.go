package models

import sim "github.com/kinetic-sim/kinetic-sim/sim"

// Binding is a two-step ligand binding network:
//
//	R1: A + F → FA     k1·A·F
//	R2: FA → A + F     k2·FA
//	R3: FA + F → FAF   k3·FA·F
//	R4: FAF → FA + F   k4·FAF
var Binding = &Model{
	Name:        "binding",
	Description: "sequential binding of two F ligands to A",
	Species:     []string{"A", "F", "FA", "FAF"},
	Initial:     []int64{100, 200, 0, 0},
	RateNames:   []string{"k1", "k2", "k3", "k4"},
	Rates:       []float64{0.01, 0.1, 0.005, 0.2},
	stoichiometry: [][]int64{
		{-1, -1, 1, 0},
		{1, 1, -1, 0},
		{0, -1, -1, 1},
		{0, 1, 1, -1},
	},
	propensities: func(k []float64) sim.PropensitySet {
		return sim.PropensitySet{
			sim.PropensityFunc(func(x *sim.State) float64 { return k[0] * float64(x.At(0)) * float64(x.At(1)) }),
			sim.PropensityFunc(func(x *sim.State) float64 { return k[1] * float64(x.At(2)) }),
			sim.PropensityFunc(func(x *sim.State) float64 { return k[2] * float64(x.At(2)) * float64(x.At(1)) }),
			sim.PropensityFunc(func(x *sim.State) float64 { return k[3] * float64(x.At(3)) }),
		}
	},
}

func init() { register(Binding) }

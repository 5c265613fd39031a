package models

import sim "github.com/kinetic-sim/kinetic-sim/sim"

// Benchmark is the regression network used to check that all methods
// sample the same process:
//
//	R1: X → Y          k1·X
//	R2: Y → X          k2·Y
//	R3: 2X → Z         k3·X(X-1)
//	R4: Z → 2X         k4·Z
//	R5: W → X          k5·X·W
//	R6: X → W          k6·X(X-1)
//
// Over 10,000 runs to t=1 from X=20, Y=0, Z=0, W=10 the mean final counts
// are close to X≈4.07, Y≈2.7, Z≈8.0, W≈7.25.
var Benchmark = &Model{
	Name:        "benchmark",
	Description: "isomerisation, dimerisation and X-catalysed W conversion (regression network)",
	Species:     []string{"X", "Y", "Z", "W"},
	Initial:     []int64{20, 0, 0, 10},
	RateNames:   []string{"k1", "k2", "k3", "k4", "k5", "k6"},
	Rates:       []float64{1, 1, 1, 2, 0.1, 0.05},
	stoichiometry: [][]int64{
		{-1, 1, 0, 0},
		{1, -1, 0, 0},
		{-2, 0, 1, 0},
		{2, 0, -1, 0},
		{1, 0, 0, -1},
		{-1, 0, 0, 1},
	},
	propensities: func(k []float64) sim.PropensitySet {
		return sim.PropensitySet{
			sim.PropensityFunc(func(x *sim.State) float64 { return k[0] * float64(x.At(0)) }),
			sim.PropensityFunc(func(x *sim.State) float64 { return k[1] * float64(x.At(1)) }),
			sim.PropensityFunc(func(x *sim.State) float64 {
				n := float64(x.At(0))
				return k[2] * n * (n - 1)
			}),
			sim.PropensityFunc(func(x *sim.State) float64 { return k[3] * float64(x.At(2)) }),
			sim.PropensityFunc(func(x *sim.State) float64 { return k[4] * float64(x.At(0)) * float64(x.At(3)) }),
			sim.PropensityFunc(func(x *sim.State) float64 {
				n := float64(x.At(0))
				return k[5] * n * (n - 1)
			}),
		}
	},
}

func init() { register(Benchmark) }

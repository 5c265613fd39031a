// Package sim provides the kinetic Monte Carlo engines for simulating
// stochastic chemical reaction networks.
//
// # Reading Guide
//
// Start with these files to understand the kernel:
//   - state.go, stoichiometry.go, propensity.go: the shared data contract
//   - engine.go: construction checks, the Engine interface and NewEngine
//   - direct.go, first_reaction.go, next_reaction.go, tau_leap.go: one
//     algorithm each
//
// # Architecture
//
// The four engines are independent strategies over one data contract: a
// Stoichiometry (reactions × species net changes), a PropensitySet (one
// rate law per reaction) and a State (species counts). They share no
// algorithm; each embeds the same working set and owns a private copy of
// the initial state for the single run it performs.
//
// Supporting packages:
//   - sim/models/: built-in networks
//   - sim/ensemble/: replicate runs and moment estimation
//   - sim/trace/: per-firing trace recording
//
// # Randomness
//
// Engines take a RandomSource and consume draws in a fixed order, so a
// seeded Source reproduces a trajectory exactly. PartitionedRNG derives an
// isolated stream per replicate; never share one Source between runs that
// execute concurrently.
//
// # Errors
//
// Construction failures wrap ErrConfiguration. A propensity that fails
// aborts the run with an error wrapping ErrPropensity. Reaching a state
// where nothing can fire is not an error: the run ends early and the
// trajectory is marked Absorbed.
package sim

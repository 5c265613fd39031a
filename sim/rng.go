package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// === RandomSource ===

// RandomSource supplies every random draw an engine makes. Engines consume
// draws in a fixed order, so a seeded source fully determines a trajectory.
type RandomSource interface {
	// Uniform returns a value in [0, 1).
	Uniform() float64
	// Exponential returns a draw with the given mean.
	Exponential(mean float64) float64
	// Poisson returns a count with the given mean. Means <= 0 yield 0.
	Poisson(mean float64) int64
}

// Source is the default RandomSource, backed by a PCG generator.
//
// Thread-safety: NOT thread-safe. One Source per run.
type Source struct {
	rng *rand.Rand
}

// NewSource creates a Source seeded from seed.
func NewSource(seed int64) *Source {
	return newSourceFromSeeds(uint64(seed), 0)
}

func newSourceFromSeeds(seed1, seed2 uint64) *Source {
	return &Source{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

func (s *Source) Uniform() float64 { return s.rng.Float64() }

func (s *Source) Exponential(mean float64) float64 { return s.rng.ExpFloat64() * mean }

func (s *Source) Poisson(mean float64) int64 {
	if mean <= 0 {
		return 0
	}
	return int64(distuv.Poisson{Lambda: mean, Src: s.rng}.Rand())
}

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible batch of runs.
// Two batches with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical results.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem Constants ===

const (
	// SubsystemSingle is the stream used by a lone `run` invocation.
	// Uses master seed directly so `--seed` maps 1:1 onto NewSource.
	SubsystemSingle = "single"
)

// SubsystemReplicate returns the subsystem name for replicate N.
func SubsystemReplicate(id int) string {
	return fmt.Sprintf("replicate_%d", id)
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated random sources per
// subsystem. Replicates draw from their own stream, so the result of
// replicate i does not depend on how many draws earlier replicates took.
//
// Derivation formula:
//   - For SubsystemSingle: uses masterSeed directly
//   - For all other subsystems: masterSeed XOR fnv1a64(subsystemName)
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine;
// the returned sources may then be handed to separate goroutines.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*Source
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*Source),
	}
}

// ForSubsystem returns a deterministically-seeded source for the named
// subsystem. The same name always returns the same *Source (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *Source {
	if src, ok := p.subsystems[name]; ok {
		return src
	}

	var derivedSeed int64
	if name == SubsystemSingle {
		derivedSeed = int64(p.key)
	} else {
		derivedSeed = int64(p.key) ^ fnv1a64(name)
	}

	src := NewSource(derivedSeed)
	p.subsystems[name] = src
	return src
}

// ForReplicate is shorthand for ForSubsystem(SubsystemReplicate(id)).
func (p *PartitionedRNG) ForReplicate(id int) *Source {
	return p.ForSubsystem(SubsystemReplicate(id))
}

// Release drops the cached source for name. Ensemble runs call it after
// each replicate so memory stays flat over many replicates.
func (p *PartitionedRNG) Release(name string) {
	delete(p.subsystems, name)
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

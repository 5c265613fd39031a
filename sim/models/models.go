// Package models holds built-in reaction networks. Each Model materialises
// its stoichiometry, propensities and initial state as in-memory values for
// the generic engines in sim.
package models

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	sim "github.com/kinetic-sim/kinetic-sim/sim"
)

// ErrUnknownModel is returned by Lookup for unregistered names.
var ErrUnknownModel = errors.New("unknown model")

// Model describes a reaction network with tunable rate constants.
type Model struct {
	Name        string
	Description string
	Species     []string
	Initial     []int64   // default initial counts, aligned with Species
	RateNames   []string  // rate constant names, e.g. "k1"
	Rates       []float64 // default rate constants, aligned with RateNames

	stoichiometry [][]int64
	propensities  func(k []float64) sim.PropensitySet
}

// Build returns a Network using rates (nil → defaults) and initial counts
// overridden by name from initial (nil → defaults).
func (m *Model) Build(rates []float64, initial map[string]int64) (sim.Network, error) {
	if rates == nil {
		rates = m.Rates
	}
	if len(rates) != len(m.Rates) {
		return sim.Network{}, fmt.Errorf("%w: model %q takes %d rate constants, got %d",
			sim.ErrConfiguration, m.Name, len(m.Rates), len(rates))
	}
	for i, k := range rates {
		if k < 0 {
			return sim.Network{}, fmt.Errorf("%w: model %q: rate %s is negative (%v)",
				sim.ErrConfiguration, m.Name, m.RateNames[i], k)
		}
	}

	counts := slices.Clone(m.Initial)
	for name, n := range initial {
		i := slices.Index(m.Species, name)
		if i < 0 {
			return sim.Network{}, fmt.Errorf("%w: model %q has no species %q", sim.ErrConfiguration, m.Name, name)
		}
		counts[i] = n
	}
	x0, err := sim.NewState(m.Species, counts)
	if err != nil {
		return sim.Network{}, err
	}
	stoich, err := sim.NewStoichiometry(m.stoichiometry)
	if err != nil {
		return sim.Network{}, err
	}
	return sim.Network{
		Stoichiometry: stoich,
		Propensities:  m.propensities(slices.Clone(rates)),
		Initial:       x0,
	}, nil
}

// Reactions returns the number of reactions in the model.
func (m *Model) Reactions() int { return len(m.stoichiometry) }

var registry = map[string]*Model{}

func register(m *Model) {
	if _, dup := registry[m.Name]; dup {
		panic(fmt.Sprintf("models: duplicate model %q", m.Name))
	}
	registry[m.Name] = m
}

// Lookup returns the named model.
func Lookup(name string) (*Model, error) {
	m, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownModel, name, Names())
	}
	return m, nil
}

// Names lists registered models alphabetically.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Package testutil provides shared test infrastructure for the simulator.
// It holds a scripted random source and float assertion helpers used across
// sim/ and its sub-package tests.
package testutil

import (
	"fmt"
	"math"
	"testing"
)

// Draw identifies which sampler a ScriptedSource call went to.
type Draw struct {
	Kind string  // "uniform", "exponential" or "poisson"
	Mean float64 // requested mean; 0 for uniform
}

// ScriptedSource replays fixed values so engines can be driven through
// exact tie and boundary cases. Exponential values are unit-mean draws and
// are scaled by the requested mean, like a real sampler. Every call is
// logged in Calls. Running out of script panics.
type ScriptedSource struct {
	Uniforms     []float64
	Exponentials []float64
	Poissons     []int64
	Calls        []Draw
}

func (s *ScriptedSource) Uniform() float64 {
	s.Calls = append(s.Calls, Draw{Kind: "uniform"})
	if len(s.Uniforms) == 0 {
		panic("testutil: uniform script exhausted")
	}
	v := s.Uniforms[0]
	s.Uniforms = s.Uniforms[1:]
	return v
}

func (s *ScriptedSource) Exponential(mean float64) float64 {
	s.Calls = append(s.Calls, Draw{Kind: "exponential", Mean: mean})
	if len(s.Exponentials) == 0 {
		panic("testutil: exponential script exhausted")
	}
	v := s.Exponentials[0]
	s.Exponentials = s.Exponentials[1:]
	return v * mean
}

func (s *ScriptedSource) Poisson(mean float64) int64 {
	s.Calls = append(s.Calls, Draw{Kind: "poisson", Mean: mean})
	if mean <= 0 {
		return 0
	}
	if len(s.Poissons) == 0 {
		panic(fmt.Sprintf("testutil: poisson script exhausted (mean %v)", mean))
	}
	v := s.Poissons[0]
	s.Poissons = s.Poissons[1:]
	return v
}

// Count returns how many calls of kind were made.
func (s *ScriptedSource) Count(kind string) int {
	n := 0
	for _, c := range s.Calls {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// AssertInRange fails when got lies outside the closed interval [lo, hi].
func AssertInRange(t *testing.T, name string, lo, hi, got float64) {
	t.Helper()
	if got < lo || got > hi {
		t.Errorf("%s = %v, want within [%v, %v]", name, got, lo, hi)
	}
}

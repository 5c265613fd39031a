package sim

import "slices"

// Trajectory is the append-only record of one run: the initial condition at
// time 0 followed by one snapshot per event (or per leap for tau-leaping).
type Trajectory struct {
	Species []string
	Times   []float64
	States  [][]int64

	// Absorbed is set when the run stopped because no reaction could fire.
	Absorbed bool
	// Clamped counts species values forced back to zero by tau-leaping.
	Clamped int
}

func newTrajectory(x0 *State) *Trajectory {
	return &Trajectory{
		Species: x0.Names(),
		Times:   []float64{0},
		States:  [][]int64{x0.Counts()},
	}
}

func (tr *Trajectory) record(t float64, x *State) {
	tr.Times = append(tr.Times, t)
	tr.States = append(tr.States, x.Counts())
}

// Len returns the number of snapshots, including the initial one.
func (tr *Trajectory) Len() int { return len(tr.Times) }

// At returns the i-th snapshot. The returned counts must not be modified.
func (tr *Trajectory) At(i int) (float64, []int64) {
	return tr.Times[i], tr.States[i]
}

// Final returns the last recorded time and a copy of its counts.
func (tr *Trajectory) Final() (float64, []int64) {
	last := len(tr.Times) - 1
	return tr.Times[last], slices.Clone(tr.States[last])
}

package trace

// TraceLevel controls the verbosity of firing traces.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelFirings captures every reaction firing.
	TraceLevelFirings TraceLevel = "firings"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:    true,
	TraceLevelFirings: true,
	"":                true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects firing records during one run.
type SimulationTrace struct {
	Config  TraceConfig
	Firings []FiringRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:  config,
		Firings: make([]FiringRecord, 0),
	}
}

// Enabled reports whether records are kept.
func (st *SimulationTrace) Enabled() bool {
	return st != nil && st.Config.Level == TraceLevelFirings
}

// RecordFiring appends a firing record. It is a no-op unless the trace is
// at TraceLevelFirings.
func (st *SimulationTrace) RecordFiring(record FiringRecord) {
	if !st.Enabled() {
		return
	}
	st.Firings = append(st.Firings, record)
}

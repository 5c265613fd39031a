package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalEvents  int           // number of records
	TotalFirings int64         // sum of record counts
	LastTime     float64       // time of the last record
	PerReaction  map[int]int64 // reaction index → firings
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		PerReaction: make(map[int]int64),
	}
	if st == nil {
		return summary
	}

	summary.TotalEvents = len(st.Firings)
	for _, f := range st.Firings {
		summary.TotalFirings += f.Count
		summary.PerReaction[f.Reaction] += f.Count
		if f.Time > summary.LastTime {
			summary.LastTime = f.Time
		}
	}
	return summary
}

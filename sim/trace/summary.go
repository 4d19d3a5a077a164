package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalRecords int
	Admitted     int
	Queued       int
	TurnedAway   int
	Departed     int
	ByKind       map[Kind]int
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		ByKind: make(map[Kind]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalRecords = len(st.Records)
	for _, r := range st.Records {
		summary.ByKind[r.Kind]++
	}
	summary.Admitted = summary.ByKind[KindAdmitted]
	summary.Queued = summary.ByKind[KindQueued]
	summary.TurnedAway = summary.ByKind[KindTurnedAway]
	summary.Departed = summary.ByKind[KindDeparted]

	return summary
}

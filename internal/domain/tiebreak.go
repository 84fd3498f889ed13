package domain

// TieBreakerState distinguishes the three outcomes of the tie-breaker
// calculation. "No games on the designated day" and "games present but a
// total is missing" are different conditions and must be presented
// differently.
type TieBreakerState string

const (
	// TieBreakerNone: no event fell on the designated weekday.
	TieBreakerNone TieBreakerState = "none"
	// TieBreakerIndeterminate: at least one selected event lacks a total.
	TieBreakerIndeterminate TieBreakerState = "indeterminate"
	// TieBreakerResolved: every selected event had a total.
	TieBreakerResolved TieBreakerState = "resolved"
)

// TieBreaker is the result of summing the designated day's totals.
type TieBreaker struct {
	State TieBreakerState
	// Events are the events selected for the calculation, in kickoff order.
	Events []Event
	// CombinedTotal is the raw sum of totals; meaningful only when resolved.
	CombinedTotal float64
	// Value is the half-up rounded integer pick; meaningful only when
	// resolved.
	Value int
}

// Resolved reports whether the tie-breaker produced a usable integer.
func (t TieBreaker) Resolved() bool {
	return t.State == TieBreakerResolved
}

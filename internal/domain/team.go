// Package domain defines the core data model for the pick'em slate generator:
// teams, scheduled events, resolved odds, picks, and the store/cache interfaces
// implemented by the infrastructure packages.
package domain

// Team is one competitor as supplied by the schedule source. The fields mirror
// the upstream team record at the granularities different odds sources use to
// spell the same club ("Kansas City", "Chiefs", "KC"). Teams are never mutated
// after the schedule fetch; alias sets are derived from them on demand.
type Team struct {
	Location     string // "Kansas City"
	DisplayName  string // "Kansas City Chiefs"
	Name         string // "Chiefs"
	ShortName    string // "Chiefs"
	Abbreviation string // "KC"
}

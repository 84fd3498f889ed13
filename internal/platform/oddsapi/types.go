package oddsapi

// Payload shapes for The Odds API v4 event listing. Events are identified by
// plain-text team names only; correlation back to the schedule is the match
// package's job.

// APIEvent is one event with its bookmaker blocks.
type APIEvent struct {
	ID           string      `json:"id"`
	CommenceTime string      `json:"commence_time"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	Bookmakers   []Bookmaker `json:"bookmakers"`
}

// Bookmaker is one book's market set for an event.
type Bookmaker struct {
	Key     string   `json:"key"`
	Title   string   `json:"title"`
	Markets []Market `json:"markets"`
}

// Market is a keyed market ("spreads", "totals") with its outcomes.
type Market struct {
	Key      string    `json:"key"`
	Outcomes []Outcome `json:"outcomes"`
}

// Outcome is one side of a market. For spreads the name is a team label and
// the point is that side's signed spread; for totals the name is "Over" or
// "Under" and the point is the line.
type Outcome struct {
	Name  string   `json:"name"`
	Point *float64 `json:"point"`
}

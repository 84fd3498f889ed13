package espn

// Payload shapes for the two ESPN endpoints the client consumes: the site
// scoreboard (schedule + teams) and the core per-competition odds listing.
// Only the fields the pipeline reads are declared.

// Scoreboard is the site-API scoreboard response for one season/week.
type Scoreboard struct {
	Events []ScoreboardEvent `json:"events"`
}

// ScoreboardEvent is one scheduled game on the scoreboard.
type ScoreboardEvent struct {
	ID           string        `json:"id"`
	Date         string        `json:"date"`
	ShortName    string        `json:"shortName"`
	Competitions []Competition `json:"competitions"`
}

// Competition carries the kickoff, status, and competitors for an event.
// Scoreboard events hold exactly one in practice.
type Competition struct {
	ID          string       `json:"id"`
	Date        string       `json:"date"`
	Status      Status       `json:"status"`
	Competitors []Competitor `json:"competitors"`
}

// Status is the competition lifecycle block.
type Status struct {
	Type StatusType `json:"type"`
}

// StatusType names the competition state.
type StatusType struct {
	Name      string `json:"name"`
	State     string `json:"state"` // "pre", "in", "post"
	Completed bool   `json:"completed"`
}

// Competitor binds a team record to its home/away role.
type Competitor struct {
	HomeAway string `json:"homeAway"`
	Team     Team   `json:"team"`
}

// Team is the scoreboard team record. These five fields are the exact set the
// alias generator requires.
type Team struct {
	Location         string `json:"location"`
	DisplayName      string `json:"displayName"`
	Name             string `json:"name"`
	ShortDisplayName string `json:"shortDisplayName"`
	Abbreviation     string `json:"abbreviation"`
}

// OddsResponse is the core-API odds listing for one competition. Items may be
// inline or bare {"$ref": ...} stubs that must be fetched separately.
type OddsResponse struct {
	Items []OddsItem `json:"items"`
}

// OddsItem is one provider's market for a competition.
type OddsItem struct {
	Ref          string    `json:"$ref"`
	Provider     Provider  `json:"provider"`
	Spread       *float64  `json:"spread"`
	OverUnder    *float64  `json:"overUnder"`
	HomeTeamOdds SideOdds  `json:"homeTeamOdds"`
	AwayTeamOdds SideOdds  `json:"awayTeamOdds"`
}

// Provider names the bookmaker behind an odds item.
type Provider struct {
	Name string `json:"name"`
}

// SideOdds carries the per-side flags; only the explicit favorite marker is
// consumed, and only when the spread is exactly zero.
type SideOdds struct {
	Favorite bool `json:"favorite"`
}

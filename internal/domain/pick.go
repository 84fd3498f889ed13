package domain

import "fmt"

// Selection says which competitor a pick backs.
type Selection string

const (
	SelectFavorite Selection = "favorite"
	SelectUnderdog Selection = "underdog"
)

// Pick pairs an event with an assigned confidence point value. The assignment
// engine only ever emits favorite selections with strictly decreasing points;
// the interactive layer may flip the selection or move points afterwards.
type Pick struct {
	Event     Event
	Points    int
	Selection Selection
}

// SelectedTeam returns the team this pick backs.
func (p Pick) SelectedTeam() Team {
	if p.Selection == SelectUnderdog {
		return p.Event.Underdog()
	}
	return p.Event.Favorite()
}

// OpponentTeam returns the team this pick is against.
func (p Pick) OpponentTeam() Team {
	if p.Selection == SelectUnderdog {
		return p.Event.Favorite()
	}
	return p.Event.Underdog()
}

// SelectedIsHome reports whether the backed team is playing at home.
func (p Pick) SelectedIsHome() bool {
	if p.Selection == SelectUnderdog {
		return !p.Event.FavoriteIsHome()
	}
	return p.Event.FavoriteIsHome()
}

// SpreadLabel renders the spread from the backed team's perspective, e.g.
// "-3.5" for a favorite pick or "+3.5" for an underdog pick.
func (p Pick) SpreadLabel() string {
	if p.Selection == SelectUnderdog {
		return fmt.Sprintf("+%g", p.Event.Odds.Spread)
	}
	return fmt.Sprintf("-%g", p.Event.Odds.Spread)
}

package picks

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mbarrett/pickslip/internal/domain"
)

// TieBreaker sums the listed totals of every event kicking off on the
// designated weekday. The three outcomes are distinct: no event on that day,
// events present but a total missing (indeterminate, never silently summed
// over the gap), or a resolved rounded value.
func TieBreaker(events []domain.Event, day time.Weekday) domain.TieBreaker {
	var selected []domain.Event
	for _, event := range events {
		if event.Weekday() == day {
			selected = append(selected, event)
		}
	}
	if len(selected) == 0 {
		return domain.TieBreaker{State: domain.TieBreakerNone}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].StartUTC.Before(selected[j].StartUTC)
	})

	combined := 0.0
	for _, event := range selected {
		if !event.Odds.HasTotal() {
			return domain.TieBreaker{
				State:  domain.TieBreakerIndeterminate,
				Events: selected,
			}
		}
		combined += *event.Odds.Total
	}

	return domain.TieBreaker{
		State:         domain.TieBreakerResolved,
		Events:        selected,
		CombinedTotal: combined,
		Value:         roundHalfUp(combined),
	}
}

// roundHalfUp rounds to the nearest integer with .5 going up, matching how
// pool sites read a tie-breaker total. float-to-decimal goes through the
// shortest string form so 44.5 stays exactly 44.5.
func roundHalfUp(value float64) int {
	d := decimal.NewFromFloat(value)
	return int(d.Round(0).IntPart())
}

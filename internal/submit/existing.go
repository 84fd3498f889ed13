// Package submit talks to the pool site: reading back the currently saved
// week and pushing a new slate through a headless browser.
package submit

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mbarrett/pickslip/internal/domain"
	"github.com/mbarrett/pickslip/internal/match"
	"github.com/mbarrett/pickslip/internal/names"
)

// GamePick is one saved row on the site's week form.
type GamePick struct {
	Visitor  string
	Home     string
	Selected string
	Points   *int
}

// Matchup renders "Visitor @ Home" for diff lines.
func (g GamePick) Matchup() string {
	return g.Visitor + " @ " + g.Home
}

// Submission is everything already saved on the site for a week.
type Submission struct {
	Picks      []GamePick
	TieBreaker *int
}

var (
	pointsName = regexp.MustCompile(`(?i)(pt|point)`)
	tieName    = regexp.MustCompile(`(?i)(tie|tb|mnf)`)
	digits     = regexp.MustCompile(`\d+`)
)

// FetchExisting loads the saved-picks page over plain HTTP and parses it.
// The page is readable with the member's id/key query parameters, no browser
// session needed.
func FetchExisting(ctx context.Context, client *http.Client, makeWeekURL string, week int, loginID, loginKey string) (Submission, error) {
	params := url.Values{}
	params.Set("week", strconv.Itoa(week))
	if loginID != "" {
		params.Set("i", loginID)
	}
	if loginKey != "" {
		params.Set("k", loginKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, makeWeekURL+"?"+params.Encode(), nil)
	if err != nil {
		return Submission{}, fmt.Errorf("submit: create existing picks request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return Submission{}, fmt.Errorf("submit: fetch existing picks: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Submission{}, fmt.Errorf("submit: existing picks page returned status %d", resp.StatusCode)
	}

	return ParseExisting(resp.Body)
}

// ParseExisting reads the site's saved-picks page. The form has no stable
// ids, so teams are located relative to their radio buttons: the nearest
// non-empty cell, preferring cells the site marks with the lineitem class.
func ParseExisting(r io.Reader) (Submission, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Submission{}, fmt.Errorf("submit: parse existing picks page: %w", err)
	}

	var sub Submission

	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		radios := row.Find(`input[type="radio"]`)
		if radios.Length() < 2 {
			return
		}

		visitorRadio := radios.Eq(0)
		homeRadio := radios.Eq(1)
		visitor := teamNearRadio(row, visitorRadio)
		home := teamNearRadio(row, homeRadio)
		if visitor == "" || home == "" {
			return
		}

		var selected string
		if _, ok := visitorRadio.Attr("checked"); ok {
			selected = visitor
		} else if _, ok := homeRadio.Attr("checked"); ok {
			selected = home
		}
		if selected == "" {
			return
		}

		pick := GamePick{Visitor: visitor, Home: home, Selected: selected}
		row.Find("input").EachWithBreak(func(_ int, input *goquery.Selection) bool {
			name, _ := input.Attr("name")
			if !pointsName.MatchString(name) {
				return true
			}
			if value, ok := input.Attr("value"); ok {
				if points, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
					pick.Points = &points
				}
			}
			return false
		})

		sub.Picks = append(sub.Picks, pick)
	})

	sub.TieBreaker = findTieBreaker(doc)
	return sub, nil
}

// teamNearRadio finds the team label cell attached to a radio button. Scans
// forward from the radio's cell, then backward, preferring lineitem cells
// before falling back to any non-empty text.
func teamNearRadio(row, radio *goquery.Selection) string {
	cell := radio.Closest("td")
	if cell.Length() == 0 {
		return ""
	}

	cells := row.Find("td")
	idx := -1
	cells.EachWithBreak(func(i int, c *goquery.Selection) bool {
		if c.Get(0) == cell.Get(0) {
			idx = i
			return false
		}
		return true
	})
	if idx < 0 {
		return ""
	}

	scan := func(from, to, step int, requireLineItem bool) string {
		for pos := from; pos != to; pos += step {
			candidate := cells.Eq(pos)
			text := strings.TrimSpace(candidate.Text())
			if text == "" {
				continue
			}
			if requireLineItem && !candidate.HasClass("lineitem") {
				continue
			}
			return text
		}
		return ""
	}

	n := cells.Length()
	if name := scan(idx+1, n, 1, true); name != "" {
		return name
	}
	if name := scan(idx-1, -1, -1, true); name != "" {
		return name
	}
	if name := scan(idx+1, n, 1, false); name != "" {
		return name
	}
	return scan(idx-1, -1, -1, false)
}

func findTieBreaker(doc *goquery.Document) *int {
	var value *int
	doc.Find("input").EachWithBreak(func(_ int, input *goquery.Selection) bool {
		name, _ := input.Attr("name")
		if !tieName.MatchString(name) {
			return true
		}
		raw, ok := input.Attr("value")
		if !ok {
			return true
		}
		if v, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			value = &v
			return false
		}
		return true
	})
	if value != nil {
		return value
	}

	// Some renderings show the saved total as plain text in the cell after
	// a "Monday ..." label.
	doc.Find("td").EachWithBreak(func(_ int, cell *goquery.Selection) bool {
		if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(cell.Text())), "monday") {
			return true
		}
		next := cell.NextAll().First()
		if next.Length() == 0 {
			return true
		}
		if m := digits.FindString(next.Text()); m != "" {
			if v, err := strconv.Atoi(m); err == nil {
				value = &v
				return false
			}
		}
		return true
	})
	return value
}

// Compare diffs the computed slate against what the site already holds and
// returns a human-readable summary. Site rows are matched to slate events by
// alias intersection in both orientations.
func Compare(picks []domain.Pick, existing Submission, tieBreaker *int) string {
	if len(existing.Picks) == 0 {
		note := ""
		if existing.TieBreaker != nil {
			note = fmt.Sprintf(" (tie-breaker total %d)", *existing.TieBreaker)
		}
		return "Existing comparison: no current picks found on the site" + note + "."
	}

	type slateEntry struct {
		pick domain.Pick
		home map[string]struct{}
		away map[string]struct{}
	}
	slate := make([]*slateEntry, 0, len(picks))
	for _, pick := range picks {
		slate = append(slate, &slateEntry{
			pick: pick,
			home: match.TeamAliases(pick.Event.Home),
			away: match.TeamAliases(pick.Event.Away),
		})
	}

	var diffs []string
	matched := make(map[*slateEntry]bool)

	for _, site := range existing.Picks {
		visitorNorm := names.Canonical(site.Visitor)
		homeNorm := names.Canonical(site.Home)

		var entry *slateEntry
		for _, s := range slate {
			if setHas(s.away, visitorNorm) && setHas(s.home, homeNorm) {
				entry = s
				break
			}
			if setHas(s.home, visitorNorm) && setHas(s.away, homeNorm) {
				entry = s
				break
			}
		}
		if entry == nil {
			diffs = append(diffs, fmt.Sprintf("- %s: site has %s (pts %s), not found in computed slate.",
				site.Matchup(), site.Selected, pointsLabel(site.Points)))
			continue
		}
		matched[entry] = true

		siteAliases := names.LabelAliases(site.Selected)
		selectsHome := names.Intersects(siteAliases, entry.home)
		selectsAway := names.Intersects(siteAliases, entry.away)

		switch {
		case selectsHome && selectsAway:
			diffs = append(diffs, fmt.Sprintf("- %s: site pick %q could match either team; unable to compare.",
				site.Matchup(), site.Selected))
			continue
		case !selectsHome && !selectsAway:
			diffs = append(diffs, fmt.Sprintf("- %s: site pick %q did not match the home or away team.",
				site.Matchup(), site.Selected))
			continue
		}

		scriptTeam := entry.pick.SelectedTeam().DisplayName
		if selectsHome != entry.pick.SelectedIsHome() {
			diffs = append(diffs, fmt.Sprintf("- %s: site has %s (pts %s), computed slate prefers %s (pts %d).",
				site.Matchup(), site.Selected, pointsLabel(site.Points), scriptTeam, entry.pick.Points))
			continue
		}

		if site.Points == nil || *site.Points != entry.pick.Points {
			diffs = append(diffs, fmt.Sprintf("- %s: same winner %s, but site points %s vs computed %d.",
				site.Matchup(), site.Selected, pointsLabel(site.Points), entry.pick.Points))
		}
	}

	for _, s := range slate {
		if !matched[s] {
			diffs = append(diffs, fmt.Sprintf("- %s: computed slate selects %s (pts %d) but no site pick detected.",
				s.pick.Event.Matchup(), s.pick.SelectedTeam().DisplayName, s.pick.Points))
		}
	}

	if tieBreaker != nil && existing.TieBreaker != nil && *tieBreaker != *existing.TieBreaker {
		diffs = append(diffs, fmt.Sprintf("- Tie-breaker: site total %d, computed total %d.",
			*existing.TieBreaker, *tieBreaker))
	}

	if len(diffs) == 0 {
		return "Existing comparison: site picks already match the computed selections."
	}
	return "Existing comparison:\n" + strings.Join(diffs, "\n")
}

func pointsLabel(p *int) string {
	if p == nil {
		return "--"
	}
	return strconv.Itoa(*p)
}

func setHas(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}

// Package scrape extracts fallback odds from a saved SportsbookReview week
// page. The page is a plain HTML table, so the extractor keys off header
// text rather than markup classes, which churn between site revisions.
package scrape

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mbarrett/pickslip/internal/domain"
	"github.com/mbarrett/pickslip/internal/match"
	"github.com/mbarrett/pickslip/internal/names"
	"github.com/mbarrett/pickslip/internal/odds"
)

const fallbackProvider = "bet365 via SportsbookReview"

var (
	parenthetical = regexp.MustCompile(`\(.*?\)`)
	versusSplit   = regexp.MustCompile(`\s+vs\.?\s+`)
	spreadPattern = regexp.MustCompile(`([A-Za-z .]+)\s+([+-]?\d+(?:\.\d+)?|PK)`)
	numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// FallbackFile returns the conventional path of the saved week page inside
// dir, e.g. dir/sbr_week3.html.
func FallbackFile(dir string, week int) string {
	return filepath.Join(dir, fmt.Sprintf("sbr_week%d.html", week))
}

// LoadFallback reads the saved page for the week from dir and parses it
// against the schedule. A missing file is not an error: the fallback layer
// is optional and an empty lookup just means nothing to merge.
func LoadFallback(dir string, week int, events []domain.Event, logger *slog.Logger) (odds.Lookup, error) {
	if dir == "" {
		return odds.Lookup{}, nil
	}

	path := FallbackFile(dir, week)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("fallback odds file not found", slog.String("path", path))
			return odds.Lookup{}, nil
		}
		return nil, fmt.Errorf("scrape: open fallback file: %w", err)
	}
	defer f.Close()

	lookup, err := ParseFallback(f, events, logger)
	if err != nil {
		return nil, err
	}
	if len(lookup) > 0 {
		logger.Info("loaded fallback odds",
			slog.Int("games", len(lookup)),
			slog.String("path", path),
		)
	}
	return lookup, nil
}

// ParseFallback extracts an odds lookup from a SportsbookReview week page.
// Rows that cannot be matched to a schedule event or carry no parseable
// spread are skipped rather than failed: a partial fallback is still worth
// merging.
func ParseFallback(r io.Reader, events []domain.Event, logger *slog.Logger) (odds.Lookup, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("scrape: parse fallback html: %w", err)
	}

	table := findOddsTable(doc)
	if table == nil {
		logger.Warn("no odds table found in fallback page")
		return odds.Lookup{}, nil
	}

	tbody := table.Find("tbody").First()
	if tbody.Length() == 0 {
		logger.Warn("fallback odds table has no tbody")
		return odds.Lookup{}, nil
	}

	type scheduleEntry struct {
		key   domain.EventKey
		sides match.Sides
	}
	schedule := make([]scheduleEntry, 0, len(events))
	for _, event := range events {
		schedule = append(schedule, scheduleEntry{
			key:   match.Key(event),
			sides: match.EventSides(event),
		})
	}

	lookup := odds.Lookup{}

	tbody.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cols := row.Find("td")
		if cols.Length() < 4 {
			return
		}

		gameText := cellText(cols.Eq(0))
		spreadText := cellText(cols.Eq(1))
		totalText := cellText(cols.Eq(3))

		// Row headings carry broadcast info in parentheses.
		gameCore := strings.TrimSpace(parenthetical.ReplaceAllString(gameText, ""))
		parts := versusSplit.Split(gameCore, 2)
		if len(parts) != 2 {
			return
		}
		awayLabel := strings.TrimSpace(parts[0])
		homeLabel := strings.TrimSpace(parts[1])

		rowHome := names.LabelAliases(homeLabel)
		rowAway := names.LabelAliases(awayLabel)

		var entry *scheduleEntry
		swapped := false
		for i := range schedule {
			s := &schedule[i]
			if names.Intersects(rowHome, s.sides.Home) && names.Intersects(rowAway, s.sides.Away) {
				entry = s
				break
			}
			if names.Intersects(rowHome, s.sides.Away) && names.Intersects(rowAway, s.sides.Home) {
				entry = s
				swapped = true
				break
			}
		}
		if entry == nil {
			return
		}

		homeAliases, awayAliases := entry.sides.Home, entry.sides.Away
		key := entry.key
		if swapped {
			homeAliases, awayAliases = awayAliases, homeAliases
			key = key.Swapped()
		}

		spread, favorite, err := parseSpread(spreadText, homeAliases, awayAliases)
		if err != nil {
			if errors.Is(err, domain.ErrIndeterminate) {
				logger.Warn("fallback spread labels both sides, skipping row",
					slog.String("game", gameCore),
					slog.String("spread", spreadText),
				)
			}
			return
		}

		record := domain.OddsEntry{
			Spread:   spread,
			Provider: fallbackProvider,
			Favorite: favorite,
			Origin:   domain.OriginFallback,
		}
		if total, ok := parseTotal(totalText); ok {
			record.Total = &total
		}

		lookup[key] = record
	})

	return lookup, nil
}

// findOddsTable returns the first table whose header row starts with a
// "game" column and includes a "spread" column.
func findOddsTable(doc *goquery.Document) *goquery.Selection {
	var table *goquery.Selection
	doc.Find("table").EachWithBreak(func(_ int, candidate *goquery.Selection) bool {
		var headers []string
		candidate.Find("th").Each(func(_ int, th *goquery.Selection) {
			headers = append(headers, strings.ToLower(strings.TrimSpace(th.Text())))
		})
		if len(headers) == 0 || !strings.Contains(headers[0], "game") {
			return true
		}
		for _, h := range headers {
			if strings.Contains(h, "spread") {
				table = candidate
				return false
			}
		}
		return true
	})
	return table
}

// parseSpread reads cells like "Chiefs -3½" or "Jaguars PK" and reports the
// spread magnitude and favored side. PK means pick'em, a zero spread with
// the named team treated as favorite. A label that matches both sides of the
// event (shared city names) is domain.ErrIndeterminate; any other
// unparseable cell is domain.ErrInvalidOdds.
func parseSpread(text string, homeAliases, awayAliases map[string]struct{}) (float64, domain.Side, error) {
	m := spreadPattern.FindStringSubmatch(strings.ReplaceAll(text, "½", ".5"))
	if m == nil {
		return 0, "", domain.ErrInvalidOdds
	}

	teamAliases := names.LabelAliases(strings.TrimSpace(m[1]))
	matchesHome := names.Intersects(teamAliases, homeAliases)
	matchesAway := names.Intersects(teamAliases, awayAliases)
	switch {
	case matchesHome && matchesAway:
		return 0, "", domain.ErrIndeterminate
	case !matchesHome && !matchesAway:
		return 0, "", domain.ErrInvalidOdds
	}
	teamIsHome := matchesHome

	var value float64
	if !strings.EqualFold(m[2], "PK") {
		v, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return 0, "", domain.ErrInvalidOdds
		}
		value = v
	}

	// A negative (or PK) line names the favorite, a positive line names
	// the underdog.
	namedIsFavorite := value <= 0
	side := domain.SideAway
	if teamIsHome == namedIsFavorite {
		side = domain.SideHome
	}
	if value < 0 {
		value = -value
	}
	return value, side, nil
}

func parseTotal(text string) (float64, bool) {
	m := numberPattern.FindString(strings.ReplaceAll(text, "½", ".5"))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func cellText(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}

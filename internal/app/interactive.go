package app

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mbarrett/pickslip/internal/domain"
	"github.com/mbarrett/pickslip/internal/picks"
)

// Adjust runs the console edit loop over an assigned slate. The user may flip
// individual picks between favorite and underdog, reassign point values, and
// override the tie-breaker total. It returns the (possibly modified) picks
// sorted by points and the tie-breaker override, nil when none was given.
func Adjust(slate []domain.Pick, tb domain.TieBreaker, in io.Reader, out io.Writer) ([]domain.Pick, *int) {
	scanner := bufio.NewScanner(in)

	for {
		if !promptYesNo(scanner, out, "Adjust any picks?") {
			break
		}

		idx, ok := promptInt(scanner, out, fmt.Sprintf("Game number (1-%d): ", len(slate)))
		if !ok || idx < 1 || idx > len(slate) {
			fmt.Fprintln(out, "Invalid game number.")
			continue
		}
		pick := &slate[idx-1]

		fmt.Fprintf(out, "Editing %s (currently %s, %d pts)\n",
			pick.Event.Matchup(), pick.SelectedTeam().DisplayName, pick.Points)

		fav := pick.Event.Favorite().DisplayName
		dog := pick.Event.Underdog().DisplayName
		answer := promptLine(scanner, out, fmt.Sprintf("Pick [f] %s or [u] %s (enter keeps %s): ", fav, dog, pick.SelectedTeam().DisplayName))
		switch strings.ToLower(answer) {
		case "f":
			pick.Selection = domain.SelectFavorite
		case "u":
			pick.Selection = domain.SelectUnderdog
		}

		if points, ok := promptInt(scanner, out, fmt.Sprintf("Points (enter keeps %d): ", pick.Points)); ok && points > 0 {
			swapPoints(slate, idx-1, points)
		}

		picks.SortByPoints(slate)
		fmt.Fprintln(out, picks.RenderTable(slate))
	}

	var override *int
	if tb.State != domain.TieBreakerNone {
		if promptYesNo(scanner, out, "Override the tie-breaker total?") {
			if value, ok := promptInt(scanner, out, "Total points: "); ok {
				override = &value
			}
		}
	}
	return slate, override
}

// swapPoints assigns the requested point value to slate[i]. When another pick
// already holds that value the two trade, keeping the point set a permutation.
func swapPoints(slate []domain.Pick, i, points int) {
	for j := range slate {
		if j != i && slate[j].Points == points {
			slate[j].Points = slate[i].Points
			break
		}
	}
	slate[i].Points = points
}

func promptLine(scanner *bufio.Scanner, out io.Writer, prompt string) string {
	fmt.Fprint(out, prompt)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

func promptYesNo(scanner *bufio.Scanner, out io.Writer, question string) bool {
	answer := promptLine(scanner, out, question+" [y/N]: ")
	return strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes")
}

func promptInt(scanner *bufio.Scanner, out io.Writer, prompt string) (int, bool) {
	answer := promptLine(scanner, out, prompt)
	if answer == "" {
		return 0, false
	}
	value, err := strconv.Atoi(answer)
	if err != nil {
		fmt.Fprintln(out, "Not a number.")
		return 0, false
	}
	return value, true
}

func confirm(in io.Reader, out io.Writer, question string) bool {
	return promptYesNo(bufio.NewScanner(in), out, question)
}

// Package names canonicalizes team name strings and derives alias sets. Every
// cross-source comparison in the matcher goes through the canonical form
// produced here, so the rules are deliberately blunt: lowercase, keep letters
// and digits, drop everything else.
package names

import "strings"

// Canonical collapses a name string to its comparable form: lowercased with
// every rune outside [a-z0-9] removed. Total and idempotent; empty input
// yields empty output.
func Canonical(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// TeamSource is the subset of team attributes the alias generator reads. The
// domain Team satisfies it structurally via TeamAliases' caller.
type TeamSource struct {
	Location     string
	DisplayName  string
	Name         string
	ShortName    string
	Abbreviation string
}

// TeamAliases derives the canonical alias set for a structured team record.
// Different sources emit team identity at different granularities ("Chiefs",
// "Kansas City Chiefs", "KC"), so the set is a broad superset: each name field
// alone, location+name, display+name, the abbreviation, abbreviation+name, and
// first-two-letters-of-abbreviation+name. Empties are dropped and order of
// first discovery is preserved.
func TeamAliases(t TeamSource) []string {
	candidates := []string{
		t.Location,
		t.DisplayName,
		t.Name,
		t.ShortName,
		strings.TrimSpace(t.Location + " " + t.Name),
		strings.TrimSpace(t.DisplayName + " " + t.Name),
	}
	if t.Abbreviation != "" {
		candidates = append(candidates, t.Abbreviation)
		if t.Name != "" {
			candidates = append(candidates, t.Abbreviation+t.Name)
			prefix := t.Abbreviation
			if len(prefix) > 2 {
				prefix = prefix[:2]
			}
			candidates = append(candidates, prefix+t.Name)
		}
	}

	seen := make(map[string]struct{}, len(candidates))
	aliases := make([]string, 0, len(candidates))
	for _, c := range candidates {
		a := Canonical(c)
		if a == "" {
			continue
		}
		if _, dup := seen[a]; dup {
			continue
		}
		seen[a] = struct{}{}
		aliases = append(aliases, a)
	}
	return aliases
}

// LabelAliases derives the canonical alias set for a free-text team label as
// found in scraped tables or plain-string APIs: the whole label, every
// whitespace token, and the join of the last two tokens (so "New England
// Patriots" also yields "englandpatriots", which meets the generator's
// location+name style tokens). Slashes count as whitespace to handle
// "LA/Los Angeles" labels.
func LabelAliases(label string) map[string]struct{} {
	cleaned := strings.ReplaceAll(label, "/", " ")
	parts := strings.Fields(cleaned)

	aliases := make(map[string]struct{}, len(parts)+2)
	add := func(s string) {
		if a := Canonical(s); a != "" {
			aliases[a] = struct{}{}
		}
	}

	add(cleaned)
	for _, p := range parts {
		add(p)
	}
	if len(parts) >= 2 {
		add(strings.Join(parts[len(parts)-2:], " "))
	}
	return aliases
}

// ToSet converts an ordered alias slice into a set for intersection tests.
func ToSet(aliases []string) map[string]struct{} {
	set := make(map[string]struct{}, len(aliases))
	for _, a := range aliases {
		set[a] = struct{}{}
	}
	return set
}

// Intersects reports whether the two alias sets share at least one member.
func Intersects(a, b map[string]struct{}) bool {
	// Iterate the smaller set.
	if len(b) < len(a) {
		a, b = b, a
	}
	for k := range a {
		if _, ok := b[k]; ok {
			return true
		}
	}
	return false
}

// Union merges b into a copy of a.
func Union(a, b map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		out[k] = struct{}{}
	}
	for k := range b {
		out[k] = struct{}{}
	}
	return out
}

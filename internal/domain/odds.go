package domain

// Side identifies which competitor an odds field refers to.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// Valid reports whether the side is one of the two enumerated values. An
// OddsEntry whose favorite side is not Valid must be discarded by the
// extractor that produced it, never stored.
func (s Side) Valid() bool {
	return s == SideHome || s == SideAway
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == SideHome {
		return SideAway
	}
	return SideHome
}

// OddsOrigin records how an entry was obtained, so downstream display can
// distinguish confident data from degraded matches and outright guesses.
type OddsOrigin string

const (
	// OriginPrimary is a normal entry from the preferred odds source.
	OriginPrimary OddsOrigin = "primary"
	// OriginFallback is an entry taken from (or patched by) the HTML
	// fallback table.
	OriginFallback OddsOrigin = "fallback"
	// OriginDegraded marks an entry matched on the home team alone after a
	// full two-sided match failed everywhere in the pool.
	OriginDegraded OddsOrigin = "degraded"
	// OriginAssumed marks the last-resort "home team assumed favorite"
	// entry produced when no source had any signal for the event.
	OriginAssumed OddsOrigin = "assumed"
)

// OddsEntry is a resolved market snapshot for one event. Spread is stored as a
// magnitude with an explicit Favorite side rather than as a signed value: a
// spread of exactly zero is directionless, so sign alone cannot carry the
// favorite.
type OddsEntry struct {
	// Spread is the favorite's point spread magnitude (always >= 0).
	Spread float64
	// Total is the over/under line, nil when the source listed none.
	Total *float64
	// Provider is a free-text attribution label ("FanDuel via The Odds
	// API"). Display and audit only; no later logic keys off it.
	Provider string
	// Favorite is the side the spread favors. Must satisfy Favorite.Valid().
	Favorite Side
	// Origin tags how the entry was obtained.
	Origin OddsOrigin
	// Note carries the human-readable explanation for assumed entries.
	Note string
}

// SignedSpread returns the favorite's spread as a negative number, the
// conventional presentation form.
func (o OddsEntry) SignedSpread() float64 {
	if o.Spread < 0 {
		return o.Spread
	}
	return -o.Spread
}

// HasTotal reports whether the entry carries an over/under line.
func (o OddsEntry) HasTotal() bool {
	return o.Total != nil
}

// EventKey is the canonical (home, away) name pair that keys reconciled odds
// lookups across sources. Keys are built by the match package so that every
// consumer uses the same canonical form.
type EventKey struct {
	Home string
	Away string
}

// Swapped returns the key with home and away exchanged, used when a source
// lists the matchup in the opposite orientation.
func (k EventKey) Swapped() EventKey {
	return EventKey{Home: k.Away, Away: k.Home}
}

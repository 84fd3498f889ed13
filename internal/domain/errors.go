package domain

import "errors"

var (
	// ErrNotFound: a lookup (store row, matched candidate) produced nothing.
	// Always recoverable for odds matching; callers treat it as "no data
	// from this source".
	ErrNotFound = errors.New("not found")
	// ErrIndeterminate: data was present but ambiguous, e.g. a scraped team
	// label matching both sides of an event.
	ErrIndeterminate = errors.New("indeterminate")
	// ErrInvalidOdds: a record superficially matched but carried no usable
	// directional signal; the record is discarded, never stored.
	ErrInvalidOdds = errors.New("invalid odds record")
	// ErrNoSchedule: the schedule source returned no usable events. The one
	// schedule-side condition that aborts a run.
	ErrNoSchedule = errors.New("no usable schedule")
)

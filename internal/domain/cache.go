package domain

import (
	"context"
	"time"
)

// ResponseCache stores raw source payloads between runs so repeated
// invocations for the same week do not hammer the upstream APIs. Keys are
// scoped by source name and season/week. A miss is reported as ErrNotFound.
type ResponseCache interface {
	Get(ctx context.Context, source string, season, week int) ([]byte, error)
	Set(ctx context.Context, source string, season, week int, payload []byte, ttl time.Duration) error
}

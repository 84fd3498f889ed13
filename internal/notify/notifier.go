// Package notify pushes slate summaries to chat channels. Every registered
// sender receives every message; a failing channel never blocks the others.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Sender is one delivery channel.
type Sender interface {
	// Send delivers a message with the given title and body.
	Send(ctx context.Context, title, message string) error
	// Name returns a human-readable identifier for the sender.
	Name() string
}

// Notifier fans slate summaries out to the configured senders.
type Notifier struct {
	senders []Sender
	logger  *slog.Logger
}

func NewNotifier(senders []Sender, logger *slog.Logger) *Notifier {
	return &Notifier{
		senders: senders,
		logger:  logger.With(slog.String("component", "notifier")),
	}
}

// SlateGenerated announces a freshly computed slate. The table is the same
// fixed-width rendering shown on the console; a chat code block keeps it
// legible.
func (n *Notifier) SlateGenerated(ctx context.Context, season, week int, table, tieBreakerLine string) error {
	title := fmt.Sprintf("Week %d picks computed (season %d)", week, season)
	message := fmt.Sprintf("```\n%s\n```\n%s", table, tieBreakerLine)
	return n.dispatch(ctx, title, message)
}

// SlateSubmitted announces a successful site submission.
func (n *Notifier) SlateSubmitted(ctx context.Context, season, week, pickCount int, tieBreaker *int) error {
	title := fmt.Sprintf("Week %d picks submitted (season %d)", week, season)
	message := fmt.Sprintf("%d picks saved on the pool site.", pickCount)
	if tieBreaker != nil {
		message += fmt.Sprintf(" Tie-breaker total: %d.", *tieBreaker)
	}
	return n.dispatch(ctx, title, message)
}

// dispatch sends to every sender, collecting failures into one error so a
// broken webhook does not mask deliveries that worked.
func (n *Notifier) dispatch(ctx context.Context, title, message string) error {
	if n == nil || len(n.senders) == 0 {
		return nil
	}

	var errs []string
	for _, s := range n.senders {
		if err := s.Send(ctx, title, message); err != nil {
			n.logger.ErrorContext(ctx, "sender failed",
				slog.String("sender", s.Name()),
				slog.String("error", err.Error()),
			)
			errs = append(errs, fmt.Sprintf("%s: %v", s.Name(), err))
			continue
		}
		n.logger.DebugContext(ctx, "notification sent",
			slog.String("sender", s.Name()),
			slog.String("title", title),
		)
	}

	if len(errs) > 0 {
		return fmt.Errorf("notify: %d sender(s) failed: %s", len(errs), strings.Join(errs, "; "))
	}
	return nil
}

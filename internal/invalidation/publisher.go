// Package invalidation publishes fire-and-forget "this view is stale" hints
// so the presentation layer knows which pages to re-fetch after a mutation.
package invalidation

import (
	"context"
	"log/slog"
	"time"

	"github.com/anonto42/socially/internal/metrics"
)

const (
	FeedPath          = "/"
	NotificationsPath = "/notifications"
)

// ProfilePath is the logical view of a user's profile page.
func ProfilePath(username string) string {
	return "/profile/" + username
}

// Event is one stale-view hint.
type Event struct {
	Path   string    `json:"path" bson:"path"`
	Reason string    `json:"reason" bson:"reason"`
	At     time.Time `json:"at" bson:"at"`
}

// Publisher is what services depend on. Publishing never fails the caller.
type Publisher interface {
	Publish(ctx context.Context, reason string, paths ...string)
}

// Sink delivers events to one backend.
type Sink interface {
	Name() string
	Send(ctx context.Context, events []Event) error
}

// Dispatcher fans events out to every configured sink.
type Dispatcher struct {
	sinks  []Sink
	logger *slog.Logger
	now    func() time.Time
}

// NewDispatcher returns a Publisher over sinks. With no sinks it is a no-op.
func NewDispatcher(logger *slog.Logger, sinks ...Sink) *Dispatcher {
	return &Dispatcher{sinks: sinks, logger: logger, now: time.Now}
}

func (d *Dispatcher) Publish(ctx context.Context, reason string, paths ...string) {
	if len(d.sinks) == 0 || len(paths) == 0 {
		return
	}
	at := d.now().UTC()
	events := make([]Event, 0, len(paths))
	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		events = append(events, Event{Path: p, Reason: reason, At: at})
	}

	for _, sink := range d.sinks {
		if err := sink.Send(ctx, events); err != nil {
			metrics.InvalidationsPublished.WithLabelValues(sink.Name(), "error").Inc()
			d.logger.WarnContext(ctx, "view invalidation failed",
				slog.String("sink", sink.Name()),
				slog.String("reason", reason),
				slog.String("error", err.Error()),
			)
			continue
		}
		metrics.InvalidationsPublished.WithLabelValues(sink.Name(), "ok").Inc()
	}
}

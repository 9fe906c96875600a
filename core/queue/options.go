package queue

import (
	"log/slog"

	"github.com/dmitrymomot/crossbus/pkg/broadcast"
)

// Option configures a Queue at construction time.
type Option func(*Queue)

// WithLogger configures structured logging for the queue. Subscriber
// callback failures and bridge errors are reported here. By default logging
// is discarded.
func WithLogger(log *slog.Logger) Option {
	return func(q *Queue) {
		if log != nil {
			q.log = log
		}
	}
}

// WithBroadcast attaches a broadcast transport, enabling cross-context
// mirroring. A nil transport leaves the queue local-only, so a failed
// transport constructor degrades silently:
//
//	tr, err := broadcast.NewRedis(ctx, client, "app-events")
//	if err != nil {
//		tr = nil // local-only fallback
//	}
//	q := queue.New(queue.WithBroadcast(tr))
func WithBroadcast(tr broadcast.Transport) Option {
	return func(q *Queue) {
		if tr != nil {
			q.transport = tr
		}
	}
}

// WithChannelName attaches the in-process broadcast backend on the named
// channel. Instances created with the same name in the same process mirror
// each other's publishes. An empty name disables mirroring.
func WithChannelName(name string) Option {
	return func(q *Queue) {
		if name != "" {
			q.transport = broadcast.Channel(name)
		}
	}
}

// WithScheduler replaces the deferred-execution scheduler used by
// PublishAsync. The default is a per-instance serial scheduler that runs
// deferred publishes one at a time in issue order and is drained on Close;
// a caller-supplied scheduler is owned by the caller.
func WithScheduler(s Scheduler) Option {
	return func(q *Queue) {
		if s != nil {
			q.scheduler = s
		}
	}
}

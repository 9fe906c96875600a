package queue_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/crossbus/core/queue"
)

// inlineScheduler runs tasks immediately on the calling goroutine.
type inlineScheduler struct{ scheduled int }

func (s *inlineScheduler) Schedule(task func()) bool {
	s.scheduled++
	task()
	return true
}

func TestWithScheduler(t *testing.T) {
	t.Parallel()

	sched := &inlineScheduler{}
	q := queue.New(queue.WithScheduler(sched))
	defer q.Close()

	id := q.RegisterTopic("x")

	f := q.PublishAsync(context.Background(), id, "v")
	assert.True(t, f.IsComplete(), "inline scheduler completes before return")
	assert.NoError(t, f.Await())
	assert.Equal(t, 1, sched.scheduled)
}

func TestWithLogger_ReportsCallbackFailures(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	q := queue.New(queue.WithLogger(log))
	defer q.Close()

	id := q.RegisterTopic("x")
	_, err := q.Subscribe(id, func(ctx context.Context, msg queue.Message) error {
		return errors.New("subscriber broke")
	})
	require.NoError(t, err)

	require.NoError(t, q.Publish(context.Background(), id, "v"))

	out := buf.String()
	assert.Contains(t, out, "subscriber callback failed")
	assert.Contains(t, out, "subscriber broke")
}

package queue

import "sync"

// Scheduler defers a task to run strictly after the current call returns,
// the cooperative "one tick later" primitive behind PublishAsync. Schedule
// must not block the caller and must preserve the order of tasks scheduled
// from a single goroutine. It returns false if the scheduler has stopped and
// the task will never run.
type Scheduler interface {
	Schedule(task func()) bool
}

// serialScheduler runs tasks one at a time on a single worker goroutine in
// FIFO order. The task queue is unbounded so Schedule never blocks.
type serialScheduler struct {
	mu      sync.Mutex
	tasks   []func()
	stopped bool
	wake    chan struct{}
	done    chan struct{}
}

func newSerialScheduler() *serialScheduler {
	s := &serialScheduler{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *serialScheduler) Schedule(task func()) bool {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return false
	}
	s.tasks = append(s.tasks, task)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
	return true
}

func (s *serialScheduler) run() {
	defer close(s.done)

	for {
		s.mu.Lock()
		if len(s.tasks) == 0 {
			stopped := s.stopped
			s.mu.Unlock()
			if stopped {
				return
			}
			<-s.wake
			continue
		}
		task := s.tasks[0]
		s.tasks = s.tasks[1:]
		s.mu.Unlock()

		task()
	}
}

// stop prevents further scheduling, drains already-queued tasks and waits
// for the worker to exit. Queued tasks still run: a scheduled publish cannot
// be cancelled, it completes (typically with a closed-instance error when
// called during shutdown).
func (s *serialScheduler) stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		<-s.done
		return
	}
	s.stopped = true
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
	<-s.done
}

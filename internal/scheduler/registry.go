// Package scheduler owns deferred one-shot tasks such as the doorbell auto-reset.
// Unlike a bare timer, every pending task can be listed, cancelled, and either
// flushed or awaited on shutdown.
package scheduler

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"blynk_bridge/internal/logger"

	"github.com/google/uuid"
)

// ErrClosed is returned by Schedule after Shutdown has started.
var ErrClosed = errors.New("scheduler: registry is shut down")

// TaskFunc is the deferred work. The context is cancelled only when the
// registry's shutdown deadline expires.
type TaskFunc func(ctx context.Context) error

// TaskInfo describes a pending task.
type TaskInfo struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Pin   string    `json:"pin"`
	DueAt time.Time `json:"due_at"`
}

type task struct {
	info  TaskInfo
	fn    TaskFunc
	timer *time.Timer
}

// Registry runs each scheduled task once after its delay.
type Registry struct {
	log *logger.Logger

	mu      sync.Mutex
	pending map[string]*task
	closed  bool
	running sync.WaitGroup

	// runCtx is handed to tasks; cancelled when Shutdown gives up waiting.
	runCtx    context.Context
	cancelRun context.CancelFunc

	now func() time.Time
}

// NewRegistry creates an empty registry.
func NewRegistry(log *logger.Logger) *Registry {
	ctx, cancel := context.WithCancel(context.Background())
	return &Registry{
		log:       logger.OrNop(log),
		pending:   make(map[string]*task),
		runCtx:    ctx,
		cancelRun: cancel,
		now:       time.Now,
	}
}

// Schedule registers fn to run once after delay.
func (r *Registry) Schedule(name, pin string, delay time.Duration, fn TaskFunc) (TaskInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return TaskInfo{}, ErrClosed
	}

	t := &task{
		info: TaskInfo{
			ID:    uuid.NewString(),
			Name:  name,
			Pin:   pin,
			DueAt: r.now().Add(delay).UTC(),
		},
		fn: fn,
	}
	r.pending[t.info.ID] = t
	// Counted while pending so Shutdown waits for tasks that fire concurrently.
	r.running.Add(1)
	t.timer = time.AfterFunc(delay, func() { r.fire(t.info.ID) })

	r.log.Debugw("task_scheduled", "task_id", t.info.ID, "name", name, "pin", pin, "due_at", t.info.DueAt)
	return t.info, nil
}

// fire runs the task if it is still pending.
func (r *Registry) fire(id string) {
	r.mu.Lock()
	t, ok := r.pending[id]
	if ok {
		delete(r.pending, id)
	}
	r.mu.Unlock()
	if !ok {
		return
	}
	r.run(t)
}

func (r *Registry) run(t *task) {
	defer r.running.Done()
	if err := t.fn(r.runCtx); err != nil {
		r.log.Warnw("task_failed", "task_id", t.info.ID, "name", t.info.Name, "pin", t.info.Pin, "err", err)
		return
	}
	r.log.Debugw("task_done", "task_id", t.info.ID, "name", t.info.Name, "pin", t.info.Pin)
}

// Pending lists tasks that have not fired yet, soonest first.
func (r *Registry) Pending() []TaskInfo {
	r.mu.Lock()
	out := make([]TaskInfo, 0, len(r.pending))
	for _, t := range r.pending {
		out = append(out, t.info)
	}
	r.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].DueAt.Before(out[j].DueAt) })
	return out
}

// Cancel drops a pending task. It reports false when the task is unknown or
// has already started.
func (r *Registry) Cancel(id string) bool {
	r.mu.Lock()
	t, ok := r.pending[id]
	if ok {
		delete(r.pending, id)
	}
	r.mu.Unlock()
	if !ok {
		return false
	}

	t.timer.Stop()
	r.running.Done()
	r.log.Infow("task_cancelled", "task_id", id, "name", t.info.Name, "pin", t.info.Pin)
	return true
}

// Shutdown stops accepting tasks. With flush, pending tasks run immediately;
// otherwise they are dropped. It then waits for running tasks until ctx is done,
// at which point their context is cancelled and ctx.Err() is returned.
func (r *Registry) Shutdown(ctx context.Context, flush bool) error {
	r.mu.Lock()
	r.closed = true
	var drained []*task
	for id, t := range r.pending {
		// If the timer already fired, fire() finds the entry gone and leaves
		// the WaitGroup slot to this loop.
		t.timer.Stop()
		delete(r.pending, id)
		drained = append(drained, t)
	}
	r.mu.Unlock()

	for _, t := range drained {
		if flush {
			r.log.Infow("task_flushed", "task_id", t.info.ID, "name", t.info.Name, "pin", t.info.Pin)
			go r.run(t)
			continue
		}
		r.log.Infow("task_dropped", "task_id", t.info.ID, "name", t.info.Name, "pin", t.info.Pin)
		r.running.Done()
	}

	done := make(chan struct{})
	go func() {
		r.running.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.cancelRun()
		return nil
	case <-ctx.Done():
		r.cancelRun()
		return ctx.Err()
	}
}

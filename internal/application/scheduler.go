package application

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/sourcegraph/conc"
	"golang.org/x/sync/semaphore"

	"github.com/jmanzanog/quote-session/internal/domain"
)

// Task is one fetch unit. A zero Delay runs it once at registration; a
// positive Delay runs it at that fixed rate until cancelled.
type Task struct {
	Name  string
	Delay time.Duration
	Run   func(ctx context.Context) error
}

type handle struct {
	name   string
	cancel context.CancelFunc
}

type entry struct {
	handles []*handle
}

// executor runs periodic tasks, at most poolSize at a time.
type executor struct {
	ctx    context.Context
	cancel context.CancelFunc
	sem    *semaphore.Weighted
	wg     conc.WaitGroup
}

func newExecutor(poolSize int) *executor {
	ctx, cancel := context.WithCancel(context.Background())
	return &executor{
		ctx:    ctx,
		cancel: cancel,
		sem:    semaphore.NewWeighted(int64(poolSize)),
	}
}

// Scheduler owns the active request table and the executor its periodic
// tasks run on. The executor is created on demand and torn down whenever
// the table becomes empty after a cancellation.
type Scheduler struct {
	mu       sync.Mutex
	poolSize int
	logger   *slog.Logger
	entries  map[domain.RequestID]*entry
	exec     *executor
}

func NewScheduler(poolSize int, logger *slog.Logger) *Scheduler {
	if poolSize < 1 {
		poolSize = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		poolSize: poolSize,
		logger:   logger,
		entries:  make(map[domain.RequestID]*entry),
	}
}

// Register activates id. Periodic tasks start immediately on the executor;
// one-shot tasks then run on the calling goroutine before Register returns.
// If a one-shot task fails the whole registration is rolled back.
func (s *Scheduler) Register(ctx context.Context, id domain.RequestID, tasks []Task) error {
	s.mu.Lock()
	if _, ok := s.entries[id]; ok {
		s.mu.Unlock()
		return fmt.Errorf("request %d: %w", id, ErrDuplicateRequest)
	}

	e := &entry{handles: make([]*handle, 0, len(tasks))}
	oneShots := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		if task.Delay <= 0 {
			oneShots = append(oneShots, task)
			continue
		}
		e.handles = append(e.handles, s.schedule(id, task))
	}
	s.entries[id] = e
	activeRequests.Inc()
	s.mu.Unlock()

	s.logger.Debug("Request registered", "request_id", id, "periodic", len(e.handles), "one_shot", len(oneShots))

	for _, task := range oneShots {
		if err := task.Run(ctx); err != nil {
			s.rollback(id, e)
			return err
		}
	}
	return nil
}

// schedule must be called with s.mu held.
func (s *Scheduler) schedule(id domain.RequestID, task Task) *handle {
	if s.exec == nil {
		s.exec = newExecutor(s.poolSize)
		s.logger.Debug("Executor started", "pool_size", s.poolSize)
	}
	exec := s.exec
	ctx, cancel := context.WithCancel(exec.ctx)
	logger := s.logger.With("request_id", id, "task", task.Name)

	exec.wg.Go(func() {
		exec.loop(ctx, task, logger)
	})
	return &handle{name: task.Name, cancel: cancel}
}

// loop runs task at a fixed rate, first run immediately. A run in progress
// is not interrupted by cancellation, but it skips delivery.
func (e *executor) loop(ctx context.Context, task Task, logger *slog.Logger) {
	ticker := time.NewTicker(task.Delay)
	defer ticker.Stop()

	for {
		if err := e.sem.Acquire(ctx, 1); err != nil {
			return
		}
		if ctx.Err() == nil {
			if err := task.Run(detached(ctx)); err != nil {
				logger.Warn("Periodic task failed", "error", err)
			}
		}
		e.sem.Release(1)

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}

type registrationKey struct{}

// detached drops ctx's cancellation so a run in progress completes, but
// keeps ctx reachable for cancelled.
func detached(ctx context.Context) context.Context {
	return context.WithValue(context.WithoutCancel(ctx), registrationKey{}, ctx)
}

// cancelled reports whether the periodic registration a run belongs to was
// cancelled while the run was in flight. One-shot runs are never cancelled.
func cancelled(ctx context.Context) bool {
	reg, ok := ctx.Value(registrationKey{}).(context.Context)
	return ok && reg.Err() != nil
}

func (s *Scheduler) rollback(id domain.RequestID, e *entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entries[id] != e {
		return
	}
	s.remove(id, e)
}

// Cancel stops future runs of every periodic task of id and forgets it.
// It does not wait for a run already in progress.
func (s *Scheduler) Cancel(id domain.RequestID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return fmt.Errorf("request %d: %w", id, ErrUnknownRequest)
	}
	s.remove(id, e)
	s.logger.Debug("Request cancelled", "request_id", id, "handles", len(e.handles))
	return nil
}

// remove must be called with s.mu held.
func (s *Scheduler) remove(id domain.RequestID, e *entry) {
	for _, h := range e.handles {
		h.cancel()
	}
	delete(s.entries, id)
	activeRequests.Dec()

	if len(s.entries) == 0 && s.exec != nil {
		s.exec.cancel()
		s.exec = nil
		s.logger.Debug("Executor stopped")
	}
}

// Handles reports how many periodic tasks id owns.
func (s *Scheduler) Handles(id domain.RequestID) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return 0, false
	}
	return len(e.handles), true
}

// Active lists the registered ids in ascending order.
func (s *Scheduler) Active() []domain.RequestID {
	s.mu.Lock()
	ids := make([]domain.RequestID, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Shutdown cancels every request and waits until the executor's loops have
// returned or ctx is done.
func (s *Scheduler) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	for id, e := range s.entries {
		for _, h := range e.handles {
			h.cancel()
		}
		delete(s.entries, id)
		activeRequests.Dec()
	}
	exec := s.exec
	s.exec = nil
	s.mu.Unlock()

	if exec == nil {
		return nil
	}
	exec.cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		exec.wg.Wait()
	}()

	select {
	case <-done:
		s.logger.Debug("Scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler shutdown: %w", ctx.Err())
	}
}

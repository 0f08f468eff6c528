package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type stubResult struct {
	err error
}

func (r *stubResult) Err() error {
	return r.err
}

type stubJob struct {
	duration  time.Duration
	shouldErr bool
	executed  *int32
}

func (j *stubJob) Execute(ctx context.Context) Result {
	if j.executed != nil {
		atomic.AddInt32(j.executed, 1)
	}
	if j.duration > 0 {
		select {
		case <-time.After(j.duration):
		case <-ctx.Done():
			return &stubResult{err: ctx.Err()}
		}
	}
	if j.shouldErr {
		return &stubResult{err: errors.New("job error")}
	}
	return &stubResult{}
}

func TestNewPool_WorkerFloor(t *testing.T) {
	for _, n := range []int{0, -3} {
		if p := NewPool(n); p.workers != 1 {
			t.Errorf("NewPool(%d): expected 1 worker, got %d", n, p.workers)
		}
	}
	if p := NewPool(5); p.workers != 5 {
		t.Errorf("expected 5 workers, got %d", p.workers)
	}
}

func TestPool_RunsEveryJob(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	var executed int32
	const count = 10
	for i := 0; i < count; i++ {
		pool.Submit(&stubJob{executed: &executed})
	}

	results := pool.Wait()
	if len(results) != count {
		t.Errorf("expected %d results, got %d", count, len(results))
	}
	if got := atomic.LoadInt32(&executed); got != count {
		t.Errorf("expected %d executions, got %d", count, got)
	}
}

type trackedJob struct {
	started  func()
	finished func()
	duration time.Duration
}

func (j *trackedJob) Execute(ctx context.Context) Result {
	if j.started != nil {
		j.started()
	}
	time.Sleep(j.duration)
	if j.finished != nil {
		j.finished()
	}
	return &stubResult{}
}

func TestPool_BoundsConcurrency(t *testing.T) {
	const workers = 4
	pool := NewPool(workers)
	pool.Start()

	var current, peak, completed int32
	var mu sync.Mutex

	for i := 0; i < 20; i++ {
		pool.Submit(&trackedJob{
			started: func() {
				c := atomic.AddInt32(&current, 1)
				mu.Lock()
				if c > peak {
					peak = c
				}
				mu.Unlock()
			},
			finished: func() {
				atomic.AddInt32(&current, -1)
				atomic.AddInt32(&completed, 1)
			},
			duration: 10 * time.Millisecond,
		})
	}
	pool.Wait()

	if atomic.LoadInt32(&completed) != 20 {
		t.Errorf("expected 20 completed jobs, got %d", completed)
	}
	mu.Lock()
	p := peak
	mu.Unlock()
	if p > workers {
		t.Errorf("peak concurrency %d exceeded %d workers", p, workers)
	}
}

func TestPool_CollectsErrors(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	pool.Submit(&stubJob{shouldErr: true})
	pool.Submit(&stubJob{})

	results := pool.Wait()
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	failed := 0
	for _, res := range results {
		if res.Err() != nil {
			failed++
		}
	}
	if failed != 1 {
		t.Errorf("expected 1 failed result, got %d", failed)
	}
}

func TestPool_SubmitAfterShutdown(t *testing.T) {
	pool := NewPool(2)
	pool.Start()
	pool.Shutdown()

	done := make(chan struct{})
	go func() {
		pool.Submit(&stubJob{})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Submit after Shutdown blocked")
	}
}

func TestPool_ShutdownReleasesWorkers(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	started := make(chan struct{})
	pool.Submit(&trackedJob{
		started:  func() { close(started) },
		duration: 200 * time.Millisecond,
	})
	<-started

	pool.Shutdown()

	done := make(chan struct{})
	go func() {
		for range pool.results {
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Shutdown did not close the results channel")
	}
}

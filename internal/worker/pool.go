// Package worker runs many stance analyses concurrently: a bounded worker
// pool for batch jobs and a per-host rate limiter shared by the outbound
// HTTP clients.
package worker

import (
	"context"
	"sync"
)

// Job is one unit of batch work.
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is the outcome of one job.
type Result interface {
	Err() error
}

// Pool fans jobs out to a fixed number of workers. Submit enqueues, Wait
// drains, Shutdown cancels in-flight work.
type Pool struct {
	workers int
	jobs    chan Job
	results chan Result

	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewPool creates a pool with the given worker count (minimum 1).
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		workers: workers,
		jobs:    make(chan Job, workers*2),
		results: make(chan Result, workers*2),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start launches the workers.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run()
	}
}

func (p *Pool) run() {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			res := job.Execute(p.ctx)
			select {
			case p.results <- res:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit enqueues a job. It is a no-op after Shutdown.
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
	case p.jobs <- job:
	}
}

// Wait closes the queue, waits for the workers to finish, and returns
// every result. Call once, after all Submits.
func (p *Pool) Wait() []Result {
	close(p.jobs)

	go func() {
		p.wg.Wait()
		p.closeResults()
	}()

	var results []Result
	for res := range p.results {
		results = append(results, res)
	}
	return results
}

// Shutdown cancels in-flight jobs and releases the workers.
func (p *Pool) Shutdown() {
	p.cancel()
	p.wg.Wait()
	p.closeResults()
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() { close(p.results) })
}

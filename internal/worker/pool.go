package worker

import (
	"context"
	"sync"
)

// Job represents a unit of work to be executed
type Job interface {
	Execute(ctx context.Context) Result
}

// Result represents the result of a job execution
type Result interface {
	GetError() error
}

// Pool manages a pool of workers that execute jobs concurrently
type Pool struct {
	workers    int
	jobQueue   chan Job
	results    chan Result
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
	startOnce  sync.Once
	queueOnce  sync.Once
	closeOnce  sync.Once
}

// NewPool creates a new worker pool with the specified number of workers.
// Cancelling ctx stops the pool.
func NewPool(ctx context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)

	return &Pool{
		workers:    workers,
		jobQueue:   make(chan Job, workers*2),
		results:    make(chan Result, workers*2),
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// Start starts the worker pool. The results channel is closed once every
// worker has exited.
func (p *Pool) Start() {
	p.startOnce.Do(func() {
		for i := 0; i < p.workers; i++ {
			p.wg.Add(1)
			go p.worker()
		}
		go func() {
			p.wg.Wait()
			p.closeResults()
		}()
	})
}

// worker is the worker goroutine that processes jobs
func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			result := job.Execute(p.ctx)
			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit submits a job to the pool for execution. It reports false when
// the pool has been shut down.
func (p *Pool) Submit(job Job) bool {
	select {
	case <-p.ctx.Done():
		return false
	case p.jobQueue <- job:
		return true
	}
}

// Close signals that no more jobs will be submitted
func (p *Pool) Close() {
	p.queueOnce.Do(func() {
		close(p.jobQueue)
	})
}

// Results returns the channel on which results arrive in completion order
func (p *Pool) Results() <-chan Result {
	return p.results
}

// Run starts the pool, submits jobs and collects every result. Jobs are
// fed from a separate goroutine so a long job list never blocks on the
// result buffer.
func (p *Pool) Run(jobs []Job) []Result {
	p.Start()

	go func() {
		defer p.Close()
		for _, job := range jobs {
			if !p.Submit(job) {
				return
			}
		}
	}()

	results := make([]Result, 0, len(jobs))
	for result := range p.results {
		results = append(results, result)
	}
	return results
}

// Shutdown shuts down the worker pool immediately
func (p *Pool) Shutdown() {
	p.cancelFunc()
	p.wg.Wait()
	p.closeResults()
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}

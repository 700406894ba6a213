package workspace

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Job is a unit of work executed by the pool.
type Job interface {
	Execute(ctx context.Context) error
}

// Pool bounds the number of concurrently in-flight backend requests fired by
// batch operations. Unlike a compute pool there is no CPU-based sizing; the
// limit reflects how many outstanding network calls the backend tolerates.
type Pool struct {
	workers  int
	jobQueue chan Job
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewPool(ctx context.Context, workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	poolCtx, cancel := context.WithCancel(ctx)

	pool := &Pool{
		workers:  workers,
		jobQueue: make(chan Job, workers*2),
		ctx:      poolCtx,
		cancel:   cancel,
	}

	for i := 0; i < pool.workers; i++ {
		pool.wg.Add(1)
		go pool.worker()
	}

	log.Info().Int("workers", workers).Msg("Check pool initialized")
	return pool
}

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
			if err := job.Execute(p.ctx); err != nil {
				log.Error().Err(err).Msg("Check job failed")
			}
		}
	}
}

// Submit queues a job, blocking while the queue is full.
func (p *Pool) Submit(job Job) error {
	select {
	case <-p.ctx.Done():
		return p.ctx.Err()
	case p.jobQueue <- job:
		return nil
	}
}

// Close drains the pool and waits for workers to exit.
func (p *Pool) Close() {
	close(p.jobQueue)
	p.cancel()
	p.wg.Wait()
}

package engine

import (
	"context"
	"sync"
)

// mapWork is the unit of work dispatched to a worker. resultC is nil for
// fire-and-forget (batch) submissions.
type mapWork struct {
	job     *envelopeJob
	resultC chan *MapResult
}

// workerPool is a fixed-size goroutine pool with a bounded input queue.
type workerPool struct {
	queue   chan *mapWork
	process func(w *mapWork)
	wg      sync.WaitGroup
}

// newWorkerPool creates and starts a pool with n goroutines and queue
// capacity depth.
func newWorkerPool(ctx context.Context, n, depth int, fn func(w *mapWork)) *workerPool {
	p := &workerPool{
		queue:   make(chan *mapWork, depth),
		process: fn,
	}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			p.run(ctx)
		}()
	}
	return p
}

func (p *workerPool) run(ctx context.Context) {
	for {
		select {
		case w, ok := <-p.queue:
			if !ok {
				return
			}
			p.process(w)
		case <-ctx.Done():
			return
		}
	}
}

// Submit enqueues work without blocking (returns false if full).
func (p *workerPool) Submit(w *mapWork) bool {
	select {
	case p.queue <- w:
		return true
	default:
		return false
	}
}

// Drain closes the queue and waits for all workers to finish.
func (p *workerPool) Drain() {
	close(p.queue)
	p.wg.Wait()
}

// QueueLen returns how many jobs are currently queued.
func (p *workerPool) QueueLen() int {
	return len(p.queue)
}

// QueueCap returns the total queue capacity.
func (p *workerPool) QueueCap() int {
	return cap(p.queue)
}

package workers

import (
	"context"
	"sync"
)

// Workers runs a set of workers side by side and waits for all of them.
type Workers struct {
	workers []Worker

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Len is the number of registered workers.
func (w *Workers) Len() int {
	return len(w.workers)
}

// Start launches every worker in its own goroutine. It stops workers still
// running from a previous Start first.
func (w *Workers) Start(ctx context.Context) {
	w.Stop()

	w.mu.Lock()
	defer w.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	for _, worker := range w.workers {
		w.wg.Go(func() {
			worker.Run(runCtx)
		})
	}
}

// Stop cancels the running workers and blocks until all of them returned.
// Safe to call when nothing runs.
func (w *Workers) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}

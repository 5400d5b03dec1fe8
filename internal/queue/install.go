package queue

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

// defaultPacing is the fixed delay between sequential install requests.
// The daemon installs one package at a time on constrained hardware;
// pacing keeps the panel from flooding it.
const defaultPacing = time.Second

// InstallFunc issues a single install request and blocks until it
// settles. Implemented by voidshell.Client.InstallPackage.
type InstallFunc func(ctx context.Context, path string) error

// Result records one job's outcome. Partial batch failures carry no
// transaction semantics: each entry stands alone and there is no
// rollback.
type Result struct {
	Path string
	Err  error
}

var (
	// ErrBusy is returned when Start is called while a run is active.
	ErrBusy = errors.New("queue already running")
	// ErrEmpty is returned when Start is called with nothing queued.
	ErrEmpty = errors.New("queue is empty")
)

// InstallQueue holds an operator-built selection of package paths and
// executes them strictly in order, one request at a time.
type InstallQueue struct {
	install InstallFunc

	mu      sync.Mutex
	pacing  time.Duration
	queued  []string
	running bool
}

// NewInstallQueue returns an empty queue dispatching through install.
func NewInstallQueue(install InstallFunc) *InstallQueue {
	return &InstallQueue{install: install, pacing: defaultPacing}
}

// SetPacing overrides the inter-job delay. Zero or negative restores
// the default.
func (q *InstallQueue) SetPacing(d time.Duration) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if d <= 0 {
		d = defaultPacing
	}
	q.pacing = d
}

// Toggle flips a path's queue membership and reports whether it is
// queued afterwards. Toggling is idempotent in effect: adding a present
// path removes it, removing an absent one adds it.
func (q *InstallQueue) Toggle(path string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, p := range q.queued {
		if p == path {
			q.queued = append(q.queued[:i], q.queued[i+1:]...)
			return false
		}
	}
	q.queued = append(q.queued, path)
	return true
}

// QueueAll replaces the queue with the given paths in order.
func (q *InstallQueue) QueueAll(paths []string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.queued = append([]string(nil), paths...)
}

// Contains reports whether the path is currently queued.
func (q *InstallQueue) Contains(path string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, p := range q.queued {
		if p == path {
			return true
		}
	}
	return false
}

// Queued returns the queued paths in execution order.
func (q *InstallQueue) Queued() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]string(nil), q.queued...)
}

// Len returns the number of queued paths.
func (q *InstallQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.queued)
}

// Start consumes the queue: one install request per item, strictly in
// order, with the pacing delay after each request settles. A failed
// item is recorded and the run continues; the queue is cleared when the
// run ends no matter how the individual jobs fared. Cancellation is
// honored between items, never mid-request.
//
// Start blocks; run it from a goroutine and inspect the returned
// per-item results.
func (q *InstallQueue) Start(ctx context.Context) ([]Result, error) {
	q.mu.Lock()
	if q.running {
		q.mu.Unlock()
		return nil, ErrBusy
	}
	if len(q.queued) == 0 {
		q.mu.Unlock()
		return nil, ErrEmpty
	}
	q.running = true
	jobs := append([]string(nil), q.queued...)
	pacing := q.pacing
	q.mu.Unlock()

	defer func() {
		q.mu.Lock()
		q.queued = nil
		q.running = false
		q.mu.Unlock()
	}()

	results := make([]Result, 0, len(jobs))
	for _, path := range jobs {
		if err := ctx.Err(); err != nil {
			break
		}

		// The next request is never issued before this one settles.
		err := q.install(ctx, path)
		if err != nil {
			log.Printf("install %s failed: %v", path, err)
		}
		results = append(results, Result{Path: path, Err: err})

		// The pacing delay follows every settle, the last one included.
		select {
		case <-ctx.Done():
		case <-time.After(pacing):
		}
	}
	return results, nil
}

package fetch

import (
	"context"
	"net/http"
	"sync"

	"github.com/scbirs/order-explorer/internal/domain"
	"github.com/scbirs/order-explorer/internal/logging"
	"github.com/scbirs/order-explorer/internal/store"
)

// Result is the terminal outcome of a background fetch. Exactly one
// result is delivered per started fetch. On error the order slice is
// nil: the operation is all-or-nothing.
type Result struct {
	Orders  []domain.Order
	Dropped int
	Err     error
}

// Runner executes at most one fetch at a time on a background
// goroutine while the foreground polls progress. A second Start while
// one is outstanding is rejected with ErrFetchInFlight rather than
// queued; store replacement is not synchronized across concurrent
// writers. Abandonment is passive: stop reading the result channel and
// the outcome is discarded (the channel is buffered, the goroutine
// never blocks on delivery).
type Runner struct {
	client *http.Client

	// The fetcher itself is confined to the background goroutine;
	// the mutex guards the progress snapshot it publishes after each
	// step so the foreground can poll it mid-fetch.
	mu    sync.Mutex
	busy  bool
	page  int
	total int
}

// NewRunner creates a runner using the default HTTP client.
func NewRunner() *Runner {
	return &Runner{client: http.DefaultClient}
}

// NewRunnerWithClient creates a runner with an explicit HTTP client.
func NewRunnerWithClient(client *http.Client) *Runner {
	return &Runner{client: client}
}

// Busy reports whether a fetch is currently in flight.
func (r *Runner) Busy() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.busy
}

// Progress reports the in-flight fetch position, or zeros when idle.
func (r *Runner) Progress() (page, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.busy {
		return 0, 0
	}
	return r.page, r.total
}

// publishProgress records the fetcher's position for foreground polls.
func (r *Runner) publishProgress(page, total int) {
	r.mu.Lock()
	r.page = page
	r.total = total
	r.mu.Unlock()
}

// Start launches a background fetch for the given settings and
// returns the channel carrying its single terminal result. Returns
// ErrFetchInFlight while a previous fetch is still running.
func (r *Runner) Start(ctx context.Context, settings store.Settings) (<-chan Result, error) {
	r.mu.Lock()
	if r.busy {
		r.mu.Unlock()
		return nil, ErrFetchInFlight
	}
	fetcher := NewWithClient(settings, r.client)
	r.busy = true
	r.page = 0
	r.total = 0
	r.mu.Unlock()

	done := make(chan Result, 1)
	go func() {
		result := r.run(ctx, fetcher)
		r.mu.Lock()
		r.busy = false
		r.mu.Unlock()
		done <- result
	}()
	return done, nil
}

func (r *Runner) run(ctx context.Context, fetcher *Fetcher) Result {
	log := logging.With("async", true)
	for !fetcher.Done() {
		if err := ctx.Err(); err != nil {
			return Result{Err: err}
		}
		if err := fetcher.Step(ctx); err != nil {
			log.Error("fetch aborted", "error", err)
			return Result{Err: err}
		}
		r.publishProgress(fetcher.Progress())
	}
	page, _ := fetcher.Progress()
	log.Info("fetch finished", "pages", page, "orders", len(fetcher.Orders()), "dropped", fetcher.Dropped())
	return Result{Orders: fetcher.Orders(), Dropped: fetcher.Dropped()}
}

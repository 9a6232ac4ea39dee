package adapter

import (
	"errors"
	"sync"

	"github.com/syssam/gom/dialect"
	"github.com/syssam/gom/dialect/sql"

	_ "modernc.org/sqlite"
)

// Work is a unit of database access dispatched on the adapter's worker
// goroutine. It receives the live driver and runs with exclusive access to
// the connection.
type Work func(drv *sql.Driver) error

type workItem struct {
	fn     Work
	result chan<- error
}

// Adapter owns one SQLite connection and a single worker goroutine that
// executes every statement against it, in FIFO submission order (spec.md
// §4.5, "Scheduling model").
type Adapter struct {
	uri string

	mu     sync.Mutex
	open   bool
	driver *sql.Driver
	queue  chan workItem
	wg     sync.WaitGroup
}

// New returns an Adapter for the given SQLite URI (a filesystem path or
// ":memory:"). The connection is not established until Open is called.
func New(uri string) *Adapter {
	return &Adapter{uri: uri}
}

// Open establishes the SQLite connection and starts the worker goroutine.
// It enables WAL journaling and foreign-key enforcement, matching the
// PRAGMAs the original sqlite adapter issued on open.
func (a *Adapter) Open() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.open {
		return ErrAlreadyOpen
	}

	drv, err := sql.Open(dialect.SQLite, a.uri)
	if err != nil {
		return &OpenFailedError{URI: a.uri, Err: err}
	}
	if _, err := drv.DB().Exec("PRAGMA journal_mode = WAL"); err != nil {
		drv.Close()
		return &OpenFailedError{URI: a.uri, Err: err}
	}
	if _, err := drv.DB().Exec("PRAGMA foreign_keys = ON"); err != nil {
		drv.Close()
		return &OpenFailedError{URI: a.uri, Err: err}
	}

	a.driver = drv
	a.queue = make(chan workItem)
	a.open = true
	a.wg.Add(1)
	go a.run()
	return nil
}

func (a *Adapter) run() {
	defer a.wg.Done()
	for item := range a.queue {
		item.result <- item.fn(a.driver)
	}
}

// QueueWrite hands fn to the worker goroutine and returns as soon as the
// worker has taken it, which waits for any item the worker is already
// running to finish; fn's outcome is delivered on the returned channel once
// the worker runs it.
func (a *Adapter) QueueWrite(fn Work) <-chan error {
	return a.enqueue(fn)
}

// QueueRead is QueueWrite's read-side twin. Reads and writes share the same
// FIFO queue: SQLite allows only one writer at a time, and the adapter
// prefers simple ordering over read parallelism (spec.md §4.5).
func (a *Adapter) QueueRead(fn Work) <-chan error {
	return a.enqueue(fn)
}

func (a *Adapter) enqueue(fn Work) <-chan error {
	result := make(chan error, 1)
	// Held across the handoff: the queue is unbuffered, so a completed send
	// means the worker has already taken the item and will run it to
	// completion even if Close starts concurrently (Close takes this same
	// lock before closing the channel). An item not yet handed off when
	// the adapter is closed is rejected here instead of entering the
	// channel.
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.open {
		result <- ErrClosed
		return result
	}
	a.queue <- workItem{fn: fn, result: result}
	return result
}

// Write synchronously runs fn on the worker goroutine and returns its
// result.
func (a *Adapter) Write(fn Work) error {
	return <-a.QueueWrite(fn)
}

// Read is Write's read-side twin.
func (a *Adapter) Read(fn Work) error {
	return <-a.QueueRead(fn)
}

// Close stops accepting new work, waits for the worker to drain whatever it
// already received, and closes the connection. A second call reports
// ErrNotOpen rather than panicking.
func (a *Adapter) Close() error {
	a.mu.Lock()
	if !a.open {
		a.mu.Unlock()
		return ErrNotOpen
	}
	a.open = false
	close(a.queue)
	a.mu.Unlock()

	a.wg.Wait()
	if err := a.driver.Close(); err != nil {
		return errors.Join(ErrClosed, err)
	}
	return nil
}

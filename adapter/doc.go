// Package adapter owns the single SQLite connection backing a gom
// Repository. Every statement runs on one worker goroutine so concurrent
// callers never race on the connection; QueueRead/QueueWrite submit work
// asynchronously, and Read/Write block the caller until the worker
// completes it (spec.md §4.5, Adapter).
package adapter

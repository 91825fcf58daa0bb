package perf

import "github.com/quarterline/arcade-circuit/internal/storage"

// Monitor wraps engine operations with timing and memory instrumentation and
// runs the periodic quota sweep that keeps the store under its high-water
// mark.
type Monitor interface {
	// Track runs fn, recording its duration and heap delta as a sample.
	Track(op string, fn func())
	// Samples returns the retained samples, oldest first.
	Samples() []Sample
	// Summary aggregates the retained samples for one operation.
	Summary(op string) Summary
	// Sweep runs one quota check immediately.
	Sweep()
	// WarnHook is the store's OnQuotaWarn callback.
	WarnHook(info storage.UsageInfo)
	Start()
	Close()
}

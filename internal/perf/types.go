package perf

import (
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/quarterline/arcade-circuit/internal/history"
	"github.com/quarterline/arcade-circuit/internal/metrics"
	"github.com/quarterline/arcade-circuit/internal/storage"
)

// DefaultSampleCapacity bounds the ring buffer when no capacity is given.
const DefaultSampleCapacity = 256

// Sample is one instrumented operation. Samples are ephemeral; they live in
// the ring buffer only and are never persisted.
type Sample struct {
	Op        string        `json:"op"`
	Duration  time.Duration `json:"duration"`
	MemDelta  int64         `json:"mem_delta"`
	Timestamp int64         `json:"timestamp"`
}

// Summary aggregates the retained samples for one operation.
type Summary struct {
	Op          string        `json:"op"`
	Count       int           `json:"count"`
	AvgDuration time.Duration `json:"avg_duration"`
	MaxDuration time.Duration `json:"max_duration"`
}

// Options configures the monitor.
type Options struct {
	// SampleCapacity caps the ring buffer; 0 means DefaultSampleCapacity.
	SampleCapacity int
	// WarnPercent is the quota level past which a sweep archives history.
	WarnPercent float64
	// RetainDays is passed through to history.Archive on a triggered sweep.
	RetainDays int
	// SweepEvery is the interval between scheduled quota sweeps.
	SweepEvery time.Duration
}

type monitor struct {
	store   storage.Store
	history history.Manager
	metrics metrics.Metrics
	opts    Options

	scheduler gocron.Scheduler

	// wg tracks archive goroutines spawned by WarnHook so Close can
	// wait for them.
	wg sync.WaitGroup

	mu      sync.Mutex
	samples []Sample
	next    int
	filled  bool
}

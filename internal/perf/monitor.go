package perf

import (
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-co-op/gocron/v2"
	"github.com/quarterline/arcade-circuit/internal/history"
	"github.com/quarterline/arcade-circuit/internal/metrics"
	"github.com/quarterline/arcade-circuit/internal/storage"
)

// New creates a performance monitor. Call Start to begin the scheduled quota
// sweep and Close to stop it.
func New(store storage.Store, hist history.Manager, metricsService metrics.Metrics, opts Options) (Monitor, error) {
	if opts.SampleCapacity <= 0 {
		opts.SampleCapacity = DefaultSampleCapacity
	}
	if opts.RetainDays <= 0 {
		opts.RetainDays = history.DefaultRetainDays
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	m := &monitor{
		store:     store,
		history:   hist,
		metrics:   metricsService,
		opts:      opts,
		scheduler: scheduler,
		samples:   make([]Sample, opts.SampleCapacity),
	}

	if opts.SweepEvery > 0 {
		if _, err := scheduler.NewJob(
			gocron.DurationJob(opts.SweepEvery),
			gocron.NewTask(m.Sweep),
		); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *monitor) Start() {
	m.scheduler.Start()
	log.Debug("Performance monitor started", "sweepEvery", m.opts.SweepEvery, "sampleCapacity", m.opts.SampleCapacity)
}

func (m *monitor) Close() {
	if err := m.scheduler.Shutdown(); err != nil {
		log.Warn("Performance monitor shutdown", "error", err)
	}
	m.wg.Wait()
}

func (m *monitor) Track(op string, fn func()) {
	var before runtime.MemStats
	runtime.ReadMemStats(&before)
	start := time.Now()

	fn()

	elapsed := time.Since(start)
	var after runtime.MemStats
	runtime.ReadMemStats(&after)

	// HeapAlloc can shrink mid-operation when the GC runs; a negative
	// delta is recorded as observed.
	sample := Sample{
		Op:        op,
		Duration:  elapsed,
		MemDelta:  int64(after.HeapAlloc) - int64(before.HeapAlloc),
		Timestamp: time.Now().Unix(),
	}
	m.metrics.ObserveOperationDuration(op, elapsed.Seconds())

	m.mu.Lock()
	m.samples[m.next] = sample
	m.next++
	if m.next == len(m.samples) {
		m.next = 0
		m.filled = true
	}
	m.mu.Unlock()
}

func (m *monitor) Samples() []Sample {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.filled {
		return append([]Sample(nil), m.samples[:m.next]...)
	}
	out := make([]Sample, 0, len(m.samples))
	out = append(out, m.samples[m.next:]...)
	out = append(out, m.samples[:m.next]...)
	return out
}

func (m *monitor) Summary(op string) Summary {
	summary := Summary{Op: op}
	var total time.Duration
	for _, s := range m.Samples() {
		if s.Op != op {
			continue
		}
		summary.Count++
		total += s.Duration
		if s.Duration > summary.MaxDuration {
			summary.MaxDuration = s.Duration
		}
	}
	if summary.Count > 0 {
		summary.AvgDuration = total / time.Duration(summary.Count)
	}
	return summary
}

// Sweep reads store usage, refreshes the quota gauge, and archives history
// when usage sits past the high-water mark.
func (m *monitor) Sweep() {
	info, err := m.store.UsageInfo()
	if err != nil {
		log.Warn("Quota sweep failed to read usage", "error", err)
		return
	}
	m.metrics.SetStorageQuotaPercent(info.QuotaPercent)

	if m.opts.WarnPercent <= 0 || info.QuotaPercent < m.opts.WarnPercent {
		return
	}

	log.Info("Quota above high-water mark, archiving history",
		"quotaPercent", info.QuotaPercent,
		"totalBytes", info.TotalBytes,
		"retainDays", m.opts.RetainDays)
	result := m.history.Archive(m.opts.RetainDays)
	if result.ArchivedCount > 0 {
		log.Info("Archive sweep complete", "archived", result.ArchivedCount, "freedBytes", result.FreedBytes)
	}
}

// WarnHook adapts the monitor to the store's quota warning callback so a
// crossing triggers an archive sweep without waiting for the next tick.
// The archive runs on its own goroutine: the warning can fire from a Set
// inside an exclusive store section, and Archive takes that same lock.
func (m *monitor) WarnHook(info storage.UsageInfo) {
	m.metrics.SetStorageQuotaPercent(info.QuotaPercent)
	log.Warn("Storage quota warning", "quotaPercent", info.QuotaPercent, "totalBytes", info.TotalBytes)
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.history.Archive(m.opts.RetainDays)
	}()
}

package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	rateLimited     uint64
	totalDurationMs uint64

	mu           sync.Mutex
	aggregations map[string]uint64
	cycleErrors  uint64
}

func New() *Collector {
	return &Collector{aggregations: map[string]uint64{}}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	if status == 429 {
		atomic.AddUint64(&c.rateLimited, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

// Aggregation counts one computed rollup by name, e.g. "org.chart".
func (c *Collector) Aggregation(name string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.aggregations[name]++
	c.mu.Unlock()
}

func (c *Collector) CycleDetected() {
	if c == nil {
		return
	}
	atomic.AddUint64(&c.cycleErrors, 1)
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	limited := atomic.LoadUint64(&c.rateLimited)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}

	c.mu.Lock()
	aggregations := make(map[string]uint64, len(c.aggregations))
	for name, count := range c.aggregations {
		aggregations[name] = count
	}
	c.mu.Unlock()

	return map[string]any{
		"requestsTotal":      total,
		"errorsTotal":        errs,
		"rateLimitedTotal":   limited,
		"avgDurationMs":      avg,
		"totalDurationMs":    totalMs,
		"aggregationsTotal":  aggregations,
		"cycleDetectedTotal": atomic.LoadUint64(&c.cycleErrors),
	}
}

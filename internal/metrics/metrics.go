package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Registry groups the counters the admin endpoint exposes.
type Registry struct {
	RequestsServed    Counter
	WebhooksProcessed Counter
	WebhooksDuplicate Counter
	WebhooksInvalid   Counter
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) Snapshot() map[string]uint64 {
	return map[string]uint64{
		"requests_served":    r.RequestsServed.Load(),
		"webhooks_processed": r.WebhooksProcessed.Load(),
		"webhooks_duplicate": r.WebhooksDuplicate.Load(),
		"webhooks_invalid":   r.WebhooksInvalid.Load(),
	}
}

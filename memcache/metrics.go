package memcache

// EvictReason explains why an entry was removed by the store itself.
type EvictReason int

const (
	// EvictCapacity — removed to bring total bytes back under budget.
	EvictCapacity EvictReason = iota
	// EvictTTL — expired by TTL (lazy eviction on access).
	EvictTTL
)

// Metrics exposes cache-level observability hooks.
// A NoopMetrics implementation is provided and used by default.
type Metrics interface {
	Hit(bytes int64)
	Miss()
	Evict(reason EvictReason)
	Size(items int64, bytes int64)
}

// NoopMetrics is a drop-in Metrics implementation that does nothing.
type NoopMetrics struct{}

func (NoopMetrics) Hit(int64)         {}
func (NoopMetrics) Miss()             {}
func (NoopMetrics) Evict(EvictReason) {}
func (NoopMetrics) Size(int64, int64) {}

var _ Metrics = NoopMetrics{}

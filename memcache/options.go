package memcache

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultMaxBytes is the byte budget used when Options.MaxBytes is zero.
const DefaultMaxBytes = 100 << 20 // "100M"

// Clock provides current time in Unix milliseconds; inject a fake for
// deterministic tests.
type Clock interface{ NowUnixMilli() int64 }

// systemClock reads the OS clock.
type systemClock struct{}

func (systemClock) NowUnixMilli() int64 { return time.Now().UnixMilli() }

// millis converts a millisecond delta into a Duration.
func millis(ms int64) time.Duration { return time.Duration(ms) * time.Millisecond }

// Options configures the cache. Zero values are safe; defaults are
// applied in New():
//   - MaxBytes 0  => DefaultMaxBytes
//   - nil Clock   => system clock
//   - nil Logger  => NopLogger
//   - nil Metrics => NoopMetrics
type Options struct {
	// MaxBytes is the global byte budget (key + value bytes across all
	// namespaces). Once exceeded, the globally least recently used
	// entries are evicted until the cache fits. Negative is a
	// construction error.
	MaxBytes int64

	// Clock overrides the time source. Nil => OS clock.
	Clock Clock

	// Logger receives structured events. Nil => no logging.
	// Adapters for zap, logrus and slog live under log/.
	Logger Logger

	// Metrics receives observability signals. Nil => NoopMetrics.
	// A Prometheus adapter lives under metrics/prom.
	Metrics Metrics
}

// ParseSize parses a byte-size limit: a non-negative integer with an
// optional K (x1024) or M (x1024x1024) suffix, e.g. "64K" or "100M".
// Callers treat a failure as fatal configuration: a cache must not start
// with an undefined capacity.
func ParseSize(s string) (int64, error) {
	v := strings.TrimSpace(s)
	mult := int64(1)
	switch {
	case strings.HasSuffix(v, "K"), strings.HasSuffix(v, "k"):
		mult = 1 << 10
		v = v[:len(v)-1]
	case strings.HasSuffix(v, "M"), strings.HasSuffix(v, "m"):
		mult = 1 << 20
		v = v[:len(v)-1]
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("memcache: invalid size limit %q", s)
	}
	return n * mult, nil
}

// MustParseSize is ParseSize that panics on error. Intended for
// package-level defaults and wiring code where the value is a literal.
func MustParseSize(s string) int64 {
	n, err := ParseSize(s)
	if err != nil {
		panic(err)
	}
	return n
}

package memcache

import (
	"math/rand"
	"strconv"
	"sync/atomic"
	"testing"
)

// benchmarkMix exercises a read/write mix against a warm cache.
// It uses parallel workers (RunParallel spawns GOMAXPROCS goroutines);
// with the single store lock this measures serialization cost, which is
// the realistic cost profile of this design.
func benchmarkMix(b *testing.B, readsPct int) {
	c := New(Options{MaxBytes: 64 << 20})

	// Preload a hot keyspace to get a realistic hit-rate.
	for i := 0; i < 50_000; i++ {
		c.Set("bench", []SetItem{{
			Key:   []byte("k:" + strconv.Itoa(i)),
			Value: []byte("v"),
		}})
	}

	b.ReportAllocs()
	b.ResetTimer()

	var seed int64 = 1
	keyMask := (1 << 16) - 1 // hot keyspace (power of two for fast &-mask)

	b.RunParallel(func(pb *testing.PB) {
		// Independent RNG stream for each worker.
		r := rand.New(rand.NewSource(atomic.AddInt64(&seed, 1)))
		i := 0
		for pb.Next() {
			k := []byte("k:" + strconv.Itoa(i&keyMask))
			if r.Intn(100) < readsPct {
				c.Get("bench", [][]byte{k}, false)
			} else {
				c.Set("bench", []SetItem{{Key: k, Value: []byte("v")}})
			}
			i++
		}
	})
}

func BenchmarkCache_90r10w(b *testing.B) { benchmarkMix(b, 90) }
func BenchmarkCache_50r50w(b *testing.B) { benchmarkMix(b, 50) }

func BenchmarkCache_Increment(b *testing.B) {
	c := New(Options{MaxBytes: 1 << 20})
	key := []byte("counter")
	c.Set("bench", []SetItem{{Key: key, Value: []byte("0")}})

	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			c.Increment("bench", key, 1, Increment, nil)
		}
	})
}

func BenchmarkCache_BatchGet(b *testing.B) {
	c := New(Options{MaxBytes: 64 << 20})
	keys := make([][]byte, 32)
	for i := range keys {
		keys[i] = []byte("k:" + strconv.Itoa(i))
		c.Set("bench", []SetItem{{Key: keys[i], Value: []byte("v")}})
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		c.Get("bench", keys, false)
	}
}

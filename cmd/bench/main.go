// Command bench runs a synthetic workload against the cache and exposes
// optional pprof/Prometheus endpoints.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	zaplog "github.com/IvanBrykalov/localmemcache/log/zap"
	"github.com/IvanBrykalov/localmemcache/memcache"
	"github.com/IvanBrykalov/localmemcache/metrics/prom"
)

func main() {
	// ---- Flags ----
	var (
		size       = flag.String("size", "100M", "byte budget (integer with optional K/M suffix)")
		namespaces = flag.Int("namespaces", 4, "number of namespaces to spread keys over")

		workers  = flag.Int("workers", 2*runtime.GOMAXPROCS(0), "number of worker goroutines")
		duration = flag.Duration("duration", 10*time.Second, "benchmark duration")
		readPct  = flag.Int("reads", 70, "read percentage [0..100]")
		incrPct  = flag.Int("incr", 10, "increment percentage [0..100], taken from the write share")

		keys    = flag.Int("keys", 1_000_000, "keyspace size")
		zipfS   = flag.Float64("zipf_s", 1.1, "Zipf s > 1 (skew)")
		zipfV   = flag.Float64("zipf_v", 1.0, "Zipf v")
		seed    = flag.Int64("seed", time.Now().UnixNano(), "random seed")
		valueSz = flag.Int("value", 64, "value size in bytes")
		preload = flag.Int("preload", 100_000, "entries preloaded before the run")

		pprofAddr   = flag.String("pprof", "", "serve pprof at addr (e.g. :6060); empty = disabled")
		metricsAddr = flag.String("http", ":8080", "serve Prometheus metrics at addr")
	)
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	// Unparsable size is fatal: the cache must not start with an
	// undefined capacity.
	maxBytes, err := memcache.ParseSize(*size)
	if err != nil {
		logger.Fatal("bad -size flag", zap.Error(err))
	}

	// ---- pprof server (on DefaultServeMux) ----
	if *pprofAddr != "" {
		go func() {
			logger.Info("pprof: serving", zap.String("addr", *pprofAddr))
			logger.Error("pprof server stopped",
				zap.Error(http.ListenAndServe(*pprofAddr, nil)))
		}()
	}

	// ---- Prometheus metrics (on DefaultServeMux) ----
	metrics := prom.New(nil, "memcache", "bench", nil)
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		logger.Info("metrics: serving", zap.String("addr", *metricsAddr))
		logger.Error("metrics server stopped",
			zap.Error(http.ListenAndServe(*metricsAddr, nil)))
	}()

	// ---- Build cache ----
	c := memcache.New(memcache.Options{
		MaxBytes: maxBytes,
		Logger:   zaplog.Logger{L: logger},
		Metrics:  metrics,
	})

	nsNames := make([]string, *namespaces)
	for i := range nsNames {
		nsNames[i] = "ns:" + strconv.Itoa(i)
	}
	value := make([]byte, *valueSz)
	for i := range value {
		value[i] = 'v'
	}

	// ---- Preload to get a realistic hit-rate ----
	for i := 0; i < *preload; i++ {
		ns := nsNames[i%len(nsNames)]
		c.Set(ns, []memcache.SetItem{{
			Key:   []byte("k:" + strconv.Itoa(i)),
			Value: value,
		}})
	}

	// ---- Snapshot flags for goroutines ----
	readPctVal := *readPct
	incrPctVal := *incrPct
	keysMax := uint64(*keys - 1)
	seedBase := *seed
	zipfSVal := *zipfS
	zipfVVal := *zipfV
	workersN := *workers
	if workersN <= 0 {
		workersN = 1
	}

	// ---- Load generation ----
	var total uint64
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	start := time.Now()
	var g errgroup.Group
	for w := 0; w < workersN; w++ {
		id := w
		g.Go(func() error {
			// Each worker gets its own RNG + Zipf (rand.Rand is NOT goroutine-safe).
			localR := rand.New(rand.NewSource(seedBase + int64(id)*9973))
			localZipf := rand.NewZipf(localR, zipfSVal, zipfVVal, keysMax)

			keyByZipf := func() []byte {
				return []byte("k:" + strconv.FormatUint(localZipf.Uint64(), 10))
			}

			for {
				select {
				case <-ctx.Done():
					return nil
				default:
				}

				atomic.AddUint64(&total, 1)
				ns := nsNames[localR.Intn(len(nsNames))]
				switch p := int(localR.Int31n(100)); {
				case p < readPctVal:
					c.Get(ns, [][]byte{keyByZipf()}, false)
				case p < readPctVal+incrPctVal:
					c.Increment(ns, keyByZipf(), 1, memcache.Increment,
						&memcache.IncrementInitial{Value: 0})
				default:
					c.Set(ns, []memcache.SetItem{{Key: keyByZipf(), Value: value}})
				}
			}
		})
	}
	if err := g.Wait(); err != nil {
		logger.Fatal("worker failed", zap.Error(err))
	}
	elapsed := time.Since(start)

	// ---- Report ----
	ops := atomic.LoadUint64(&total)
	s := c.Stats()

	fmt.Printf("size=%s namespaces=%d workers=%d keys=%d dur=%v seed=%d\n",
		humanize.IBytes(uint64(maxBytes)), len(nsNames), workersN, *keys, elapsed, seedBase)
	fmt.Printf("ops=%d (%.0f ops/s)\n", ops, float64(ops)/elapsed.Seconds())
	fmt.Printf("hits=%d misses=%d hit-bytes=%s\n",
		s.Hits, s.Misses, humanize.IBytes(s.HitBytes))
	fmt.Printf("items=%d bytes=%s oldest=%v\n",
		s.Items, humanize.IBytes(s.Bytes), s.OldestItemAge)
}

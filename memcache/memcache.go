package memcache

import (
	"sync"

	"github.com/dustin/go-humanize"

	"github.com/IvanBrykalov/localmemcache/internal/util"
	"github.com/IvanBrykalov/localmemcache/lru"
)

// cache is the store behind the Cache interface: namespace maps, the
// recency chain, delete holds, and counters, all guarded by one mutex.
//
// The coarse lock is deliberate. Every operation reads and writes several
// of these structures together; a single lock means no caller ever
// observes them mid-mutation, and there is no lock ordering to get wrong.
// This is an emulation of a remote cache, not a throughput-bound server.
type cache struct {
	log      Logger
	met      Metrics
	clock    Clock
	maxBytes int64

	// casSeq hands out CAS ids. It is the one piece of state outside the
	// lock: its only contract is distinct, increasing values. Padded so
	// it does not share a cache line with mu.
	casSeq util.PaddedAtomicUint64

	// ---- guarded by mu ----
	mu         sync.Mutex
	namespaces map[string]map[string]*entry
	holds      map[string]map[string]int64 // key -> hold-until, Unix ms
	chain      *lru.Chain[entry]

	hits     uint64
	misses   uint64
	hitBytes uint64
	items    int64
	bytes    int64
}

// New constructs a cache with the provided Options. See Options for the
// defaults applied to zero fields. Panics if MaxBytes is negative.
func New(opt Options) Cache {
	if opt.MaxBytes < 0 {
		panic("memcache: MaxBytes must be >= 0")
	}
	c := &cache{
		log:        opt.Logger,
		met:        opt.Metrics,
		clock:      opt.Clock,
		maxBytes:   opt.MaxBytes,
		namespaces: make(map[string]map[string]*entry),
		holds:      make(map[string]map[string]int64),
	}
	c.chain = lru.New(func(e *entry) *lru.Link[entry] { return &e.link })

	if c.maxBytes == 0 {
		c.maxBytes = DefaultMaxBytes
	}
	if c.clock == nil {
		c.clock = systemClock{}
	}
	if c.log == nil {
		c.log = NopLogger{}
	}
	if c.met == nil {
		c.met = NoopMetrics{}
	}

	c.log.Info("cache initialized", Fields{
		"max_size": humanize.IBytes(uint64(c.maxBytes)),
	})
	return c
}

// ---- Cache implementation ----

func (c *cache) Get(namespace string, keys [][]byte, wantCasID bool) []Item {
	now := c.clock.NowUnixMilli()

	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Item, 0, len(keys))
	for _, key := range keys {
		e := c.lookupLocked(namespace, key, now)
		if e == nil {
			c.misses++
			c.met.Miss()
			continue
		}

		e.accessedAt = now
		c.chain.Update(e)
		c.hits++
		c.hitBytes += uint64(e.size())
		c.met.Hit(e.size())

		it := Item{Key: e.key, Value: e.value, Flags: e.flags}
		if wantCasID {
			if e.casID == 0 {
				e.casID = c.casSeq.Add(1)
			}
			it.CasID = e.casID
			it.HasCasID = true
		}
		out = append(out, it)
	}
	return out
}

func (c *cache) Set(namespace string, items []SetItem) []StoreResult {
	now := c.clock.NowUnixMilli()

	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]StoreResult, len(items))
	for i := range items {
		out[i] = c.setLocked(namespace, &items[i], now)
	}
	c.met.Size(c.items, c.bytes)
	return out
}

// setLocked applies one Set item. The order of checks is contractual:
// hold handling first, then the missing-CAS-id rejection, then policy
// preconditions against the (lazily expired) existing entry.
func (c *cache) setLocked(namespace string, it *SetItem, now int64) StoreResult {
	key := string(it.Key)

	if c.holdActiveLocked(namespace, key, now) {
		if it.Policy != PolicySet {
			return NotStored
		}
		// A fresh unconditional write always wins over a pending hold.
		c.clearHoldLocked(namespace, key)
	}
	if it.Policy == PolicyCAS && !it.HasCasID {
		return NotStored
	}

	// Policy checks look at the live entry only; expired entries are
	// purged here without counting a miss.
	old := c.lookupLocked(namespace, it.Key, now)
	switch it.Policy {
	case PolicyReplace:
		if old == nil {
			return NotStored
		}
	case PolicyAdd:
		if old != nil {
			return NotStored
		}
	case PolicyCAS:
		if old == nil {
			return NotStored
		}
		if old.casID == 0 || old.casID != it.CasID {
			return Exists
		}
	}

	if old != nil {
		c.removeEntryLocked(old)
	}

	// Always a fresh entry: concurrent readers holding an old Item keep a
	// consistent value, and the CAS id starts unassigned.
	e := &entry{
		namespace:  namespace,
		key:        it.Key,
		value:      it.Value,
		flags:      it.Flags,
		accessedAt: now,
	}
	if it.Expiration > 0 {
		e.expiresAt = now + it.Expiration.Milliseconds()
	}
	c.insertEntryLocked(e)
	c.evictLocked()
	return Stored
}

func (c *cache) Delete(namespace string, items []DeleteItem) []DeleteResult {
	now := c.clock.NowUnixMilli()

	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]DeleteResult, len(items))
	for i := range items {
		it := &items[i]
		out[i] = NotFound
		if e := c.lookupLocked(namespace, it.Key, now); e != nil {
			c.removeEntryLocked(e)
			out[i] = Deleted
		}
		// The hold is installed regardless of whether anything was
		// deleted; a caller may fence a key it believes to be absent.
		if it.Hold > 0 {
			c.setHoldLocked(namespace, string(it.Key), now+it.Hold.Milliseconds())
		}
	}
	c.met.Size(c.items, c.bytes)
	return out
}

func (c *cache) FlushAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.namespaces = make(map[string]map[string]*entry)
	c.holds = make(map[string]map[string]int64)
	c.chain.Clear()
	c.hits, c.misses, c.hitBytes = 0, 0, 0
	c.items, c.bytes = 0, 0

	c.met.Size(0, 0)
	c.log.Info("cache flushed", nil)
}

func (c *cache) Stats() Stats {
	now := c.clock.NowUnixMilli()

	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Hits:     c.hits,
		Misses:   c.misses,
		HitBytes: c.hitBytes,
		Items:    uint64(c.items),
		Bytes:    uint64(c.bytes),
	}
	if e := c.chain.Oldest(); e != nil {
		s.OldestItemAge = millis(now - e.accessedAt)
	}
	return s
}

// ---- internals (mu held) ----

// lookupLocked resolves a key to its live entry. An expired entry is
// purged on discovery and reported as absent; hit/miss accounting is the
// caller's concern.
func (c *cache) lookupLocked(namespace string, key []byte, now int64) *entry {
	e := c.namespaces[namespace][string(key)]
	if e == nil {
		return nil
	}
	if e.expiresAt != 0 && now >= e.expiresAt {
		c.removeEntryLocked(e)
		c.met.Evict(EvictTTL)
		return nil
	}
	return e
}

// insertEntryLocked installs e in its namespace map and the chain.
// Namespaces are created lazily and never destroyed.
func (c *cache) insertEntryLocked(e *entry) {
	m := c.namespaces[e.namespace]
	if m == nil {
		m = make(map[string]*entry)
		c.namespaces[e.namespace] = m
	}
	m[string(e.key)] = e
	c.chain.Update(e)
	c.items++
	c.bytes += e.size()
}

// removeEntryLocked unlinks e from both structures and updates counters.
func (c *cache) removeEntryLocked(e *entry) {
	delete(c.namespaces[e.namespace], string(e.key))
	c.chain.Remove(e)
	c.items--
	c.bytes -= e.size()
}

// evictLocked removes globally-oldest entries until the byte budget is
// respected. Runs after every successful insert. Eviction crosses
// namespace boundaries: there is one budget for the whole cache.
func (c *cache) evictLocked() {
	for c.bytes > c.maxBytes && !c.chain.Empty() {
		e := c.chain.Oldest()
		c.removeEntryLocked(e)
		c.met.Evict(EvictCapacity)
		c.log.Debug("evicted over budget", Fields{
			"namespace": e.namespace,
			"key":       string(e.key),
			"size":      e.size(),
		})
	}
}

// holdActiveLocked reports whether a delete hold currently fences the
// key. Expired holds are dropped on the way.
func (c *cache) holdActiveLocked(namespace, key string, now int64) bool {
	until, ok := c.holds[namespace][key]
	if !ok {
		return false
	}
	if now >= until {
		c.clearHoldLocked(namespace, key)
		return false
	}
	return true
}

func (c *cache) setHoldLocked(namespace, key string, until int64) {
	m := c.holds[namespace]
	if m == nil {
		m = make(map[string]int64)
		c.holds[namespace] = m
	}
	m[key] = until
}

func (c *cache) clearHoldLocked(namespace, key string) {
	delete(c.holds[namespace], key)
}

package memcache

import (
	"strconv"
)

// Counter semantics: values are decimal strings of unsigned 64-bit
// integers. The clamp is asymmetric on purpose, matching the emulated
// protocol: decrements saturate at zero, increments wrap modulo 2^64.

func (c *cache) Increment(namespace string, key []byte, delta uint64, dir Direction, initial *IncrementInitial) (int64, bool, error) {
	now := c.clock.NowUnixMilli()

	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.lookupLocked(namespace, key, now)
	if e == nil {
		// Only the no-initial case is a miss; establishing from an
		// initial value is a write, not a failed read.
		if initial == nil {
			c.misses++
			c.met.Miss()
			return 0, false, nil
		}
		c.establishCounterLocked(namespace, key, initial, now)
		c.met.Size(c.items, c.bytes)
		return int64(initial.Value), true, nil
	}

	c.hits++
	c.hitBytes += uint64(e.size())
	c.met.Hit(e.size())

	v, err := strconv.ParseUint(string(e.value), 10, 64)
	if err != nil {
		c.log.Warn("increment on malformed counter", Fields{
			"namespace": namespace,
			"key":       string(key),
		})
		return 0, false, &InvalidValueError{Namespace: namespace, Key: key, Cause: err}
	}

	nv := applyDelta(v, delta, dir)
	c.storeCounterLocked(e, nv, now)
	c.met.Size(c.items, c.bytes)
	return int64(nv), true, nil
}

func (c *cache) BatchIncrement(namespace string, items []IncrementItem) []IncrementResult {
	now := c.clock.NowUnixMilli()

	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]IncrementResult, len(items))
	for i := range items {
		it := &items[i]
		out[i].Status = IncrementNotChanged

		e := c.lookupLocked(namespace, it.Key, now)
		if e == nil {
			if !it.HasInitial {
				c.misses++
				c.met.Miss()
				continue
			}
			init := &IncrementInitial{Value: it.Initial, Flags: it.InitialFlags}
			c.establishCounterLocked(namespace, it.Key, init, now)
			out[i] = IncrementResult{Status: IncrementOK, NewValue: int64(it.Initial)}
			continue
		}

		c.hits++
		c.hitBytes += uint64(e.size())
		c.met.Hit(e.size())

		// The batch path never raises: an unparsable stored value only
		// fails this item.
		v, err := strconv.ParseUint(string(e.value), 10, 64)
		if err != nil {
			continue
		}

		nv := applyDelta(v, it.Delta, it.Direction)
		c.storeCounterLocked(e, nv, now)
		out[i] = IncrementResult{Status: IncrementOK, NewValue: int64(nv)}
	}
	c.met.Size(c.items, c.bytes)
	return out
}

// ---- internals (mu held) ----

// applyDelta applies the signed delta with the protocol clamp: a
// decrement past zero saturates, an increment past 2^64-1 wraps.
func applyDelta(v, delta uint64, dir Direction) uint64 {
	if dir == Decrement {
		if delta >= v {
			return 0
		}
		return v - delta
	}
	return v + delta // wraps modulo 2^64
}

// establishCounterLocked creates a counter entry from an initial value.
// Direction has no bearing here; the initial is stored as-is.
func (c *cache) establishCounterLocked(namespace string, key []byte, init *IncrementInitial, now int64) {
	e := &entry{
		namespace:  namespace,
		key:        key,
		value:      strconv.AppendUint(nil, init.Value, 10),
		flags:      init.Flags,
		accessedAt: now,
	}
	c.insertEntryLocked(e)
	c.evictLocked()
}

// storeCounterLocked writes the new counter value into the existing
// entry. Unlike Set this mutates in place: flags and an already-assigned
// CAS id are preserved, only the value bytes change. Safe because every
// reader holds the store lock.
func (c *cache) storeCounterLocked(e *entry, v uint64, now int64) {
	next := strconv.AppendUint(nil, v, 10)
	c.bytes += int64(len(next) - len(e.value))
	e.value = next
	e.accessedAt = now
	c.chain.Update(e)
	c.evictLocked()
}

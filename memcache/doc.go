// Package memcache implements a process-local, single-node emulation of a
// distributed cache: a namespace-partitioned key/value store with a
// global LRU byte budget, lazy per-entry expiration, optimistic
// concurrency via CAS ids, post-delete hold windows, and unsigned 64-bit
// counter operations.
//
// # Design
//
//   - Concurrency: one mutex guards the namespace maps, the recency
//     chain, the delete-hold map, and the statistics together. Every
//     operation — including a whole batch — is atomic with respect to
//     every other, so callers never observe the structures mid-mutation.
//     The only lock-free state is the CAS id counter, whose sole contract
//     is distinct increasing values.
//
//   - Storage: each namespace keeps a map[string]*entry for lookups; all
//     namespaces share one intrusive LRU chain (package lru) for
//     ordering. Operations are O(1) plus a map access.
//
//   - Expiration: purely lazy. An entry past its deadline is discovered
//     and purged by the next lookup that touches it; there is no
//     background sweeper.
//
//   - Eviction: after every successful insert, globally least recently
//     used entries are removed until total key+value bytes fit the
//     configured budget. The budget is process-wide; namespaces have no
//     quota of their own.
//
//   - CAS: ids are assigned lazily by the first Get that requests them
//     and are never reused; overwrites mint a fresh entry with no id, so
//     a writer holding a stale id always gets Exists back.
//
//   - Delete holds: Delete can fence a key for a window during which
//     PolicyAdd/PolicyReplace/PolicyCAS writes are rejected; an
//     unconditional PolicySet write clears the fence.
//
// # Basic usage
//
//	c := memcache.New(memcache.Options{MaxBytes: memcache.MustParseSize("64M")})
//
//	c.Set("profiles", []memcache.SetItem{{Key: []byte("u:1"), Value: []byte("ada")}})
//	items := c.Get("profiles", [][]byte{[]byte("u:1")}, false)
//
// # CAS round trip
//
//	got := c.Get("profiles", [][]byte{[]byte("u:1")}, true)
//	res := c.Set("profiles", []memcache.SetItem{{
//		Key:      []byte("u:1"),
//		Value:    []byte("ada lovelace"),
//		Policy:   memcache.PolicyCAS,
//		CasID:    got[0].CasID,
//		HasCasID: true,
//	}})
//	// res[0] is Stored, or Exists if someone wrote in between.
//
// # Counters
//
//	v, ok, err := c.Increment("stats", []byte("pageviews"), 1,
//		memcache.Increment, &memcache.IncrementInitial{Value: 0})
//
// Values are decimal strings of unsigned 64-bit integers. Decrements
// saturate at zero; increments wrap modulo 2^64.
//
// For typed values on top of the byte-level store, see package typed and
// the serializers in package codec.
package memcache

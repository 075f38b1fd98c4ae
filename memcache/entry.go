package memcache

import (
	"github.com/IvanBrykalov/localmemcache/lru"
)

// entry is a resident cache record. It embeds its recency-chain link so
// promotion on access is a pointer relink, not an allocation.
//
// An entry is reachable from the namespace map iff it is linked into the
// chain; both are updated together under the store lock. Set replaces
// entries wholesale, so value slices handed out by Get stay stable.
type entry struct {
	link lru.Link[entry]

	namespace string
	key       []byte
	value     []byte
	flags     uint32

	// Absolute expiration, Unix milliseconds. Zero means never.
	expiresAt int64
	// Last access, Unix milliseconds. Feeds LRU age reporting.
	accessedAt int64

	// casID is assigned lazily on the first Get that asks for it.
	// Zero means unassigned. Ids are never reused: a delete/recreate
	// mints a fresh entry with casID zero.
	casID uint64
}

// size is the byte footprint charged against the cache budget.
func (e *entry) size() int64 { return int64(len(e.key) + len(e.value)) }

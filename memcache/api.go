package memcache

import (
	"strconv"
	"time"
)

// SetPolicy selects the store-side precondition for a Set item.
type SetPolicy int

const (
	// PolicySet stores unconditionally. It also overrides an active
	// delete hold for the key.
	PolicySet SetPolicy = iota
	// PolicyAdd stores only if the key is absent.
	PolicyAdd
	// PolicyReplace stores only if the key is present.
	PolicyReplace
	// PolicyCAS stores only if the key is present and its CAS id matches
	// the one supplied with the item.
	PolicyCAS
)

// StoreResult is the per-item outcome of Set.
type StoreResult int

const (
	// Stored — the item was written.
	Stored StoreResult = iota
	// NotStored — a policy precondition failed, or a delete hold is active.
	NotStored
	// Exists — PolicyCAS found the entry but its CAS id did not match;
	// the caller lost an optimistic-update race.
	Exists
)

func (r StoreResult) String() string {
	switch r {
	case Stored:
		return "Stored"
	case NotStored:
		return "NotStored"
	case Exists:
		return "Exists"
	}
	return "StoreResult(" + strconv.Itoa(int(r)) + ")"
}

// DeleteResult is the per-item outcome of Delete.
type DeleteResult int

const (
	Deleted DeleteResult = iota
	NotFound
)

func (r DeleteResult) String() string {
	switch r {
	case Deleted:
		return "Deleted"
	case NotFound:
		return "NotFound"
	}
	return "DeleteResult(" + strconv.Itoa(int(r)) + ")"
}

// Direction selects whether Increment adds or subtracts the delta.
type Direction int

const (
	Increment Direction = iota
	Decrement
)

// IncrementStatus is the per-item outcome of BatchIncrement.
type IncrementStatus int

const (
	// IncrementOK — the item now holds NewValue.
	IncrementOK IncrementStatus = iota
	// IncrementNotChanged — the stored value was missing or not a valid
	// unsigned decimal; the item was left untouched.
	IncrementNotChanged
)

func (s IncrementStatus) String() string {
	switch s {
	case IncrementOK:
		return "OK"
	case IncrementNotChanged:
		return "NotChanged"
	}
	return "IncrementStatus(" + strconv.Itoa(int(s)) + ")"
}

// Item is a single entry returned by Get.
//
// Key and Value alias the store's internal buffers. Entries are replaced
// wholesale on overwrite, so the slices are stable, but callers must not
// modify them.
type Item struct {
	Key   []byte
	Value []byte
	Flags uint32

	// CasID is set only when Get was called with wantCasID.
	CasID    uint64
	HasCasID bool
}

// SetItem is a single write for Set.
type SetItem struct {
	Key   []byte
	Value []byte
	Flags uint32

	// Expiration is relative; 0 means the entry never expires.
	Expiration time.Duration

	Policy SetPolicy

	// CasID must accompany PolicyCAS; a CAS write without it is rejected
	// with NotStored.
	CasID    uint64
	HasCasID bool
}

// DeleteItem is a single removal for Delete.
type DeleteItem struct {
	Key []byte

	// Hold, when positive, installs a window during which non-PolicySet
	// writes to the key are rejected with NotStored. The window is
	// installed even if the key was already absent.
	Hold time.Duration
}

// IncrementInitial supplies the value stored when Increment targets an
// absent key. Direction has no bearing on it.
type IncrementInitial struct {
	Value uint64
	Flags uint32
}

// IncrementItem is a single counter update for BatchIncrement.
type IncrementItem struct {
	Key       []byte
	Delta     uint64
	Direction Direction

	Initial    uint64
	HasInitial bool
	// InitialFlags is used only when Initial establishes the entry.
	InitialFlags uint32
}

// IncrementResult is the per-item outcome of BatchIncrement.
type IncrementResult struct {
	Status   IncrementStatus
	NewValue int64 // valid only when Status is IncrementOK
}

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Hits     uint64 // lookups that found a live entry
	Misses   uint64 // lookups that found nothing (or an expired entry)
	HitBytes uint64 // cumulative size of hit entries

	Items uint64 // entries currently resident
	Bytes uint64 // total size of resident entries

	// OldestItemAge is how long ago the least recently used entry was
	// last touched; zero when the cache is empty.
	OldestItemAge time.Duration
}

// Cache is a namespace-partitioned byte-oriented key/value store with a
// global LRU byte budget, lazy expiration, CAS ids, delete holds, and
// unsigned 64-bit counters.
//
// All methods are safe for concurrent use. Each call, including a whole
// batch, executes atomically with respect to every other call.
type Cache interface {
	// Get looks up keys in a namespace. Only found entries are returned;
	// expired entries are purged and count as misses. With wantCasID each
	// returned item carries the entry's CAS id, assigning one if the
	// entry has none yet.
	Get(namespace string, keys [][]byte, wantCasID bool) []Item

	// Set applies the items in order and returns one StoreResult each.
	Set(namespace string, items []SetItem) []StoreResult

	// Delete removes the items' keys and returns one DeleteResult each.
	Delete(namespace string, items []DeleteItem) []DeleteResult

	// Increment adjusts the decimal unsigned 64-bit counter stored under
	// key by delta in the given direction. Decrements saturate at zero;
	// increments wrap modulo 2^64. If the key is absent and initial is
	// nil, it returns ok=false. If the stored value is not a valid
	// unsigned decimal it returns an InvalidValueError.
	//
	// The returned int64 carries the new unsigned value bit-for-bit.
	Increment(namespace string, key []byte, delta uint64, dir Direction, initial *IncrementInitial) (newValue int64, ok bool, err error)

	// BatchIncrement applies per-item Increment logic with a softer
	// failure mode: malformed stored values and absent keys without an
	// initial yield IncrementNotChanged instead of an error, and
	// decrements below zero saturate silently. Items fail independently.
	BatchIncrement(namespace string, items []IncrementItem) []IncrementResult

	// FlushAll drops every namespace, every delete hold, and resets
	// statistics to zero.
	FlushAll()

	// Stats returns a snapshot of the cache counters.
	Stats() Stats
}

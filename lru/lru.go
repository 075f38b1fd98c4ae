// Package lru implements an intrusive least-recently-used chain.
//
// The chain does not allocate nodes of its own: members embed a Link and
// the Chain threads them through it. This keeps promote-on-access a pure
// pointer relink (no allocation, no search) and lets one owner (the cache
// store) hold the only reference to each entry.
package lru

// Link holds the chain pointers embedded in a chain member.
// The zero value means "not linked".
type Link[T any] struct {
	older *T // towards Oldest
	newer *T // towards Newest
}

// Chain orders members from oldest to newest. head/tail bookkeeping and
// all operations are O(1) except Len.
//
// Concurrency: a Chain is not safe for concurrent use; the owner is
// expected to guard it with its own lock.
type Chain[T any] struct {
	newest *T
	oldest *T

	// link resolves a member to its embedded Link. Chain never touches
	// members beyond this accessor.
	link func(*T) *Link[T]
}

// New constructs an empty chain threading members through the Link
// returned by link.
func New[T any](link func(*T) *Link[T]) *Chain[T] {
	if link == nil {
		panic("lru: nil link accessor")
	}
	return &Chain[T]{link: link}
}

// Empty reports whether the chain has no members.
func (c *Chain[T]) Empty() bool { return c.newest == nil && c.oldest == nil }

// Newest returns the most recently used member, or nil if empty.
func (c *Chain[T]) Newest() *T { return c.newest }

// Oldest returns the least recently used member, or nil if empty.
func (c *Chain[T]) Oldest() *T { return c.oldest }

// Update makes n the newest member. If n is already linked it is detached
// first, so Update doubles as touch-on-access. Panics on nil.
func (c *Chain[T]) Update(n *T) {
	if n == nil {
		panic("lru: Update of nil member")
	}
	c.Remove(n)

	l := c.link(n)
	l.newer = nil
	l.older = c.newest
	if c.newest != nil {
		c.link(c.newest).newer = n
	}
	c.newest = n
	if c.oldest == nil {
		c.oldest = n
	}
}

// Remove splices n out of the chain and clears its links. Removing a
// member that is not linked is a no-op. Panics on nil.
func (c *Chain[T]) Remove(n *T) {
	if n == nil {
		panic("lru: Remove of nil member")
	}
	l := c.link(n)
	if l.older != nil {
		c.link(l.older).newer = l.newer
	}
	if l.newer != nil {
		c.link(l.newer).older = l.older
	}
	if c.newest == n {
		c.newest = l.older
	}
	if c.oldest == n {
		c.oldest = l.newer
	}
	l.older, l.newer = nil, nil
}

// RemoveOldest unlinks and returns the least recently used member.
// Panics if the chain is empty.
func (c *Chain[T]) RemoveOldest() *T {
	if c.oldest == nil {
		panic("lru: RemoveOldest on empty chain")
	}
	n := c.oldest
	c.Remove(n)
	return n
}

// Clear resets the chain heads without walking members. Links of removed
// members are left stale; callers that bulk-discard entries must not rely
// on their links afterwards.
func (c *Chain[T]) Clear() {
	c.newest, c.oldest = nil, nil
}

// Len walks the chain and returns the member count. O(n); diagnostics only.
func (c *Chain[T]) Len() int {
	n := 0
	for m := c.newest; m != nil; m = c.link(m).older {
		n++
	}
	return n
}

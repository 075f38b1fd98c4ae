// Package typed provides a typed, single-namespace client over the
// byte-level cache. Values are serialized with a codec whose wire-format
// flag is stamped into each entry, and verified again before decoding.
package typed

import (
	"errors"
	"time"

	"github.com/IvanBrykalov/localmemcache/codec"
	"github.com/IvanBrykalov/localmemcache/memcache"
)

// ErrFlagMismatch is returned when a stored entry's flags do not match
// the client's codec — someone else wrote the key in a different format.
var ErrFlagMismatch = errors.New("typed: stored flags do not match codec")

// Client is a typed view of one namespace. Multiple clients may share a
// cache; identical keys in different namespaces are unrelated.
type Client[V any] struct {
	cache memcache.Cache
	ns    string
	codec codec.Codec[V]
}

// New binds a typed client to a namespace of c using cd for values.
func New[V any](c memcache.Cache, namespace string, cd codec.Codec[V]) *Client[V] {
	if c == nil {
		panic("typed: nil cache")
	}
	if cd == nil {
		panic("typed: nil codec")
	}
	return &Client[V]{cache: c, ns: namespace, codec: cd}
}

// Get returns the decoded value for key, with ok=false on a miss.
func (t *Client[V]) Get(key string) (V, bool, error) {
	var zero V
	items := t.cache.Get(t.ns, [][]byte{[]byte(key)}, false)
	if len(items) == 0 {
		return zero, false, nil
	}
	return t.decode(items[0])
}

// GetWithCAS is Get plus the entry's CAS id for a later CompareAndSwap.
func (t *Client[V]) GetWithCAS(key string) (v V, casID uint64, ok bool, err error) {
	items := t.cache.Get(t.ns, [][]byte{[]byte(key)}, true)
	if len(items) == 0 {
		return v, 0, false, nil
	}
	v, ok, err = t.decode(items[0])
	return v, items[0].CasID, ok, err
}

// Set stores key unconditionally. ttl 0 means no expiration.
func (t *Client[V]) Set(key string, v V, ttl time.Duration) error {
	_, err := t.set(key, v, ttl, memcache.PolicySet, 0)
	return err
}

// Add stores key only if absent; reports whether it was stored.
func (t *Client[V]) Add(key string, v V, ttl time.Duration) (bool, error) {
	res, err := t.set(key, v, ttl, memcache.PolicyAdd, 0)
	return res == memcache.Stored, err
}

// Replace stores key only if present; reports whether it was stored.
func (t *Client[V]) Replace(key string, v V, ttl time.Duration) (bool, error) {
	res, err := t.set(key, v, ttl, memcache.PolicyReplace, 0)
	return res == memcache.Stored, err
}

// CompareAndSwap stores key only if its CAS id still equals casID.
// The raw StoreResult is returned so callers can distinguish a lost race
// (Exists) from a vanished entry (NotStored).
func (t *Client[V]) CompareAndSwap(key string, v V, casID uint64, ttl time.Duration) (memcache.StoreResult, error) {
	return t.set(key, v, ttl, memcache.PolicyCAS, casID)
}

// Delete removes key; hold > 0 additionally fences re-adds for that
// window. Reports whether an entry was actually removed.
func (t *Client[V]) Delete(key string, hold time.Duration) bool {
	res := t.cache.Delete(t.ns, []memcache.DeleteItem{{Key: []byte(key), Hold: hold}})
	return res[0] == memcache.Deleted
}

func (t *Client[V]) set(key string, v V, ttl time.Duration, pol memcache.SetPolicy, casID uint64) (memcache.StoreResult, error) {
	raw, err := t.codec.Encode(v)
	if err != nil {
		return memcache.NotStored, err
	}
	it := memcache.SetItem{
		Key:        []byte(key),
		Value:      raw,
		Flags:      t.codec.Flag(),
		Expiration: ttl,
		Policy:     pol,
	}
	if pol == memcache.PolicyCAS {
		it.CasID = casID
		it.HasCasID = true
	}
	return t.cache.Set(t.ns, []memcache.SetItem{it})[0], nil
}

func (t *Client[V]) decode(it memcache.Item) (V, bool, error) {
	var zero V
	if it.Flags != t.codec.Flag() {
		return zero, false, ErrFlagMismatch
	}
	v, err := t.codec.Decode(it.Value)
	if err != nil {
		return zero, false, err
	}
	return v, true, nil
}

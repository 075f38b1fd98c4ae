//go:build go1.18

package memcache

import (
	"bytes"
	"strings"
	"testing"
)

// Fuzz basic Set/Get/Delete semantics under arbitrary key/value bytes.
// Guards against panics and ensures core invariants hold.
// NOTE: We cap key/value lengths to avoid pathological memory usage
// during fuzzing (this does not weaken the invariants we check).
func FuzzCache_SetGetDelete(f *testing.F) {
	// Seed corpus: empty, ASCII, Unicode, long strings.
	f.Add("", "")
	f.Add("a", "1")
	f.Add("counter", "18446744073709551615")
	f.Add("αβγ", "δ")
	f.Add("emoji🙂", "🙂🙂")
	f.Add("long", strings.Repeat("x", 1024))

	f.Fuzz(func(t *testing.T, k, v string) {
		// Cap lengths to keep memory bounded during fuzzing.
		const limit = 1 << 12 // 4096
		if len(k) > limit {
			k = k[:limit]
		}
		if len(v) > limit {
			v = v[:limit]
		}

		c, _ := newTestCache(0)

		// Set -> Get must return the same value.
		if res := setOne(c, "fuzz", k, v); res != Stored {
			t.Fatalf("Set = %v", res)
		}
		got, ok := getOne(c, "fuzz", k)
		if !ok || !bytes.Equal(got, []byte(v)) {
			t.Fatalf("after Set/Get: want %q, got %q ok=%v", v, got, ok)
		}

		// Add duplicate must not overwrite and must report NotStored.
		if res := c.Set("fuzz", []SetItem{{Key: []byte(k), Value: []byte("other"), Policy: PolicyAdd}}); res[0] != NotStored {
			t.Fatalf("Add duplicate = %v", res[0])
		}
		if got2, ok := getOne(c, "fuzz", k); !ok || !bytes.Equal(got2, []byte(v)) {
			t.Fatalf("after duplicate Add: want %q, got %q ok=%v", v, got2, ok)
		}

		// Delete must remove and report Deleted exactly once.
		if res := c.Delete("fuzz", []DeleteItem{{Key: []byte(k)}}); res[0] != Deleted {
			t.Fatalf("Delete = %v", res[0])
		}
		if _, ok := getOne(c, "fuzz", k); ok {
			t.Fatal("key must be absent after Delete")
		}
		if res := c.Delete("fuzz", []DeleteItem{{Key: []byte(k)}}); res[0] != NotFound {
			t.Fatalf("second Delete = %v", res[0])
		}

		// With no hold requested, Add succeeds again.
		if res := c.Set("fuzz", []SetItem{{Key: []byte(k), Value: []byte(v), Policy: PolicyAdd}}); res[0] != Stored {
			t.Fatalf("Add after Delete = %v", res[0])
		}
	})
}

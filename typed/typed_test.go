package typed

import (
	"errors"
	"testing"
	"time"

	"github.com/IvanBrykalov/localmemcache/codec"
	"github.com/IvanBrykalov/localmemcache/memcache"
)

type user struct {
	ID   string `json:"id" msgpack:"id"`
	Name string `json:"name" msgpack:"name"`
}

func newClient(t *testing.T) (*Client[user], memcache.Cache) {
	t.Helper()
	c := memcache.New(memcache.Options{})
	return New[user](c, "user", codec.JSON[user]{}), c
}

func TestClient_RoundTrip(t *testing.T) {
	t.Parallel()

	cl, _ := newClient(t)

	if _, ok, err := cl.Get("u:1"); err != nil || ok {
		t.Fatalf("initial Get = ok=%v err=%v, want miss", ok, err)
	}

	want := user{ID: "1", Name: "Ada"}
	if err := cl.Set("u:1", want, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := cl.Get("u:1")
	if err != nil || !ok || got != want {
		t.Fatalf("Get = (%+v, %v, %v), want (%+v, true, nil)", got, ok, err, want)
	}
}

func TestClient_AddReplace(t *testing.T) {
	t.Parallel()

	cl, _ := newClient(t)
	u := user{ID: "1", Name: "Ada"}

	if ok, err := cl.Replace("u:1", u, 0); err != nil || ok {
		t.Fatalf("Replace absent = (%v, %v), want (false, nil)", ok, err)
	}
	if ok, err := cl.Add("u:1", u, 0); err != nil || !ok {
		t.Fatalf("Add absent = (%v, %v), want (true, nil)", ok, err)
	}
	if ok, err := cl.Add("u:1", u, 0); err != nil || ok {
		t.Fatalf("Add duplicate = (%v, %v), want (false, nil)", ok, err)
	}
	if ok, err := cl.Replace("u:1", user{ID: "1", Name: "Grace"}, 0); err != nil || !ok {
		t.Fatalf("Replace present = (%v, %v), want (true, nil)", ok, err)
	}
}

func TestClient_CompareAndSwap(t *testing.T) {
	t.Parallel()

	cl, _ := newClient(t)
	if err := cl.Set("u:1", user{ID: "1", Name: "Ada"}, 0); err != nil {
		t.Fatal(err)
	}

	_, casID, ok, err := cl.GetWithCAS("u:1")
	if err != nil || !ok || casID == 0 {
		t.Fatalf("GetWithCAS = (id=%d, %v, %v)", casID, ok, err)
	}

	res, err := cl.CompareAndSwap("u:1", user{ID: "1", Name: "Grace"}, casID, 0)
	if err != nil || res != memcache.Stored {
		t.Fatalf("first CAS = (%v, %v), want Stored", res, err)
	}

	// The id went stale with the successful write.
	res, err = cl.CompareAndSwap("u:1", user{ID: "1", Name: "Mary"}, casID, 0)
	if err != nil || res != memcache.Exists {
		t.Fatalf("stale CAS = (%v, %v), want Exists", res, err)
	}

	got, _, _ := cl.Get("u:1")
	if got.Name != "Grace" {
		t.Fatalf("value = %+v, want the CAS winner", got)
	}
}

func TestClient_DeleteWithHold(t *testing.T) {
	t.Parallel()

	cl, _ := newClient(t)
	u := user{ID: "1", Name: "Ada"}
	if err := cl.Set("u:1", u, 0); err != nil {
		t.Fatal(err)
	}

	if !cl.Delete("u:1", time.Hour) {
		t.Fatal("Delete must report true for a present key")
	}
	if ok, err := cl.Add("u:1", u, 0); err != nil || ok {
		t.Fatalf("Add under hold = (%v, %v), want (false, nil)", ok, err)
	}
	// Unconditional Set overrides the hold.
	if err := cl.Set("u:1", u, 0); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := cl.Get("u:1"); !ok {
		t.Fatal("Set must win over the hold")
	}
}

func TestClient_FlagMismatch(t *testing.T) {
	t.Parallel()

	cl, c := newClient(t)

	// Another writer stores the key with a different wire format.
	res := c.Set("user", []memcache.SetItem{{
		Key:   []byte("u:1"),
		Value: []byte("raw bytes"),
		Flags: codec.FlagRaw,
	}})
	if res[0] != memcache.Stored {
		t.Fatal("precondition: raw write must store")
	}

	_, _, err := cl.Get("u:1")
	if !errors.Is(err, ErrFlagMismatch) {
		t.Fatalf("Get = %v, want ErrFlagMismatch", err)
	}
}

func TestClient_NamespacesAreIndependent(t *testing.T) {
	t.Parallel()

	c := memcache.New(memcache.Options{})
	users := New[user](c, "user", codec.Msgpack[user]{})
	backup := New[user](c, "user-backup", codec.Msgpack[user]{})

	if err := users.Set("k", user{ID: "1", Name: "Ada"}, 0); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := backup.Get("k"); ok {
		t.Fatal("clients on different namespaces must not see each other's keys")
	}
}

package memcache

import (
	"testing"
)

func TestParseSize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want int64
	}{
		{"0", 0},
		{"1048576", 1 << 20},
		{"64K", 64 << 10},
		{"64k", 64 << 10},
		{"100M", 100 << 20},
		{"100m", 100 << 20},
		{" 100M ", 100 << 20},
		{"1K", 1024},
	}
	for _, tc := range cases {
		got, err := ParseSize(tc.in)
		if err != nil {
			t.Errorf("ParseSize(%q) error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseSize(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseSize_Invalid(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "M", "K", "-1", "-1M", "1.5M", "12G", "100 M", "MB"} {
		if _, err := ParseSize(in); err == nil {
			t.Errorf("ParseSize(%q) must fail", in)
		}
	}
}

func TestMustParseSize_Panics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatal("MustParseSize must panic on invalid input")
		}
	}()
	MustParseSize("banana")
}

func TestDefaultMaxBytes(t *testing.T) {
	t.Parallel()

	if got := MustParseSize("100M"); got != DefaultMaxBytes {
		t.Fatalf("default budget = %d, want %d", DefaultMaxBytes, got)
	}
}

package animcache

import "testing"

func TestPutGetRoundTrip(t *testing.T) {
	c := New(4)
	c.Put("a", 0, 2, 2, []byte{1, 2, 3, 4})
	got := c.Get("a", 0, 2, 2)
	if string(got) != "\x01\x02\x03\x04" {
		t.Fatalf("Get = %v, want [1 2 3 4]", got)
	}
}

func TestGetMissOnDimensionChange(t *testing.T) {
	c := New(4)
	c.Put("a", 0, 2, 2, []byte{1, 2, 3, 4})
	if got := c.Get("a", 0, 3, 3); got != nil {
		t.Fatalf("Get with different dims = %v, want nil (stale)", got)
	}
}

func TestGetMissUnknownKey(t *testing.T) {
	c := New(4)
	if got := c.Get("a", 0, 1, 1); got != nil {
		t.Fatalf("Get(unknown) = %v, want nil", got)
	}
}

func TestPutEvictsOldest(t *testing.T) {
	c := New(2)
	c.Put("a", 0, 1, 1, []byte{0})
	c.Put("a", 1, 1, 1, []byte{1})
	c.Put("a", 2, 1, 1, []byte{2}) // evicts frame 0

	if got := c.Get("a", 0, 1, 1); got != nil {
		t.Fatalf("frame 0 should have been evicted, got %v", got)
	}
	if got := c.Get("a", 2, 1, 1); got == nil {
		t.Fatalf("frame 2 should still be cached")
	}
}

func TestPutDuplicateKeyIsNoop(t *testing.T) {
	c := New(4)
	c.Put("a", 0, 1, 1, []byte{0xAA})
	c.Put("a", 0, 1, 1, []byte{0xBB})
	got := c.Get("a", 0, 1, 1)
	if len(got) != 1 || got[0] != 0xAA {
		t.Fatalf("second Put overwrote entry: %v", got)
	}
}

func TestInvalidateStream(t *testing.T) {
	c := New(4)
	c.Put("a", 0, 1, 1, []byte{1})
	c.Put("a", 1, 1, 1, []byte{2})
	c.Put("b", 0, 1, 1, []byte{3})

	c.InvalidateStream("a")

	if c.Get("a", 0, 1, 1) != nil || c.Get("a", 1, 1, 1) != nil {
		t.Fatalf("stream a entries survived invalidation")
	}
	if c.Get("b", 0, 1, 1) == nil {
		t.Fatalf("stream b entry was wrongly invalidated")
	}

	// Cache must still accept new entries for "a" after invalidation,
	// exercising the order slice after the filter-in-place compaction.
	c.Put("a", 2, 1, 1, []byte{9})
	if c.Get("a", 2, 1, 1) == nil {
		t.Fatalf("cache unusable after InvalidateStream")
	}
}

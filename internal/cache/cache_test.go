package cache

import (
	"fmt"
	"testing"
	"time"
)

func TestGetReturnsFreshValueUntilTTL(t *testing.T) {
	c := New(true)
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }

	ttl := 30 * time.Second
	etag := c.Set("team_value", []byte(`{"v":1}`), ttl)
	if etag == "" {
		t.Fatal("Set returned empty etag")
	}

	// Just inside the TTL.
	c.now = func() time.Time { return base.Add(ttl - time.Millisecond) }
	data, gotETag, ok := c.Get("team_value")
	if !ok {
		t.Fatal("Get inside TTL: not found")
	}
	if string(data) != `{"v":1}` || gotETag != etag {
		t.Fatalf("Get = (%s, %s)", data, gotETag)
	}

	// Just past the TTL.
	c.now = func() time.Time { return base.Add(ttl + time.Millisecond) }
	if _, _, ok := c.Get("team_value"); ok {
		t.Fatal("Get past TTL: expected stale miss")
	}
}

func TestDisabledCacheAlwaysMisses(t *testing.T) {
	c := New(false)
	c.Set("k", []byte("v"), time.Hour)
	if _, _, ok := c.Get("k"); ok {
		t.Fatal("disabled cache returned a hit")
	}
}

func TestTTLPolicyTable(t *testing.T) {
	tests := []struct {
		cat  Category
		want time.Duration
	}{
		{CategoryLive, 30 * time.Second},
		{CategoryStats, 5 * time.Minute},
		{CategoryFixtures, time.Hour},
		{Category("unknown"), 5 * time.Minute},
	}
	for _, tc := range tests {
		if got := TTLFor(tc.cat); got != tc.want {
			t.Errorf("TTLFor(%s) = %v, want %v", tc.cat, got, tc.want)
		}
	}
}

func TestCeilingEvictsEntryClosestToExpiry(t *testing.T) {
	c := New(true)
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }

	// Fill to the ceiling; key 0 has the shortest TTL.
	for i := 0; i < maxEntries; i++ {
		ttl := time.Hour
		if i == 0 {
			ttl = time.Minute
		}
		c.Set(fmt.Sprintf("key-%d", i), []byte("v"), ttl)
	}

	c.Set("overflow", []byte("v"), time.Hour)

	if _, _, ok := c.Get("key-0"); ok {
		t.Fatal("entry closest to expiry should have been evicted")
	}
	if _, _, ok := c.Get("overflow"); !ok {
		t.Fatal("new entry missing after ceiling eviction")
	}
	if _, _, ok := c.Get("key-1"); !ok {
		t.Fatal("longer-lived entry evicted unexpectedly")
	}
}

func TestEvictRemovesOnlyExpired(t *testing.T) {
	c := New(true)
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }

	c.Set("short", []byte("v"), time.Second)
	c.Set("long", []byte("v"), time.Hour)

	c.now = func() time.Time { return base.Add(time.Minute) }
	if removed := c.Evict(); removed != 1 {
		t.Fatalf("Evict removed %d entries, want 1", removed)
	}
	if _, _, ok := c.Get("long"); !ok {
		t.Fatal("unexpired entry removed")
	}
}

func TestCheckETagMatch(t *testing.T) {
	etag := ComputeETag([]byte("body"))
	if !CheckETagMatch(etag, etag) {
		t.Error("exact match failed")
	}
	if !CheckETagMatch("*", etag) {
		t.Error("wildcard match failed")
	}
	if CheckETagMatch("", etag) {
		t.Error("empty If-None-Match matched")
	}
}

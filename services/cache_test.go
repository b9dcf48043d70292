package services

import (
	"errors"
	"testing"
	"time"
)

// testClock lets the tests move time forward without sleeping.
type testClock struct {
	current time.Time
}

func (c *testClock) now() time.Time {
	return c.current
}

func (c *testClock) advance(d time.Duration) {
	c.current = c.current.Add(d)
}

func newTestCache() (*TTLCache, *testClock) {
	clock := &testClock{current: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)}
	cache := NewTTLCache()
	cache.now = clock.now
	return cache, clock
}

func TestCacheKey(t *testing.T) {
	if got := CacheKey("dashboard_stats"); got != "dashboard_stats" {
		t.Errorf("unexpected key: %s", got)
	}
	if got := CacheKey("dashboard_stats", "branch=1"); got != "dashboard_stats?branch=1" {
		t.Errorf("unexpected key: %s", got)
	}
	if got := CacheKey("bookings", "branch=1", "date=2025-06-15"); got != "bookings?branch=1&date=2025-06-15" {
		t.Errorf("unexpected key: %s", got)
	}
}

func TestGetOrFetchCachesWithinTTL(t *testing.T) {
	cache, _ := newTestCache()

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return calls, nil
	}

	first, err := cache.GetOrFetch("k", time.Minute, fetch)
	if err != nil {
		t.Fatal(err)
	}
	second, err := cache.GetOrFetch("k", time.Minute, fetch)
	if err != nil {
		t.Fatal(err)
	}

	if calls != 1 {
		t.Fatalf("expected one fetch, got %d", calls)
	}
	if first != second {
		t.Fatalf("expected cached value, got %v then %v", first, second)
	}
}

func TestGetOrFetchExpiresAfterTTL(t *testing.T) {
	cache, clock := newTestCache()

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return calls, nil
	}

	cache.GetOrFetch("k", 5*time.Minute, fetch)
	clock.advance(5*time.Minute + time.Second)

	value, err := cache.GetOrFetch("k", 5*time.Minute, fetch)
	if err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Fatalf("expected refetch after TTL, got %d calls", calls)
	}
	if value != 2 {
		t.Fatalf("expected fresh value 2, got %v", value)
	}
}

func TestGetOrFetchErrorCachesNothing(t *testing.T) {
	cache, _ := newTestCache()

	boom := errors.New("db down")
	if _, err := cache.GetOrFetch("k", time.Minute, func() (interface{}, error) {
		return nil, boom
	}); !errors.Is(err, boom) {
		t.Fatalf("expected fetch error, got %v", err)
	}

	// Next read fetches again and succeeds.
	value, err := cache.GetOrFetch("k", time.Minute, func() (interface{}, error) {
		return "ok", nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if value != "ok" {
		t.Fatalf("expected ok, got %v", value)
	}
}

func TestInvalidateDropsSingleKey(t *testing.T) {
	cache, _ := newTestCache()

	cache.GetOrFetch("a", time.Minute, func() (interface{}, error) { return 1, nil })
	cache.GetOrFetch("b", time.Minute, func() (interface{}, error) { return 2, nil })

	cache.Invalidate("a")

	aCalls := 0
	cache.GetOrFetch("a", time.Minute, func() (interface{}, error) { aCalls++; return 10, nil })
	bCalls := 0
	cache.GetOrFetch("b", time.Minute, func() (interface{}, error) { bCalls++; return 20, nil })

	if aCalls != 1 {
		t.Error("expected invalidated key to refetch")
	}
	if bCalls != 0 {
		t.Error("expected untouched key to stay cached")
	}
}

func TestInvalidateAll(t *testing.T) {
	cache, _ := newTestCache()

	cache.GetOrFetch("a", time.Minute, func() (interface{}, error) { return 1, nil })
	cache.GetOrFetch("b", time.Minute, func() (interface{}, error) { return 2, nil })

	cache.InvalidateAll()

	calls := 0
	cache.GetOrFetch("a", time.Minute, func() (interface{}, error) { calls++; return 0, nil })
	cache.GetOrFetch("b", time.Minute, func() (interface{}, error) { calls++; return 0, nil })
	if calls != 2 {
		t.Fatalf("expected both keys to refetch, got %d", calls)
	}
}

func TestSupersededFetchDoesNotOverwrite(t *testing.T) {
	cache, _ := newTestCache()

	// Start a fetch, then invalidate the key while it is "in flight" by
	// bumping the generation before the fetch body stores its result.
	value, err := cache.GetOrFetch("k", time.Minute, func() (interface{}, error) {
		cache.Invalidate("k")
		return "stale", nil
	})
	if err != nil {
		t.Fatal(err)
	}
	// The caller still gets the value it fetched.
	if value != "stale" {
		t.Fatalf("expected stale value returned to caller, got %v", value)
	}

	// But the cache must not have kept it.
	calls := 0
	fresh, err := cache.GetOrFetch("k", time.Minute, func() (interface{}, error) {
		calls++
		return "fresh", nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Fatal("expected refetch, superseded result should not have been cached")
	}
	if fresh != "fresh" {
		t.Fatalf("expected fresh value, got %v", fresh)
	}
}

package cache

import (
	"testing"
	"time"
)

var cacheNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func newFrozen(ttl time.Duration) *ResultCache {
	c := New(ttl)
	c.nowFn = func() time.Time { return cacheNow }
	return c
}

func TestResultCache_GetSet(t *testing.T) {
	c := newFrozen(time.Hour)

	if _, ok := c.Get("ranking|rep=0:route=0:cat=0"); ok {
		t.Error("empty cache must miss")
	}

	c.Set("ranking|rep=0:route=0:cat=0", []int{1, 2, 3})

	v, ok := c.Get("ranking|rep=0:route=0:cat=0")
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if got := v.([]int); len(got) != 3 {
		t.Errorf("got %v", got)
	}
}

func TestResultCache_ExpiredReadIsMiss(t *testing.T) {
	c := newFrozen(time.Hour)
	c.Set("overview|rep=0:route=0:cat=0", "v")

	c.nowFn = func() time.Time { return cacheNow.Add(61 * time.Minute) }

	if _, ok := c.Get("overview|rep=0:route=0:cat=0"); ok {
		t.Error("expired entry must read as a miss")
	}
	// The dead entry stays until overwritten; Len counts it.
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestResultCache_Clear(t *testing.T) {
	c := newFrozen(time.Hour)
	c.Set("a|1", 1)
	c.Set("b|2", 2)

	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Len = %d after Clear, want 0", c.Len())
	}
}

func TestResultCache_ClearOperation(t *testing.T) {
	c := newFrozen(time.Hour)
	c.Set(Key("temporal", "client=1"), 1)
	c.Set(Key("temporal", "client=2"), 2)
	c.Set(Key("forecast", "client=1"), 3)

	c.ClearOperation("temporal")

	if _, ok := c.Get(Key("temporal", "client=1")); ok {
		t.Error("temporal entries should be gone")
	}
	if _, ok := c.Get(Key("forecast", "client=1")); !ok {
		t.Error("forecast entries must survive")
	}
}

func TestKey(t *testing.T) {
	if got := Key("ranking", "rep=3:route=0:cat=0"); got != "ranking|rep=3:route=0:cat=0" {
		t.Errorf("Key = %q", got)
	}
}

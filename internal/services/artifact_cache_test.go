package services

import (
	"testing"
	"time"
)

func TestArtifactCachePutGet(t *testing.T) {
	c := NewArtifactCache(1024, time.Minute)

	c.Put("a", []byte("solid"))
	if got := c.Get("a"); string(got) != "solid" {
		t.Errorf("Get = %q, expected %q", got, "solid")
	}
	if got := c.Get("missing"); got != nil {
		t.Errorf("Get(missing) = %q, expected nil", got)
	}

	hits, misses := c.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("stats = %d/%d, expected 1 hit / 1 miss", hits, misses)
	}
}

func TestArtifactCacheExpiry(t *testing.T) {
	c := NewArtifactCache(1024, 10*time.Millisecond)
	c.Put("a", []byte("solid"))

	time.Sleep(25 * time.Millisecond)
	if got := c.Get("a"); got != nil {
		t.Errorf("expected expired entry, got %q", got)
	}
}

func TestArtifactCacheInvalidate(t *testing.T) {
	c := NewArtifactCache(1024, time.Minute)
	c.Put("a", []byte("solid"))
	c.Invalidate("a")

	if got := c.Get("a"); got != nil {
		t.Errorf("expected invalidated entry, got %q", got)
	}
}

func TestArtifactCacheRejectsOversized(t *testing.T) {
	c := NewArtifactCache(4, time.Minute)
	c.Put("big", []byte("too large"))

	if got := c.Get("big"); got != nil {
		t.Errorf("oversized entry should not be cached, got %q", got)
	}
}

func TestArtifactCacheEvictsOldest(t *testing.T) {
	c := NewArtifactCache(10, time.Minute)
	c.Put("old", []byte("12345"))
	time.Sleep(2 * time.Millisecond)
	c.Put("new", []byte("67890123"))

	if got := c.Get("old"); got != nil {
		t.Errorf("oldest entry should be evicted, got %q", got)
	}
	if got := c.Get("new"); string(got) != "67890123" {
		t.Errorf("newest entry missing, got %q", got)
	}
}

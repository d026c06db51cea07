package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestListingKey(t *testing.T) {
	a := ListingKey("W5485959")
	b := ListingKey("W5485959")
	c := ListingKey("W5485960")

	if a != b {
		t.Error("same listing must produce the same key")
	}
	if a == c {
		t.Error("different listings must produce different keys")
	}
	if len(a) != len("compscan:insight:v1:")+64 {
		t.Errorf("unexpected key shape: %s", a)
	}
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("empty cache reported a hit")
	}

	if err := c.Set("k", []byte("payload"), time.Minute); err != nil {
		t.Fatal(err)
	}
	val, found := c.Get("k")
	if !found || string(val) != "payload" {
		t.Errorf("Get = %q, %v", val, found)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatal(err)
	}
	if _, found := c.Get("k"); found {
		t.Error("deleted key still present")
	}
}

func TestDiskCacheExpiry(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)

	if err := c.Set("fresh", []byte("a"), time.Hour); err != nil {
		t.Fatal(err)
	}
	if _, found := c.Get("fresh"); !found {
		t.Error("fresh entry not found")
	}

	if err := c.Set("stale", []byte("b"), -time.Minute); err != nil {
		t.Fatal(err)
	}
	if _, found := c.Get("stale"); found {
		t.Error("expired entry returned")
	}
	// Expired reads also remove the file.
	if _, err := os.Stat(filepath.Join(dir, "stale.json")); !os.IsNotExist(err) {
		t.Error("expired entry not cleaned up")
	}
}

func TestDiskCacheCorruptEntry(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)

	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, found := c.Get("bad"); found {
		t.Error("corrupt entry reported as a hit")
	}
}

func TestLayeredCachePromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Hour)

	// Seed disk only, simulating a previous process run.
	if err := c.disk.Set("k", []byte("v"), time.Hour); err != nil {
		t.Fatal(err)
	}
	if _, found := c.memory.Get("k"); found {
		t.Fatal("memory unexpectedly warm")
	}

	val, found := c.Get("k")
	if !found || string(val) != "v" {
		t.Fatalf("Get = %q, %v", val, found)
	}

	if _, found := c.memory.Get("k"); !found {
		t.Error("disk hit was not promoted to memory")
	}
}

func TestLayeredCacheClear(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Hour)

	if err := c.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if err := c.Clear(); err != nil {
		t.Fatal(err)
	}
	if _, found := c.Get("k"); found {
		t.Error("entry survived Clear")
	}
}

package translation

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	cache, err := OpenCache(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("OpenCache failed: %v", err)
	}
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestCache_PutGet(t *testing.T) {
	cache := openTestCache(t)

	if _, ok, err := cache.Get("hello"); err != nil || ok {
		t.Fatalf("Expected miss on empty cache, got ok=%v err=%v", ok, err)
	}

	if err := cache.Put("hello", "مرحبا"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, ok, err := cache.Get("hello")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok || got != "مرحبا" {
		t.Errorf("Get = %q, %v; want مرحبا, true", got, ok)
	}
}

func TestCache_PutOverwrites(t *testing.T) {
	cache := openTestCache(t)

	if err := cache.Put("hello", "first"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := cache.Put("hello", "second"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, ok, _ := cache.Get("hello")
	if !ok || got != "second" {
		t.Errorf("Get = %q, %v; want second, true", got, ok)
	}
}

func TestCache_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	cache, err := OpenCache(path)
	if err != nil {
		t.Fatalf("OpenCache failed: %v", err)
	}
	if err := cache.Put("hello", "مرحبا"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	cache.Close()

	cache, err = OpenCache(path)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer cache.Close()

	got, ok, _ := cache.Get("hello")
	if !ok || got != "مرحبا" {
		t.Errorf("Cache content lost across reopen: %q, %v", got, ok)
	}
}

func TestCachedProvider_HitSkipsProvider(t *testing.T) {
	cache := openTestCache(t)
	provider := &flakyProvider{}
	cached := NewCachedProvider(provider, cache)

	// First call goes through and populates the cache
	first, err := cached.Translate(context.Background(), "some text")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	// Second call must be a cache hit
	second, err := cached.Translate(context.Background(), "some text")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if first != second {
		t.Errorf("Cache returned %q, provider returned %q", second, first)
	}
	if provider.calls != 1 {
		t.Errorf("Expected 1 provider call, got %d", provider.calls)
	}
}

func TestCachedProvider_ErrorNotCached(t *testing.T) {
	cache := openTestCache(t)
	provider := &flakyProvider{failures: 1, err: fmt.Errorf("boom")}
	cached := NewCachedProvider(provider, cache)

	if _, err := cached.Translate(context.Background(), "some text"); err == nil {
		t.Fatal("Expected error from provider")
	}

	// Failure must not leave a cache entry behind
	if _, ok, _ := cache.Get("some text"); ok {
		t.Error("Failed translation was cached")
	}

	// Next call retries the provider and succeeds
	got, err := cached.Translate(context.Background(), "some text")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if got == "" {
		t.Error("Got empty translation")
	}
}

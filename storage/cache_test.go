package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type memorySlot struct {
	data  []byte
	loads int
	err   error
}

func (m *memorySlot) Load(context.Context) ([]byte, error) {
	m.loads++
	if m.err != nil {
		return nil, m.err
	}
	return m.data, nil
}

func (m *memorySlot) Save(_ context.Context, data []byte) error {
	if m.err != nil {
		return m.err
	}
	m.data = append([]byte(nil), data...)
	return nil
}

func (m *memorySlot) Clear(context.Context) error {
	m.data = nil
	return m.err
}

func TestCacheLoadBackfillsAndServesFromRedis(t *testing.T) {
	ctx := context.Background()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	base := &memorySlot{data: []byte("doc")}
	cache := NewCache(base, client, "board", time.Hour)

	data, err := cache.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(data) != "doc" {
		t.Fatalf("loaded %q", data)
	}
	if base.loads != 1 {
		t.Fatalf("expected 1 base load, got %d", base.loads)
	}

	// Second load is served by the cache.
	if data, err = cache.Load(ctx); err != nil || string(data) != "doc" {
		t.Fatalf("cached load = %q, %v", data, err)
	}
	if base.loads != 1 {
		t.Fatalf("cached load hit the base (loads = %d)", base.loads)
	}
}

func TestCacheSaveWritesBaseFirst(t *testing.T) {
	ctx := context.Background()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	base := &memorySlot{}
	cache := NewCache(base, client, "board", time.Hour)

	if err := cache.Save(ctx, []byte("doc")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if string(base.data) != "doc" {
		t.Fatalf("base holds %q", base.data)
	}
	cached, err := client.Get(ctx, "cache:board").Result()
	if err != nil || cached != "doc" {
		t.Fatalf("cache holds %q, %v", cached, err)
	}

	base.err = errors.New("backend down")
	if err := cache.Save(ctx, []byte("other")); err == nil {
		t.Fatal("expected error when the base save fails")
	}
}

func TestCacheClearEvicts(t *testing.T) {
	ctx := context.Background()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	base := &memorySlot{data: []byte("doc")}
	cache := NewCache(base, client, "board", time.Hour)

	if _, err := cache.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := cache.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := client.Get(ctx, "cache:board").Err(); err != redis.Nil {
		t.Fatalf("expected evicted cache key, got %v", err)
	}
	if base.data != nil {
		t.Fatal("base not cleared")
	}
}

func TestCacheZeroTTLSkipsCacheWrites(t *testing.T) {
	ctx := context.Background()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	base := &memorySlot{data: []byte("doc")}
	cache := NewCache(base, client, "board", 0)

	if _, err := cache.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := client.Get(ctx, "cache:board").Err(); err != redis.Nil {
		t.Fatalf("expected no cache write with zero ttl, got %v", err)
	}
}

func TestCacheFallsBackWhenRedisDown(t *testing.T) {
	ctx := context.Background()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	srv.Close()
	base := &memorySlot{data: []byte("doc")}
	cache := NewCache(base, client, "board", time.Hour)

	data, err := cache.Load(ctx)
	if err != nil {
		t.Fatalf("load should fall back to the base: %v", err)
	}
	if string(data) != "doc" {
		t.Fatalf("loaded %q", data)
	}
}

func TestNewCachePanicsWithoutBase(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for nil base")
		}
	}()
	NewCache(nil, nil, "board", time.Hour)
}

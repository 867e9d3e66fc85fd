package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStoreSetGet(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()

	store.Set(ctx, "match:m1", "payload")

	got, ok := store.Get(ctx, "match:m1")
	if !ok {
		t.Fatalf("expected hit for match:m1")
	}
	if got != "payload" {
		t.Fatalf("value = %v, want payload", got)
	}

	if _, ok := store.Get(ctx, "match:other"); ok {
		t.Fatalf("expected miss for unknown key")
	}
}

func TestStoreExpiry(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	base := time.Now()
	current := base
	store.now = func() time.Time { return current }
	ctx := context.Background()

	store.Set(ctx, "short", 1)
	store.SetWithTTL(ctx, "long", 2, time.Hour)

	current = base.Add(2 * time.Minute)
	if _, ok := store.Get(ctx, "short"); ok {
		t.Fatalf("expected short entry to expire")
	}
	if _, ok := store.Get(ctx, "long"); !ok {
		t.Fatalf("expected long entry to survive its own TTL")
	}
}

func TestStorePurge(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()

	store.Set(ctx, "a", 1)
	store.Set(ctx, "b", 2)
	store.Purge(ctx)

	if _, ok := store.Get(ctx, "a"); ok {
		t.Fatalf("expected a to be purged")
	}
	if _, ok := store.Get(ctx, "b"); ok {
		t.Fatalf("expected b to be purged")
	}
}

func TestStoreGetOrLoadCollapses(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()

	var calls atomic.Int64
	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "loaded", nil
	}

	const workers = 12
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			got, err := store.GetOrLoad(ctx, "scores:m1", loader)
			if err != nil {
				t.Errorf("GetOrLoad: %v", err)
				return
			}
			if got != "loaded" {
				t.Errorf("value = %v, want loaded", got)
			}
		}()
	}
	wg.Wait()

	if calls.Load() != 1 {
		t.Fatalf("loader calls = %d, want 1", calls.Load())
	}

	if _, ok := store.Get(ctx, "scores:m1"); !ok {
		t.Fatalf("expected loaded value to be cached")
	}
}

func TestStoreGetOrLoadErrorNotCached(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()
	boom := errors.New("feed down")

	calls := 0
	_, err := store.GetOrLoad(ctx, "scores:m2", func(context.Context) (any, error) {
		calls++
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}

	got, err := store.GetOrLoad(ctx, "scores:m2", func(context.Context) (any, error) {
		calls++
		return 7, nil
	})
	if err != nil {
		t.Fatalf("GetOrLoad retry: %v", err)
	}
	if got != 7 {
		t.Fatalf("value = %v, want 7", got)
	}
	if calls != 2 {
		t.Fatalf("loader calls = %d, want 2", calls)
	}
}

func TestKey(t *testing.T) {
	t.Parallel()

	if got := Key("currentMatches"); got != "currentMatches" {
		t.Fatalf("Key = %q", got)
	}
	if got := Key("cricketScore", "unique_id=42"); got != "cricketScore?unique_id=42" {
		t.Fatalf("Key = %q", got)
	}
	if got := Key("playerStats", "pid=1", "season=2026"); got != "playerStats?pid=1&season=2026" {
		t.Fatalf("Key = %q", got)
	}
}

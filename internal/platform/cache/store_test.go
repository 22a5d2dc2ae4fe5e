package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_SetGet(t *testing.T) {
	store := NewStore(time.Minute)

	store.Set(t.Context(), "team:33", "Manchester United")

	value, ok := store.Get(t.Context(), "team:33")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if value.(string) != "Manchester United" {
		t.Fatalf("unexpected cached value: %v", value)
	}

	if _, ok := store.Get(t.Context(), "team:50"); ok {
		t.Fatal("expected cache miss for unknown key")
	}
}

func TestStore_Expiry(t *testing.T) {
	store := NewStore(10 * time.Millisecond)

	store.Set(t.Context(), "team:33", "Manchester United")
	time.Sleep(20 * time.Millisecond)

	if _, ok := store.Get(t.Context(), "team:33"); ok {
		t.Fatal("expected expired entry to miss")
	}
}

func TestStore_Delete(t *testing.T) {
	store := NewStore(time.Minute)

	store.Set(t.Context(), "team:33", "Manchester United")
	store.Delete(t.Context(), "team:33")

	if _, ok := store.Get(t.Context(), "team:33"); ok {
		t.Fatal("expected deleted entry to miss")
	}
}

func TestStore_GetOrLoad(t *testing.T) {
	store := NewStore(time.Minute)

	var calls atomic.Int32
	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return "Old Trafford", nil
	}

	for range 3 {
		value, err := store.GetOrLoad(t.Context(), "stadium:33", loader)
		if err != nil {
			t.Fatalf("GetOrLoad returned error: %v", err)
		}
		if value.(string) != "Old Trafford" {
			t.Fatalf("unexpected value: %v", value)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected 1 loader call, got %d", got)
	}
}

func TestStore_GetOrLoad_ErrorNotCached(t *testing.T) {
	store := NewStore(time.Minute)

	var calls atomic.Int32
	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return nil, errors.New("provider down")
	}

	if _, err := store.GetOrLoad(t.Context(), "team:33", loader); err == nil {
		t.Fatal("expected loader error")
	}
	if _, err := store.GetOrLoad(t.Context(), "team:33", loader); err == nil {
		t.Fatal("expected loader error on retry")
	}

	if got := calls.Load(); got != 2 {
		t.Fatalf("failed loads must not cache, expected 2 calls, got %d", got)
	}
}

func TestStore_GetOrLoad_CollapsesConcurrentLoads(t *testing.T) {
	store := NewStore(time.Minute)

	var calls atomic.Int32
	release := make(chan struct{})
	loader := func(context.Context) (any, error) {
		calls.Add(1)
		<-release
		return "Premier League", nil
	}

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			value, err := store.GetOrLoad(context.Background(), "league:39", loader)
			if err != nil {
				t.Errorf("GetOrLoad returned error: %v", err)
				return
			}
			if value.(string) != "Premier League" {
				t.Errorf("unexpected value: %v", value)
			}
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected concurrent loads to collapse into 1 call, got %d", got)
	}
}

package lock

import (
	"context"
	"sync"
	"testing"
)

func TestMemoryLockerMutualExclusion(t *testing.T) {
	l := NewMemoryAssetLocker()
	ctx := context.Background()

	ok, err := l.TryAcquire(ctx, 1)
	if err != nil || !ok {
		t.Fatalf("first acquire = %v, %v; want true, nil", ok, err)
	}
	ok, err = l.TryAcquire(ctx, 1)
	if err != nil || ok {
		t.Fatalf("second acquire = %v, %v; want false, nil", ok, err)
	}

	// A different asset is independent.
	ok, _ = l.TryAcquire(ctx, 2)
	if !ok {
		t.Error("lock on one asset must not block another")
	}

	if err := l.Release(ctx, 1); err != nil {
		t.Fatalf("release: %v", err)
	}
	ok, _ = l.TryAcquire(ctx, 1)
	if !ok {
		t.Error("acquire after release should succeed")
	}
}

func TestMemoryLockerConcurrentAcquire(t *testing.T) {
	l := NewMemoryAssetLocker()
	ctx := context.Background()

	const attempts = 50
	var wg sync.WaitGroup
	acquired := make(chan struct{}, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.TryAcquire(ctx, 7); ok {
				acquired <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(acquired)

	count := 0
	for range acquired {
		count++
	}
	if count != 1 {
		t.Errorf("%d goroutines acquired the same lock, want exactly 1", count)
	}
}

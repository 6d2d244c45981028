package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"video-hosting-service/pkg/redisclient"
)

// MemoryAssetLocker serializes pipeline runs inside a single process.
type MemoryAssetLocker struct {
	mu   sync.Mutex
	held map[int64]struct{}
}

func NewMemoryAssetLocker() *MemoryAssetLocker {
	return &MemoryAssetLocker{held: make(map[int64]struct{})}
}

func (l *MemoryAssetLocker) TryAcquire(_ context.Context, videoID int64) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.held[videoID]; ok {
		return false, nil
	}
	l.held[videoID] = struct{}{}
	return true, nil
}

func (l *MemoryAssetLocker) Release(_ context.Context, videoID int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, videoID)
	return nil
}

// RedisAssetLocker claims a per-video key with SETNX+TTL so concurrent
// workers on different hosts cannot run the same ladder twice. The TTL
// bounds how long a crashed worker can pin an asset.
type RedisAssetLocker struct {
	client *redisclient.Client
	owner  string
	ttl    time.Duration
}

func NewRedisAssetLocker(client *redisclient.Client, owner string, ttl time.Duration) *RedisAssetLocker {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &RedisAssetLocker{client: client, owner: owner, ttl: ttl}
}

func lockKey(videoID int64) string {
	return fmt.Sprintf("transcode:lock:%d", videoID)
}

func (l *RedisAssetLocker) TryAcquire(ctx context.Context, videoID int64) (bool, error) {
	return l.client.TryLock(ctx, lockKey(videoID), l.owner, l.ttl)
}

func (l *RedisAssetLocker) Release(ctx context.Context, videoID int64) error {
	return l.client.Unlock(ctx, lockKey(videoID), l.owner)
}

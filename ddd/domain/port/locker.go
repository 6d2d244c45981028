package port

import "context"

// AssetLocker serializes pipeline runs per video id. TryAcquire returns
// false when another run already holds the claim; callers skip instead of
// blocking so duplicate queue deliveries stay cheap.
type AssetLocker interface {
	TryAcquire(ctx context.Context, videoID int64) (bool, error)
	Release(ctx context.Context, videoID int64) error
}

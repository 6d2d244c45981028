package repo

import (
	"context"

	"video-hosting-service/ddd/domain/entity"
)

// VideoRepository 视频元数据仓储接口。
type VideoRepository interface {
	CreateVideo(ctx context.Context, video *entity.VideoEntity) error
	GetVideo(ctx context.Context, id int64) (*entity.VideoEntity, error)
	ListVideos(ctx context.Context) ([]*entity.VideoEntity, error)

	// MarkProcessed persists the entity's hls_dir, thumbnail_path and
	// processed flag in a single atomic update; no other field may be
	// touched. Callers flip the entity via VideoEntity.MarkProcessed first.
	MarkProcessed(ctx context.Context, video *entity.VideoEntity) error
}

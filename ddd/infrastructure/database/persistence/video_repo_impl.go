package persistence

import (
	"context"

	"gorm.io/gorm"

	"video-hosting-service/ddd/domain/entity"
	"video-hosting-service/ddd/domain/repo"
	"video-hosting-service/ddd/infrastructure/database/convertor"
	"video-hosting-service/ddd/infrastructure/database/dao"
)

// videoRepositoryImpl 视频仓储实现
type videoRepositoryImpl struct {
	videoDao  *dao.VideoDAO
	convertor *convertor.VideoConvertor
}

// NewVideoRepository 创建视频仓储实现
func NewVideoRepository(db *gorm.DB) repo.VideoRepository {
	return &videoRepositoryImpl{
		videoDao:  dao.NewVideoDAO(db),
		convertor: convertor.NewVideoConvertor(),
	}
}

// CreateVideo 创建视频并回写数据库ID
func (r *videoRepositoryImpl) CreateVideo(ctx context.Context, video *entity.VideoEntity) error {
	videoPo := r.convertor.ToPO(video)
	if err := r.videoDao.Create(ctx, videoPo); err != nil {
		return err
	}
	video.SetID(videoPo.Id)
	return nil
}

// GetVideo 根据ID获取视频
func (r *videoRepositoryImpl) GetVideo(ctx context.Context, id int64) (*entity.VideoEntity, error) {
	videoPo, err := r.videoDao.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.convertor.ToEntity(videoPo), nil
}

// ListVideos 按创建时间倒序获取视频列表
func (r *videoRepositoryImpl) ListVideos(ctx context.Context) ([]*entity.VideoEntity, error) {
	pos, err := r.videoDao.List(ctx)
	if err != nil {
		return nil, err
	}
	return r.convertor.ToEntities(pos), nil
}

// MarkProcessed 原子更新转码产物字段
func (r *videoRepositoryImpl) MarkProcessed(ctx context.Context, video *entity.VideoEntity) error {
	return r.videoDao.MarkProcessed(ctx, video.ID(), video.HLSDir(), video.ThumbnailPath())
}

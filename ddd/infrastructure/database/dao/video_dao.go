package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"video-hosting-service/ddd/infrastructure/database/po"
	"video-hosting-service/pkg/errno"
	"video-hosting-service/pkg/logger"
)

// VideoDAO 视频数据访问对象
type VideoDAO struct {
	db *gorm.DB
}

// NewVideoDAO 创建视频DAO实例
func NewVideoDAO(db *gorm.DB) *VideoDAO {
	return &VideoDAO{db: db}
}

// Create 创建视频记录
func (d *VideoDAO) Create(ctx context.Context, videoPo *po.Video) error {
	if err := d.db.WithContext(ctx).Create(videoPo).Error; err != nil {
		logger.Errorf("create video record failed error=%v", err)
		return err
	}
	return nil
}

// FindByID 根据ID查询视频
func (d *VideoDAO) FindByID(ctx context.Context, id int64) (*po.Video, error) {
	var video po.Video
	if err := d.db.WithContext(ctx).
		Where("id = ?", id).
		First(&video).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.NewBizError(errno.ErrVideoNotFound, err)
		}
		logger.Errorf("query video by id failed id=%d error=%v", id, err)
		return nil, err
	}
	return &video, nil
}

// List 按创建时间倒序返回视频列表
func (d *VideoDAO) List(ctx context.Context) ([]*po.Video, error) {
	var videos []*po.Video
	if err := d.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&videos).Error; err != nil {
		logger.Errorf("list videos failed error=%v", err)
		return nil, err
	}
	return videos, nil
}

// MarkProcessed 一次性写入转码产物字段，避免中间状态可见
func (d *VideoDAO) MarkProcessed(ctx context.Context, id int64, hlsDir, thumbnailPath string) error {
	update := map[string]interface{}{
		"hls_dir":        hlsDir,
		"thumbnail_path": thumbnailPath,
		"processed":      true,
	}
	result := d.db.WithContext(ctx).
		Model(&po.Video{}).
		Where("id = ?", id).
		Updates(update)
	if result.Error != nil {
		logger.Errorf("mark video processed failed id=%d error=%v", id, result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errno.NewBizError(errno.ErrVideoNotFound, gorm.ErrRecordNotFound)
	}
	return nil
}

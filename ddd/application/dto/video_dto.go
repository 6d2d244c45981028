package dto

import (
	"time"

	"video-hosting-service/ddd/domain/entity"
)

// VideoDto 视频数据传输对象
type VideoDto struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	ThumbnailPath string    `json:"thumbnail_path,omitempty"`
	HLSDir        string    `json:"hls_dir,omitempty"`
	Processed     bool      `json:"processed"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// VideoListDto 视频列表数据传输对象
type VideoListDto struct {
	Videos []*VideoDto `json:"videos"`
	Total  int         `json:"total"`
}

// NewVideoDto 从实体创建DTO
func NewVideoDto(e *entity.VideoEntity) *VideoDto {
	if e == nil {
		return nil
	}
	return &VideoDto{
		ID:            e.ID(),
		Title:         e.Title(),
		Description:   e.Description(),
		Category:      e.Category(),
		ThumbnailPath: e.ThumbnailPath(),
		HLSDir:        e.HLSDir(),
		Processed:     e.Processed(),
		CreatedAt:     e.CreatedAt(),
		UpdatedAt:     e.UpdatedAt(),
	}
}

// NewVideoListDto 从实体列表创建列表DTO
func NewVideoListDto(entities []*entity.VideoEntity) *VideoListDto {
	videos := make([]*VideoDto, 0, len(entities))
	for _, e := range entities {
		if d := NewVideoDto(e); d != nil {
			videos = append(videos, d)
		}
	}
	return &VideoListDto{Videos: videos, Total: len(videos)}
}

package convertor

import (
	"video-hosting-service/ddd/domain/entity"
	"video-hosting-service/ddd/infrastructure/database/po"
)

// VideoConvertor 视频PO与实体转换器
type VideoConvertor struct{}

// NewVideoConvertor 创建视频转换器
func NewVideoConvertor() *VideoConvertor {
	return &VideoConvertor{}
}

// ToEntity 将PO转换为Entity
func (c *VideoConvertor) ToEntity(p *po.Video) *entity.VideoEntity {
	if p == nil {
		return nil
	}
	return entity.RestoreVideoEntity(
		p.Id,
		p.Title,
		p.Description,
		p.Category,
		p.SourcePath,
		p.ThumbnailPath,
		p.HLSDir,
		p.Processed,
		p.CreatedAt,
		p.UpdatedAt,
	)
}

// ToPO 将Entity转换为PO
func (c *VideoConvertor) ToPO(e *entity.VideoEntity) *po.Video {
	if e == nil {
		return nil
	}
	return &po.Video{
		BaseModel: po.BaseModel{
			Id:        e.ID(),
			CreatedAt: e.CreatedAt(),
			UpdatedAt: e.UpdatedAt(),
		},
		Title:         e.Title(),
		Description:   e.Description(),
		Category:      e.Category(),
		SourcePath:    e.SourcePath(),
		ThumbnailPath: e.ThumbnailPath(),
		HLSDir:        e.HLSDir(),
		Processed:     e.Processed(),
	}
}

// ToEntities 批量将PO转换为Entity
func (c *VideoConvertor) ToEntities(pos []*po.Video) []*entity.VideoEntity {
	if pos == nil {
		return nil
	}
	entities := make([]*entity.VideoEntity, 0, len(pos))
	for _, p := range pos {
		if p != nil {
			entities = append(entities, c.ToEntity(p))
		}
	}
	return entities
}

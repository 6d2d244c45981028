package entity

import "time"

// VideoEntity 视频领域实体。
// processed=true 当且仅当转码流水线完整成功；此时 hlsDir 非空，
// 且每个档位目录下存在可读的 index.m3u8。
type VideoEntity struct {
	id            int64
	title         string
	description   string
	category      string
	sourcePath    string // relative to the media root, e.g. "videos/original/xxx.mp4"
	thumbnailPath string // relative to the media root, empty until processing completes
	hlsDir        string // e.g. "hls/42", empty until processed
	processed     bool
	createdAt     time.Time
	updatedAt     time.Time
}

func NewVideoEntity(title, description, category, sourcePath string) *VideoEntity {
	now := time.Now()
	return &VideoEntity{
		title:       title,
		description: description,
		category:    category,
		sourcePath:  sourcePath,
		createdAt:   now,
		updatedAt:   now,
	}
}

// RestoreVideoEntity rebuilds an entity from persisted state.
func RestoreVideoEntity(id int64, title, description, category, sourcePath, thumbnailPath, hlsDir string, processed bool, createdAt, updatedAt time.Time) *VideoEntity {
	return &VideoEntity{
		id:            id,
		title:         title,
		description:   description,
		category:      category,
		sourcePath:    sourcePath,
		thumbnailPath: thumbnailPath,
		hlsDir:        hlsDir,
		processed:     processed,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (e *VideoEntity) ID() int64             { return e.id }
func (e *VideoEntity) Title() string         { return e.title }
func (e *VideoEntity) Description() string   { return e.description }
func (e *VideoEntity) Category() string      { return e.category }
func (e *VideoEntity) SourcePath() string    { return e.sourcePath }
func (e *VideoEntity) ThumbnailPath() string { return e.thumbnailPath }
func (e *VideoEntity) HLSDir() string        { return e.hlsDir }
func (e *VideoEntity) Processed() bool       { return e.processed }
func (e *VideoEntity) CreatedAt() time.Time  { return e.createdAt }
func (e *VideoEntity) UpdatedAt() time.Time  { return e.updatedAt }

func (e *VideoEntity) SetID(id int64) { e.id = id }

// MarkProcessed records the pipeline result on the entity. The repository
// persists exactly these three fields in one statement.
func (e *VideoEntity) MarkProcessed(hlsDir, thumbnailPath string) {
	e.hlsDir = hlsDir
	e.thumbnailPath = thumbnailPath
	e.processed = true
	e.updatedAt = time.Now()
}

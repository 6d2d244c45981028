package po

// Video 视频持久化对象
type Video struct {
	BaseModel
	Title         string `gorm:"column:title;type:varchar(200)" json:"title"`
	Description   string `gorm:"column:description;type:text" json:"description"`
	Category      string `gorm:"column:category;type:varchar(50);index" json:"category"`
	SourcePath    string `gorm:"column:source_path;type:varchar(512)" json:"source_path"`
	ThumbnailPath string `gorm:"column:thumbnail_path;type:varchar(512)" json:"thumbnail_path"`
	HLSDir        string `gorm:"column:hls_dir;type:varchar(512)" json:"hls_dir"`
	Processed     bool   `gorm:"column:processed;index" json:"processed"`
}

// TableName 指定表名
func (Video) TableName() string {
	return "videos"
}

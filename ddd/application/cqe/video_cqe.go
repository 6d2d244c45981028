package cqe

import "video-hosting-service/pkg/errno"

// CreateVideoReq 创建视频请求。文件本体走 multipart，由控制器落盘后
// 把相对路径填入 SourcePath。
type CreateVideoReq struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	Category    string `form:"category"`

	// SourcePath 相对媒体根目录的原始文件路径，控制器保存上传文件后填入
	SourcePath string `form:"-"`
}

func (req *CreateVideoReq) Validate() error {
	if req.Title == "" {
		return errno.ErrTitleRequired
	}
	if req.SourcePath == "" {
		return errno.ErrVideoFileRequired
	}
	return nil
}

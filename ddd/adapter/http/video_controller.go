package http

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"video-hosting-service/ddd/application/app"
	"video-hosting-service/ddd/application/cqe"
	"video-hosting-service/pkg/errno"
	"video-hosting-service/pkg/logger"
	"video-hosting-service/pkg/restapi"
)

// VideoController 视频元数据控制器
type VideoController struct {
	videoApp  app.VideoApp
	mediaRoot string
}

// NewVideoController 创建视频控制器
func NewVideoController(videoApp app.VideoApp, mediaRoot string) *VideoController {
	return &VideoController{videoApp: videoApp, mediaRoot: mediaRoot}
}

// ListVideos 获取视频列表
func (c *VideoController) ListVideos(ctx *gin.Context) {
	resp, err := c.videoApp.ListVideos(ctx.Request.Context())
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	restapi.Success(ctx, resp)
}

// GetVideo 获取视频详情
func (c *VideoController) GetVideo(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		restapi.NotFound(ctx)
		return
	}
	resp, err := c.videoApp.GetVideo(ctx.Request.Context(), id)
	if err != nil {
		if errno.IsNotFound(err) {
			restapi.NotFound(ctx)
			return
		}
		restapi.Failed(ctx, err)
		return
	}
	restapi.Success(ctx, resp)
}

// CreateVideo 上传视频。multipart表单：title、description、category、video
func (c *VideoController) CreateVideo(ctx *gin.Context) {
	var req cqe.CreateVideoReq
	if err := ctx.ShouldBind(&req); err != nil {
		restapi.Failed(ctx, err)
		return
	}

	file, err := ctx.FormFile("video")
	if err != nil {
		restapi.Failed(ctx, errno.ErrVideoFileRequired)
		return
	}

	// The original name is kept for operators; the uuid prefix avoids
	// collisions between uploads with the same name.
	relPath := filepath.ToSlash(filepath.Join("videos", "original",
		fmt.Sprintf("%s_%s", uuid.NewString(), filepath.Base(file.Filename))))
	dstPath := filepath.Join(c.mediaRoot, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		restapi.Failed(ctx, err)
		return
	}
	if err := ctx.SaveUploadedFile(file, dstPath); err != nil {
		logger.Errorf("save uploaded file failed path=%s error=%v", dstPath, err)
		restapi.Failed(ctx, err)
		return
	}
	req.SourcePath = relPath

	resp, err := c.videoApp.CreateVideo(ctx.Request.Context(), &req)
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	restapi.Created(ctx, resp)
}

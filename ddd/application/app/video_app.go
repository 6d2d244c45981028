package app

import (
	"context"

	"video-hosting-service/ddd/application/cqe"
	"video-hosting-service/ddd/application/dto"
	"video-hosting-service/ddd/domain/entity"
	"video-hosting-service/ddd/domain/port"
	"video-hosting-service/ddd/domain/repo"
	"video-hosting-service/pkg/errno"
	"video-hosting-service/pkg/logger"
)

// VideoApp 视频应用服务
type VideoApp interface {
	// CreateVideo 创建视频记录并触发转码入队
	CreateVideo(ctx context.Context, req *cqe.CreateVideoReq) (*dto.VideoDto, error)
	// GetVideo 获取视频详情
	GetVideo(ctx context.Context, id int64) (*dto.VideoDto, error)
	// ListVideos 获取视频列表
	ListVideos(ctx context.Context) (*dto.VideoListDto, error)
	// OnVideoCreated 按入队条件判定是否发布转码作业
	OnVideoCreated(ctx context.Context, video *entity.VideoEntity)
}

type videoAppImpl struct {
	videoRepo repo.VideoRepository
	publisher port.JobPublisher
}

func NewVideoApp(videoRepo repo.VideoRepository, publisher port.JobPublisher) VideoApp {
	return &videoAppImpl{videoRepo: videoRepo, publisher: publisher}
}

// CreateVideo 创建视频记录
func (a *videoAppImpl) CreateVideo(ctx context.Context, req *cqe.CreateVideoReq) (*dto.VideoDto, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	video := entity.NewVideoEntity(req.Title, req.Description, req.Category, req.SourcePath)
	if err := a.videoRepo.CreateVideo(ctx, video); err != nil {
		logger.Errorf("create video failed title=%s error=%v", req.Title, err)
		return nil, err
	}

	a.OnVideoCreated(ctx, video)

	return dto.NewVideoDto(video), nil
}

// GetVideo 获取视频详情
func (a *videoAppImpl) GetVideo(ctx context.Context, id int64) (*dto.VideoDto, error) {
	video, err := a.videoRepo.GetVideo(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewVideoDto(video), nil
}

// ListVideos 获取视频列表
func (a *videoAppImpl) ListVideos(ctx context.Context) (*dto.VideoListDto, error) {
	videos, err := a.videoRepo.ListVideos(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewVideoListDto(videos), nil
}

// OnVideoCreated publishes a transcode job for a newly created record.
// Enqueue happens only when the record has a source file and has not been
// processed yet. Publish failures are logged, not propagated: the record
// exists either way and a later enqueue can pick it up.
func (a *videoAppImpl) OnVideoCreated(ctx context.Context, video *entity.VideoEntity) {
	if video == nil || video.ID() == 0 {
		return
	}
	if video.SourcePath() == "" || video.Processed() {
		logger.Debugf("transcode enqueue skipped video_id=%d source=%q processed=%v",
			video.ID(), video.SourcePath(), video.Processed())
		return
	}
	if err := a.publisher.Publish(ctx, port.JobTranscodeVideo, video.ID()); err != nil {
		logger.Errorf("publish transcode job failed video_id=%d error=%v",
			video.ID(), errno.NewBizError(errno.ErrEnqueueFailed, err))
		return
	}
	logger.Infof("transcode job published video_id=%d", video.ID())
}

package service

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"video-hosting-service/ddd/domain/gateway"
	"video-hosting-service/ddd/domain/port"
	"video-hosting-service/ddd/domain/repo"
	"video-hosting-service/ddd/domain/vo"
	"video-hosting-service/pkg/logger"
)

// TranscodeService 转码流水线：一个输入文件 → 固定阶梯的HLS包 + 缩略图。
type TranscodeService interface {
	// Run transcodes the video's source file into every ladder variant and
	// commits the result in one atomic metadata update. A missing source
	// file is a silent no-op; any encoder failure aborts the whole run with
	// nothing committed, leaving the record retryable.
	Run(ctx context.Context, videoID int64) error
}

type transcodeServiceImpl struct {
	mediaRoot       string
	ladder          []vo.QualityVariant
	thumbnailOffset float64
	videoRepo       repo.VideoRepository
	encoder         port.Encoder
	locker          port.AssetLocker
	storage         gateway.StorageGateway // nil disables mirroring
}

// NewTranscodeService wires the pipeline. storage may be nil.
func NewTranscodeService(mediaRoot string, ladder []vo.QualityVariant, thumbnailOffset float64, videoRepo repo.VideoRepository, encoder port.Encoder, locker port.AssetLocker, storage gateway.StorageGateway) TranscodeService {
	if len(ladder) == 0 {
		ladder = vo.DefaultLadder()
	}
	if thumbnailOffset <= 0 {
		thumbnailOffset = 3
	}
	return &transcodeServiceImpl{
		mediaRoot:       mediaRoot,
		ladder:          ladder,
		thumbnailOffset: thumbnailOffset,
		videoRepo:       videoRepo,
		encoder:         encoder,
		locker:          locker,
		storage:         storage,
	}
}

func (s *transcodeServiceImpl) Run(ctx context.Context, videoID int64) error {
	video, err := s.videoRepo.GetVideo(ctx, videoID)
	if err != nil {
		return fmt.Errorf("load video %d: %w", videoID, err)
	}

	// Stray or duplicate enqueues for records without a source are tolerated.
	if video.SourcePath() == "" {
		logger.Infof("transcode skipped, no source file video_id=%d", videoID)
		return nil
	}

	acquired, err := s.locker.TryAcquire(ctx, videoID)
	if err != nil {
		return fmt.Errorf("acquire transcode lock for video %d: %w", videoID, err)
	}
	if !acquired {
		logger.Infof("transcode already in flight, skipping video_id=%d", videoID)
		return nil
	}
	defer func() {
		// Release must run on every exit path, including encoder failures.
		if relErr := s.locker.Release(context.Background(), videoID); relErr != nil {
			logger.Warnf("release transcode lock failed video_id=%d error=%v", videoID, relErr)
		}
	}()

	inputPath := filepath.Join(s.mediaRoot, filepath.FromSlash(video.SourcePath()))
	outBase := filepath.Join(s.mediaRoot, "hls", strconv.FormatInt(videoID, 10))
	// Retried runs may find the tree partially present; that is fine.
	if err := os.MkdirAll(outBase, 0o755); err != nil {
		return fmt.Errorf("create output base %s: %w", outBase, err)
	}

	for _, variant := range s.ladder {
		variantDir := filepath.Join(outBase, variant.Name)
		if err := os.MkdirAll(variantDir, 0o755); err != nil {
			return fmt.Errorf("create variant dir %s: %w", variantDir, err)
		}
		logger.Infof("encoding variant video_id=%d variant=%s bitrate=%s", videoID, variant.Name, variant.VideoBitrate)
		if err := s.encoder.EncodeVariant(ctx, inputPath, variantDir, variant); err != nil {
			// A half-ladder would silently degrade playback quality
			// selection, so any variant failure fails the whole run.
			return fmt.Errorf("encode variant %s for video %d: %w", variant.Name, videoID, err)
		}
	}

	thumbnailPath := ""
	thumbFile := filepath.Join(outBase, "thumb.jpg")
	if err := s.encoder.ExtractThumbnail(ctx, inputPath, thumbFile, s.thumbnailOffset); err != nil {
		// Cosmetic only; the run continues with the thumbnail field unset.
		logger.Warnf("thumbnail extraction failed video_id=%d error=%v", videoID, err)
	} else {
		thumbnailPath = path.Join("hls", strconv.FormatInt(videoID, 10), "thumb.jpg")
	}

	hlsDir := path.Join("hls", strconv.FormatInt(videoID, 10))
	video.MarkProcessed(hlsDir, thumbnailPath)
	if err := s.videoRepo.MarkProcessed(ctx, video); err != nil {
		return fmt.Errorf("mark video %d processed: %w", videoID, err)
	}
	logger.Infof("transcode completed video_id=%d hls_dir=%s variants=%d", videoID, hlsDir, len(s.ladder))

	if s.storage != nil {
		s.mirrorPackage(ctx, videoID, outBase)
	}
	return nil
}

// mirrorPackage copies the finished package into object storage. Failures
// are logged only; the local tree remains the serving source of truth.
func (s *transcodeServiceImpl) mirrorPackage(ctx context.Context, videoID int64, outBase string) {
	objects := make([]gateway.UploadObject, 0, 32)
	_ = filepath.WalkDir(outBase, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(s.mediaRoot, p)
		if relErr != nil {
			return nil
		}
		objects = append(objects, gateway.UploadObject{
			LocalPath:   p,
			ObjectKey:   filepath.ToSlash(rel),
			ContentType: hlsContentType(p),
		})
		return nil
	})
	if len(objects) == 0 {
		return
	}
	if err := s.storage.UploadObjects(ctx, objects); err != nil {
		logger.Warnf("mirror to object storage failed video_id=%d error=%v", videoID, err)
		return
	}
	logger.Infof("mirrored package video_id=%d objects=%d", videoID, len(objects))
}

func hlsContentType(p string) string {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".m3u8":
		return "application/vnd.apple.mpegurl"
	case ".ts":
		return "video/MP2T"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}

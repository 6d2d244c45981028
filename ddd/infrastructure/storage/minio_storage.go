package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"video-hosting-service/ddd/domain/gateway"
	"video-hosting-service/pkg/config"
	"video-hosting-service/pkg/logger"
)

// MinioStorage mirrors transcoded packages to object storage so a CDN or
// another origin can serve them. The local media root stays authoritative.
type MinioStorage struct {
	client *minio.Client
	bucket string
}

// NewMinioStorage connects to MinIO and makes sure the target bucket exists.
func NewMinioStorage(ctx context.Context, cfg *config.MinioConfig) (gateway.StorageGateway, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client failed: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("check minio bucket failed: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create minio bucket failed: %w", err)
		}
		logger.Infof("created minio bucket name=%s", cfg.BucketName)
	}

	return &MinioStorage{client: client, bucket: cfg.BucketName}, nil
}

// UploadObjects 批量上传对象
func (s *MinioStorage) UploadObjects(ctx context.Context, objects []gateway.UploadObject) error {
	for _, obj := range objects {
		contentType := obj.ContentType
		if contentType == "" {
			contentType = contentTypeFromExtension(obj.ObjectKey)
		}
		info, err := s.client.FPutObject(ctx, s.bucket, obj.ObjectKey, obj.LocalPath, minio.PutObjectOptions{
			ContentType: contentType,
		})
		if err != nil {
			logger.Errorf("upload object to minio failed key=%s error=%v", obj.ObjectKey, err)
			return fmt.Errorf("upload object to minio failed: %w", err)
		}
		logger.Debugf("uploaded object key=%s size=%d", obj.ObjectKey, info.Size)
	}
	return nil
}

// contentTypeFromExtension 根据文件扩展名获取内容类型
func contentTypeFromExtension(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".m3u8":
		return "application/vnd.apple.mpegurl"
	case ".ts":
		return "video/MP2T"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".mp4":
		return "video/mp4"
	default:
		return "application/octet-stream"
	}
}

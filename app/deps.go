package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/gorm"

	"video-hosting-service/ddd/adapter/component"
	"video-hosting-service/ddd/domain/gateway"
	"video-hosting-service/ddd/domain/port"
	"video-hosting-service/ddd/domain/repo"
	"video-hosting-service/ddd/domain/service"
	"video-hosting-service/ddd/domain/vo"
	"video-hosting-service/ddd/infrastructure/database/persistence"
	"video-hosting-service/ddd/infrastructure/executor"
	"video-hosting-service/ddd/infrastructure/lock"
	"video-hosting-service/ddd/infrastructure/queue"
	"video-hosting-service/ddd/infrastructure/storage"
	"video-hosting-service/ddd/infrastructure/worker"
	"video-hosting-service/pkg/config"
	pkgkafka "video-hosting-service/pkg/kafka"
	"video-hosting-service/pkg/logger"
	"video-hosting-service/pkg/redisclient"
)

// Dependencies bundles the wired infrastructure shared by the API binary
// and the standalone worker binary.
type Dependencies struct {
	MediaRoot string
	VideoRepo repo.VideoRepository
	Resolver  *service.PathResolver
	Publisher port.JobPublisher
	Jobs      queue.TranscodeQueue
	Worker    worker.TranscodeWorker
	Consumer  *component.TranscodeJobConsumer

	kafkaClient *pkgkafka.Client
	redisClient *redisclient.Client
}

// BuildDependencies wires repositories, queue transport, lock, encoder and
// the worker pool from configuration.
func BuildDependencies(cfg *config.Config, db *gorm.DB) (*Dependencies, error) {
	mediaRoot, err := filepath.Abs(cfg.Media.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve media root: %w", err)
	}
	if err := os.MkdirAll(mediaRoot, 0o755); err != nil {
		return nil, fmt.Errorf("create media root: %w", err)
	}

	deps := &Dependencies{MediaRoot: mediaRoot}
	deps.VideoRepo = persistence.NewVideoRepository(db)

	resolver, err := service.NewPathResolver(mediaRoot, vo.DefaultQualityAliases())
	if err != nil {
		return nil, err
	}
	deps.Resolver = resolver

	deps.Jobs = queue.NewMemoryTranscodeQueue(cfg.Worker.QueueCapacity)

	// Kafka carries jobs between processes; without it the API process
	// feeds its own worker pool directly.
	if cfg.Kafka.Enabled {
		client := pkgkafka.DefaultClient()
		client.MustOpen()
		deps.kafkaClient = client
		topic := cfg.Kafka.Topics.TranscodeJobs
		if err := client.EnsureTopic(topic, 1, 1); err != nil {
			logger.Warnf("ensure kafka topic failed topic=%s error=%v", topic, err)
		}
		deps.Publisher = queue.NewKafkaJobPublisher(client, topic)
		deps.Consumer = component.NewTranscodeJobConsumer(client, &cfg.Kafka, deps.Jobs)
	} else {
		deps.Publisher = queue.NewLocalJobPublisher(deps.Jobs)
	}

	var locker port.AssetLocker
	if cfg.Redis.Enabled {
		redisClient, err := redisclient.New(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		deps.redisClient = redisClient
		owner := cfg.Worker.WorkerID
		if owner == "" {
			owner, _ = os.Hostname()
		}
		locker = lock.NewRedisAssetLocker(redisClient, owner, cfg.Transcode.LockTTL)
	} else {
		locker = lock.NewMemoryAssetLocker()
	}

	var storageGateway gateway.StorageGateway
	if cfg.Transcode.MirrorToStorage {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		storageGateway, err = storage.NewMinioStorage(ctx, &cfg.Minio)
		if err != nil {
			return nil, fmt.Errorf("connect object storage: %w", err)
		}
	}

	encoder := executor.NewFFmpegEncoder(cfg)
	transcodeService := service.NewTranscodeService(
		mediaRoot,
		nil, // default ladder
		cfg.Transcode.ThumbnailOffset,
		deps.VideoRepo,
		encoder,
		locker,
		storageGateway,
	)
	deps.Worker = worker.NewTranscodeWorker(cfg.Worker.WorkerID, deps.Jobs, transcodeService, cfg.Worker.Count)

	return deps, nil
}

// Close releases shared clients. Background tasks are stopped separately.
func (d *Dependencies) Close() {
	_ = d.Jobs.Close()
	if d.kafkaClient != nil {
		d.kafkaClient.Close()
	}
	if d.redisClient != nil {
		_ = d.redisClient.Close()
	}
}

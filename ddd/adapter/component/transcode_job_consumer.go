package component

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"

	"video-hosting-service/ddd/domain/port"
	"video-hosting-service/ddd/infrastructure/queue"
	"video-hosting-service/pkg/config"
	pkgkafka "video-hosting-service/pkg/kafka"
	"video-hosting-service/pkg/logger"
)

// TranscodeJobConsumer reads job messages from the durable topic and feeds
// the in-process worker queue. Offsets are committed only after the job is
// safely handed to the queue, so backlog never loses work: Enqueue blocks
// until a worker frees a slot. Delivery stays at-least-once; the pipeline's
// lock and processed flag absorb redelivered duplicates.
type TranscodeJobConsumer struct {
	client  *pkgkafka.Client
	topic   string
	groupID string
	jobs    queue.TranscodeQueue

	// Commit policy for poison and failed messages, from kafka config.
	commitOnDecodeError  bool
	commitOnProcessError bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewTranscodeJobConsumer(client *pkgkafka.Client, cfg *config.KafkaConfig, jobs queue.TranscodeQueue) *TranscodeJobConsumer {
	return &TranscodeJobConsumer{
		client:               client,
		topic:                cfg.Topics.TranscodeJobs,
		groupID:              cfg.GroupID,
		jobs:                 jobs,
		commitOnDecodeError:  cfg.CommitOnDecodeError,
		commitOnProcessError: cfg.CommitOnProcessError,
	}
}

func (c *TranscodeJobConsumer) Name() string { return "transcodeJobConsumer" }

func (c *TranscodeJobConsumer) Start(ctx context.Context) error {
	c.ctx, c.cancel = context.WithCancel(ctx)
	reader := c.client.Reader(c.topic, c.groupID)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer reader.Close()
		logger.Infof("Kafka consumer started topic=%s group=%s", c.topic, c.groupID)
		for {
			msg, err := reader.FetchMessage(c.ctx)
			if err != nil {
				if c.ctx.Err() != nil {
					return
				}
				if errors.Is(err, io.EOF) || strings.Contains(err.Error(), "EOF") {
					logger.Debug("Kafka reader EOF")
				} else {
					logger.Warnf("Kafka read error error=%s", err.Error())
				}
				continue
			}

			if c.handleMessage(c.ctx, msg.Value) {
				if err := reader.CommitMessages(c.ctx, msg); err != nil && c.ctx.Err() == nil {
					logger.Warnf("Kafka commit failed offset=%d error=%s", msg.Offset, err.Error())
				}
			}
		}
	}()
	return nil
}

// handleMessage decodes and enqueues one message, reporting whether its
// offset should be committed. Poison messages (bad JSON, unknown job name)
// commit per commitOnDecodeError; a failed hand-off commits only when
// commitOnProcessError allows losing the attempt.
func (c *TranscodeJobConsumer) handleMessage(ctx context.Context, value []byte) bool {
	var m queue.JobMessage
	if err := json.Unmarshal(value, &m); err != nil {
		logger.Warnf("Kafka message unmarshal error error=%s", err.Error())
		return c.commitOnDecodeError
	}
	if m.JobName != port.JobTranscodeVideo {
		logger.Warnf("unknown job name skipped job_name=%s", m.JobName)
		return c.commitOnDecodeError
	}
	logger.Infof("Kafka message received job_name=%s video_id=%d", m.JobName, m.VideoID)

	// Blocks while the worker queue is full; shutdown cancels ctx.
	if err := c.jobs.Enqueue(ctx, m.VideoID); err != nil {
		logger.Warnf("enqueue transcode job failed video_id=%d error=%s", m.VideoID, err.Error())
		return c.commitOnProcessError
	}
	return true
}

func (c *TranscodeJobConsumer) Stop() error {
	if c.cancel != nil {
		c.cancel()
	}
	c.wg.Wait()
	return nil
}

package queue

import (
	"context"
	"encoding/json"
	"strconv"

	"video-hosting-service/pkg/kafka"
)

// JobMessage is the wire format on the transcode jobs topic.
type JobMessage struct {
	JobName string `json:"job_name"`
	VideoID int64  `json:"video_id"`
}

// KafkaJobPublisher publishes jobs to the durable Kafka topic. The video id
// doubles as the partition key so retries for one asset stay ordered.
type KafkaJobPublisher struct {
	client *kafka.Client
	topic  string
}

func NewKafkaJobPublisher(client *kafka.Client, topic string) *KafkaJobPublisher {
	return &KafkaJobPublisher{client: client, topic: topic}
}

func (p *KafkaJobPublisher) Publish(ctx context.Context, jobName string, videoID int64) error {
	payload, err := json.Marshal(JobMessage{JobName: jobName, VideoID: videoID})
	if err != nil {
		return err
	}
	key := []byte(strconv.FormatInt(videoID, 10))
	return p.client.Produce(ctx, p.topic, key, payload)
}

// LocalJobPublisher bypasses the broker and feeds the in-process queue
// directly; used when Kafka is disabled and in tests. Publishing happens
// inside the upload request, so a full queue fails fast instead of
// stalling the response.
type LocalJobPublisher struct {
	queue TranscodeQueue
}

func NewLocalJobPublisher(q TranscodeQueue) *LocalJobPublisher {
	return &LocalJobPublisher{queue: q}
}

func (p *LocalJobPublisher) Publish(_ context.Context, _ string, videoID int64) error {
	return p.queue.TryEnqueue(videoID)
}

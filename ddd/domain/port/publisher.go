package port

import "context"

// JobTranscodeVideo is the only job name this service publishes.
const JobTranscodeVideo = "transcode_video"

// JobPublisher hands a job to the durable queue. Delivery is at-least-once;
// consumers must tolerate duplicates.
type JobPublisher interface {
	Publish(ctx context.Context, jobName string, videoID int64) error
}

package component

import (
	"context"
	"testing"
	"time"

	"video-hosting-service/ddd/infrastructure/queue"
	"video-hosting-service/pkg/config"
)

func newTestConsumer(capacity int, commitOnDecodeError, commitOnProcessError bool) (*TranscodeJobConsumer, queue.TranscodeQueue) {
	jobs := queue.NewMemoryTranscodeQueue(capacity)
	cfg := &config.KafkaConfig{
		GroupID:              "test-group",
		Topics:               config.KafkaTopicsConfig{TranscodeJobs: "transcode.jobs"},
		CommitOnDecodeError:  commitOnDecodeError,
		CommitOnProcessError: commitOnProcessError,
	}
	return NewTranscodeJobConsumer(nil, cfg, jobs), jobs
}

func TestHandleMessageEnqueuesAndCommits(t *testing.T) {
	c, jobs := newTestConsumer(2, true, false)

	commit := c.handleMessage(context.Background(), []byte(`{"job_name":"transcode_video","video_id":42}`))
	if !commit {
		t.Error("successful hand-off must commit the offset")
	}
	got, err := jobs.Dequeue(context.Background())
	if err != nil || got != 42 {
		t.Errorf("dequeue = %d, %v; want 42, nil", got, err)
	}
}

func TestHandleMessagePoisonCommitPolicy(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"malformed json", `{not json`},
		{"unknown job name", `{"job_name":"reindex_catalog","video_id":1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, jobs := newTestConsumer(2, true, false)
			if commit := c.handleMessage(context.Background(), []byte(tc.payload)); !commit {
				t.Error("poison message should commit when commit_on_decode_error is set")
			}
			if jobs.Size() != 0 {
				t.Error("poison message must not reach the worker queue")
			}

			c, _ = newTestConsumer(2, false, false)
			if commit := c.handleMessage(context.Background(), []byte(tc.payload)); commit {
				t.Error("poison message should hold the offset when commit_on_decode_error is unset")
			}
		})
	}
}

func TestHandleMessageBlocksInsteadOfDropping(t *testing.T) {
	c, jobs := newTestConsumer(1, true, false)
	ctx := context.Background()

	if err := jobs.Enqueue(ctx, 1); err != nil {
		t.Fatalf("fill queue: %v", err)
	}

	// With the queue full the hand-off must wait for a worker, not drop the
	// message: its offset would already be past the point of redelivery.
	done := make(chan bool, 1)
	go func() {
		done <- c.handleMessage(ctx, []byte(`{"job_name":"transcode_video","video_id":2}`))
	}()

	select {
	case commit := <-done:
		t.Fatalf("handleMessage returned commit=%v while the queue was full", commit)
	case <-time.After(50 * time.Millisecond):
	}

	if got, err := jobs.Dequeue(ctx); err != nil || got != 1 {
		t.Fatalf("dequeue = %d, %v; want 1, nil", got, err)
	}
	select {
	case commit := <-done:
		if !commit {
			t.Error("hand-off after space opened must commit")
		}
	case <-time.After(time.Second):
		t.Fatal("handleMessage still blocked after a slot opened")
	}
	if got, _ := jobs.Dequeue(ctx); got != 2 {
		t.Errorf("queued job = %d, want 2", got)
	}
}

func TestHandleMessageFailedHandoffHoldsOffset(t *testing.T) {
	c, jobs := newTestConsumer(1, true, false)

	if err := jobs.Enqueue(context.Background(), 1); err != nil {
		t.Fatalf("fill queue: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Shutdown mid-hand-off: the offset stays uncommitted so the broker
	// redelivers the job on the next start.
	if commit := c.handleMessage(ctx, []byte(`{"job_name":"transcode_video","video_id":2}`)); commit {
		t.Error("failed hand-off must not commit when commit_on_process_error is unset")
	}

	c, jobs = newTestConsumer(1, true, true)
	if err := jobs.Enqueue(context.Background(), 1); err != nil {
		t.Fatalf("fill queue: %v", err)
	}
	if commit := c.handleMessage(ctx, []byte(`{"job_name":"transcode_video","video_id":2}`)); !commit {
		t.Error("commit_on_process_error should commit the failed attempt")
	}
}

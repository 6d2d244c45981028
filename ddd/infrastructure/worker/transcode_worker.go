package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"video-hosting-service/ddd/domain/service"
	"video-hosting-service/ddd/infrastructure/queue"
	"video-hosting-service/pkg/logger"
)

// WorkerStats snapshots pool activity for introspection endpoints.
type WorkerStats struct {
	StartTime        time.Time
	ProcessedJobs    int64
	SuccessfulJobs   int64
	FailedJobs       int64
	CurrentlyRunning int
	LastJobTime      time.Time
}

// TranscodeWorker drains the in-process queue with a fixed pool of
// goroutines; each job is one full pipeline run. Jobs are long (minutes),
// so the pool size caps concurrent ffmpeg processes.
type TranscodeWorker interface {
	Name() string
	Start(ctx context.Context) error
	Stop() error
	IsRunning() bool
	GetStats() WorkerStats
}

type transcodeWorkerImpl struct {
	id        string
	jobs      queue.TranscodeQueue
	transcode service.TranscodeService
	count     int

	mu      sync.Mutex // guards running and cancel
	running bool
	cancel  context.CancelFunc

	// Stats have their own lock: in-flight jobs update them while Stop
	// waits on the pool, so they must never share mu with the lifecycle.
	statsMu sync.RWMutex
	stats   WorkerStats

	wg sync.WaitGroup
}

func NewTranscodeWorker(id string, jobs queue.TranscodeQueue, transcode service.TranscodeService, count int) TranscodeWorker {
	if count <= 0 {
		count = 1
	}
	return &transcodeWorkerImpl{
		id:        id,
		jobs:      jobs,
		transcode: transcode,
		count:     count,
		stats:     WorkerStats{StartTime: time.Now()},
	}
}

func (w *transcodeWorkerImpl) Name() string { return "transcodeWorker/" + w.id }

func (w *transcodeWorkerImpl) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return fmt.Errorf("worker %s is already running", w.id)
	}
	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.running = true

	w.statsMu.Lock()
	w.stats.StartTime = time.Now()
	w.statsMu.Unlock()

	w.wg.Add(w.count)
	for i := 0; i < w.count; i++ {
		go w.loop(workerCtx)
	}
	logger.Infof("transcode worker started id=%s goroutines=%d", w.id, w.count)
	return nil
}

func (w *transcodeWorkerImpl) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	if w.cancel != nil {
		w.cancel()
	}
	w.running = false
	w.mu.Unlock()

	// Wait with the lock released: goroutines finishing their current job
	// still need to record stats before they exit.
	w.wg.Wait()
	logger.Infof("transcode worker stopped id=%s", w.id)
	return nil
}

func (w *transcodeWorkerImpl) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *transcodeWorkerImpl) GetStats() WorkerStats {
	w.statsMu.RLock()
	defer w.statsMu.RUnlock()
	return w.stats
}

func (w *transcodeWorkerImpl) loop(ctx context.Context) {
	defer w.wg.Done()
	for {
		videoID, err := w.jobs.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if w.jobs.IsClosed() {
				return
			}
			continue
		}
		w.process(ctx, videoID)
	}
}

func (w *transcodeWorkerImpl) process(ctx context.Context, videoID int64) {
	w.updateStats(func(s *WorkerStats) { s.CurrentlyRunning++; s.LastJobTime = time.Now() })
	defer w.updateStats(func(s *WorkerStats) { s.CurrentlyRunning--; s.ProcessedJobs++ })

	start := time.Now()
	if err := w.transcode.Run(ctx, videoID); err != nil {
		// Retry policy belongs to the queue layer; the worker only accounts.
		logger.Errorf("transcode job failed video_id=%d error=%v", videoID, err)
		w.updateStats(func(s *WorkerStats) { s.FailedJobs++ })
		return
	}
	logger.Infof("transcode job finished video_id=%d elapsed=%s", videoID, time.Since(start))
	w.updateStats(func(s *WorkerStats) { s.SuccessfulJobs++ })
}

func (w *transcodeWorkerImpl) updateStats(f func(*WorkerStats)) {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	f(&w.stats)
}

package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"video-hosting-service/ddd/domain/entity"
	"video-hosting-service/ddd/domain/vo"
	"video-hosting-service/ddd/infrastructure/lock"
	"video-hosting-service/pkg/errno"
)

// fakeVideoRepo keeps entities in memory and records MarkProcessed calls.
type fakeVideoRepo struct {
	mu        sync.Mutex
	videos    map[int64]*entity.VideoEntity
	marked    map[int64][2]string // id -> {hlsDir, thumbnailPath}
	markCalls int
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{
		videos: make(map[int64]*entity.VideoEntity),
		marked: make(map[int64][2]string),
	}
}

func (r *fakeVideoRepo) CreateVideo(_ context.Context, v *entity.VideoEntity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := int64(len(r.videos) + 1)
	v.SetID(id)
	r.videos[id] = v
	return nil
}

func (r *fakeVideoRepo) GetVideo(_ context.Context, id int64) (*entity.VideoEntity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.videos[id]
	if !ok {
		return nil, errno.NewBizError(errno.ErrVideoNotFound, nil)
	}
	return v, nil
}

func (r *fakeVideoRepo) ListVideos(_ context.Context) ([]*entity.VideoEntity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.VideoEntity, 0, len(r.videos))
	for _, v := range r.videos {
		out = append(out, v)
	}
	return out, nil
}

func (r *fakeVideoRepo) MarkProcessed(_ context.Context, v *entity.VideoEntity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.markCalls++
	r.marked[v.ID()] = [2]string{v.HLSDir(), v.ThumbnailPath()}
	return nil
}

// fakeEncoder writes plausible HLS artifacts, optionally failing on a
// chosen variant or on thumbnail extraction.
type fakeEncoder struct {
	mu            sync.Mutex
	encoded       []string
	failVariant   string
	failThumbnail bool
	thumbnails    int
}

func (e *fakeEncoder) EncodeVariant(_ context.Context, _ string, outputDir string, variant vo.QualityVariant) error {
	e.mu.Lock()
	e.encoded = append(e.encoded, variant.Name)
	e.mu.Unlock()
	if variant.Name == e.failVariant {
		return errors.New("encoder exploded")
	}
	if err := os.WriteFile(filepath.Join(outputDir, "index.m3u8"), []byte("#EXTM3U\n"), 0o644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outputDir, "000.ts"), []byte{0x47}, 0o644)
}

func (e *fakeEncoder) ExtractThumbnail(_ context.Context, _ string, outputPath string, _ float64) error {
	e.mu.Lock()
	e.thumbnails++
	e.mu.Unlock()
	if e.failThumbnail {
		return errors.New("no frame at offset")
	}
	return os.WriteFile(outputPath, []byte{0xFF, 0xD8}, 0o644)
}

func newPipeline(t *testing.T, enc *fakeEncoder) (TranscodeService, *fakeVideoRepo, string) {
	t.Helper()
	root := t.TempDir()
	repo := newFakeVideoRepo()
	svc := NewTranscodeService(root, nil, 3, repo, enc, lock.NewMemoryAssetLocker(), nil)
	return svc, repo, root
}

func addVideo(t *testing.T, repo *fakeVideoRepo, root, sourcePath string) int64 {
	t.Helper()
	if sourcePath != "" {
		full := filepath.Join(root, filepath.FromSlash(sourcePath))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte("fake mp4"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	v := entity.NewVideoEntity("clip", "", "demo", sourcePath)
	if err := repo.CreateVideo(context.Background(), v); err != nil {
		t.Fatal(err)
	}
	return v.ID()
}

func TestRunProducesFullLadder(t *testing.T) {
	enc := &fakeEncoder{}
	svc, repo, root := newPipeline(t, enc)
	id := addVideo(t, repo, root, "videos/original/clip.mp4")

	if err := svc.Run(context.Background(), id); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(enc.encoded) != 3 {
		t.Errorf("encoded %d variants, want 3", len(enc.encoded))
	}
	for _, variant := range []string{"360p", "720p", "1080p"} {
		manifest := filepath.Join(root, "hls", "1", variant, "index.m3u8")
		if _, err := os.Stat(manifest); err != nil {
			t.Errorf("missing manifest for %s: %v", variant, err)
		}
	}
	// 480p is an alias, never a directory.
	if _, err := os.Stat(filepath.Join(root, "hls", "1", "480p")); !os.IsNotExist(err) {
		t.Error("480p directory should not exist")
	}

	marked, ok := repo.marked[id]
	if !ok {
		t.Fatal("MarkProcessed was not called")
	}
	if marked[0] != "hls/1" {
		t.Errorf("hlsDir = %q, want hls/1", marked[0])
	}
	if marked[1] != "hls/1/thumb.jpg" {
		t.Errorf("thumbnailPath = %q, want hls/1/thumb.jpg", marked[1])
	}
	// The entity itself carries the result the repository persisted.
	v, err := repo.GetVideo(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if !v.Processed() || v.HLSDir() != "hls/1" {
		t.Errorf("entity state after run: processed=%v hlsDir=%q, want true, hls/1", v.Processed(), v.HLSDir())
	}
}

func TestRunEncoderFailureAbortsCommit(t *testing.T) {
	enc := &fakeEncoder{failVariant: "720p"}
	svc, repo, root := newPipeline(t, enc)
	id := addVideo(t, repo, root, "videos/original/clip.mp4")

	if err := svc.Run(context.Background(), id); err == nil {
		t.Fatal("expected error from failing encoder")
	}
	if repo.markCalls != 0 {
		t.Errorf("MarkProcessed called %d times after failed run, want 0", repo.markCalls)
	}
	// 1080p must not be attempted after 720p failed.
	for _, name := range enc.encoded {
		if name == "1080p" {
			t.Error("pipeline continued past a failed variant")
		}
	}

	// The lock must be released so a retry can run.
	enc.failVariant = ""
	if err := svc.Run(context.Background(), id); err != nil {
		t.Fatalf("retry after failure: %v", err)
	}
	if repo.markCalls != 1 {
		t.Errorf("MarkProcessed calls after retry = %d, want 1", repo.markCalls)
	}
}

func TestRunNoSourceIsSilentNoop(t *testing.T) {
	enc := &fakeEncoder{}
	svc, repo, root := newPipeline(t, enc)
	id := addVideo(t, repo, root, "")

	if err := svc.Run(context.Background(), id); err != nil {
		t.Fatalf("Run with no source should be a no-op, got %v", err)
	}
	if len(enc.encoded) != 0 || enc.thumbnails != 0 {
		t.Error("encoder must not be invoked without a source file")
	}
	if repo.markCalls != 0 {
		t.Error("MarkProcessed must not be called without a source file")
	}
}

func TestRunMissingRecordPropagates(t *testing.T) {
	enc := &fakeEncoder{}
	svc, _, _ := newPipeline(t, enc)

	err := svc.Run(context.Background(), 999)
	if err == nil {
		t.Fatal("expected error for missing record")
	}
	if !errno.IsNotFound(err) {
		t.Errorf("err = %v, want a not-found error", err)
	}
}

func TestRunThumbnailFailureIsNonFatal(t *testing.T) {
	enc := &fakeEncoder{failThumbnail: true}
	svc, repo, root := newPipeline(t, enc)
	id := addVideo(t, repo, root, "videos/original/clip.mp4")

	if err := svc.Run(context.Background(), id); err != nil {
		t.Fatalf("Run: %v", err)
	}
	marked, ok := repo.marked[id]
	if !ok {
		t.Fatal("run must commit despite thumbnail failure")
	}
	if marked[1] != "" {
		t.Errorf("thumbnailPath = %q, want empty after extraction failure", marked[1])
	}
}

func TestRunSkipsWhenLockHeld(t *testing.T) {
	enc := &fakeEncoder{}
	root := t.TempDir()
	repo := newFakeVideoRepo()
	locker := lock.NewMemoryAssetLocker()
	svc := NewTranscodeService(root, nil, 3, repo, enc, locker, nil)
	id := addVideo(t, repo, root, "videos/original/clip.mp4")

	if ok, _ := locker.TryAcquire(context.Background(), id); !ok {
		t.Fatal("setup: could not pre-acquire lock")
	}
	if err := svc.Run(context.Background(), id); err != nil {
		t.Fatalf("run against held lock should skip, got %v", err)
	}
	if len(enc.encoded) != 0 {
		t.Error("encoder must not run while another worker holds the lock")
	}
}

package port

import (
	"context"

	"video-hosting-service/ddd/domain/vo"
)

// Encoder is the external encoding capability the pipeline depends on.
// Implementations wrap a subprocess (ffmpeg) in production and are faked in tests.
type Encoder interface {
	// EncodeVariant produces one segmented HLS rendition of inputPath into
	// outputDir (index.m3u8 plus numbered .ts segments). A non-nil error
	// means the rendition must be considered absent.
	EncodeVariant(ctx context.Context, inputPath, outputDir string, variant vo.QualityVariant) error

	// ExtractThumbnail grabs a single frame at offsetSeconds into outputPath.
	ExtractThumbnail(ctx context.Context, inputPath, outputPath string, offsetSeconds float64) error
}

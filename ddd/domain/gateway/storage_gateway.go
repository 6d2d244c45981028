package gateway

import "context"

// UploadObject describes one local file to mirror into object storage.
type UploadObject struct {
	LocalPath   string
	ObjectKey   string
	ContentType string
}

// StorageGateway mirrors finished HLS packages into object storage.
// The local filesystem stays the serving source of truth; mirroring is
// best-effort and never fails a pipeline run.
type StorageGateway interface {
	UploadObjects(ctx context.Context, objects []UploadObject) error
}

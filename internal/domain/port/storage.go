package port

import (
	"context"
	"io"
)

// ArchiveStore retains completed screenshot archives in object storage.
// Optional: when no store is configured the zip only exists on local
// disk until the response is delivered.
type ArchiveStore interface {
	UploadArchive(ctx context.Context, objectKey string, reader io.Reader, size int64) error
}

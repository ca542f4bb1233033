package ports

import "context"

// BlobStore stores uploaded binary content and returns a public URL for it.
// The API treats it as an opaque collaborator.
type BlobStore interface {
	Upload(ctx context.Context, file FileUpload) (string, error)
}

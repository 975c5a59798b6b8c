package domain

//go:generate mockgen -destination=../../mocks/mock_blob_store.go -package=mocks github.com/RochKDev/warranty-manager/internal/image/domain BlobStore

import "context"

// Blob is a stored object together with the content type recorded at upload.
type Blob struct {
	Data        []byte
	ContentType string
}

// BlobStore keeps receipt images by key. Download returns
// errors.ErrImageNotFound for unknown keys.
type BlobStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Download(ctx context.Context, key string) (*Blob, error)
}

// Image is the decompressed image handed back to clients.
type Image struct {
	Name        string
	ContentType string
	Data        []byte
}

package service

import (
	"context"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/RochKDev/warranty-manager/config"
	apperror "github.com/RochKDev/warranty-manager/internal/errors"
	"github.com/RochKDev/warranty-manager/internal/image/domain"
	"github.com/google/uuid"
)

type ImageService struct {
	store    domain.BlobStore
	maxBytes int64
	newID    func() string
}

func NewImageService(store domain.BlobStore, cfg *config.Config) *ImageService {
	maxBytes := int64(cfg.MaxUploadBytes)
	if maxBytes <= 0 {
		maxBytes = config.DefaultMaxUploadBytes
	}
	return &ImageService{store: store, maxBytes: maxBytes, newID: uuid.NewString}
}

func (s *ImageService) MaxBytes() int64 {
	return s.maxBytes
}

// Upload sniffs the content type, rejects anything that is not an image and
// stores the compressed bytes under "<uuid>-<name>". The stored name is
// returned.
func (s *ImageService) Upload(ctx context.Context, name string, data []byte) (*domain.Image, error) {
	if int64(len(data)) > s.maxBytes {
		return nil, apperror.ErrPayloadTooLarge
	}
	if len(data) == 0 {
		return nil, &apperror.ValidationError{Fields: []apperror.FieldError{{Field: "file", Error: "file is empty"}}}
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		slog.InfoContext(ctx, "image upload rejected", "name", name, "content_type", contentType)
		return nil, apperror.ErrUnsupportedMediaType
	}

	compressed, err := compress(data)
	if err != nil {
		return nil, err
	}

	stored := s.newID() + "-" + cleanName(name)
	if err := s.store.Upload(ctx, stored, compressed, contentType); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "image uploaded",
		"name", stored, "content_type", contentType, "size", len(data), "stored_size", len(compressed))
	return &domain.Image{Name: stored, ContentType: contentType, Data: data}, nil
}

func (s *ImageService) Download(ctx context.Context, name string) (*domain.Image, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, apperror.ErrImageNotFound
	}

	blob, err := s.store.Download(ctx, name)
	if err != nil {
		return nil, err
	}

	data, err := decompress(blob.Data)
	if err != nil {
		return nil, err
	}

	contentType := blob.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return &domain.Image{Name: name, ContentType: contentType, Data: data}, nil
}

// cleanName keeps the base file name and replaces characters that are
// awkward in object keys and URLs.
func cleanName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	if name == "." || name == "/" || name == "" {
		return "image"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}

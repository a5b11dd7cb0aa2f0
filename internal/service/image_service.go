package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/njprem/Italian_Properties_BackEnd/internal/domain"
	"github.com/njprem/Italian_Properties_BackEnd/internal/media"
	"github.com/njprem/Italian_Properties_BackEnd/internal/repository/ports"
)

var (
	ErrUnsupportedImageType = errors.New("unsupported image type")
	ErrImageTooLarge        = errors.New("image exceeds the size limit")
)

const DefaultMaxImageBytes = 15 << 20

type ImageService struct {
	storage   ports.ObjectStorage
	processor media.Processor
	bucket    string
	maxBytes  int64
}

func NewImageService(storage ports.ObjectStorage, processor media.Processor, bucket string, maxBytes int64) *ImageService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}
	return &ImageService{
		storage:   storage,
		processor: processor,
		bucket:    bucket,
		maxBytes:  maxBytes,
	}
}

// UploadListingImage validates, downscales and uploads a listing photo,
// returning the image reference the catalog stores on the listing.
func (s *ImageService) UploadListingImage(ctx context.Context, upload media.Upload) (*domain.ListingImage, error) {
	if upload.Size > s.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrImageTooLarge, upload.Size)
	}

	contentType := media.NormalizeContentType(upload.ContentType, upload.FileName)
	ext, err := imageExtension(contentType)
	if err != nil {
		return nil, err
	}

	processed, err := s.processor.Process(ctx, upload, 0)
	if err != nil {
		return nil, err
	}

	objectName := "listings/" + uuid.New().String() + ext
	url, err := s.storage.Upload(ctx, s.bucket, objectName, processed.ContentType,
		bytes.NewReader(processed.Bytes), int64(len(processed.Bytes)))
	if err != nil {
		return nil, err
	}

	return &domain.ListingImage{
		AssetRef: objectName,
		URL:      url,
	}, nil
}

func imageExtension(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/webp":
		return ".webp", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedImageType, contentType)
	}
}

package service

import (
	"context"
	"fmt"
	"io"

	"photoshare/internal/models"
	"photoshare/internal/repository"
)

// GalleryService serves the feed and applies image actions.
type GalleryService struct {
	images repository.ImageRepo
	url    repository.URLFunc
}

func NewGalleryService(images repository.ImageRepo) *GalleryService {
	return &GalleryService{images: images, url: repository.UploadPlaceholderURL}
}

// Feed lists images newest first.
func (s *GalleryService) Feed(ctx context.Context) ([]models.Image, error) {
	return s.images.ListImages(ctx)
}

func (s *GalleryService) Image(ctx context.Context, id int) (models.Image, error) {
	return s.images.GetImage(ctx, id)
}

func (s *GalleryService) Like(ctx context.Context, id int) (models.Image, error) {
	return s.images.IncrementLikes(ctx, id)
}

// Unlike is a no-op at zero likes.
func (s *GalleryService) Unlike(ctx context.Context, id int) (models.Image, error) {
	return s.images.DecrementLikes(ctx, id)
}

// Comment appends text; blank text is ignored without error.
func (s *GalleryService) Comment(ctx context.Context, id int, text string) (models.Image, error) {
	return s.images.AppendComment(ctx, id, text)
}

// Upload drains the file without keeping it and registers a new image
// under a placeholder URL.
func (s *GalleryService) Upload(ctx context.Context, p UploadParams) (UploadResult, error) {
	if p.File == nil {
		return UploadResult{}, invalid("image_file", "is required")
	}

	n, err := io.Copy(io.Discard, p.File)
	if err != nil {
		return UploadResult{}, fmt.Errorf("read upload %q: %w", p.Filename, err)
	}

	img, err := s.images.CreateImage(ctx, p.Description, s.url)
	if err != nil {
		return UploadResult{}, err
	}
	return UploadResult{Image: img, Bytes: n}, nil
}

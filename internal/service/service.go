package service

import (
	"context"

	"photoshare/internal/models"
	"photoshare/internal/repository"
)

// Accounts creates users.
type Accounts interface {
	SignUp(ctx context.Context, p SignUpParams) (models.User, error)
}

// Gallery exposes the feed and every image action.
type Gallery interface {
	Feed(ctx context.Context) ([]models.Image, error)
	Image(ctx context.Context, id int) (models.Image, error)
	Like(ctx context.Context, id int) (models.Image, error)
	Unlike(ctx context.Context, id int) (models.Image, error)
	Comment(ctx context.Context, id int, text string) (models.Image, error)
	Upload(ctx context.Context, p UploadParams) (UploadResult, error)
}

// Service aggregates all sub-services.
type Service struct {
	Accounts
	Gallery
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository) *Service {
	return &Service{
		Accounts: NewAccountService(repos.Users),
		Gallery:  NewGalleryService(repos.Images),
	}
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"photoshare/internal/models"
	"photoshare/internal/repository/db"
)

// Store errors. Handlers map them to HTTP statuses.
var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateUser = errors.New("username already exists")
)

// URLFunc builds the stored URL of an image once its id is known.
type URLFunc func(id int) string

type UserRepo interface {
	GetUser(ctx context.Context, username string) (models.User, error)
	CreateUser(ctx context.Context, u models.User) error
}

// ImageRepo owns every image. Reads and mutations return snapshots.
type ImageRepo interface {
	GetImage(ctx context.Context, id int) (models.Image, error)
	ListImages(ctx context.Context) ([]models.Image, error)
	CreateImage(ctx context.Context, description string, url URLFunc) (models.Image, error)
	IncrementLikes(ctx context.Context, id int) (models.Image, error)
	DecrementLikes(ctx context.Context, id int) (models.Image, error)
	AppendComment(ctx context.Context, id int, text string) (models.Image, error)
	Seed(ctx context.Context, images []models.Image) error
}

type Repository struct {
	Users  UserRepo
	Images ImageRepo
}

// Supported store drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// NewRepository wraps a single backend implementing both repos.
func NewRepository(store interface {
	UserRepo
	ImageRepo
}) *Repository {
	return &Repository{
		Users:  store,
		Images: store,
	}
}

// NewMemoryRepository returns a Repository backed by Go maps.
func NewMemoryRepository() *Repository {
	return NewRepository(NewMemoryStore())
}

// Open builds the Repository for the configured driver. On success the close
// func releases backend resources and is non-nil.
func Open(driver, dsn string) (*Repository, func() error, error) {
	switch driver {
	case "", DriverMemory:
		return NewMemoryRepository(), func() error { return nil }, nil
	case DriverSQLite:
		conn, err := db.Open(dsn)
		if err != nil {
			return nil, nil, err
		}
		return NewRepository(NewSQLiteStore(conn)), conn.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", driver)
	}
}

func notFoundImage(id int) error {
	return fmt.Errorf("image %d: %w", id, ErrNotFound)
}

func notFoundUser(username string) error {
	return fmt.Errorf("user %q: %w", username, ErrNotFound)
}

package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"photoshare/internal/models"
)

// MemoryStore keeps users and images in maps. A single RWMutex serializes
// every check-then-mutate sequence so concurrent likes are never lost.
type MemoryStore struct {
	mu     sync.RWMutex
	users  map[string]models.User
	images map[int]*models.Image
	nextID int
}

// Ensure implementation of both repo interfaces at compile time.
var (
	_ UserRepo  = (*MemoryStore)(nil)
	_ ImageRepo = (*MemoryStore)(nil)
)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:  make(map[string]models.User),
		images: make(map[int]*models.Image),
		nextID: 1,
	}
}

func (s *MemoryStore) GetUser(_ context.Context, username string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[username]
	if !ok {
		return models.User{}, notFoundUser(username)
	}
	return u, nil
}

func (s *MemoryStore) CreateUser(_ context.Context, u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.Username]; ok {
		return fmt.Errorf("create user %q: %w", u.Username, ErrDuplicateUser)
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	s.users[u.Username] = u
	return nil
}

func (s *MemoryStore) GetImage(_ context.Context, id int) (models.Image, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	img, ok := s.images[id]
	if !ok {
		return models.Image{}, notFoundImage(id)
	}
	return img.Clone(), nil
}

// ListImages returns all images, newest id first.
func (s *MemoryStore) ListImages(_ context.Context) ([]models.Image, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Image, 0, len(s.images))
	for _, img := range s.images {
		out = append(out, img.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *MemoryStore) CreateImage(_ context.Context, description string, url URLFunc) (models.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++

	img := &models.Image{
		ID:          id,
		Description: description,
		Comments:    []string{},
		CreatedAt:   time.Now().UTC(),
	}
	if url != nil {
		img.URL = url(id)
	}
	s.images[id] = img
	return img.Clone(), nil
}

func (s *MemoryStore) IncrementLikes(_ context.Context, id int) (models.Image, error) {
	return s.mutate(id, func(img *models.Image) {
		img.Likes++
	})
}

// DecrementLikes lowers the counter by one, never below zero.
func (s *MemoryStore) DecrementLikes(_ context.Context, id int) (models.Image, error) {
	return s.mutate(id, func(img *models.Image) {
		if img.Likes > 0 {
			img.Likes--
		}
	})
}

// AppendComment stores text as given. Blank text leaves the list unchanged.
func (s *MemoryStore) AppendComment(_ context.Context, id int, text string) (models.Image, error) {
	blank := strings.TrimSpace(text) == ""
	return s.mutate(id, func(img *models.Image) {
		if !blank {
			img.Comments = append(img.Comments, text)
		}
	})
}

// Seed inserts images with fixed ids and moves the id counter past them.
func (s *MemoryStore) Seed(_ context.Context, images []models.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, img := range images {
		if img.ID <= 0 {
			return fmt.Errorf("seed image: invalid id %d", img.ID)
		}
		if _, ok := s.images[img.ID]; ok {
			return fmt.Errorf("seed image %d: already exists", img.ID)
		}
		c := img.Clone()
		if c.Comments == nil {
			c.Comments = []string{}
		}
		if c.CreatedAt.IsZero() {
			c.CreatedAt = time.Now().UTC()
		}
		s.images[c.ID] = &c
		if c.ID >= s.nextID {
			s.nextID = c.ID + 1
		}
	}
	return nil
}

// mutate applies fn to the stored image under the write lock.
func (s *MemoryStore) mutate(id int, fn func(img *models.Image)) (models.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	img, ok := s.images[id]
	if !ok {
		return models.Image{}, notFoundImage(id)
	}
	fn(img)
	return img.Clone(), nil
}

package repository

import (
	"fmt"

	"photoshare/internal/models"
)

const placeholderFormat = "https://via.placeholder.com/300x200.png?text=%s"

// PlaceholderURL is the URL given to seeded images.
func PlaceholderURL(id int) string {
	return fmt.Sprintf(placeholderFormat, fmt.Sprintf("Image+%d", id))
}

// UploadPlaceholderURL is the URL given to uploaded images; file content is not stored.
func UploadPlaceholderURL(id int) string {
	return fmt.Sprintf(placeholderFormat, fmt.Sprintf("New+Post+%d", id))
}

// DefaultImages returns the feed shown on a fresh start.
func DefaultImages() []models.Image {
	seed := []struct {
		description string
		likes       int
		comments    []string
	}{
		{"A lovely placeholder", 10, []string{"Great shot!", "Beautiful."}},
		{"Another placeholder view", 5, []string{"Nice."}},
		{"Placeholder number three", 22, nil},
		{"Yet another one", 1, []string{"Cool"}},
		{"Placeholder five", 8, nil},
		{"Number six", 15, []string{"Wow!", "Amazing"}},
	}

	out := make([]models.Image, 0, len(seed))
	for i, s := range seed {
		id := i + 1
		comments := make([]string, len(s.comments))
		copy(comments, s.comments)
		out = append(out, models.Image{
			ID:          id,
			URL:         PlaceholderURL(id),
			Description: s.description,
			Likes:       s.likes,
			Comments:    comments,
		})
	}
	return out
}

package models

import "time"

type Image struct {
	ID          int       `json:"id"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	Likes       int       `json:"likes"`
	Comments    []string  `json:"comments"` // insertion order
	CreatedAt   time.Time `json:"created_at"`
}

// Clone returns a copy that shares no memory with img.
func (img Image) Clone() Image {
	out := img
	if img.Comments != nil {
		out.Comments = make([]string, len(img.Comments))
		copy(out.Comments, img.Comments)
	}
	return out
}

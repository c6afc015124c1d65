package service

import (
	"io"

	"photoshare/internal/models"
)

type SignUpParams struct {
	Username string
	Email    string
	Password string
}

// UploadParams carries an image upload. File is read to EOF and discarded.
type UploadParams struct {
	Description string
	Filename    string
	File        io.Reader
}

type UploadResult struct {
	Image models.Image
	Bytes int64 // bytes read from File
}

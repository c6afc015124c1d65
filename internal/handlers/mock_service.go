package handlers

import (
	"context"
	"io"
	"net/http"
	"testing"

	"photoshare/internal/models"
	"photoshare/internal/render"
	"photoshare/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAccounts struct {
	user models.User
	err  error

	calls      int
	lastParams service.SignUpParams
}

func (m *mockAccounts) SignUp(ctx context.Context, p service.SignUpParams) (models.User, error) {
	m.calls++
	m.lastParams = p
	if m.err != nil {
		return models.User{}, m.err
	}
	if m.user.Username == "" {
		return models.User{Username: p.Username, Email: p.Email}, nil
	}
	return m.user, nil
}

type mockGallery struct {
	feed    []models.Image
	feedErr error

	image    models.Image
	imageErr error

	actionErr error

	likeCalls    int
	unlikeCalls  int
	lastActionID int
	lastComment  string

	uploadErr      error
	lastUpload     service.UploadParams
	uploadedBytes  int64
	uploadedImages int
}

func (m *mockGallery) Feed(ctx context.Context) ([]models.Image, error) {
	return m.feed, m.feedErr
}

func (m *mockGallery) Image(ctx context.Context, id int) (models.Image, error) {
	m.lastActionID = id
	return m.image, m.imageErr
}

func (m *mockGallery) Like(ctx context.Context, id int) (models.Image, error) {
	m.likeCalls++
	m.lastActionID = id
	if m.actionErr != nil {
		return models.Image{}, m.actionErr
	}
	m.image.Likes++
	return m.image, nil
}

func (m *mockGallery) Unlike(ctx context.Context, id int) (models.Image, error) {
	m.unlikeCalls++
	m.lastActionID = id
	if m.actionErr != nil {
		return models.Image{}, m.actionErr
	}
	if m.image.Likes > 0 {
		m.image.Likes--
	}
	return m.image, nil
}

func (m *mockGallery) Comment(ctx context.Context, id int, text string) (models.Image, error) {
	m.lastActionID = id
	m.lastComment = text
	if m.actionErr != nil {
		return models.Image{}, m.actionErr
	}
	if text != "" {
		m.image.Comments = append(m.image.Comments, text)
	}
	return m.image, nil
}

func (m *mockGallery) Upload(ctx context.Context, p service.UploadParams) (service.UploadResult, error) {
	m.lastUpload = p
	if m.uploadErr != nil {
		return service.UploadResult{}, m.uploadErr
	}
	n, err := io.Copy(io.Discard, p.File)
	if err != nil {
		return service.UploadResult{}, err
	}
	m.uploadedBytes = n
	m.uploadedImages++
	return service.UploadResult{
		Image: models.Image{ID: 100 + m.uploadedImages, Description: p.Description, URL: "/static/new.png"},
		Bytes: n,
	}, nil
}

// ---- Shared Test Helpers ----

func newTestHandler(t *testing.T, s *service.Service, opts Options) *Handler {
	t.Helper()
	r, err := render.New(render.Options{Live: opts.Hub != nil})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	return NewHandler(s, r, nil, opts)
}

func newTestRouter(t *testing.T, s *service.Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return newTestHandler(t, s, Options{}).InitRoutes()
}

func htmxHeader() http.Header {
	h := http.Header{}
	h.Set("HX-Request", "true")
	return h
}

package render

import (
	"io/fs"
	"strings"
	"testing"

	"photoshare/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(t *testing.T, opts Options) *Renderer {
	t.Helper()
	r, err := New(opts)
	require.NoError(t, err)
	return r
}

func sampleImage() models.Image {
	return models.Image{
		ID:          3,
		URL:         "https://via.placeholder.com/300x200.png",
		Description: "Placeholder number three",
		Likes:       22,
		Comments:    []string{},
	}
}

func TestLikes_RootIDAndControls(t *testing.T) {
	r := newTestRenderer(t, Options{})

	out, err := r.Likes(sampleImage())
	require.NoError(t, err)

	s := string(out)
	assert.True(t, strings.HasPrefix(s, `<span id="likes-3">`), s)
	assert.Contains(t, s, "22 Likes")
	assert.Contains(t, s, `hx-post="/like/3"`)
	assert.Contains(t, s, `hx-post="/unlike/3"`)
	assert.Contains(t, s, `hx-target="#likes-3"`)
	assert.Contains(t, s, `hx-swap="outerHTML"`)
	assert.NotContains(t, s, "hx-swap-oob")
}

func TestLikesOOB_MarksRoot(t *testing.T) {
	r := newTestRenderer(t, Options{})

	out, err := r.LikesOOB(sampleImage())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), `<span id="likes-3" hx-swap-oob="true">`), string(out))
}

func TestComments_EmptyPlaceholderAndOrder(t *testing.T) {
	r := newTestRenderer(t, Options{})

	img := sampleImage()
	out, err := r.Comments(img)
	require.NoError(t, err)
	assert.Contains(t, string(out), `<ul id="comments-list-3" class="comments-list">`)
	assert.Equal(t, 1, strings.Count(string(out), "<li>"))
	assert.Contains(t, string(out), "<li>No comments yet.</li>")

	img.Comments = []string{"first", "second", "third"}
	out, err = r.Comments(img)
	require.NoError(t, err)
	s := string(out)
	assert.Equal(t, 3, strings.Count(s, "<li>"))
	assert.NotContains(t, s, "No comments yet.")
	assert.Less(t, strings.Index(s, "first"), strings.Index(s, "second"))
	assert.Less(t, strings.Index(s, "second"), strings.Index(s, "third"))
}

func TestComments_EscapesText(t *testing.T) {
	r := newTestRenderer(t, Options{})

	img := sampleImage()
	img.Comments = []string{"<script>alert(1)</script>"}
	out, err := r.Comments(img)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<script>")
	assert.Contains(t, string(out), "&lt;script&gt;")
}

func TestFeed_OrderAsGiven(t *testing.T) {
	r := newTestRenderer(t, Options{})

	images := []models.Image{
		{ID: 9, URL: "https://example.com/9.png", Description: "nine"},
		{ID: 2, URL: "https://example.com/2.png", Description: "two"},
		{ID: 5, URL: "https://example.com/5.png", Description: "five"},
	}
	out, err := r.Feed(images)
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, `hx-get="/post-form"`)
	assert.Contains(t, s, `hx-target="#modal-container"`)
	assert.Contains(t, s, `id="image-grid"`)
	i9 := strings.Index(s, `href="/image/9"`)
	i2 := strings.Index(s, `href="/image/2"`)
	i5 := strings.Index(s, `href="/image/5"`)
	require.True(t, i9 >= 0 && i2 >= 0 && i5 >= 0, s)
	assert.Less(t, i9, i2)
	assert.Less(t, i2, i5)
}

func TestFeedItemOOB_PrependsToGrid(t *testing.T) {
	r := newTestRenderer(t, Options{})

	out, err := r.FeedItemOOB(models.Image{ID: 7, URL: "https://example.com/7.png", Description: "new"})
	require.NoError(t, err)
	assert.Contains(t, string(out), `hx-swap-oob="afterbegin:#image-grid"`)
	assert.Contains(t, string(out), `href="/image/7"`)
}

func TestDetail_ComposesWidgets(t *testing.T) {
	r := newTestRenderer(t, Options{})

	img := sampleImage()
	img.Comments = []string{"nice"}
	out, err := r.Detail(img)
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "Placeholder number three")
	assert.Contains(t, s, `id="likes-3"`)
	assert.Contains(t, s, `id="comments-list-3"`)
	assert.Contains(t, s, `hx-post="/comment/3"`)
	assert.Contains(t, s, `hx-target="#comments-list-3"`)
	assert.Contains(t, s, `name="comment"`)
	assert.NotContains(t, s, "hx-swap-oob")
}

func TestUploadForm_Fields(t *testing.T) {
	r := newTestRenderer(t, Options{})

	out, err := r.UploadForm()
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, `class="modal"`)
	assert.Contains(t, s, `name="image_file"`)
	assert.Contains(t, s, `name="description"`)
	assert.Contains(t, s, `hx-post="/upload"`)
	assert.Contains(t, s, `hx-encoding="multipart/form-data"`)
	assert.Contains(t, s, `hx-get="/close-modal"`)
}

func TestSignUpForm_Fields(t *testing.T) {
	r := newTestRenderer(t, Options{})

	out, err := r.SignUpForm()
	require.NoError(t, err)
	for _, name := range []string{"username", "email", "password"} {
		assert.Contains(t, string(out), `name="`+name+`"`)
	}
	assert.Contains(t, string(out), `action="/signup"`)
}

func TestPage_Shell(t *testing.T) {
	r := newTestRenderer(t, Options{})

	content, err := r.Error("hello")
	require.NoError(t, err)
	out, err := r.Page("Feed", content)
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "<title>Feed</title>")
	assert.Contains(t, s, `<meta charset="utf-8">`)
	assert.Contains(t, s, `href="/static/style.css"`)
	assert.Contains(t, s, `src="https://unpkg.com/htmx.org@1.9.12"`)
	assert.Contains(t, s, `<div id="modal-container"></div>`)
	assert.Contains(t, s, `<p class="error">hello</p>`)
	assert.NotContains(t, s, "ws-connect")
}

func TestPage_LiveConnectsWebSocket(t *testing.T) {
	r := newTestRenderer(t, Options{Live: true})

	out, err := r.Page("Feed", "")
	require.NoError(t, err)
	assert.Contains(t, string(out), `ws-connect="/ws"`)
	assert.Contains(t, string(out), "ext/ws.js")
}

func TestRenderers_AreDeterministic(t *testing.T) {
	r := newTestRenderer(t, Options{})
	img := sampleImage()
	img.Comments = []string{"a", "b"}

	render := func() string {
		likes, err := r.Likes(img)
		require.NoError(t, err)
		comments, err := r.Comments(img)
		require.NoError(t, err)
		detail, err := r.Detail(img)
		require.NoError(t, err)
		feed, err := r.Feed([]models.Image{img})
		require.NoError(t, err)
		page, err := r.Page("x", detail)
		require.NoError(t, err)
		return string(likes) + string(comments) + string(feed) + string(page)
	}

	first := render()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, render())
	}
	assert.Equal(t, []string{"a", "b"}, img.Comments)
}

func TestStatic_ContainsStylesheet(t *testing.T) {
	b, err := fs.ReadFile(Static(), "style.css")
	require.NoError(t, err)
	assert.Contains(t, string(b), ".image-grid")
}

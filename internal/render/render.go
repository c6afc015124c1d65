// Package render turns entity state into HTML pages and htmx fragments.
//
// Every method is a pure function of its arguments: it never touches the
// store and the same input always yields the same bytes. Fragment roots
// carry ids derived from the image id (likes-{id}, comments-list-{id}) so
// a client can replace them in place.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"

	"photoshare/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	DefaultHTMXSrc  = "https://unpkg.com/htmx.org@1.9.12"
	DefaultWSExtSrc = "https://unpkg.com/htmx.org@1.9.12/dist/ext/ws.js"
)

// Options tune the page shell.
type Options struct {
	Live     bool // connect pages to /ws for out-of-band updates
	HTMXSrc  string
	WSExtSrc string
}

type Renderer struct {
	tmpl *template.Template
	opts Options
}

// imageView is the data every image template receives.
type imageView struct {
	models.Image
	OOB bool
}

type pageView struct {
	Title    string
	Content  template.HTML
	Live     bool
	HTMXSrc  string
	WSExtSrc string
}

// New parses the embedded templates.
func New(opts Options) (*Renderer, error) {
	if opts.HTMXSrc == "" {
		opts.HTMXSrc = DefaultHTMXSrc
	}
	if opts.WSExtSrc == "" {
		opts.WSExtSrc = DefaultWSExtSrc
	}
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl, opts: opts}, nil
}

// Static returns the shared assets served under /static.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err) // embedded path is fixed at build time
	}
	return sub
}

// Page wraps content in the document shell.
func (r *Renderer) Page(title string, content template.HTML) ([]byte, error) {
	var buf bytes.Buffer
	err := r.tmpl.ExecuteTemplate(&buf, "page", pageView{
		Title:    title,
		Content:  content,
		Live:     r.opts.Live,
		HTMXSrc:  r.opts.HTMXSrc,
		WSExtSrc: r.opts.WSExtSrc,
	})
	if err != nil {
		return nil, fmt.Errorf("render page %q: %w", title, err)
	}
	return buf.Bytes(), nil
}

// Feed renders the header and one thumbnail per image, in the order given.
func (r *Renderer) Feed(images []models.Image) (template.HTML, error) {
	return r.fragment("feed", images)
}

// FeedItemOOB renders a thumbnail that htmx prepends to #image-grid.
func (r *Renderer) FeedItemOOB(img models.Image) (template.HTML, error) {
	return r.fragment("feed_item_oob", img)
}

func (r *Renderer) Detail(img models.Image) (template.HTML, error) {
	return r.fragment("detail", imageView{Image: img})
}

// Likes renders the like counter with its Like/Unlike controls.
func (r *Renderer) Likes(img models.Image) (template.HTML, error) {
	return r.fragment("likes", imageView{Image: img})
}

func (r *Renderer) LikesOOB(img models.Image) (template.HTML, error) {
	return r.fragment("likes", imageView{Image: img, OOB: true})
}

// Comments renders the ordered comment list, or a placeholder item when empty.
func (r *Renderer) Comments(img models.Image) (template.HTML, error) {
	return r.fragment("comments", imageView{Image: img})
}

func (r *Renderer) CommentsOOB(img models.Image) (template.HTML, error) {
	return r.fragment("comments", imageView{Image: img, OOB: true})
}

func (r *Renderer) UploadForm() (template.HTML, error) {
	return r.fragment("upload_form", nil)
}

func (r *Renderer) SignUpForm() (template.HTML, error) {
	return r.fragment("signup_form", nil)
}

// Error renders a short message for failed requests.
func (r *Renderer) Error(msg string) (template.HTML, error) {
	return r.fragment("error", msg)
}

func (r *Renderer) fragment(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	// Output of html/template is already escaped.
	return template.HTML(buf.String()), nil
}

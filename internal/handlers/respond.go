package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	"photoshare/internal/repository"
	"photoshare/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	htmlContentType = "text/html; charset=utf-8"

	errImageNotFound = "Image not found"
	errUsernameTaken = "Username already exists"
	errTooLarge      = "Upload too large"
	errInternal      = "Something went wrong"
)

// imageURI is the path schema of every /…/:id route. Any integer binds;
// ids with no image are answered by the store.
type imageURI struct {
	ID int `uri:"id"`
}

// isHTMX reports whether the request came from htmx rather than a navigation.
func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

func (h *Handler) writeHTML(c *gin.Context, status int, frag template.HTML) {
	c.Data(status, htmlContentType, []byte(frag))
}

func (h *Handler) writePage(c *gin.Context, status int, title string, content template.HTML) {
	page, err := h.render.Page(title, content)
	if err != nil {
		h.renderFailed(c, "render_page_failed", err)
		return
	}
	c.Data(status, htmlContentType, page)
}

// renderFailed is the last resort when a template itself fails.
func (h *Handler) renderFailed(c *gin.Context, logKey string, err error) {
	if h.log != nil {
		h.log.Errorw(logKey, "err", err, "path", c.Request.URL.Path)
	}
	c.Data(http.StatusInternalServerError, htmlContentType, []byte(errInternal))
}

// bindURI parses the :id path parameter. Non-numeric ids are ValidationErrors.
func (h *Handler) bindURI(c *gin.Context) (int, error) {
	var uri imageURI
	if err := c.ShouldBindUri(&uri); err != nil {
		return 0, toValidationError("id", err)
	}
	return uri.ID, nil
}

// bindForm binds the request body into dst. Failures are ValidationErrors.
func (h *Handler) bindForm(c *gin.Context, dst any) error {
	if err := c.ShouldBind(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return toValidationError("form", err)
	}
	return nil
}

// toValidationError names the first failing field when the validator reports one.
func toValidationError(field string, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &service.ValidationError{
			Field:  strings.ToLower(fe.Field()),
			Reason: "failed " + fe.Tag() + " check",
		}
	}
	return &service.ValidationError{Field: field, Reason: err.Error()}
}

// statusFor maps the error taxonomy onto HTTP statuses.
func statusFor(err error) (int, string) {
	var (
		verr     *service.ValidationError
		tooLarge *http.MaxBytesError
	)
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity, verr.Error()
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, errTooLarge
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, errImageNotFound
	case errors.Is(err, repository.ErrDuplicateUser):
		return http.StatusBadRequest, errUsernameTaken
	default:
		return http.StatusInternalServerError, errInternal
	}
}

// fail logs err and writes the matching status with an error snippet.
// Navigations get a full page, htmx requests a bare fragment.
func (h *Handler) fail(c *gin.Context, logKey string, err error, kv ...interface{}) {
	status, msg := statusFor(err)
	if h.log != nil {
		fields := append([]interface{}{"err", err, "status", status}, kv...)
		if status >= http.StatusInternalServerError {
			h.log.Errorw(logKey, fields...)
		} else {
			h.log.Infow(logKey, fields...)
		}
	}

	frag, rerr := h.render.Error(msg)
	if rerr != nil {
		h.renderFailed(c, "render_error_failed", rerr)
		return
	}
	if isHTMX(c) {
		h.writeHTML(c, status, frag)
		return
	}
	h.writePage(c, status, http.StatusText(status), frag)
}

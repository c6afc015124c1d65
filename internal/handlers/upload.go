package handlers

import (
	"mime/multipart"
	"net/http"

	"photoshare/internal/service"

	"github.com/gin-gonic/gin"
)

const uploadSuccess = "Upload successful"

// uploadForm is the POST /upload multipart schema.
type uploadForm struct {
	Description string                `form:"description" binding:"required"`
	File        *multipart.FileHeader `form:"image_file" binding:"required"`
}

// @Summary      Upload form
// @Description  Modal markup swapped into #modal-container.
// @Tags         upload
// @Produce      html
// @Success      200  {string}  string  "modal fragment"
// @Router       /post-form [get]
func (h *Handler) postForm(c *gin.Context) {
	frag, err := h.render.UploadForm()
	if err != nil {
		h.renderFailed(c, "render_upload_form_failed", err)
		return
	}
	h.writeHTML(c, http.StatusOK, frag)
}

// @Summary      Close modal
// @Tags         upload
// @Produce      html
// @Success      200  {string}  string  "empty body"
// @Router       /close-modal [get]
func (h *Handler) closeModal(c *gin.Context) {
	h.writeHTML(c, http.StatusOK, "")
}

// @Summary      Upload an image
// @Description  File content is read and discarded; the image gets a placeholder URL.
// @Tags         upload
// @Accept       multipart/form-data
// @Produce      plain
// @Param        description  formData  string  true  "Description"
// @Param        image_file   formData  file    true  "Image file"
// @Success      200  {string}  string  "Upload successful"
// @Failure      413  {string}  string  "upload too large"
// @Failure      422  {string}  string  "missing field"
// @Router       /upload [post]
func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.opts.MaxUploadBytes)

	var input uploadForm
	if err := h.bindForm(c, &input); err != nil {
		h.fail(c, "upload_bad_request", err)
		return
	}

	f, err := input.File.Open()
	if err != nil {
		h.fail(c, "upload_open_failed", err, "filename", input.File.Filename)
		return
	}
	defer func() { _ = f.Close() }()

	res, err := h.services.Upload(c.Request.Context(), service.UploadParams{
		Description: input.Description,
		Filename:    input.File.Filename,
		File:        f,
	})
	if err != nil {
		h.fail(c, "upload_failed", err, "filename", input.File.Filename)
		return
	}
	if h.log != nil {
		h.log.Infow("image_uploaded",
			"image_id", res.Image.ID,
			"filename", input.File.Filename,
			"bytes", res.Bytes,
			"description", res.Image.Description,
		)
	}

	c.String(http.StatusOK, uploadSuccess)
	h.broadcast(h.render.FeedItemOOB, res.Image)
}

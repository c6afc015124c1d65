package handlers

import (
	"context"
	"html/template"
	"net/http"

	"photoshare/internal/models"

	"github.com/gin-gonic/gin"
)

// commentForm is the POST /comment/:id schema. A blank comment is accepted
// and ignored, so the field is optional.
type commentForm struct {
	Comment string `form:"comment"`
}

type imageAction func(ctx context.Context, id int) (models.Image, error)

// @Summary      Like an image
// @Tags         actions
// @Produce      html
// @Param        id   path      int  true  "Image ID"
// @Success      200  {string}  string  "likes fragment"
// @Failure      404  {string}  string  "image not found"
// @Router       /like/{id} [post]
func (h *Handler) like(c *gin.Context) {
	h.likesAction(c, "image_liked", h.services.Like)
}

// @Summary      Unlike an image
// @Description  The counter never drops below zero.
// @Tags         actions
// @Produce      html
// @Param        id   path      int  true  "Image ID"
// @Success      200  {string}  string  "likes fragment"
// @Failure      404  {string}  string  "image not found"
// @Router       /unlike/{id} [post]
func (h *Handler) unlike(c *gin.Context) {
	h.likesAction(c, "image_unliked", h.services.Unlike)
}

// likesAction runs a counter mutation and answers with the likes widget.
func (h *Handler) likesAction(c *gin.Context, event string, action imageAction) {
	id, err := h.bindURI(c)
	if err != nil {
		h.fail(c, event+"_bad_id", err)
		return
	}
	img, err := action(c.Request.Context(), id)
	if err != nil {
		h.fail(c, event+"_failed", err, "image_id", id)
		return
	}
	if h.log != nil {
		h.log.Infow(event, "image_id", img.ID, "likes", img.Likes)
	}

	frag, err := h.render.Likes(img)
	if err != nil {
		h.renderFailed(c, "render_likes_failed", err)
		return
	}
	h.writeHTML(c, http.StatusOK, frag)
	h.broadcast(h.render.LikesOOB, img)
}

// @Summary      Comment on an image
// @Description  Blank comments are ignored.
// @Tags         actions
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        id       path      int     true   "Image ID"
// @Param        comment  formData  string  false  "Comment text"
// @Success      200  {string}  string  "comments fragment"
// @Failure      404  {string}  string  "image not found"
// @Router       /comment/{id} [post]
func (h *Handler) comment(c *gin.Context) {
	id, err := h.bindURI(c)
	if err != nil {
		h.fail(c, "comment_bad_id", err)
		return
	}
	var input commentForm
	if err := h.bindForm(c, &input); err != nil {
		h.fail(c, "comment_bad_request", err, "image_id", id)
		return
	}

	img, err := h.services.Comment(c.Request.Context(), id, input.Comment)
	if err != nil {
		h.fail(c, "comment_failed", err, "image_id", id)
		return
	}
	if h.log != nil {
		h.log.Infow("comment_added", "image_id", img.ID, "comments", len(img.Comments))
	}

	frag, err := h.render.Comments(img)
	if err != nil {
		h.renderFailed(c, "render_comments_failed", err)
		return
	}
	h.writeHTML(c, http.StatusOK, frag)
	h.broadcast(h.render.CommentsOOB, img)
}

// broadcast pushes an out-of-band fragment to live clients, if any.
func (h *Handler) broadcast(renderOOB func(models.Image) (template.HTML, error), img models.Image) {
	if h.opts.Hub == nil {
		return
	}
	frag, err := renderOOB(img)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("render_broadcast_failed", "err", err, "image_id", img.ID)
		}
		return
	}
	h.opts.Hub.Broadcast([]byte(frag))
}

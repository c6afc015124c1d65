package handlers

import (
	"fmt"
	"net/http"

	"photoshare/internal/service"

	"github.com/gin-gonic/gin"
)

// signUpForm is the POST /signup schema.
type signUpForm struct {
	Username string `form:"username" binding:"required"`
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// @Summary      Sign-up page
// @Tags         accounts
// @Produce      html
// @Success      200  {string}  string  "HTML page"
// @Router       /signup [get]
func (h *Handler) signUpPage(c *gin.Context) {
	form, err := h.render.SignUpForm()
	if err != nil {
		h.renderFailed(c, "render_signup_failed", err)
		return
	}
	h.writePage(c, http.StatusOK, "Sign Up", form)
}

// @Summary      Sign up
// @Tags         accounts
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        username  formData  string  true  "Username"
// @Param        email     formData  string  true  "Email"
// @Param        password  formData  string  true  "Password"
// @Success      303
// @Failure      400  {string}  string  "username taken"
// @Failure      422  {string}  string  "missing field"
// @Router       /signup [post]
func (h *Handler) signUp(c *gin.Context) {
	var input signUpForm
	if err := h.bindForm(c, &input); err != nil {
		h.fail(c, "signup_bad_request", err)
		return
	}

	u, err := h.services.SignUp(c.Request.Context(), service.SignUpParams{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		h.fail(c, "signup_failed", err, "username", input.Username)
		return
	}

	if h.log != nil {
		h.log.Infow("user_signed_up", "username", u.Username, "email", u.Email)
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// @Summary      Feed
// @Description  All images, newest first.
// @Tags         pages
// @Produce      html
// @Success      200  {string}  string  "HTML page"
// @Router       / [get]
func (h *Handler) feed(c *gin.Context) {
	images, err := h.services.Feed(c.Request.Context())
	if err != nil {
		h.fail(c, "feed_list_failed", err)
		return
	}
	content, err := h.render.Feed(images)
	if err != nil {
		h.renderFailed(c, "render_feed_failed", err)
		return
	}
	h.writePage(c, http.StatusOK, "Feed", content)
}

// @Summary      Image detail
// @Tags         pages
// @Produce      html
// @Param        id   path      int  true  "Image ID"
// @Success      200  {string}  string  "HTML page"
// @Failure      404  {string}  string  "image not found"
// @Router       /image/{id} [get]
func (h *Handler) imageDetail(c *gin.Context) {
	id, err := h.bindURI(c)
	if err != nil {
		h.fail(c, "image_bad_id", err)
		return
	}
	img, err := h.services.Image(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "image_get_failed", err, "image_id", id)
		return
	}
	content, err := h.render.Detail(img)
	if err != nil {
		h.renderFailed(c, "render_detail_failed", err)
		return
	}
	h.writePage(c, http.StatusOK, fmt.Sprintf("Image %d", img.ID), content)
}

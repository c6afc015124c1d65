package handlers

import (
	"net/http"

	"photoshare/internal/logger"
	"photoshare/internal/render"
	"photoshare/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const defaultMaxUploadBytes = 32 << 20

// Options toggles optional surfaces of the router.
type Options struct {
	MaxUploadBytes int64
	Swagger        bool
	Hub            *Hub // nil disables /ws and broadcasts
}

// Handler wires HTTP layer to services, rendering and logging.
type Handler struct {
	services *service.Service
	render   *render.Renderer
	log      *logger.Logger
	opts     Options
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, r *render.Renderer, log *logger.Logger, opts Options) *Handler {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultMaxUploadBytes
	}
	return &Handler{services: services, render: r, log: log, opts: opts}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestID, h.requestLogger)

	if h.opts.Swagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	router.GET("/health", h.health)
	router.StaticFS("/static", http.FS(render.Static()))

	h.registerAccountRoutes(router)
	h.registerPageRoutes(router)
	h.registerActionRoutes(router)
	h.registerUploadRoutes(router)

	if h.opts.Hub != nil {
		router.GET("/ws", h.wsConnect)
	}

	return router
}

func (h *Handler) registerAccountRoutes(r *gin.Engine) {
	r.GET("/signup", h.signUpPage)
	r.POST("/signup", h.signUp)
}

func (h *Handler) registerPageRoutes(r *gin.Engine) {
	r.GET("/", h.feed)
	r.GET("/image/:id", h.imageDetail)
}

func (h *Handler) registerActionRoutes(r *gin.Engine) {
	r.POST("/like/:id", h.like)
	r.POST("/unlike/:id", h.unlike)
	r.POST("/comment/:id", h.comment)
}

func (h *Handler) registerUploadRoutes(r *gin.Engine) {
	r.GET("/post-form", h.postForm)
	r.GET("/close-modal", h.closeModal)
	r.POST("/upload", h.upload)
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

package handlers

import (
	"embed"
	"html/template"
	"time"

	"blynk_bridge/internal/logger"
	"blynk_bridge/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//go:embed templates/index.html
var templatesFS embed.FS

// Options carries the HTTP-layer settings taken from config.
type Options struct {
	// ServerName and Port are shown on the index page.
	ServerName string
	Port       string
	// BlynkURL and RedactedToken describe the remote on the index page.
	BlynkURL      string
	RedactedToken string
	// SharedSecretHash is a bcrypt hash; empty leaves write endpoints open.
	SharedSecretHash string
	AllowOrigins     []string
	StreamInterval   time.Duration
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	opts     Options
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, opts Options, log *logger.Logger) *Handler {
	if opts.StreamInterval <= 0 || opts.StreamInterval > maxInterval {
		opts.StreamInterval = defaultInterval
	}
	return &Handler{services: services, opts: opts, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger)
	router.Use(cors.New(h.corsConfig()))
	router.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/index.html")))

	router.GET("/", h.index)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	h.registerAPIRoutes(router)

	// status stream on the same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	origins := h.opts.AllowOrigins
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	cfg.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	return cfg
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/status", h.getStatus)
		api.GET("/test-blynk", h.testBlynk)
		api.GET("/health", h.health)
		api.GET("/logs", h.getLogs)
		api.GET("/tasks", h.listTasks)
	}

	// writes reach the remote; guarded when a shared secret is configured
	protected := r.Group("/api", h.sharedSecretMiddleware)
	{
		h.registerCommandRoutes(protected)
		protected.DELETE("/tasks/:id", h.cancelTask)
	}
}

func (h *Handler) registerCommandRoutes(api *gin.RouterGroup) {
	api.POST("/trigger/doorbell", h.triggerDoorbell)
	api.POST("/trigger/smoke", h.triggerSmoke)
	api.POST("/reset/smoke", h.resetSmoke)
}

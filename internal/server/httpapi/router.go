// Package httpapi exposes the backend over HTTP with gin: account and token
// endpoints, job notes, presigned attachment URLs, health and metrics.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/jobkeeper/internal/logging"
	"github.com/dmitrijs2005/jobkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/jobkeeper/internal/server/models"
	"github.com/dmitrijs2005/jobkeeper/internal/server/services"
	"github.com/dmitrijs2005/jobkeeper/internal/shared"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type UserService interface {
	Register(ctx context.Context, userName, password string) (*models.User, error)
	Login(ctx context.Context, userName, password string) (*services.AccessToken, error)
	UserIDFromToken(token string) (string, error)
}

type NoteService interface {
	List(ctx context.Context, userID, jobID string) ([]models.JobNote, error)
	Add(ctx context.Context, userID, jobID, text string) (*models.JobNote, error)
	Delete(ctx context.Context, userID, jobID, noteID string) error
}

type AttachmentService interface {
	UploadURL(ctx context.Context, userID, jobID, fileName, contentType string) (string, string, error)
	DownloadURL(ctx context.Context, userID, key string) (string, error)
}

// Options configures NewRouter. Ping backs /healthz; nil means always
// healthy. Gatherer defaults to prometheus.DefaultGatherer.
type Options struct {
	CORSAllowedOrigins []string
	Gatherer           prometheus.Gatherer
	Ping               func(ctx context.Context) error
}

type Handler struct {
	users       UserService
	notes       NoteService
	attachments AttachmentService
	logger      logging.Logger
	metrics     *metrics.Metrics
	ping        func(ctx context.Context) error
}

func NewHandler(us UserService, ns NoteService, as AttachmentService, l logging.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		users:       us,
		notes:       ns,
		attachments: as,
		logger:      l.With("module", "http_api"),
		metrics:     m,
	}
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	c.AddAllowMethods(http.MethodDelete, http.MethodOptions)
	c.AddAllowHeaders("Authorization")
	c.AddExposeHeaders("Content-Length")
	return c
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(h *Handler, opts Options) *gin.Engine {
	h.ping = opts.Ping

	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(h.requestLogger())
	r.Use(cors.New(corsConfig(opts.CORSAllowedOrigins)))

	r.GET("/healthz", h.health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.register)
	authGroup.POST("/token", h.token)

	protected := api.Group("", h.requireAuth())
	protected.GET("/jobs/:jobId/notes", h.listNotes)
	protected.POST("/jobs/:jobId/notes", h.createNote)
	protected.DELETE("/jobs/:jobId/notes/:noteId", h.deleteNote)
	protected.POST("/jobs/:jobId/attachments/upload-url", h.uploadURL)
	protected.GET("/attachments/download-url", h.downloadURL)

	return r
}

func (h *Handler) health(c *gin.Context) {
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			h.logger.Warn(ctx, "health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, shared.HealthResponse{Status: "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, shared.HealthResponse{Status: "ok"})
}

package transport

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"go-patent-vision/internal/config"
	apperrors "go-patent-vision/internal/errors"
	"go-patent-vision/internal/logger"
	"go-patent-vision/internal/observer"
	"go-patent-vision/internal/service"
	"go-patent-vision/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	version         = "1.0.0"
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

//go:embed templates/*.html
var templateFS embed.FS

// Handler serves both tools as HTML pages and as a JSON API.
type Handler struct {
	lookup    service.PatentLookupService
	describer service.ImageDescriptionService
	metrics   *observer.MetricsObserver
	cfg       *config.Config
}

func NewHandler(
	lookup service.PatentLookupService,
	describer service.ImageDescriptionService,
	metrics *observer.MetricsObserver,
	cfg *config.Config,
) http.Handler {
	h := &Handler{
		lookup:    lookup,
		describer: describer,
		metrics:   metrics,
		cfg:       cfg,
	}

	r := gin.New()
	r.SetHTMLTemplate(template.Must(
		template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html"),
	))
	r.MaxMultipartMemory = cfg.MaxRequestBodySize

	r.Use(
		gin.Recovery(),
		requestID(),
		requestLogger(),
		requestSizeLimiter(cfg.MaxRequestBodySize),
		errorHandler(),
	)

	r.GET("/health", h.healthCheck)
	r.GET("/metrics", h.metricsSnapshot)

	r.GET("/", h.index)
	r.GET("/patents", h.patentPage)
	r.POST("/patents", h.patentSubmit)
	r.GET("/vision", h.visionPage)
	r.POST("/vision", h.visionSubmit)

	api := r.Group("/api/v1")
	api.POST("/patents/lookup", h.lookupPatentAPI)
	api.POST("/vision/describe", h.describeImageAPI)

	return r
}

func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:  "available",
		Version: version,
		Time:    time.Now().UTC().Format(time.RFC3339),
		Missing: h.cfg.MissingKeys(),
	})
}

func (h *Handler) metricsSnapshot(c *gin.Context) {
	if h.metrics == nil {
		c.JSON(http.StatusOK, observer.Snapshot{})
		return
	}
	c.JSON(http.StatusOK, h.metrics.Snapshot())
}

// requestContext bounds a request by the configured overall timeout.
func (h *Handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.cfg.RequestTimeout)
}

// requestID keeps a caller-supplied X-Request-ID or assigns a new one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.WithFields(logrus.Fields{
			"request_id":         c.GetString(requestIDKey),
			"method":             c.Request.Method,
			"path":               c.Request.URL.Path,
			"status":             c.Writer.Status(),
			"ip":                 c.ClientIP(),
			"user_agent":         c.Request.UserAgent(),
			"processing_time_ms": time.Since(start).Milliseconds(),
		}).Info("Request handled")
	}
}

func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			err := c.Errors.Last().Err
			respondError(c, determineStatusCode(err), "request processing failed", err)
		}
	}
}

func determineStatusCode(err error) int {
	if appErr, ok := apperrors.As(err); ok {
		return appErr.StatusCode
	}

	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, code int, message string, err error) {
	logger.WithError(err).WithFields(logrus.Fields{
		"request_id":  c.GetString(requestIDKey),
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	resp := models.ErrorResponse{
		Error:   http.StatusText(code),
		Message: fmt.Sprintf("%s: %v", message, err),
	}
	if appErr, ok := apperrors.As(err); ok {
		resp.Type = string(appErr.Type)
		resp.Message = appErr.Message
	}
	c.AbortWithStatusJSON(code, resp)
}

package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/nitesh/content_service/internal/search"
	"github.com/nitesh/content_service/pkg/models"
)

// SearchService is what the handlers need from the service layer.
type SearchService interface {
	Search(ctx context.Context, p search.SearchParams) (*models.SearchResponse, error)
	Suggest(ctx context.Context, p search.SuggestParams) (*models.SuggestResponse, error)
}

// Pinger reports data source health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	svc SearchService
	db  Pinger
	log logrus.FieldLogger
}

func NewHandler(svc SearchService, db Pinger, log logrus.FieldLogger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{svc: svc, db: db, log: log}
}

func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.GET("/search", h.Search)
	r.GET("/search/suggestions", h.Suggestions)
	r.GET("/healthz", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Search: GET /search?q=...&types=articles,tags&lang=en&limit=20&page=1&includeCounts=true
func (h *Handler) Search(c *gin.Context) {
	p := search.SearchParams{
		Q:             c.Query("q"),
		Types:         c.Query("types"),
		Lang:          c.Query("lang"),
		IncludeCounts: c.Query("includeCounts") == "true",
	}
	var err error
	if p.Limit, err = optionalInt(c, "limit"); err != nil {
		h.fail(c, err)
		return
	}
	if p.Page, err = optionalInt(c, "page"); err != nil {
		h.fail(c, err)
		return
	}

	res, err := h.svc.Search(c.Request.Context(), p)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Suggestions: GET /search/suggestions?q=...&types=&lang=&limit=10&perTypeLimit=5&includeMeta=true
func (h *Handler) Suggestions(c *gin.Context) {
	p := search.SuggestParams{
		Q:           c.Query("q"),
		Types:       c.Query("types"),
		Lang:        c.Query("lang"),
		IncludeMeta: c.Query("includeMeta") == "true",
	}
	var err error
	if p.Limit, err = optionalInt(c, "limit"); err != nil {
		h.fail(c, err)
		return
	}
	if p.PerTypeLimit, err = optionalInt(c, "perTypeLimit"); err != nil {
		h.fail(c, err)
		return
	}

	res, err := h.svc.Suggest(c.Request.Context(), p)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Health: GET /healthz
func (h *Handler) Health(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		h.log.WithError(err).Warn("health check: database unreachable")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// fail maps validation errors to 400 and everything else to 500. Internal
// causes are logged, not returned.
func (h *Handler) fail(c *gin.Context, err error) {
	if search.IsValidation(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.log.WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// optionalInt reads an integer query parameter. Absent or empty yields nil;
// anything non-numeric is a validation error.
func optionalInt(c *gin.Context, name string) (*int, error) {
	s := c.Query(name)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, &search.ValidationError{Msg: name + " must be a positive integer"}
	}
	return &v, nil
}

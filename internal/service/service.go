package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nitesh/content_service/internal/cache"
	"github.com/nitesh/content_service/internal/metrics"
	"github.com/nitesh/content_service/internal/search"
	"github.com/nitesh/content_service/pkg/models"
)

// Ranker runs the ranking engine.
type Ranker interface {
	Search(ctx context.Context, p search.SearchParams) (*models.SearchResponse, error)
	Suggest(ctx context.Context, p search.SuggestParams) (*models.SuggestResponse, error)
}

// SuggestCache is the optional response cache for suggestions.
type SuggestCache interface {
	Get(ctx context.Context, key string) (*models.SuggestResponse, error)
	Set(ctx context.Context, key string, res *models.SuggestResponse) error
}

type Service struct {
	ranker Ranker
	cache  SuggestCache
	log    logrus.FieldLogger
}

// NewService wires the ranking engine with an optional cache (nil disables
// caching).
func NewService(ranker Ranker, c SuggestCache, log logrus.FieldLogger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{ranker: ranker, cache: c, log: log}
}

func (s *Service) Search(ctx context.Context, p search.SearchParams) (*models.SearchResponse, error) {
	start := time.Now()
	res, err := s.ranker.Search(ctx, p)
	metrics.ObserveSearch("search", outcome(err), time.Since(start))
	return res, err
}

// Suggest serves autocomplete entries, consulting the cache first. Cache
// failures are logged and bypassed.
func (s *Service) Suggest(ctx context.Context, p search.SuggestParams) (*models.SuggestResponse, error) {
	start := time.Now()

	key, err := s.cacheKey(p)
	if err != nil {
		metrics.ObserveSearch("suggest", outcome(err), time.Since(start))
		return nil, err
	}
	if key != "" {
		if hit, err := s.cache.Get(ctx, key); err != nil {
			metrics.SuggestCacheTotal.WithLabelValues("error").Inc()
			s.log.WithError(err).Warn("suggest cache read failed")
		} else if hit != nil {
			metrics.SuggestCacheTotal.WithLabelValues("hit").Inc()
			metrics.ObserveSearch("suggest", "ok", time.Since(start))
			return hit, nil
		} else {
			metrics.SuggestCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	res, err := s.ranker.Suggest(ctx, p)
	metrics.ObserveSearch("suggest", outcome(err), time.Since(start))
	if err != nil {
		return nil, err
	}

	if key != "" {
		if err := s.cache.Set(ctx, key, res); err != nil {
			s.log.WithError(err).Warn("suggest cache write failed")
		}
	}
	return res, nil
}

// cacheKey returns "" when caching is disabled. The query is normalized
// first so an empty q is rejected before touching the cache.
func (s *Service) cacheKey(p search.SuggestParams) (string, error) {
	q, err := search.Normalize(p.Q, p.Lang, p.Types)
	if err != nil {
		return "", err
	}
	if s.cache == nil {
		return "", nil
	}
	return cache.Key(q.Term, q.Lang, q.Types, deref(p.Limit), deref(p.PerTypeLimit), p.IncludeMeta), nil
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case search.IsValidation(err):
		return "invalid"
	default:
		return "error"
	}
}

// Package search ranks and merges free-text matches across articles,
// categories and tags, and serves autocomplete suggestions.
package search

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/nitesh/content_service/pkg/models"
)

// Limits bounds pagination and per-request work.
type Limits struct {
	SearchDefaultLimit  int
	SearchMaxLimit      int
	SuggestDefaultLimit int
	SuggestMaxLimit     int
	SuggestPerTypeLimit int
	// MaxCandidates caps rows fetched per type for a search; 0 is unbounded.
	// Capped lookups are ranked at the source, so the first MaxCandidates
	// merged results are exact; later positions are not served and total
	// comes from the per-type counts.
	MaxCandidates int
}

// DefaultLimits returns the documented defaults.
func DefaultLimits() Limits {
	return Limits{
		SearchDefaultLimit:  20,
		SearchMaxLimit:      100,
		SuggestDefaultLimit: 10,
		SuggestMaxLimit:     50,
		SuggestPerTypeLimit: 5,
	}
}

// SearchParams are the raw inputs of a search. Nil pointers mean the
// parameter was omitted.
type SearchParams struct {
	Q             string
	Types         string
	Lang          string
	Limit         *int
	Page          *int
	IncludeCounts bool
}

// SuggestParams are the raw inputs of a suggestion request.
type SuggestParams struct {
	Q            string
	Types        string
	Lang         string
	Limit        *int
	PerTypeLimit *int
	IncludeMeta  bool
}

// Engine runs searches and suggestions. It holds no per-request state and
// is safe for concurrent use.
type Engine struct {
	matchers map[models.EntityType]Matcher
	limits   Limits
	log      logrus.FieldLogger
}

// NewEngine creates an engine reading from src.
func NewEngine(src Source, limits Limits, log logrus.FieldLogger) *Engine {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Engine{matchers: NewMatchers(src), limits: limits, log: log}
}

// Search returns one page of the ranked results across the requested types.
func (e *Engine) Search(ctx context.Context, p SearchParams) (*models.SearchResponse, error) {
	q, err := Normalize(p.Q, p.Lang, p.Types)
	if err != nil {
		return nil, err
	}
	limit, err := positive("limit", p.Limit, e.limits.SearchDefaultLimit, e.limits.SearchMaxLimit)
	if err != nil {
		return nil, err
	}
	page, err := positive("page", p.Page, 1, 0)
	if err != nil {
		return nil, err
	}

	capped := e.limits.MaxCandidates > 0
	f := Filter{Term: q.Term, Lang: q.Lang, Limit: e.limits.MaxCandidates, Ranked: capped}
	groups, counts, err := e.fanOut(ctx, q.Types, f, p.IncludeCounts || capped)
	if err != nil {
		return nil, err
	}

	ranked := merge(groups...)
	total := len(ranked)
	if capped {
		// Each type contributed its best MaxCandidates rows, so only that
		// many merged positions are guaranteed to be in final order.
		if len(ranked) > e.limits.MaxCandidates {
			ranked = ranked[:e.limits.MaxCandidates]
		}
		total = 0
		for _, n := range counts {
			total += n
		}
	}
	start, end := window(len(ranked), page, limit)
	results := make([]models.RankedResult, 0, end-start)
	for _, c := range ranked[start:end] {
		results = append(results, toResult(c, q.Term))
	}

	e.log.WithFields(logrus.Fields{
		"q":     q.Term,
		"lang":  q.Lang,
		"types": q.Types,
		"total": total,
		"page":  page,
	}).Debug("search completed")

	if !p.IncludeCounts {
		counts = nil
	}
	return &models.SearchResponse{
		Results: results,
		Total:   total,
		Page:    page,
		Limit:   limit,
		Counts:  counts,
	}, nil
}

// Suggest returns autocomplete entries: at most perTypeLimit per type and
// at most limit overall, ordered like search results.
func (e *Engine) Suggest(ctx context.Context, p SuggestParams) (*models.SuggestResponse, error) {
	q, err := Normalize(p.Q, p.Lang, p.Types)
	if err != nil {
		return nil, err
	}
	limit, err := positive("limit", p.Limit, e.limits.SuggestDefaultLimit, e.limits.SuggestMaxLimit)
	if err != nil {
		return nil, err
	}
	perType, err := positive("perTypeLimit", p.PerTypeLimit, e.limits.SuggestPerTypeLimit, e.limits.SuggestMaxLimit)
	if err != nil {
		return nil, err
	}

	f := Filter{Term: q.Term, Lang: q.Lang, Limit: perType, Ranked: true}
	groups, counts, err := e.fanOut(ctx, q.Types, f, p.IncludeMeta)
	if err != nil {
		return nil, err
	}
	for i, g := range groups {
		sortCandidates(g)
		if len(g) > perType {
			groups[i] = g[:perType]
		}
	}

	ranked := merge(groups...)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := &models.SuggestResponse{Suggestions: make([]models.SuggestionItem, 0, len(ranked))}
	for _, c := range ranked {
		out.Suggestions = append(out.Suggestions, toResult(c, q.Term))
	}
	if p.IncludeMeta {
		out.Meta = &models.SuggestionMeta{Counts: counts}
	}
	return out, nil
}

// fanOut runs the matcher of every requested type concurrently. Results land
// in per-type slots so the merge order never depends on completion order.
// The first failure cancels the rest and fails the request.
func (e *Engine) fanOut(ctx context.Context, types []models.EntityType, f Filter, withCounts bool) ([][]Candidate, models.TypeCounts, error) {
	groups := make([][]Candidate, len(types))
	totals := make([]int, len(types))

	ms := make([]Matcher, len(types))
	for i, t := range types {
		m, ok := e.matchers[t]
		if !ok {
			return nil, nil, fmt.Errorf("no matcher for type %s", t)
		}
		ms[i] = m
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, m := range ms {
		t := types[i]
		g.Go(func() error {
			c, err := m.Match(gctx, f)
			if err != nil {
				return fmt.Errorf("match %s: %w", t, err)
			}
			groups[i] = c
			if withCounts {
				n, err := m.Count(gctx, f)
				if err != nil {
					return fmt.Errorf("count %s: %w", t, err)
				}
				totals[i] = n
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	if !withCounts {
		return groups, nil, nil
	}
	counts := make(models.TypeCounts, len(types))
	for i, t := range types {
		counts[t] = totals[i]
	}
	return groups, counts, nil
}

// positive resolves an optional positive integer parameter. Omitted values
// take def; supplied values must be > 0 and, when max > 0, <= max.
func positive(name string, v *int, def, max int) (int, error) {
	if v == nil {
		return def, nil
	}
	if *v <= 0 {
		return 0, invalid(fmt.Sprintf("%s must be a positive integer", name))
	}
	if max > 0 && *v > max {
		return 0, invalid(fmt.Sprintf("%s must not exceed %d", name, max))
	}
	return *v, nil
}

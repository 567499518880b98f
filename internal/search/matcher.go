package search

import (
	"context"

	"github.com/nitesh/content_service/pkg/models"
)

// Candidate is a row that matched the query, before ranking.
type Candidate struct {
	Type models.EntityType
	ID   int64
	// Matched holds the raw text of every field that contained the term.
	Matched map[string]string
	// Display holds the fields returned to the client, keyed by JSON name.
	Display map[string]string
	Score   float64
}

// Matcher finds and scores candidates of one entity type.
type Matcher interface {
	Type() models.EntityType
	Match(ctx context.Context, f Filter) ([]Candidate, error)
	Count(ctx context.Context, f Filter) (int, error)
}

// NewMatchers returns one matcher per entity type, all reading from src.
func NewMatchers(src Source) map[models.EntityType]Matcher {
	return map[models.EntityType]Matcher{
		models.TypeArticles:   &articleMatcher{src: src},
		models.TypeCategories: &termMatcher{src: src, kind: models.TypeCategories},
		models.TypeTags:       &termMatcher{src: src, kind: models.TypeTags},
	}
}

type articleMatcher struct {
	src Source
}

func (m *articleMatcher) Type() models.EntityType { return models.TypeArticles }

func (m *articleMatcher) Match(ctx context.Context, f Filter) ([]Candidate, error) {
	rows, err := m.src.FindArticles(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]Candidate, 0, len(rows))
	for _, a := range rows {
		if a.Status != models.StatusPublished {
			continue
		}
		score, matched := scoreFields(f.Term,
			scoredField{name: "title", text: a.Title, kind: fieldPrimary},
			scoredField{name: "slug", text: a.Slug, kind: fieldIdent},
			scoredField{name: "excerpt", text: a.Excerpt, kind: fieldProse},
			scoredField{name: "body", text: a.Body, kind: fieldProse},
		)
		if score <= 0 {
			continue
		}
		out = append(out, Candidate{
			Type:    models.TypeArticles,
			ID:      a.ID,
			Matched: matched,
			Display: map[string]string{"title": a.Title, "slug": a.Slug},
			Score:   score,
		})
	}
	return out, nil
}

func (m *articleMatcher) Count(ctx context.Context, f Filter) (int, error) {
	return m.src.CountArticles(ctx, f)
}

// termMatcher serves categories and tags.
type termMatcher struct {
	src  Source
	kind models.EntityType
}

func (m *termMatcher) Type() models.EntityType { return m.kind }

func (m *termMatcher) Match(ctx context.Context, f Filter) ([]Candidate, error) {
	rows, err := m.src.FindTerms(ctx, m.kind, f)
	if err != nil {
		return nil, err
	}
	out := make([]Candidate, 0, len(rows))
	for _, t := range rows {
		name := t.Name(f.Lang)
		score, matched := scoreFields(f.Term,
			scoredField{name: "name", text: name, kind: fieldPrimary},
			scoredField{name: "code", text: t.Code, kind: fieldIdent},
		)
		if score <= 0 {
			continue
		}
		out = append(out, Candidate{
			Type:    m.kind,
			ID:      t.ID,
			Matched: matched,
			Display: map[string]string{"name": name, "code": t.Code},
			Score:   score,
		})
	}
	return out, nil
}

func (m *termMatcher) Count(ctx context.Context, f Filter) (int, error) {
	return m.src.CountTerms(ctx, m.kind, f)
}

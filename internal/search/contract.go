package search

import (
	"context"

	"github.com/nitesh/content_service/pkg/models"
)

// Filter is the read-only lookup handed to a Source.
type Filter struct {
	// Term is the normalized (trimmed, lower-cased) query. Sources match it
	// as a case-insensitive substring.
	Term string
	Lang models.Language
	// Limit caps the returned rows; 0 means no cap.
	Limit int
	// Ranked asks the source to return rows best-first: by the highest
	// FieldPoints over every scored field (title, slug, excerpt, body for
	// articles; name, code for terms), then id. A Limit then keeps exactly
	// the rows the matcher would rank highest.
	Ranked bool
}

// Source is the read-only query interface over the content tables.
type Source interface {
	// FindArticles returns published articles whose resolved-language title,
	// slug, excerpt or body contains the term.
	FindArticles(ctx context.Context, f Filter) ([]models.Article, error)
	CountArticles(ctx context.Context, f Filter) (int, error)

	// FindTerms returns categories or tags whose localized name or code
	// contains the term.
	FindTerms(ctx context.Context, kind models.EntityType, f Filter) ([]models.Term, error)
	CountTerms(ctx context.Context, kind models.EntityType, f Filter) (int, error)
}

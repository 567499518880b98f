package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/nitesh/content_service/internal/search"
	"github.com/nitesh/content_service/pkg/models"
)

// PgStore is the read-only PostgreSQL implementation of search.Source.
type PgStore struct {
	db *sqlx.DB
}

var _ search.Source = (*PgStore)(nil)

func NewPgStore(db *sql.DB) *PgStore {
	return &PgStore{db: sqlx.NewDb(db, "postgres")}
}

// RunMigrations creates the read-model tables when they are missing so the
// service can run against an empty database. Existing tables are untouched.
func RunMigrations(db *sql.DB) error {
	initSQL := `
CREATE TABLE IF NOT EXISTS categories(
  id BIGSERIAL PRIMARY KEY,
  code TEXT NOT NULL UNIQUE,
  names JSONB NOT NULL DEFAULT '{}'
);

CREATE TABLE IF NOT EXISTS tags(
  id BIGSERIAL PRIMARY KEY,
  code TEXT NOT NULL UNIQUE,
  names JSONB NOT NULL DEFAULT '{}'
);

CREATE TABLE IF NOT EXISTS articles(
  id BIGSERIAL PRIMARY KEY,
  status TEXT NOT NULL DEFAULT 'draft',
  category_id BIGINT REFERENCES categories(id),
  published_at TIMESTAMP,
  created_at TIMESTAMP NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS article_translations(
  article_id BIGINT NOT NULL REFERENCES articles(id) ON DELETE CASCADE,
  lang TEXT NOT NULL,
  title TEXT NOT NULL DEFAULT '',
  slug TEXT NOT NULL DEFAULT '',
  excerpt TEXT NOT NULL DEFAULT '',
  body TEXT NOT NULL DEFAULT '',
  PRIMARY KEY (article_id, lang)
);

CREATE TABLE IF NOT EXISTS article_tags(
  article_id BIGINT NOT NULL REFERENCES articles(id) ON DELETE CASCADE,
  tag_id BIGINT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
  PRIMARY KEY (article_id, tag_id)
);

CREATE INDEX IF NOT EXISTS idx_articles_status ON articles(status);
CREATE INDEX IF NOT EXISTS idx_articles_published ON articles(published_at);
CREATE INDEX IF NOT EXISTS idx_article_tags_tag ON article_tags(tag_id);
`
	_, err := db.Exec(initSQL)
	return err
}

// Ping checks database connectivity.
func (p *PgStore) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// Resolved-language article fields. A missing or empty translation falls
// back to English, like term names.
const (
	articleTitle   = "COALESCE(NULLIF(t.title, ''), d.title, '')"
	articleSlug    = "COALESCE(NULLIF(t.slug, ''), d.slug, '')"
	articleExcerpt = "COALESCE(NULLIF(t.excerpt, ''), d.excerpt, '')"
	articleBody    = "COALESCE(NULLIF(t.body, ''), d.body, '')"

	articleFrom = `
FROM articles a
LEFT JOIN article_translations t ON t.article_id = a.id AND t.lang = ?
LEFT JOIN article_translations d ON d.article_id = a.id AND d.lang = 'en'`
)

// articleQuery applies the visibility gate and the substring match.
func articleQuery(base string, f search.Filter) *query {
	return newQuery(base+articleFrom, string(f.Lang)).
		where("a.status = ?", models.StatusPublished).
		where("(a.published_at IS NULL OR a.published_at <= NOW())").
		whereAny([]string{
			articleTitle + " ILIKE ?",
			articleSlug + " ILIKE ?",
			articleExcerpt + " ILIKE ?",
			articleBody + " ILIKE ?",
		}, containsPattern(f.Term))
}

func (p *PgStore) FindArticles(ctx context.Context, f search.Filter) ([]models.Article, error) {
	q := articleQuery(`
SELECT a.id, a.status, a.category_id, a.published_at, a.created_at, a.updated_at,
  `+articleTitle+` AS title, `+articleSlug+` AS slug,
  `+articleExcerpt+` AS excerpt, `+articleBody+` AS body`, f)
	if f.Ranked {
		q.orderBy(scoreOrder(f.Term, "a.id",
			rankField{expr: articleTitle, weight: search.WeightPrimary},
			rankField{expr: articleSlug, weight: search.WeightIdent},
			rankField{expr: articleExcerpt, weight: search.WeightProse},
			rankField{expr: articleBody, weight: search.WeightProse},
		))
	} else {
		q.orderBy("a.id")
	}
	query, args := q.limit(f.Limit).build()

	rows := []models.Article{}
	if err := p.db.SelectContext(ctx, &rows, p.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("select articles: %w", err)
	}
	return rows, nil
}

func (p *PgStore) CountArticles(ctx context.Context, f search.Filter) (int, error) {
	query, args := articleQuery("SELECT COUNT(*)", f).build()
	var n int
	if err := p.db.GetContext(ctx, &n, p.db.Rebind(query), args...); err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return n, nil
}

// termTables whitelists the tables behind each term kind.
var termTables = map[models.EntityType]string{
	models.TypeCategories: "categories",
	models.TypeTags:       "tags",
}

// termName resolves the localized name; its placeholder binds the language.
const termName = "COALESCE(NULLIF(names->>?, ''), names->>'en', '')"

func termQuery(base string, kind models.EntityType, f search.Filter) (*query, error) {
	table, ok := termTables[kind]
	if !ok {
		return nil, fmt.Errorf("unknown term kind %q", kind)
	}
	pattern := containsPattern(f.Term)
	return newQuery(base+"\nFROM "+table).
		where("("+termName+" ILIKE ? OR code ILIKE ?)", string(f.Lang), pattern, pattern), nil
}

func (p *PgStore) FindTerms(ctx context.Context, kind models.EntityType, f search.Filter) ([]models.Term, error) {
	q, err := termQuery("SELECT id, code, names", kind, f)
	if err != nil {
		return nil, err
	}
	if f.Ranked {
		q.orderBy(scoreOrder(f.Term, "id",
			rankField{expr: termName, args: []interface{}{string(f.Lang)}, weight: search.WeightPrimary},
			rankField{expr: "code", weight: search.WeightIdent},
		))
	} else {
		q.orderBy("id")
	}
	query, args := q.limit(f.Limit).build()

	rows := []models.Term{}
	if err := p.db.SelectContext(ctx, &rows, p.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("select %s: %w", kind, err)
	}
	return rows, nil
}

func (p *PgStore) CountTerms(ctx context.Context, kind models.EntityType, f search.Filter) (int, error) {
	q, err := termQuery("SELECT COUNT(*)", kind, f)
	if err != nil {
		return 0, err
	}
	query, args := q.build()
	var n int
	if err := p.db.GetContext(ctx, &n, p.db.Rebind(query), args...); err != nil {
		return 0, fmt.Errorf("count %s: %w", kind, err)
	}
	return n, nil
}

package models

import (
	"time"

	dbtypes "github.com/nitesh/content_service/internal/db"
)

// Language is a supported content language code.
type Language string

const (
	LangEN Language = "en"
	LangBN Language = "bn"

	DefaultLanguage = LangEN
)

// EntityType names a searchable entity kind. The declaration order is the
// tie-break precedence used when scores are equal.
type EntityType string

const (
	TypeArticles   EntityType = "articles"
	TypeCategories EntityType = "categories"
	TypeTags       EntityType = "tags"
)

// AllTypes lists every searchable type in precedence order.
var AllTypes = []EntityType{TypeArticles, TypeCategories, TypeTags}

// Precedence returns the tie-break rank of t (lower sorts first).
func (t EntityType) Precedence() int {
	for i, v := range AllTypes {
		if v == t {
			return i
		}
	}
	return len(AllTypes)
}

// Article status values.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusHidden    = "hidden"
)

// Article is an article row with its translation resolved for one language.
type Article struct {
	ID          int64      `db:"id" json:"id"`
	Status      string     `db:"status" json:"status"`
	CategoryID  *int64     `db:"category_id" json:"category_id,omitempty"`
	Title       string     `db:"title" json:"title"`
	Slug        string     `db:"slug" json:"slug"`
	Excerpt     string     `db:"excerpt" json:"excerpt"`
	Body        string     `db:"body" json:"body"`
	PublishedAt *time.Time `db:"published_at" json:"published_at,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// Term is a category or tag row. Both share the same shape.
type Term struct {
	ID    int64                 `db:"id" json:"id"`
	Code  string                `db:"code" json:"code"`
	Names dbtypes.LocalizedText `db:"names" json:"names"`
}

// Name returns the localized name for lang, falling back to English.
func (t Term) Name(lang Language) string {
	return t.Names.Get(string(lang), string(DefaultLanguage))
}

// RankedResult is one entry of a search response.
type RankedResult struct {
	Type      EntityType        `json:"type"`
	ID        int64             `json:"id"`
	Title     string            `json:"title,omitempty"`
	Slug      string            `json:"slug,omitempty"`
	Name      string            `json:"name,omitempty"`
	Code      string            `json:"code,omitempty"`
	Highlight map[string]string `json:"highlight"`
	Score     float64           `json:"score"`
}

// SuggestionItem is one autocomplete entry.
type SuggestionItem = RankedResult

// TypeCounts holds the total match count per requested type.
type TypeCounts map[EntityType]int

// SearchResponse is the body of GET /search.
type SearchResponse struct {
	Results []RankedResult `json:"results"`
	Total   int            `json:"total"`
	Page    int            `json:"page"`
	Limit   int            `json:"limit"`
	Counts  TypeCounts     `json:"counts,omitempty"`
}

// SuggestionMeta carries optional aggregate data for suggestions.
type SuggestionMeta struct {
	Counts TypeCounts `json:"counts"`
}

// SuggestResponse is the body of GET /search/suggestions.
type SuggestResponse struct {
	Suggestions []SuggestionItem `json:"suggestions"`
	Meta        *SuggestionMeta  `json:"meta,omitempty"`
}

package search

import (
	"fmt"
	"strings"

	"github.com/nitesh/content_service/pkg/models"
)

// Query is a normalized search request.
type Query struct {
	Term  string
	Lang  models.Language
	Types []models.EntityType
}

// Normalize trims and case-folds the raw query, resolves the language and
// the requested type set. An empty term yields ErrQueryRequired.
func Normalize(raw, lang, types string) (Query, error) {
	term := strings.ToLower(strings.TrimSpace(raw))
	if term == "" {
		return Query{}, ErrQueryRequired
	}
	ts, err := ParseTypes(types)
	if err != nil {
		return Query{}, err
	}
	return Query{Term: term, Lang: ParseLanguage(lang), Types: ts}, nil
}

// ParseLanguage maps a language code to a supported Language, defaulting
// to English.
func ParseLanguage(s string) models.Language {
	switch models.Language(strings.ToLower(strings.TrimSpace(s))) {
	case models.LangBN:
		return models.LangBN
	default:
		return models.DefaultLanguage
	}
}

// ParseTypes parses a comma-separated type list. Empty input selects every
// type. The result is deduplicated and in precedence order.
func ParseTypes(s string) ([]models.EntityType, error) {
	want := map[models.EntityType]bool{}
	for _, part := range strings.Split(s, ",") {
		p := strings.ToLower(strings.TrimSpace(part))
		if p == "" {
			continue
		}
		t := models.EntityType(p)
		if t.Precedence() == len(models.AllTypes) {
			return nil, invalid(fmt.Sprintf("invalid type %q: expected articles, categories or tags", p))
		}
		want[t] = true
	}
	if len(want) == 0 {
		return append([]models.EntityType(nil), models.AllTypes...), nil
	}
	out := make([]models.EntityType, 0, len(want))
	for _, t := range models.AllTypes {
		if want[t] {
			out = append(out, t)
		}
	}
	return out, nil
}

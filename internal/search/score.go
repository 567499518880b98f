package search

import "strings"

// Match tiers, most specific first.
const (
	tierNone      = 0
	TierSubstring = 1
	TierPrefix    = 2
	TierExact     = 3

	// tierScale keeps the tier dominant over any field weight.
	tierScale = 10
)

// Field weights within a tier.
const (
	WeightProse   = 0 // excerpt, body
	WeightIdent   = 1 // slug, code
	WeightPrimary = 2 // title, name
)

// FieldPoints is the score of a field matched at tier with the given weight.
// Sources that pre-rank rows (Filter.Ranked) must order by the best
// FieldPoints over the same fields the matchers score.
func FieldPoints(tier, weight int) int {
	return tier*tierScale + weight
}

type fieldKind int

const (
	fieldProse   fieldKind = WeightProse
	fieldIdent   fieldKind = WeightIdent
	fieldPrimary fieldKind = WeightPrimary
)

// matchTier classifies how term (already lower-cased) occurs in text.
func matchTier(text, term string) int {
	if term == "" {
		return tierNone
	}
	folded := strings.ToLower(strings.TrimSpace(text))
	switch {
	case folded == term:
		return TierExact
	case strings.HasPrefix(folded, term):
		return TierPrefix
	case strings.Contains(folded, term):
		return TierSubstring
	default:
		return tierNone
	}
}

func fieldScore(text, term string, kind fieldKind) float64 {
	tier := matchTier(text, term)
	if tier == tierNone {
		return 0
	}
	return float64(FieldPoints(tier, int(kind)))
}

// scoredField is one searchable field of a row.
type scoredField struct {
	name string
	text string
	kind fieldKind
}

// scoreFields returns the best field score and the fields that matched.
func scoreFields(term string, fields ...scoredField) (float64, map[string]string) {
	var best float64
	matched := map[string]string{}
	for _, f := range fields {
		s := fieldScore(f.text, term, f.kind)
		if s == 0 {
			continue
		}
		matched[f.name] = f.text
		if s > best {
			best = s
		}
	}
	return best, matched
}

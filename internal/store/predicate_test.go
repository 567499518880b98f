package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nitesh/content_service/internal/search"
)

func TestQuery_ArgsFollowPlaceholderOrder(t *testing.T) {
	sql, args := newQuery("SELECT * FROM x JOIN y ON y.lang = ?", "en").
		where("a = ?", 1).
		whereAny([]string{"b ILIKE ?", "c ILIKE ?"}, "%q%").
		orderBy("CASE WHEN d = ? THEN 0 ELSE 1 END, id", "q").
		limit(10).
		build()

	assert.Equal(t, "SELECT * FROM x JOIN y ON y.lang = ?\nWHERE a = ? AND (b ILIKE ? OR c ILIKE ?)\nORDER BY CASE WHEN d = ? THEN 0 ELSE 1 END, id\nLIMIT ?", sql)
	assert.Equal(t, []interface{}{"en", 1, "%q%", "%q%", "q", 10}, args)
}

func TestQuery_NoConditionsNoLimit(t *testing.T) {
	sql, args := newQuery("SELECT 1").limit(0).build()
	assert.Equal(t, "SELECT 1", sql)
	assert.Empty(t, args)
}

func TestPatterns(t *testing.T) {
	assert.Equal(t, "%cat%", containsPattern("cat"))
	assert.Equal(t, `%a\_b\%c\\%`, containsPattern(`a_b%c\`))
	assert.Equal(t, `50\%%`, prefixPattern("50%"))
}

func TestScoreOrder_UsesMatcherPoints(t *testing.T) {
	expr, args := scoreOrder("cat", "id",
		rankField{expr: "name(?)", args: []interface{}{"bn"}, weight: search.WeightPrimary},
		rankField{expr: "code", weight: search.WeightIdent},
	)

	assert.Equal(t, "GREATEST("+
		"CASE WHEN LOWER(TRIM(name(?))) = ? THEN 32 WHEN TRIM(name(?)) ILIKE ? THEN 22 WHEN name(?) ILIKE ? THEN 12 ELSE 0 END, "+
		"CASE WHEN LOWER(TRIM(code)) = ? THEN 31 WHEN TRIM(code) ILIKE ? THEN 21 WHEN code ILIKE ? THEN 11 ELSE 0 END"+
		") DESC, id", expr)
	assert.Equal(t, []interface{}{
		"bn", "cat", "bn", "cat%", "bn", "%cat%",
		"cat", "cat%", "%cat%",
	}, args)
}

func TestScoreOrder_ExactCodeOutranksNameSubstring(t *testing.T) {
	// "Scatter" (name substring) vs code "cat" (exact): the code row must
	// come first, as it does in the engine.
	nameSubstring := search.FieldPoints(search.TierSubstring, search.WeightPrimary)
	codeExact := search.FieldPoints(search.TierExact, search.WeightIdent)
	assert.Greater(t, codeExact, nameSubstring)

	expr, _ := scoreOrder("cat", "id", rankField{expr: "code", weight: search.WeightIdent})
	assert.Contains(t, expr, "THEN 31")
}

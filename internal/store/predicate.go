package store

import (
	"fmt"
	"strings"

	"github.com/nitesh/content_service/internal/search"
)

// query accumulates SQL fragments and their bound arguments in order of
// appearance. Fragments use '?' placeholders; callers Rebind the result for
// the driver. User input only ever travels as an argument.
type query struct {
	sql   strings.Builder
	args  []interface{}
	conds []string
	cargs []interface{}
}

func newQuery(base string, args ...interface{}) *query {
	q := &query{}
	q.sql.WriteString(base)
	q.args = append(q.args, args...)
	return q
}

// where adds a condition joined with AND.
func (q *query) where(cond string, args ...interface{}) *query {
	q.conds = append(q.conds, cond)
	q.cargs = append(q.cargs, args...)
	return q
}

// whereAny adds a parenthesized OR group of conditions that all bind the
// same argument list.
func (q *query) whereAny(conds []string, args ...interface{}) *query {
	if len(conds) == 0 {
		return q
	}
	var all []interface{}
	for range conds {
		all = append(all, args...)
	}
	return q.where("("+strings.Join(conds, " OR ")+")", all...)
}

// flush writes pending conditions as a WHERE clause.
func (q *query) flush() {
	if len(q.conds) == 0 {
		return
	}
	q.sql.WriteString("\nWHERE ")
	q.sql.WriteString(strings.Join(q.conds, " AND "))
	q.args = append(q.args, q.cargs...)
	q.conds, q.cargs = nil, nil
}

func (q *query) orderBy(expr string, args ...interface{}) *query {
	q.flush()
	q.sql.WriteString("\nORDER BY ")
	q.sql.WriteString(expr)
	q.args = append(q.args, args...)
	return q
}

func (q *query) limit(n int) *query {
	q.flush()
	if n > 0 {
		q.sql.WriteString("\nLIMIT ?")
		q.args = append(q.args, n)
	}
	return q
}

func (q *query) build() (string, []interface{}) {
	q.flush()
	return q.sql.String(), q.args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern returns an ILIKE pattern matching term anywhere.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// prefixPattern returns an ILIKE pattern matching term at the start.
func prefixPattern(term string) string {
	return likeEscaper.Replace(term) + "%"
}

// rankField is one scored column expression. args bind the placeholders
// inside expr itself.
type rankField struct {
	expr   string
	args   []interface{}
	weight int
}

// scoreOrder orders rows by the score the matchers compute: the best
// search.FieldPoints over fields, then idCol. It returns the ORDER BY
// expression and its args in placeholder order.
func scoreOrder(term, idCol string, fields ...rankField) (string, []interface{}) {
	exact, prefix, contains := term, prefixPattern(term), containsPattern(term)
	cases := make([]string, 0, len(fields))
	var args []interface{}
	for _, f := range fields {
		cases = append(cases, fmt.Sprintf(
			"CASE WHEN LOWER(TRIM(%[1]s)) = ? THEN %[2]d WHEN TRIM(%[1]s) ILIKE ? THEN %[3]d WHEN %[1]s ILIKE ? THEN %[4]d ELSE 0 END",
			f.expr,
			search.FieldPoints(search.TierExact, f.weight),
			search.FieldPoints(search.TierPrefix, f.weight),
			search.FieldPoints(search.TierSubstring, f.weight),
		))
		for _, p := range []string{exact, prefix, contains} {
			args = append(args, f.args...)
			args = append(args, p)
		}
	}
	return "GREATEST(" + strings.Join(cases, ", ") + ") DESC, " + idCol, args
}

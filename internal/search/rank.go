package search

import (
	"sort"

	"github.com/nitesh/content_service/pkg/models"
)

// less orders candidates by score desc, then type precedence, then id asc.
func less(a, b Candidate) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if pa, pb := a.Type.Precedence(), b.Type.Precedence(); pa != pb {
		return pa < pb
	}
	return a.ID < b.ID
}

func sortCandidates(c []Candidate) {
	sort.Slice(c, func(i, j int) bool { return less(c[i], c[j]) })
}

// merge concatenates per-type candidate lists, drops non-positive scores and
// returns one fully ranked list.
func merge(groups ...[]Candidate) []Candidate {
	n := 0
	for _, g := range groups {
		n += len(g)
	}
	out := make([]Candidate, 0, n)
	for _, g := range groups {
		for _, c := range g {
			if c.Score > 0 {
				out = append(out, c)
			}
		}
	}
	sortCandidates(out)
	return out
}

// window returns the [start, end) bounds of a 1-based page over n items.
// Pages past the end are empty; the page index is checked before the offset
// is computed so huge pages cannot overflow into a valid range.
func window(n, page, limit int) (int, int) {
	if n <= 0 || page < 1 || limit < 1 || page-1 > (n-1)/limit {
		return n, n
	}
	start := (page - 1) * limit
	end := start + limit
	if end > n || end < start {
		end = n
	}
	return start, end
}

// toResult builds the client-facing result, highlighting the display fields
// that matched.
func toResult(c Candidate, term string) models.RankedResult {
	r := models.RankedResult{
		Type:      c.Type,
		ID:        c.ID,
		Highlight: map[string]string{},
		Score:     c.Score,
	}
	for field, text := range c.Display {
		switch field {
		case "title":
			r.Title = text
		case "slug":
			r.Slug = text
		case "name":
			r.Name = text
		case "code":
			r.Code = text
		}
		if _, ok := c.Matched[field]; ok {
			r.Highlight[field] = Highlight(text, term)
		}
	}
	return r
}

package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitesh/content_service/pkg/models"
)

func TestNormalize_TrimsAndFolds(t *testing.T) {
	q, err := Normalize("  Hello World \t", "", "")
	require.NoError(t, err)
	assert.Equal(t, "hello world", q.Term)
	assert.Equal(t, models.LangEN, q.Lang)
	assert.Equal(t, models.AllTypes, q.Types)
}

func TestNormalize_EmptyQuery(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\t"} {
		_, err := Normalize(raw, "en", "")
		assert.ErrorIs(t, err, ErrQueryRequired, "raw=%q", raw)
		assert.True(t, IsValidation(err))
		assert.Equal(t, "q is required", err.Error())
	}
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in   string
		want models.Language
	}{
		{"en", models.LangEN},
		{"bn", models.LangBN},
		{"BN", models.LangBN},
		{" bn ", models.LangBN},
		{"fr", models.LangEN},
		{"", models.LangEN},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLanguage(tt.in), "in=%q", tt.in)
	}
}

func TestParseTypes(t *testing.T) {
	got, err := ParseTypes("tags, articles,tags")
	require.NoError(t, err)
	assert.Equal(t, []models.EntityType{models.TypeArticles, models.TypeTags}, got)

	got, err = ParseTypes(" , ")
	require.NoError(t, err)
	assert.Equal(t, models.AllTypes, got)

	_, err = ParseTypes("articles,users")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), `"users"`)
}

func TestParseTypes_DoesNotAliasAllTypes(t *testing.T) {
	got, err := ParseTypes("")
	require.NoError(t, err)
	got[0] = "mutated"
	assert.Equal(t, models.TypeArticles, models.AllTypes[0])
}

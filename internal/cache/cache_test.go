package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitesh/content_service/pkg/models"
)

func setupCache(t *testing.T) (*SuggestCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewSuggestCache(rdb, 30*time.Second), mr
}

func TestSuggestCache_MissThenHit(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()
	key := Key("cat", models.LangEN, models.AllTypes, 10, 5, false)

	got, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, got)

	res := &models.SuggestResponse{Suggestions: []models.SuggestionItem{{
		Type:      models.TypeTags,
		ID:        2,
		Name:      "Cat",
		Code:      "cat",
		Highlight: map[string]string{"name": "<c>Cat</c>"},
		Score:     32,
	}}}
	require.NoError(t, c.Set(ctx, key, res))

	got, err = c.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, res, got)

	mr.FastForward(31 * time.Second)
	got, err = c.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, got, "entry expires after the ttl")
}

func TestSuggestCache_CorruptEntry(t *testing.T) {
	c, mr := setupCache(t)
	key := Key("x", models.LangEN, nil, 1, 1, false)
	require.NoError(t, mr.Set(key, "{not json"))

	_, err := c.Get(context.Background(), key)
	assert.Error(t, err)
}

func TestSuggestCache_RedisDown(t *testing.T) {
	c, mr := setupCache(t)
	mr.Close()

	_, err := c.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.Error(t, c.Set(context.Background(), "k", &models.SuggestResponse{}))
}

func TestKey_DistinguishesParams(t *testing.T) {
	base := Key("cat", models.LangEN, models.AllTypes, 10, 5, false)
	assert.Equal(t, base, Key("cat", models.LangEN, models.AllTypes, 10, 5, false))
	assert.NotEqual(t, base, Key("cat", models.LangBN, models.AllTypes, 10, 5, false))
	assert.NotEqual(t, base, Key("cat", models.LangEN, []models.EntityType{models.TypeTags}, 10, 5, false))
	assert.NotEqual(t, base, Key("cat", models.LangEN, models.AllTypes, 10, 1, false))
	assert.NotEqual(t, base, Key("cat", models.LangEN, models.AllTypes, 10, 5, true))
	assert.Contains(t, base, "content:suggest:")
}

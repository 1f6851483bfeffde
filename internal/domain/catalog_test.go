package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogQuery_Normalize(t *testing.T) {
	q := CatalogQuery{Text: "naruto"}.Normalize(9)
	assert.Equal(t, CatalogQuery{Text: "naruto", Page: 1, PageSize: 9}, q)

	q = CatalogQuery{Page: 4, PageSize: 20}.Normalize(9)
	assert.Equal(t, 4, q.Page)
	assert.Equal(t, 20, q.PageSize)

	q = CatalogQuery{Page: -1}.Normalize(0)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, DefaultPageSize, q.PageSize)
}

func TestCatalogQuery_HasText(t *testing.T) {
	assert.False(t, CatalogQuery{}.HasText())
	assert.False(t, CatalogQuery{Text: "   "}.HasText())
	assert.True(t, CatalogQuery{Text: " bleach "}.HasText())
}

func TestAnimeDetail_Accessors(t *testing.T) {
	d := AnimeDetail{"title": "Cowboy Bebop", "synopsis": "Space bounty hunters.", "episodes": float64(26)}
	assert.Equal(t, "Cowboy Bebop", d.Title())
	assert.Equal(t, "Space bounty hunters.", d.Synopsis())

	fallback := FallbackDetail()
	assert.Equal(t, NoSynopsis, fallback.Synopsis())
	assert.Empty(t, fallback.Title())
}

package v1_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/breeew/folio-api/internal/logic/v1"
)

func TestSearchBlankQuery(t *testing.T) {
	c := setupCore(t)
	res, err := v1.NewSearchLogic(visitorCtx(), c).Search("   ")
	require.NoError(t, err)
	assert.Nil(t, res.SectionMatch)
	assert.Empty(t, res.Campus)
	assert.Empty(t, res.Adventure)
	assert.Empty(t, res.Knowledge)
}

func TestSearchSectionMatch(t *testing.T) {
	c := setupCore(t)
	logic := v1.NewSearchLogic(visitorCtx(), c)

	for query, path := range map[string]string{
		"校园":    "/campus",
		"CAMP":  "/campus",
		"adven": "/world",
		"知识":    "/knowledge",
		"guest": "/guestbook",
		"关于":    "/profile",
	} {
		res, err := logic.Search(query)
		require.NoError(t, err)
		require.NotNil(t, res.SectionMatch, query)
		assert.Equal(t, path, res.SectionMatch.Path, query)
	}

	res, err := logic.Search("Verilog")
	require.NoError(t, err)
	assert.Nil(t, res.SectionMatch)
}

func TestSearchSubstring(t *testing.T) {
	c := setupCore(t)
	logic := v1.NewSearchLogic(visitorCtx(), c)

	res, err := logic.Search("floorplan")
	require.NoError(t, err)
	require.NotEmpty(t, res.Knowledge)
	assert.Equal(t, "ic-1", res.Knowledge[0].ID)
	assert.Empty(t, res.Campus)

	res, err = logic.Search("南门")
	require.NoError(t, err)
	require.Len(t, res.Campus, 1)
	assert.Equal(t, "c1", res.Campus[0].ID)
	assert.Equal(t, "zh", res.Language)

	res, err = logic.Search("富士山")
	require.NoError(t, err)
	require.Len(t, res.Adventure, 1)
	assert.Equal(t, "w1", res.Adventure[0].ID)
}

func TestSearchKeepsQueryWhitespace(t *testing.T) {
	c := setupCore(t)
	logic := v1.NewSearchLogic(visitorCtx(), c)

	res, err := logic.Search("campus ")
	require.NoError(t, err)
	assert.Nil(t, res.SectionMatch)
	assert.Equal(t, "campus ", res.Query)

	res, err = logic.Search("campus")
	require.NoError(t, err)
	require.NotNil(t, res.SectionMatch)
	assert.Equal(t, "/campus", res.SectionMatch.Path)
}

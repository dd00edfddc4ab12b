package v1_test

import (
	"context"
	"net/http"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/breeew/folio-api/internal/logic/v1"
	"github.com/breeew/folio-api/internal/seed"
	"github.com/breeew/folio-api/pkg/i18n"
	"github.com/breeew/folio-api/pkg/types"
)

func TestAlbumInvalidSection(t *testing.T) {
	c := setupCore(t)
	_, err := v1.NewAlbumLogic(visitorCtx(), c, types.AlbumSection("moon"))
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
}

func TestAlbumListSeed(t *testing.T) {
	c := setupCore(t)
	logic, err := v1.NewAlbumLogic(visitorCtx(), c, types.SECTION_WORLD)
	require.NoError(t, err)

	list, err := logic.ListAlbums()
	require.NoError(t, err)
	assert.Equal(t, seed.WorldAlbums(), list)

	album, err := logic.GetAlbum("w1")
	require.NoError(t, err)
	assert.Equal(t, "w1", album.ID)

	_, err = logic.GetAlbum("nope")
	assert.Equal(t, http.StatusNotFound, httpCode(t, err))
}

func TestAlbumCreate(t *testing.T) {
	c := setupCore(t)
	logic, err := v1.NewAlbumLogic(adminCtx(t, c), c, types.SECTION_CAMPUS)
	require.NoError(t, err)

	album, err := logic.CreateAlbum(v1.CreateAlbumArgs{
		Title:    "毕业典礼",
		Location: "九龙湖校区",
		CoverURL: "https://picsum.photos/seed/grad/800/800",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, album.ID)
	assert.Equal(t, 0, album.Likes)
	assert.Equal(t, []string{album.CoverURL}, album.Images)
	assert.Regexp(t, regexp.MustCompile(`^\d{4}\.\d{2}\.\d{2}$`), album.Date)

	// 新的 logic 实例从存储读取，新相册位于最前
	reader, err := v1.NewAlbumLogic(visitorCtx(), c, types.SECTION_CAMPUS)
	require.NoError(t, err)
	list, err := reader.ListAlbums()
	require.NoError(t, err)
	require.Len(t, list, len(seed.CampusAlbums())+1)
	assert.Equal(t, *album, list[0])
	assert.Equal(t, seed.CampusAlbums(), list[1:])

	_, err = c.Store().Get(context.Background(), types.SECTION_CAMPUS.StorageKey())
	assert.NoError(t, err)
}

func TestAlbumCreateMissingField(t *testing.T) {
	c := setupCore(t)
	logic, err := v1.NewAlbumLogic(adminCtx(t, c), c, types.SECTION_CAMPUS)
	require.NoError(t, err)

	for _, args := range []v1.CreateAlbumArgs{
		{Location: "x", CoverURL: "y"},
		{Title: "x", CoverURL: "y"},
		{Title: "x", Location: "y", CoverURL: "   "},
	} {
		_, err = logic.CreateAlbum(args)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
	}

	list, err := logic.ListAlbums()
	require.NoError(t, err)
	assert.Equal(t, seed.CampusAlbums(), list)
}

func TestAlbumWriteRequiresAdmin(t *testing.T) {
	c := setupCore(t)
	logic, err := v1.NewAlbumLogic(visitorCtx(), c, types.SECTION_CAMPUS)
	require.NoError(t, err)

	_, err = logic.CreateAlbum(v1.CreateAlbumArgs{Title: "a", Location: "b", CoverURL: "c"})
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, httpCode(t, err))

	err = logic.DeleteAlbum("c1")
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, httpCode(t, err))

	list, err := logic.ListAlbums()
	require.NoError(t, err)
	assert.Equal(t, seed.CampusAlbums(), list)
}

func TestAlbumDelete(t *testing.T) {
	c := setupCore(t)
	logic, err := v1.NewAlbumLogic(adminCtx(t, c), c, types.SECTION_CAMPUS)
	require.NoError(t, err)

	require.NoError(t, logic.DeleteAlbum("c2"))

	list, err := logic.ListAlbums()
	require.NoError(t, err)
	expected := seed.CampusAlbums()
	assert.Equal(t, []types.Album{expected[0], expected[2]}, list)

	err = logic.DeleteAlbum("c2")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, httpCode(t, err))
}

func TestAlbumLikeOncePerVisitor(t *testing.T) {
	c := setupCore(t)
	ctx := visitorCtx()
	logic, err := v1.NewAlbumLogic(ctx, c, types.SECTION_WORLD)
	require.NoError(t, err)

	base := seed.WorldAlbums()[0].Likes

	liked, err := logic.LikeAlbum("w1")
	require.NoError(t, err)
	assert.Equal(t, base+1, liked.Likes)

	_, err = logic.LikeAlbum("w1")
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, httpCode(t, err))
	assert.Equal(t, i18n.ERROR_LIKE_DUPLICATED, errMessage(t, err))

	album, err := logic.GetAlbum("w1")
	require.NoError(t, err)
	assert.Equal(t, base+1, album.Likes)

	// 闯荡世界的点赞标记使用 adventure
	ok, err := logic.Liked("w1")
	require.NoError(t, err)
	assert.True(t, ok)
	visitorID, _ := v1.InjectVisitor(ctx)
	_, err = c.Store().Get(ctx, types.VisitorLikeKey(visitorID, types.LIKE_SCOPE_ADVENTURE, "w1"))
	assert.NoError(t, err)

	other, err := v1.NewAlbumLogic(visitorCtx(), c, types.SECTION_WORLD)
	require.NoError(t, err)
	liked, err = other.LikeAlbum("w1")
	require.NoError(t, err)
	assert.Equal(t, base+2, liked.Likes)

	_, err = other.LikeAlbum("missing")
	assert.Equal(t, http.StatusNotFound, httpCode(t, err))
}

package v1_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breeew/folio-api/internal/core"
	v1 "github.com/breeew/folio-api/internal/logic/v1"
	"github.com/breeew/folio-api/internal/seed"
)

func TestGuestbookCreateOpenToVisitors(t *testing.T) {
	c := setupCore(t)
	logic := v1.NewGuestbookLogic(visitorCtx(), c)

	entry, err := logic.CreateEntry("Bob", "路过留言")
	require.NoError(t, err)
	assert.Equal(t, 0, entry.Likes)
	assert.Empty(t, entry.Replies)
	assert.NotNil(t, entry.Replies)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2} \d{2}:\d{2}$`, entry.Date)

	list, err := logic.ListEntries()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, *entry, list[0])

	_, err = logic.CreateEntry("", "content")
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
	_, err = logic.CreateEntry("Bob", "  ")
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))

	list, err = logic.ListEntries()
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestGuestbookReply(t *testing.T) {
	c := setupCore(t)
	logic := v1.NewGuestbookLogic(adminCtx(t, c), c)

	entry, err := logic.ReplyEntry("1", "欢迎常来")
	require.NoError(t, err)
	require.Len(t, entry.Replies, 2)
	assert.Equal(t, seed.GuestbookEntries()[0].Replies[0], entry.Replies[0])
	assert.Equal(t, "欢迎常来", entry.Replies[1].Content)
	assert.Equal(t, core.DEFAULT_OWNER_NAME, entry.Replies[1].Author)

	// 空内容不修改
	entry, err = logic.ReplyEntry("1", "  ")
	require.NoError(t, err)
	assert.Len(t, entry.Replies, 2)

	_, err = logic.ReplyEntry("missing", "hi")
	assert.Equal(t, http.StatusNotFound, httpCode(t, err))

	_, err = v1.NewGuestbookLogic(visitorCtx(), c).ReplyEntry("1", "hi")
	assert.Equal(t, http.StatusForbidden, httpCode(t, err))
}

func TestGuestbookDeleteAndLike(t *testing.T) {
	c := setupCore(t)
	admin := v1.NewGuestbookLogic(adminCtx(t, c), c)

	created, err := admin.CreateEntry("Carol", "hello")
	require.NoError(t, err)

	liked, err := admin.LikeEntry(created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, liked.Likes)
	_, err = admin.LikeEntry(created.ID)
	assert.Equal(t, http.StatusConflict, httpCode(t, err))

	require.NoError(t, admin.DeleteEntry(created.ID))
	list, err := admin.ListEntries()
	require.NoError(t, err)
	assert.Equal(t, seed.GuestbookEntries(), list)
}

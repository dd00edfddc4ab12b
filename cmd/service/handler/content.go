package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/breeew/folio-api/internal/logic/v1"
	"github.com/breeew/folio-api/internal/response"
	"github.com/breeew/folio-api/pkg/types"
	"github.com/breeew/folio-api/pkg/utils"
)

func (s *HttpSrv) albumLogic(c *gin.Context) (*v1.AlbumLogic, bool) {
	logic, err := v1.NewAlbumLogic(c, s.Core, types.AlbumSection(c.Param("section")))
	if err != nil {
		response.APIError(c, err)
		return nil, false
	}
	return logic, true
}

func (s *HttpSrv) ListAlbums(c *gin.Context) {
	logic, ok := s.albumLogic(c)
	if !ok {
		return
	}
	list, err := logic.ListAlbums()
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, list)
}

func (s *HttpSrv) GetAlbum(c *gin.Context) {
	logic, ok := s.albumLogic(c)
	if !ok {
		return
	}
	album, err := logic.GetAlbum(c.Param("id"))
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, album)
}

func (s *HttpSrv) CreateAlbum(c *gin.Context) {
	var req v1.CreateAlbumArgs
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	logic, ok := s.albumLogic(c)
	if !ok {
		return
	}
	album, err := logic.CreateAlbum(req)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, album)
}

func (s *HttpSrv) DeleteAlbum(c *gin.Context) {
	logic, ok := s.albumLogic(c)
	if !ok {
		return
	}
	if err := logic.DeleteAlbum(c.Param("id")); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}

func (s *HttpSrv) LikeAlbum(c *gin.Context) {
	logic, ok := s.albumLogic(c)
	if !ok {
		return
	}
	album, err := logic.LikeAlbum(c.Param("id"))
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, album)
}

func (s *HttpSrv) AlbumLiked(c *gin.Context) {
	logic, ok := s.albumLogic(c)
	if !ok {
		return
	}
	liked, err := logic.Liked(c.Param("id"))
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, LikedResponse{Liked: liked})
}

func (s *HttpSrv) ListKnowledge(c *gin.Context) {
	list, err := v1.NewKnowledgeLogic(c, s.Core).ListKnowledge(c.Query("category"))
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, list)
}

func (s *HttpSrv) KnowledgeCategories(c *gin.Context) {
	response.APISuccess(c, v1.NewKnowledgeLogic(c, s.Core).Categories())
}

func (s *HttpSrv) GetKnowledge(c *gin.Context) {
	item, err := v1.NewKnowledgeLogic(c, s.Core).GetKnowledge(c.Param("id"))
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, item)
}

func (s *HttpSrv) CreateKnowledge(c *gin.Context) {
	var req v1.CreateKnowledgeArgs
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	item, err := v1.NewKnowledgeLogic(c, s.Core).CreateKnowledge(req)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, item)
}

func (s *HttpSrv) DeleteKnowledge(c *gin.Context) {
	if err := v1.NewKnowledgeLogic(c, s.Core).DeleteKnowledge(c.Param("id")); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}

func (s *HttpSrv) LikeKnowledge(c *gin.Context) {
	item, err := v1.NewKnowledgeLogic(c, s.Core).LikeKnowledge(c.Param("id"))
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, item)
}

func (s *HttpSrv) KnowledgeLiked(c *gin.Context) {
	liked, err := v1.NewKnowledgeLogic(c, s.Core).Liked(c.Param("id"))
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, LikedResponse{Liked: liked})
}

func (s *HttpSrv) ListGuestbook(c *gin.Context) {
	list, err := v1.NewGuestbookLogic(c, s.Core).ListEntries()
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, list)
}

type CreateGuestbookRequest struct {
	Author  string `json:"author" form:"author"`
	Content string `json:"content" form:"content"`
}

func (s *HttpSrv) CreateGuestbook(c *gin.Context) {
	var req CreateGuestbookRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	entry, err := v1.NewGuestbookLogic(c, s.Core).CreateEntry(req.Author, req.Content)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, entry)
}

func (s *HttpSrv) DeleteGuestbook(c *gin.Context) {
	if err := v1.NewGuestbookLogic(c, s.Core).DeleteEntry(c.Param("id")); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}

func (s *HttpSrv) LikeGuestbook(c *gin.Context) {
	entry, err := v1.NewGuestbookLogic(c, s.Core).LikeEntry(c.Param("id"))
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, entry)
}

func (s *HttpSrv) GuestbookLiked(c *gin.Context) {
	liked, err := v1.NewGuestbookLogic(c, s.Core).Liked(c.Param("id"))
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, LikedResponse{Liked: liked})
}

type ReplyGuestbookRequest struct {
	Content string `json:"content" form:"content"`
}

func (s *HttpSrv) ReplyGuestbook(c *gin.Context) {
	var req ReplyGuestbookRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	entry, err := v1.NewGuestbookLogic(c, s.Core).ReplyEntry(c.Param("id"), req.Content)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, entry)
}

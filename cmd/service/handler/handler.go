package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/breeew/folio-api/internal/core"
	"github.com/breeew/folio-api/internal/core/srv"
	v1 "github.com/breeew/folio-api/internal/logic/v1"
	"github.com/breeew/folio-api/internal/logic/v1/process"
	"github.com/breeew/folio-api/internal/response"
	"github.com/breeew/folio-api/internal/store/kvstore"
	"github.com/breeew/folio-api/pkg/types"
	"github.com/breeew/folio-api/pkg/utils"
)

type HttpSrv struct {
	Core   *core.Core
	Engine *gin.Engine
	Videos *process.VideoProcess
}

// detachedContext 长连接不能在 handler 返回后继续引用 gin.Context
func detachedContext(c *gin.Context) context.Context {
	visitorID, _ := v1.InjectVisitor(c)
	return v1.WithVisitor(c.Request.Context(), visitorID)
}

type LikedResponse struct {
	Liked bool `json:"liked"`
}

type ModeResponse struct {
	Storage       string          `json:"storage"`
	AI            map[string]bool `json:"ai"`
	ObjectStorage bool            `json:"object_storage"`
}

func (s *HttpSrv) Mode(c *gin.Context) {
	ai := s.Core.Srv().AI()
	driver := s.Core.Cfg().Storage.Driver
	if driver == "" {
		driver = kvstore.DRIVER_MEMORY
	}
	response.APISuccess(c, ModeResponse{
		Storage: driver,
		AI: map[string]bool{
			srv.USAGE_EXPLORE: ai.Enabled(srv.USAGE_EXPLORE),
			srv.USAGE_IMAGE:   ai.Enabled(srv.USAGE_IMAGE),
			srv.USAGE_VIDEO:   ai.Enabled(srv.USAGE_VIDEO),
			srv.USAGE_LIVE:    ai.Enabled(srv.USAGE_LIVE),
		},
		ObjectStorage: s.Core.Srv().Media() != nil,
	})
}

func (s *HttpSrv) Feed(c *gin.Context) {
	list, err := v1.NewFeedLogic(c, s.Core).Feed()
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, list)
}

func (s *HttpSrv) Search(c *gin.Context) {
	res, err := v1.NewSearchLogic(c, s.Core).Search(c.Query("q"))
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, res)
}

func heroSection(c *gin.Context) types.HeroSection {
	return types.HeroSection(c.Param("section"))
}

func (s *HttpSrv) GetHero(c *gin.Context) {
	res, err := v1.NewSiteLogic(c, s.Core).GetHero(heroSection(c))
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, res)
}

type SetHeroRequest struct {
	URL string `json:"url"`
}

func (s *HttpSrv) SetHero(c *gin.Context) {
	var req SetHeroRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	res, err := v1.NewSiteLogic(c, s.Core).SetHero(heroSection(c), req.URL)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, res)
}

func (s *HttpSrv) ResetHero(c *gin.Context) {
	res, err := v1.NewSiteLogic(c, s.Core).ResetHero(heroSection(c))
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, res)
}

func (s *HttpSrv) GetProfile(c *gin.Context) {
	res, err := v1.NewProfileLogic(c, s.Core).GetProfile()
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, res)
}

func (s *HttpSrv) UpdateProfile(c *gin.Context) {
	var req types.ProfileData
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	res, err := v1.NewProfileLogic(c, s.Core).UpdateProfile(req)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, res)
}

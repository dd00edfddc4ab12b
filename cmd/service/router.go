package service

import (
	"github.com/gin-gonic/gin"

	"github.com/breeew/folio-api/cmd/service/handler"
	"github.com/breeew/folio-api/cmd/service/middleware"
	"github.com/breeew/folio-api/internal/core"
	"github.com/breeew/folio-api/internal/core/srv"
	v1 "github.com/breeew/folio-api/internal/logic/v1"
	"github.com/breeew/folio-api/internal/logic/v1/process"
	"github.com/breeew/folio-api/internal/response"
)

func NewHttpSrv(core *core.Core, videos *process.VideoProcess) *handler.HttpSrv {
	engine := gin.New()
	engine.Use(gin.Recovery())
	// handler 中把 gin.Context 直接当作 context.Context 传给 logic
	engine.ContextWithFallback = true

	s := &handler.HttpSrv{
		Core:   core,
		Engine: engine,
		Videos: videos,
	}
	setupHttpRouter(s)
	return s
}

func GetIPLimitBuilder(core *core.Core) func(key string, ratelimit int) gin.HandlerFunc {
	return func(key string, ratelimit int) gin.HandlerFunc {
		return middleware.UseLimit(core, key, func(c *gin.Context) string {
			return key + ":" + c.ClientIP()
		}, ratelimit)
	}
}

func GetVisitorLimitBuilder(core *core.Core) func(key string, ratelimit int) gin.HandlerFunc {
	return func(key string, ratelimit int) gin.HandlerFunc {
		return middleware.UseLimit(core, key, func(c *gin.Context) string {
			visitorID, _ := v1.InjectVisitor(c)
			return key + ":" + visitorID
		}, ratelimit)
	}
}

func setupHttpRouter(s *handler.HttpSrv) {
	ipLimit := GetIPLimitBuilder(s.Core)
	visitorLimit := GetVisitorLimitBuilder(s.Core)
	editScope := middleware.VerifyPermission(s.Core, srv.PermissionEdit)

	s.Engine.Use(middleware.I18n(), response.NewResponse())
	s.Engine.Use(middleware.Cors)
	s.Engine.Use(middleware.Metrics(s.Core))

	s.Engine.GET("/metrics", gin.WrapH(s.Core.Metrics().Handler()))

	apiV1 := s.Engine.Group("/api/v1")
	apiV1.Use(middleware.Visitor(s.Core))
	{
		apiV1.GET("/mode", s.Mode)
		apiV1.GET("/feed", s.Feed)
		apiV1.GET("/search", s.Search)

		albums := apiV1.Group("/albums/:section")
		{
			albums.GET("", s.ListAlbums)
			albums.GET("/:id", s.GetAlbum)
			albums.GET("/:id/like", s.AlbumLiked)
			albums.POST("/:id/like", visitorLimit("like", 60), s.LikeAlbum)

			albums.POST("", editScope, s.CreateAlbum)
			albums.DELETE("/:id", editScope, middleware.RequireConfirm, s.DeleteAlbum)
		}

		knowledge := apiV1.Group("/knowledge")
		{
			knowledge.GET("", s.ListKnowledge)
			knowledge.GET("/categories", s.KnowledgeCategories)
			knowledge.GET("/:id", s.GetKnowledge)
			knowledge.GET("/:id/like", s.KnowledgeLiked)
			knowledge.POST("/:id/like", visitorLimit("like", 60), s.LikeKnowledge)

			knowledge.POST("", editScope, s.CreateKnowledge)
			knowledge.DELETE("/:id", editScope, middleware.RequireConfirm, s.DeleteKnowledge)
		}

		guestbook := apiV1.Group("/guestbook")
		{
			guestbook.GET("", s.ListGuestbook)
			guestbook.POST("", visitorLimit("guestbook", 10), s.CreateGuestbook)
			guestbook.GET("/:id/like", s.GuestbookLiked)
			guestbook.POST("/:id/like", visitorLimit("like", 60), s.LikeGuestbook)

			guestbook.POST("/:id/replies", editScope, s.ReplyGuestbook)
			guestbook.DELETE("/:id", editScope, middleware.RequireConfirm, s.DeleteGuestbook)
		}

		profile := apiV1.Group("/profile")
		{
			profile.GET("", s.GetProfile)
			profile.PUT("", editScope, s.UpdateProfile)
		}

		site := apiV1.Group("/site/hero/:section")
		{
			site.GET("", s.GetHero)
			site.PUT("", editScope, s.SetHero)
			site.DELETE("", editScope, middleware.RequireConfirm, s.ResetHero)
		}

		admin := apiV1.Group("/admin")
		{
			admin.POST("/login", ipLimit("login", 10), s.Login)
			admin.POST("/logout", s.Logout)
			admin.GET("/state", s.AdminState)
			admin.GET("/events", s.AdminEvents)
		}

		media := apiV1.Group("/media")
		{
			media.Use(editScope, visitorLimit("upload", 30))
			media.POST("", s.UploadMedia)
			media.POST("/upload-key", s.GenUploadKey)
		}

		ai := apiV1.Group("/ai")
		{
			ai.GET("/video/:id", s.GetVideo)
			ai.DELETE("/video/:id", s.CancelVideo)
			ai.GET("/video/:id/content", s.VideoContent)
			ai.GET("/video/:id/events", s.VideoEvents)

			ai.Use(visitorLimit("ai", 20))
			ai.POST("/explore", s.Explore)
			ai.POST("/image/edit", s.EditImage)
			ai.POST("/image/generate", s.GenerateImage)
			ai.POST("/video", s.CreateVideo)
			ai.GET("/voice", s.Voice)
		}
	}
}

package handler

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"

	v1 "github.com/breeew/folio-api/internal/logic/v1"
	"github.com/breeew/folio-api/internal/response"
	"github.com/breeew/folio-api/pkg/utils"
)

const ADMIN_EVENT_HEARTBEAT = 25 * time.Second

type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type AdminStateResponse struct {
	IsAdmin bool `json:"is_admin"`
}

func (s *HttpSrv) Login(c *gin.Context) {
	var req LoginRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	if err := v1.NewAdminLogic(c, s.Core).Login(req.Username, req.Password); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, AdminStateResponse{IsAdmin: true})
}

func (s *HttpSrv) Logout(c *gin.Context) {
	if err := v1.NewAdminLogic(c, s.Core).Logout(); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, AdminStateResponse{IsAdmin: false})
}

func (s *HttpSrv) AdminState(c *gin.Context) {
	isAdmin, err := v1.NewAdminLogic(c, s.Core).State()
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, AdminStateResponse{IsAdmin: isAdmin})
}

// AdminEvents 以 SSE 推送当前访客的博主状态，其他标签页登录/退出时实时同步
func (s *HttpSrv) AdminEvents(c *gin.Context) {
	changes, err := v1.NewAdminLogic(detachedContext(c), s.Core).Subscribe()
	if err != nil {
		response.APIError(c, err)
		return
	}

	heartbeat := time.NewTicker(ADMIN_EVENT_HEARTBEAT)
	defer heartbeat.Stop()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Stream(func(w io.Writer) bool {
		select {
		case v, ok := <-changes:
			if !ok {
				return false
			}
			c.SSEvent("admin", AdminStateResponse{IsAdmin: v})
			return true
		case <-heartbeat.C:
			c.SSEvent("ping", time.Now().Unix())
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

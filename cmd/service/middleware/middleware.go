package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/breeew/folio-api/internal/core"
	"github.com/breeew/folio-api/internal/core/srv"
	v1 "github.com/breeew/folio-api/internal/logic/v1"
	"github.com/breeew/folio-api/internal/response"
	"github.com/breeew/folio-api/pkg/errors"
	"github.com/breeew/folio-api/pkg/i18n"
)

func I18n() gin.HandlerFunc {
	var allowList []string
	for k := range i18n.ALLOW_LANG {
		allowList = append(allowList, k)
	}
	l := i18n.NewLocalizer(allowList...)

	return response.ProvideResponseLocalizer(l)
}

const (
	VISITOR_COOKIE_KEY       = "folio_visitor"
	VISITOR_TOKEN_HEADER_KEY = "X-Visitor-Token"
	CONFIRM_HEADER_KEY       = "X-Confirm"
)

func visitorToken(c *gin.Context) string {
	if token := c.GetHeader(VISITOR_TOKEN_HEADER_KEY); token != "" {
		return token
	}
	token, _ := c.Cookie(VISITOR_COOKIE_KEY)
	return token
}

// Visitor 为每个请求确定访客身份，没有或无效的 token 会重新签发
func Visitor(core *core.Core) gin.HandlerFunc {
	tracePrefix := "middleware.Visitor"
	return func(c *gin.Context) {
		signer := core.Visitor()

		token := visitorToken(c)
		if token != "" {
			if visitorID, err := signer.Parse(token); err == nil {
				c.Set(v1.VISITOR_CONTEXT_KEY, visitorID)
				return
			}
		}

		visitorID, token, err := signer.Issue()
		if err != nil {
			response.APIError(c, errors.New(tracePrefix+".Issue", i18n.ERROR_INTERNAL, err))
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(VISITOR_COOKIE_KEY, token, int(signer.TTL().Seconds()), "/", "", false, true)
		c.Header(VISITOR_TOKEN_HEADER_KEY, token)
		c.Set(v1.VISITOR_CONTEXT_KEY, visitorID)
	}
}

// VerifyPermission 每次请求都重新读取博主开关，退出后立即失去写权限
func VerifyPermission(core *core.Core, permission string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		visitorID, _ := v1.InjectVisitor(ctx)

		isAdmin := false
		if visitorID != "" {
			var err error
			if isAdmin, err = core.Srv().Admin().IsAdmin(ctx, visitorID); err != nil {
				response.APIError(ctx, errors.New("middleware.VerifyPermission.Admin.IsAdmin", i18n.ERROR_INTERNAL, err))
				return
			}
		}

		if !core.Srv().RBAC().CheckPermission(srv.RoleOf(isAdmin), permission) {
			response.APIError(ctx, errors.New("middleware.VerifyPermission.CheckPermission", i18n.ERROR_PERMISSION_DENIED, nil).Code(http.StatusForbidden))
			return
		}
	}
}

// RequireConfirm 删除类操作需要显式确认，没有撤销
func RequireConfirm(c *gin.Context) {
	if c.Query("confirm") == "true" || c.GetHeader(CONFIRM_HEADER_KEY) == "true" {
		return
	}
	response.APIError(c, errors.New("middleware.RequireConfirm", i18n.ERROR_CONFIRM_REQUIRED, nil).Code(http.StatusPreconditionRequired))
}

func Cors(c *gin.Context) {
	method := c.Request.Method
	origin := c.Request.Header.Get("Origin")
	if origin != "" {
		// 需要携带访客 cookie，不能使用通配符
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Vary", "Origin")
		c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, UPDATE")
		c.Header("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept, Authorization, X-Visitor-Token, X-Confirm, X-Request-ID")
		c.Header("Access-Control-Expose-Headers", "Content-Length, Access-Control-Allow-Origin, Access-Control-Allow-Headers, Cache-Control, Content-Language, Content-Type, X-Visitor-Token, X-Request-ID")
		c.Header("Access-Control-Allow-Credentials", "true")
	}
	if method == "OPTIONS" {
		c.AbortWithStatus(http.StatusNoContent)
	}
	c.Next()
}

// UseLimit ratelimit 代表每分钟允许的数量
func UseLimit(core *core.Core, operation string, genKeyFunc func(c *gin.Context) string, ratelimit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !core.UseLimiter(genKeyFunc(c), operation, ratelimit).Allow() {
			response.APIError(c, errors.New("middleware.limiter", i18n.ERROR_TOO_MANY_REQUESTS, nil).Code(http.StatusTooManyRequests))
		}
	}
}

func Metrics(core *core.Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m := core.Metrics()
		m.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

package response

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/breeew/folio-api/pkg/errors"
	"github.com/breeew/folio-api/pkg/i18n"
)

const (
	localizerKey = "response_localizer"
	langKey      = "response_lang"
	requestIDKey = "response_request_id"

	RequestIDHeader = "X-Request-ID"
)

type Meta struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

type Body struct {
	Meta Meta `json:"meta"`
	Data any  `json:"data,omitempty"`
}

// NewResponse 为每个请求分配 request id
func NewResponse() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
	}
}

func ProvideResponseLocalizer(l *i18n.Localizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(localizerKey, l)
		c.Set(langKey, l.Match(c.GetHeader("Accept-Language")))
	}
}

// Localize 按请求的语言翻译消息，未注入 localizer 时原样返回 message id
func Localize(c *gin.Context, messageID string) string {
	l, ok := c.Get(localizerKey)
	if !ok {
		return messageID
	}
	return l.(*i18n.Localizer).Get(c.GetString(langKey), messageID)
}

func APISuccess(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Body{
		Meta: Meta{
			Code:      http.StatusOK,
			Message:   "success",
			RequestID: c.GetString(requestIDKey),
		},
		Data: data,
	})
}

func APIError(c *gin.Context, err error) {
	var (
		code    = http.StatusInternalServerError
		message = i18n.ERROR_INTERNAL
	)

	var ce *errors.CustomizedError
	if errors.As(err, &ce) {
		code = ce.HttpCode()
		message = ce.Message()
	}

	if code >= http.StatusInternalServerError {
		slog.Error("API error",
			slog.String("path", c.FullPath()),
			slog.String("request_id", c.GetString(requestIDKey)),
			slog.String("error", err.Error()))
	} else {
		slog.Debug("API error",
			slog.String("path", c.FullPath()),
			slog.String("request_id", c.GetString(requestIDKey)),
			slog.String("error", err.Error()))
	}

	c.AbortWithStatusJSON(code, Body{
		Meta: Meta{
			Code:      code,
			Message:   Localize(c, message),
			RequestID: c.GetString(requestIDKey),
		},
	})
}

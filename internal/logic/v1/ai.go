package v1

import (
	"net/http"

	"github.com/sony/gobreaker"

	"github.com/breeew/folio-api/pkg/ai"
	"github.com/breeew/folio-api/pkg/errors"
	"github.com/breeew/folio-api/pkg/i18n"
)

// AIError 把 driver 的错误转换为对外的状态码，不做重试
func AIError(trace string, err error) error {
	switch {
	case errors.Is(err, ai.ErrNotConfigured):
		return errors.New(trace, i18n.ERROR_AI_NOT_CONFIGURED, err).Code(http.StatusForbidden)
	case errors.Is(err, ai.ErrUnsupportedFeature):
		return errors.New(trace, i18n.ERROR_UNSUPPORTED_FEATURE, err).Code(http.StatusForbidden)
	case errors.Is(err, ai.ErrNoImage):
		return errors.New(trace, i18n.ERROR_AI_NO_IMAGE, err).Code(http.StatusBadGateway)
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return errors.New(trace, i18n.ERROR_AI_FAILED, err).Code(http.StatusServiceUnavailable)
	}
	return errors.New(trace, i18n.ERROR_AI_FAILED, err).Code(http.StatusBadGateway)
}

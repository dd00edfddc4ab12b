package i18n

var ALLOW_LANG = map[string]bool{
	"en":    true,
	"zh-CN": true,
}

const DEFAULT_LANG = "en"

const (
	ERROR_INTERNAL            = "error.internal"
	ERROR_NOTFOUND            = "error.notfound"
	ERROR_INVALIDARGUMENT     = "error.invalidargument"
	ERROR_PERMISSION_DENIED   = "error.permission.denied"
	ERROR_UNAUTHORIZED        = "error.unauthorized"
	ERROR_FORBIDDEN           = "error.forbidden"
	ERROR_TOO_MANY_REQUESTS   = "error.tooManyRequests"
	ERROR_UNSUPPORTED_FEATURE = "error.unsupported.feature"

	ERROR_INVALID_TOKEN       = "error.invalid.token"
	ERROR_ADMIN_CREDENTIALS   = "error.admin.credentials"
	ERROR_CONFIRM_REQUIRED    = "error.confirm.required"
	ERROR_LIKE_DUPLICATED     = "error.like.duplicated"
	ERROR_INVALID_SECTION     = "error.invalid.section"
	ERROR_INVALID_CATEGORY    = "error.invalid.category"
	ERROR_AI_FAILED           = "error.ai.failed"
	ERROR_AI_NO_IMAGE         = "error.ai.noimage"
	ERROR_AI_NOT_CONFIGURED   = "error.ai.notconfigured"
	ERROR_EXPLORE_LOCATION    = "error.explore.location"
	ERROR_VIDEO_JOB_FINISHED  = "error.video.finished"
	ERROR_VIDEO_NOT_AVAILABLE = "error.video.notavailable"
)

package types

import "fmt"

// 访客维度的 key，对应浏览器本地存储中的 IS_ADMIN 与 liked_<scope>_<id>

func VisitorAdminKey(visitorID string) string {
	return fmt.Sprintf("visitor:%s:IS_ADMIN", visitorID)
}

func VisitorLikeKey(visitorID string, scope LikeScope, id string) string {
	return fmt.Sprintf("visitor:%s:liked_%s_%s", visitorID, scope, id)
}

package srv

import (
	"github.com/mikespook/gorbac/v2"
)

const (
	// 定义角色ID
	RoleAdmin   = "role-admin"
	RoleVisitor = "role-visitor"

	// 定义权限ID
	PermissionEdit = "edit"
	PermissionLike = "like"
	PermissionView = "view"
)

func SetupRBACSrv() *RBACSrv {
	rbac := gorbac.New()

	pEdit := gorbac.NewStdPermission(PermissionEdit)
	pLike := gorbac.NewStdPermission(PermissionLike)
	pView := gorbac.NewStdPermission(PermissionView)

	roleAdmin := gorbac.NewStdRole(RoleAdmin)
	roleAdmin.Assign(pEdit)

	roleVisitor := gorbac.NewStdRole(RoleVisitor)
	roleVisitor.Assign(pView)
	roleVisitor.Assign(pLike)

	rbac.Add(roleAdmin)
	rbac.Add(roleVisitor)

	// 博主继承访客的权限
	rbac.SetParent(RoleAdmin, RoleVisitor)
	return &RBACSrv{
		rbac: rbac,
	}
}

type RBACSrv struct {
	rbac *gorbac.RBAC
}

// CheckPermission 检查角色是否有某权限
func (a *RBACSrv) CheckPermission(roleID, permissionID string) bool {
	return a.rbac.IsGranted(roleID, gorbac.NewStdPermission(permissionID), nil)
}

func RoleOf(isAdmin bool) string {
	if isAdmin {
		return RoleAdmin
	}
	return RoleVisitor
}

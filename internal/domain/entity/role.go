package entity

import "time"

// Roles asignados durante el bootstrap.
const (
	RoleBlockjoyAdmin = "blockjoy-admin"
	RoleOrgMember     = "org-member"
)

// RoleAssignment asigna un rol a un usuario dentro de una organización.
type RoleAssignment struct {
	UserID    string
	OrgID     string
	Role      string
	CreatedAt time.Time
}

// RolePermission par (rol, permiso) de la matriz de autorización.
type RolePermission struct {
	Role       string
	Permission string
}

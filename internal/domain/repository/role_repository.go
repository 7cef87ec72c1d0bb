package repository

import (
	"context"

	"github.com/jhoicas/blockvisor-setup/internal/domain/entity"
)

// RoleRepository persiste asignaciones de roles y la matriz rol-permiso.
type RoleRepository interface {
	Assign(ctx context.Context, assignment *entity.RoleAssignment) error
	// GrantPermissions inserta la matriz completa y devuelve cuántas filas escribió.
	GrantPermissions(ctx context.Context, grants []entity.RolePermission) (int64, error)
}

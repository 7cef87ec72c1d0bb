package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/blockvisor-setup/internal/domain/entity"
	"github.com/jhoicas/blockvisor-setup/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo persiste user_roles y role_permissions.
type RoleRepo struct {
	q Querier
}

// NewRoleRepository construye el adaptador.
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

// Assign asigna un rol a un usuario en una organización.
func (r *RoleRepo) Assign(ctx context.Context, a *entity.RoleAssignment) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO user_roles (user_id, org_id, role, created_at) VALUES ($1, $2, $3, $4)`,
		a.UserID, a.OrgID, a.Role, a.CreatedAt,
	)
	if err != nil {
		return wrapErr("insert user role", err)
	}
	return nil
}

// GrantPermissions inserta la matriz con COPY en una sola operación.
func (r *RoleRepo) GrantPermissions(ctx context.Context, grants []entity.RolePermission) (int64, error) {
	if len(grants) == 0 {
		return 0, nil
	}
	n, err := r.q.CopyFrom(ctx,
		pgx.Identifier{"role_permissions"},
		[]string{"role", "permission"},
		pgx.CopyFromSlice(len(grants), func(i int) ([]any, error) {
			return []any{grants[i].Role, grants[i].Permission}, nil
		}),
	)
	if err != nil {
		return 0, wrapErr("copy role permissions", err)
	}
	return n, nil
}

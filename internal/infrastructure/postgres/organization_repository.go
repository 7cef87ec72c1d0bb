package postgres

import (
	"context"

	"github.com/jhoicas/blockvisor-setup/internal/domain/entity"
	"github.com/jhoicas/blockvisor-setup/internal/domain/repository"
)

// Asegura que OrganizationRepo implementa repository.OrganizationRepository.
var _ repository.OrganizationRepository = (*OrganizationRepo)(nil)

// OrganizationRepo implementación del puerto OrganizationRepository sobre PostgreSQL.
type OrganizationRepo struct {
	q Querier
}

// NewOrganizationRepository construye el adaptador de persistencia para organizaciones.
func NewOrganizationRepository(q Querier) *OrganizationRepo {
	return &OrganizationRepo{q: q}
}

// Create persiste una nueva organización. deleted_at, stripe_customer_id y address_id quedan en NULL.
func (r *OrganizationRepo) Create(ctx context.Context, org *entity.Organization) error {
	query := `
		INSERT INTO orgs (id, name, is_personal, created_at, updated_at, deleted_at,
			host_count, node_count, member_count, stripe_customer_id, address_id)
		VALUES ($1, $2, $3, $4, $5, NULL, $6, $7, $8, NULL, NULL)`
	_, err := r.q.Exec(ctx, query,
		org.ID, org.Name, org.IsPersonal, org.CreatedAt, org.UpdatedAt,
		org.HostCount, org.NodeCount, org.MemberCount,
	)
	if err != nil {
		return wrapErr("insert org", err)
	}
	return nil
}

// ExistsByName indica si existe una organización con ese nombre, incluso si fue eliminada.
func (r *OrganizationRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orgs WHERE name = $1)`, name).Scan(&exists)
	if err != nil {
		return false, wrapErr("check org name", err)
	}
	return exists, nil
}

package repository

import (
	"context"

	"github.com/jhoicas/blockvisor-setup/internal/domain/entity"
)

// OrganizationRepository define el puerto de persistencia para Organization.
type OrganizationRepository interface {
	Create(ctx context.Context, org *entity.Organization) error
	ExistsByName(ctx context.Context, name string) (bool, error)
}

package repository

import (
	"context"

	"github.com/jhoicas/blockvisor-setup/internal/domain/entity"
)

// RegionRepository define el puerto de persistencia para Region.
type RegionRepository interface {
	Create(ctx context.Context, region *entity.Region) error
}

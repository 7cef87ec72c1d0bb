package postgres

import (
	"context"

	"github.com/jhoicas/blockvisor-setup/internal/domain/entity"
	"github.com/jhoicas/blockvisor-setup/internal/domain/repository"
)

var _ repository.RegionRepository = (*RegionRepo)(nil)

// RegionRepo persiste regiones.
type RegionRepo struct {
	q Querier
}

// NewRegionRepository construye el adaptador.
func NewRegionRepository(q Querier) *RegionRepo {
	return &RegionRepo{q: q}
}

// Create persiste una región.
func (r *RegionRepo) Create(ctx context.Context, region *entity.Region) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO regions (id, sku_code, key, display_name) VALUES ($1, $2, $3, $4)`,
		region.ID, region.SKUCode, region.Key, region.DisplayName,
	)
	if err != nil {
		return wrapErr("insert region", err)
	}
	return nil
}

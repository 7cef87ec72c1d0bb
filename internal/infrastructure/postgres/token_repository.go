package postgres

import (
	"context"

	"github.com/jhoicas/blockvisor-setup/internal/domain/entity"
	"github.com/jhoicas/blockvisor-setup/internal/domain/repository"
)

var _ repository.TokenRepository = (*TokenRepo)(nil)

// TokenRepo persiste tokens de aprovisionamiento.
type TokenRepo struct {
	q Querier
}

// NewTokenRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTokenRepository(q Querier) *TokenRepo {
	return &TokenRepo{q: q}
}

// Create persiste un token.
func (r *TokenRepo) Create(ctx context.Context, t *entity.ProvisioningToken) error {
	query := `
		INSERT INTO tokens (id, token_type, token, created_by_type, created_by_id, org_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.TokenType, t.Token, t.CreatedByType, t.CreatedByID, t.OrgID, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return wrapErr("insert token", err)
	}
	return nil
}

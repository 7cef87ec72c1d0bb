package repository

import (
	"context"

	"github.com/jhoicas/blockvisor-setup/internal/domain/entity"
)

// TokenRepository define el puerto de persistencia para ProvisioningToken.
type TokenRepository interface {
	Create(ctx context.Context, token *entity.ProvisioningToken) error
}

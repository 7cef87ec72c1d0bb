package bootstrap

import (
	"context"

	"github.com/jhoicas/blockvisor-setup/internal/application/dto"
	"github.com/jhoicas/blockvisor-setup/internal/domain/repository"
	"github.com/jhoicas/blockvisor-setup/pkg/passhash"
)

// Repositories repositorios atados a la transacción del bootstrap.
type Repositories struct {
	Lock    repository.SeedLock
	Users   repository.UserRepository
	Orgs    repository.OrganizationRepository
	Tokens  repository.TokenRepository
	Regions repository.RegionRepository
	Roles   repository.RoleRepository
}

// TxRunner ejecuta fn dentro de una única transacción: Commit si fn retorna nil, Rollback en otro caso.
type TxRunner interface {
	RunSeed(ctx context.Context, fn func(repos Repositories) error) error
}

// CredentialHasher genera el par (salt, hash) compatible con blockvisor-api.
type CredentialHasher interface {
	Generate(password, salt []byte) (passhash.Encoded, error)
}

// CompletionMarker registra que el bootstrap terminó. Se invoca solo después del Commit.
type CompletionMarker interface {
	Record(ctx context.Context, result *dto.SeedResult) error
}

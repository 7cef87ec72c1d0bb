package postgres

import (
	"context"

	"github.com/jhoicas/blockvisor-setup/internal/domain/repository"
)

// seedLockKey clave del advisory lock del bootstrap ("bvsetup" en ASCII).
const seedLockKey int64 = 0x62767365747570

var _ repository.SeedLock = (*SeedLock)(nil)

// SeedLock advisory lock de transacción: se libera solo con el Commit o Rollback.
type SeedLock struct {
	q Querier
}

// NewSeedLock construye el lock sobre una tx.
func NewSeedLock(q Querier) *SeedLock {
	return &SeedLock{q: q}
}

// Acquire bloquea hasta obtener el lock. Debe ser la primera sentencia de la tx y la tx debe ser
// READ COMMITTED: así el chequeo de existencia que sigue ve lo confirmado por otro seeder.
func (l *SeedLock) Acquire(ctx context.Context) error {
	if _, err := l.q.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, seedLockKey); err != nil {
		return wrapErr("acquire seed lock", err)
	}
	return nil
}

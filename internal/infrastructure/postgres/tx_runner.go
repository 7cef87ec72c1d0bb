package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/blockvisor-setup/internal/application/bootstrap"
	"github.com/jhoicas/blockvisor-setup/internal/domain"
)

// Ensure TxRunner implements bootstrap.TxRunner.
var _ bootstrap.TxRunner = (*TxRunner)(nil)

// TxBeginner lo cumple *pgxpool.Pool.
type TxBeginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	db TxBeginner
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(db TxBeginner) *TxRunner {
	return &TxRunner{db: db}
}

// RunSeed inicia una transacción READ COMMITTED, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// READ COMMITTED toma un snapshot por sentencia: las lecturas posteriores al advisory lock ven lo que
// confirmó el seeder que lo tenía antes. El Rollback diferido cubre también los pánicos y la cancelación
// del contexto.
func (r *TxRunner) RunSeed(ctx context.Context, fn func(repos bootstrap.Repositories) error) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w: %w", domain.ErrConnection, err)
	}
	// Rollback usa un contexto propio: si ctx venció la conexión igual debe liberarse.
	defer func() { _ = tx.Rollback(context.WithoutCancel(ctx)) }()

	repos := bootstrap.Repositories{
		Lock:    NewSeedLock(tx),
		Users:   NewUserRepository(tx),
		Orgs:    NewOrganizationRepository(tx),
		Tokens:  NewTokenRepository(tx),
		Regions: NewRegionRepository(tx),
		Roles:   NewRoleRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return wrapErr("commit transaction", err)
	}
	return nil
}

package repository

import "context"

// SeedLock serializa ejecuciones concurrentes del bootstrap dentro de la transacción en curso.
type SeedLock interface {
	Acquire(ctx context.Context) error
}

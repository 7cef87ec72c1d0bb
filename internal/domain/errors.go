package domain

import "errors"

// Errores de dominio (sin dependencias externas). Las capas externas los envuelven con %w.
var (
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrEntropySource       = errors.New("fuente de aleatoriedad no disponible")
	ErrConnection          = errors.New("no se pudo conectar a la base de datos")
	ErrConstraintViolation = errors.New("violación de restricción")
	ErrTransactionFailure  = errors.New("falló la transacción")
	ErrTimeout             = errors.New("tiempo de espera agotado")
)

// Package fsmarker escribe el archivo centinela que indica que el bootstrap ya se aplicó.
//
// El marcador es solo informativo para la orquestación externa (por ejemplo, un healthcheck
// de docker-compose). La idempotencia real la garantiza la verificación dentro de la transacción.
package fsmarker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/jhoicas/blockvisor-setup/internal/application/bootstrap"
	"github.com/jhoicas/blockvisor-setup/internal/application/dto"
)

var _ bootstrap.CompletionMarker = (*Marker)(nil)

// Marker crea el archivo en Path de forma exclusiva.
type Marker struct {
	path string
	now  func() time.Time
}

// New construye el marcador.
func New(path string) *Marker {
	return &Marker{path: path, now: time.Now}
}

type contents struct {
	OrgID       string    `json:"org_id"`
	AdminUserID string    `json:"admin_user_id"`
	SeededAt    time.Time `json:"seeded_at"`
}

// Record escribe el marcador. Si ya existe no lo sobrescribe y no es error.
func (m *Marker) Record(_ context.Context, result *dto.SeedResult) error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("crear directorio del marcador: %w", err)
	}
	f, err := os.OpenFile(m.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("crear marcador %s: %w", m.path, err)
	}
	body, err := json.Marshal(contents{
		OrgID:       result.OrgID,
		AdminUserID: result.AdminUserID,
		SeededAt:    m.now().UTC(),
	})
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("serializar marcador: %w", err)
	}
	if _, err := f.Write(append(body, '\n')); err != nil {
		_ = f.Close()
		return fmt.Errorf("escribir marcador %s: %w", m.path, err)
	}
	return f.Close()
}

// Exists indica si el marcador ya fue escrito.
func (m *Marker) Exists() (bool, error) {
	_, err := os.Stat(m.path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

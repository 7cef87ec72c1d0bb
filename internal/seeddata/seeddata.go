// Package seeddata expone la matriz rol-permiso embebida que define la política de autorización inicial.
package seeddata

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jhoicas/blockvisor-setup/internal/domain/entity"
)

//go:embed role_permissions.yaml
var rolePermissionsYAML []byte

type document struct {
	Version int `yaml:"version"`
	Roles   []struct {
		Name        string   `yaml:"name"`
		Permissions []string `yaml:"permissions"`
	} `yaml:"roles"`
}

// Dataset matriz rol-permiso validada (sin pares duplicados).
type Dataset struct {
	Version int
	grants  []entity.RolePermission
	roles   []string
}

// Load parsea el dataset embebido.
func Load() (*Dataset, error) {
	return Parse(rolePermissionsYAML)
}

// Parse valida un documento YAML con la matriz. Rechaza nombres vacíos y pares repetidos.
func Parse(data []byte) (*Dataset, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decodificar matriz rol-permiso: %w", err)
	}
	if doc.Version < 1 {
		return nil, fmt.Errorf("matriz rol-permiso: versión %d no soportada", doc.Version)
	}

	ds := &Dataset{Version: doc.Version}
	seen := make(map[entity.RolePermission]struct{})
	seenRole := make(map[string]struct{})
	for _, r := range doc.Roles {
		if r.Name == "" {
			return nil, fmt.Errorf("matriz rol-permiso: rol sin nombre")
		}
		if len(r.Permissions) == 0 {
			return nil, fmt.Errorf("matriz rol-permiso: rol %q sin permisos", r.Name)
		}
		if _, ok := seenRole[r.Name]; !ok {
			seenRole[r.Name] = struct{}{}
			ds.roles = append(ds.roles, r.Name)
		}
		for _, p := range r.Permissions {
			if p == "" {
				return nil, fmt.Errorf("matriz rol-permiso: permiso vacío en rol %q", r.Name)
			}
			g := entity.RolePermission{Role: r.Name, Permission: p}
			if _, dup := seen[g]; dup {
				return nil, fmt.Errorf("matriz rol-permiso: par duplicado (%s, %s)", r.Name, p)
			}
			seen[g] = struct{}{}
			ds.grants = append(ds.grants, g)
		}
	}
	return ds, nil
}

// Grants devuelve una copia de los pares en el orden del archivo.
func (d *Dataset) Grants() []entity.RolePermission {
	out := make([]entity.RolePermission, len(d.grants))
	copy(out, d.grants)
	return out
}

// Roles devuelve los roles en el orden en que aparecen.
func (d *Dataset) Roles() []string {
	out := make([]string, len(d.roles))
	copy(out, d.roles)
	return out
}

// Covers indica si el rol tiene al menos un permiso.
func (d *Dataset) Covers(role string) bool {
	for _, r := range d.roles {
		if r == role {
			return true
		}
	}
	return false
}

// Len número de pares.
func (d *Dataset) Len() int { return len(d.grants) }

package entity

import "time"

// Valores fijos de tokens.
const (
	TokenTypeHostProvision = "host_provision"
	CreatedByTypeUser      = "user"
)

// ProvisioningToken credencial bearer con la que un host se une a una organización.
// CreatedByID referencia al usuario que lo creó, no a la organización.
type ProvisioningToken struct {
	ID            string
	TokenType     string
	Token         string
	CreatedByType string
	CreatedByID   string
	OrgID         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

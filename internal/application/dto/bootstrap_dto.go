package dto

// Estados del bootstrap.
const (
	SeedStatusCompleted     = "completed"
	SeedStatusAlreadySeeded = "already_seeded"
)

// SeedRequest entrada del bootstrap: identidad del administrador y secretos en texto plano.
// TestUserPassword vacío = se genera uno aleatorio.
type SeedRequest struct {
	FirstName        string
	LastName         string
	Email            string
	Password         string
	TestUserPassword string
}

// SeedResult resumen del bootstrap. Los tokens y el password generado solo se informan una vez.
type SeedResult struct {
	Status          string `json:"status"`
	OrgID           string `json:"org_id,omitempty"`
	AdminUserID     string `json:"admin_user_id,omitempty"`
	AdminEmail      string `json:"admin_email,omitempty"`
	TestUserID      string `json:"test_user_id,omitempty"`
	TestUserEmail   string `json:"test_user_email,omitempty"`
	AdminToken      string `json:"-"`
	TestUserToken   string `json:"-"`
	RegionID        string `json:"region_id,omitempty"`
	PermissionCount int64  `json:"permission_count"`
	// GeneratedTestPassword solo se llena cuando el password del usuario de prueba se generó aquí.
	GeneratedTestPassword string `json:"-"`
}

// HashResponse par (salt, hash) en base64 sin padding.
type HashResponse struct {
	Salt string `json:"salt"`
	Hash string `json:"hash"`
}

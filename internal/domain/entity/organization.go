package entity

import "time"

// SeedOrganizationName nombre de la organización inicial.
const SeedOrganizationName = "Main Org"

// Organization representa un tenant. Es dueña de sus tokens y miembros.
type Organization struct {
	ID          string
	Name        string
	IsPersonal  bool
	HostCount   int
	NodeCount   int
	MemberCount int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

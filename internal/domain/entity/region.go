package entity

// Región placeholder de desarrollo.
const (
	DevRegionSKU         = "DEV1"
	DevRegionKey         = "dev"
	DevRegionDisplayName = "DEV"
)

// Region representa una región donde se alojan hosts.
type Region struct {
	ID          string
	SKUCode     string
	Key         string
	DisplayName string
}

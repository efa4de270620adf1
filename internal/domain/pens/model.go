package pens

import "time"

// PhysicalType define el tipo físico del pen.
type PhysicalType string

const (
	PhysicalTypeOutdoor  PhysicalType = "outdoor" // karám
	PhysicalTypeBarn     PhysicalType = "barn"    // istálló
	PhysicalTypeHospital PhysicalType = "hospital"
)

// Pen representa un corral físico. Longevo, casi nunca se borra;
// lo que cambia en el tiempo es su función (ver penfunctions).
type Pen struct {
	ID string

	// PenNumber es el identificador visible en el dashboard ("3", "5", "14A").
	PenNumber string

	Capacity     int
	Location     string
	PhysicalType PhysicalType

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}

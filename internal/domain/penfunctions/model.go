package penfunctions

import "time"

// FunctionType define la función que cumple un pen durante un período.
// Los valores son los del dashboard original (en húngaro).
type FunctionType string

const (
	FunctionBreeding   FunctionType = "hárem" // grupo de monta
	FunctionCalving    FunctionType = "ellető"
	FunctionNurseryOne FunctionType = "bölcsi" // crías destetadas
	FunctionNurseryTwo FunctionType = "óvi"
	FunctionPregnant   FunctionType = "vemhes"
	FunctionFattening  FunctionType = "hízóbika"
	FunctionHospital   FunctionType = "kórház"
	FunctionQuarantine FunctionType = "karantén"
	FunctionCull       FunctionType = "selejt"
	FunctionTransition FunctionType = "átmeneti"
	FunctionEmpty      FunctionType = "üres"
)

// Known indica si el tipo de función está en el catálogo.
func (f FunctionType) Known() bool {
	switch f {
	case FunctionBreeding, FunctionCalving, FunctionNurseryOne, FunctionNurseryTwo,
		FunctionPregnant, FunctionFattening, FunctionHospital, FunctionQuarantine,
		FunctionCull, FunctionTransition, FunctionEmpty:
		return true
	}
	return false
}

// FunctionPeriod es un tramo de tiempo en el que un pen cumple una función.
// Invariante: por pen, a lo sumo UN período con End == nil (el activo).
// Los períodos históricos pueden insertarse fuera de orden cronológico;
// el solape no se rechaza, solo se avisa (ver Service.InsertPeriod).
type FunctionPeriod struct {
	ID    string
	PenID string

	FunctionType FunctionType

	Start time.Time
	End   *time.Time // nil = período activo

	// Metadata varía según FunctionType; ver metadata.go.
	Metadata Metadata

	Notes string

	// Historical marca períodos cargados a mano, a posteriori.
	Historical bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Active indica si el período sigue abierto.
func (p FunctionPeriod) Active() bool {
	return p.End == nil
}

// Overlaps indica si dos períodos del mismo pen se pisan en el tiempo.
// Un período abierto se extiende hasta el infinito.
func (p FunctionPeriod) Overlaps(other FunctionPeriod) bool {
	pEndsBefore := p.End != nil && !p.End.After(other.Start)
	otherEndsBefore := other.End != nil && !other.End.After(p.Start)
	return !pEndsBefore && !otherEndsBefore
}

package penfunctions

import "time"

// Metadata es la unión etiquetada de payloads por tipo de función.
// A lo sumo un campo no-nil, y tiene que corresponder al FunctionType
// del período (ver Validate). Los tipos sin payload van con Metadata{}.
type Metadata struct {
	Breeding   *BreedingSnapshot  `json:"breeding,omitempty"`
	Hospital   *HospitalDetails   `json:"hospital,omitempty"`
	Quarantine *QuarantineDetails `json:"quarantine,omitempty"`
	Cull       *CullDetails       `json:"cull,omitempty"`
	Transition *TransitionDetails `json:"transition,omitempty"`
}

// BullRef es un toro declarado en la metadata de un período hárem.
type BullRef struct {
	AnimalID string `json:"id,omitempty"` // puede faltar en cargas históricas
	Name     string `json:"name"`
	ENAR     string `json:"enar"`
}

// FemaleRef es una hembra capturada en el snapshot del grupo de monta.
type FemaleRef struct {
	ENAR      string     `json:"enar"`
	Category  string     `json:"category"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
}

// BreedingSnapshot es la foto del grupo de monta en el momento de crear
// (o reconciliar) el período. Es un hecho puntual: NO se mantiene en vivo,
// solo se reconcilia a demanda vía el bull-sync.
type BreedingSnapshot struct {
	Bulls   []BullRef   `json:"bulls"`
	Females []FemaleRef `json:"females"`

	BullCount   int `json:"bull_count"`
	FemaleCount int `json:"female_count"`

	CapturedAt time.Time `json:"created_at"`

	// ManualFemales indica que la lista de hembras vino a mano
	// (back-fill histórico), no de la ocupación viva del pen.
	ManualFemales bool `json:"manual_females,omitempty"`
}

type HospitalDetails struct {
	Treatment string `json:"treatment"`
	VetName   string `json:"vet_name,omitempty"`
}

type QuarantineDetails struct {
	Source          string     `json:"source,omitempty"`
	ExpectedRelease *time.Time `json:"expected_release,omitempty"`
}

type CullDetails struct {
	Destination string     `json:"destination,omitempty"`
	PlannedDate *time.Time `json:"planned_date,omitempty"`
}

type TransitionDetails struct {
	TargetFunction FunctionType `json:"target_function,omitempty"`
}

// Empty indica si la metadata no trae ningún payload.
func (m Metadata) Empty() bool {
	return m.Breeding == nil && m.Hospital == nil && m.Quarantine == nil &&
		m.Cull == nil && m.Transition == nil
}

// Validate verifica que el payload corresponda al tipo de función.
// Metadata vacía siempre es válida (el snapshot hárem puede llegar después,
// vía captura o reconciliación).
func (m Metadata) Validate(ft FunctionType) bool {
	set := 0
	var matches bool

	if m.Breeding != nil {
		set++
		matches = ft == FunctionBreeding
	}
	if m.Hospital != nil {
		set++
		matches = ft == FunctionHospital
	}
	if m.Quarantine != nil {
		set++
		matches = ft == FunctionQuarantine
	}
	if m.Cull != nil {
		set++
		matches = ft == FunctionCull
	}
	if m.Transition != nil {
		set++
		matches = ft == FunctionTransition
	}

	if set == 0 {
		return true
	}
	return set == 1 && matches
}

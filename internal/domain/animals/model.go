package animals

import "time"

// Category define las categorías de animal que maneja el dashboard.
type Category string

const (
	CategoryBreedingBull  Category = "tenyészbika" // toro reproductor
	CategoryCow           Category = "tehén"
	CategoryHeifer        Category = "üsző"
	CategoryFatteningBull Category = "hízóbika"
	CategoryCalf          Category = "borjú"
)

// Sex define el sexo del animal.
type Sex string

const (
	SexMale   Sex = "hím"
	SexFemale Sex = "nő"
)

// Status define el estado del animal en el rebaño.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Animal representa un animal del rebaño.
// La identidad es el ENAR (crotal oficial) o un tag temporal para crías
// aún no registradas. Identidad inmutable; categoría y estado mutables.
type Animal struct {
	ID string

	ENAR    string // crotal oficial; puede estar vacío si solo hay tag temporal
	TempTag string

	Name     string
	Category Category
	Sex      Sex
	Status   Status

	BirthDate *time.Time

	// Ascendencia, por ENAR. Solo informativa.
	MotherENAR string
	FatherENAR string

	// CurrentPenNo es un cache denormalizado de "dónde está ahora".
	// Derivable de assignments; lo escribe ÚNICAMENTE el MovementCoordinator
	// en la misma operación lógica que abre la assignment. Nunca a mano.
	CurrentPenNo string

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Identifier devuelve el ENAR si existe, si no el tag temporal.
func (a Animal) Identifier() string {
	if a.ENAR != "" {
		return a.ENAR
	}
	return a.TempTag
}

package animalevents

import "time"

// EventType define qué pasó con el animal.
type EventType string

const (
	EventTypePenMovement EventType = "pen_movement"
	EventTypeBullSync    EventType = "bull_sync"
)

// AnimalEvent es una entrada del log de auditoría. Append-only: los
// eventos no se editan ni se borran; si un movimiento fue un error,
// se registra el movimiento de vuelta.
type AnimalEvent struct {
	ID string

	AnimalID string
	Type     EventType

	// OccurredAt es cuándo pasó el hecho. El contrato externo lo expone
	// partido en event_date + event_time; acá lo llevamos junto.
	OccurredAt time.Time
	RecordedAt time.Time

	PenID         string
	PreviousPenID string // vacío si el animal no estaba en ningún pen

	// PenFunction: función activa del pen destino al momento del evento.
	// Relevante para reconstruir historia de grupos de monta.
	PenFunction string

	Reason string
	Notes  string

	// Historical: el evento narra una reubicación pasada; no refleja un
	// cambio de estado presente.
	Historical bool

	RecordedBy string // user id del operador; vacío si no hubo claims
}

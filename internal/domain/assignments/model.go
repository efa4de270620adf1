package assignments

import "time"

// Assignment es el hecho "este animal está (o estuvo) en este pen".
// Invariante: por animal, a lo sumo UNA assignment con RemovedAt == nil.
// Las assignments se cierran, nunca se borran físicamente; la única
// excepción es la cascada al borrar un período activo, que también cierra.
type Assignment struct {
	ID string

	AnimalID string
	PenID    string

	AssignedAt time.Time
	RemovedAt  *time.Time // nil = el animal sigue en el pen

	Reason string
	Notes  string

	CreatedAt time.Time
}

// Open indica si la assignment sigue vigente.
func (a Assignment) Open() bool {
	return a.RemovedAt == nil
}

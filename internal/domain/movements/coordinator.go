package movements

import (
	"context"
	"errors"
	"strings"
	"time"

	"livestock-pens/internal/domain/animalevents"
	"livestock-pens/internal/domain/animals"
	"livestock-pens/internal/domain/assignments"
	"livestock-pens/internal/domain/penfunctions"
	"livestock-pens/internal/domain/pens"
	"livestock-pens/internal/platform/logger"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrPenNotFound  = errors.New("target pen not found")
)

// Coordinator orquesta el traslado de uno o más animales a un pen:
// cierra la assignment vieja, abre la nueva, actualiza el cache de pen
// actual del animal y deja un evento de auditoría — como UNA operación
// lógica por animal. Entre animales NO hay atomicidad: un fallo aísla a
// ese animal y el resto del lote sigue (se reporta, no se revierte).
type Coordinator struct {
	assignments *assignments.Service
	animals     *animals.Service
	pens        *pens.Service
	periods     *penfunctions.Service
	events      *animalevents.Service
	log         logger.Logger
	now         func() time.Time
}

func NewCoordinator(
	assignmentsSvc *assignments.Service,
	animalsSvc *animals.Service,
	pensSvc *pens.Service,
	periodsSvc *penfunctions.Service,
	eventsSvc *animalevents.Service,
	log logger.Logger,
) *Coordinator {
	if log == nil {
		log = logger.Nop()
	}
	return &Coordinator{
		assignments: assignmentsSvc,
		animals:     animalsSvc,
		pens:        pensSvc,
		periods:     periodsSvc,
		events:      eventsSvc,
		log:         log,
		now:         time.Now,
	}
}

type MoveInput struct {
	AnimalIDs   []string
	TargetPenID string

	Reason string
	Notes  string

	// At: momento del traslado. Cero = ahora.
	At time.Time

	// Historical: el traslado es un registro narrativo de algo que ya
	// pasó. Solo escribe eventos; no toca assignments ni el pen actual.
	Historical bool

	// MovedBy: user id del operador, para el audit log.
	MovedBy string
}

type MoveFailure struct {
	AnimalID string `json:"animal_id"`
	Reason   string `json:"reason"`
}

// MoveResult es el resultado estructurado del lote. Nunca se pierde un
// fallo parcial: cada animal termina en Moved, AlreadyPresent o Failed.
type MoveResult struct {
	Moved          int           `json:"moved"`
	AlreadyPresent int           `json:"already_present"`
	Failed         []MoveFailure `json:"failed"`
}

// Move ejecuta el traslado. Ver MoveInput para los flags.
//
// Orden por animal (modo no histórico):
//  1. dedup: si ya tiene assignment abierta al pen destino, cuenta como
//     alreadyPresent y no se toca nada;
//  2. cerrar su assignment abierta (del pen que sea) en `at`;
//  3. abrir assignment nueva al destino en `at`;
//  4. actualizar el pen denormalizado del animal;
//  5. emitir un evento pen_movement con pen anterior y destino.
func (c *Coordinator) Move(ctx context.Context, in MoveInput) (MoveResult, error) {
	targetPenID := strings.TrimSpace(in.TargetPenID)
	if targetPenID == "" || len(in.AnimalIDs) == 0 {
		return MoveResult{}, ErrInvalidInput
	}

	pen, err := c.pens.GetByID(ctx, targetPenID)
	if err != nil {
		return MoveResult{}, ErrPenNotFound
	}

	at := in.At
	if at.IsZero() {
		at = c.now()
	}

	// Función activa del destino: va en el evento para poder reconstruir
	// la composición de grupos de monta después. El fallback por drift
	// devuelve un período cerrado; esa función ya no rige y no se estampa.
	penFunction := ""
	if active, found, err := c.periods.ActivePeriod(ctx, targetPenID); err == nil && found && active.Active() {
		penFunction = string(active.FunctionType)
	}

	result := MoveResult{Failed: make([]MoveFailure, 0)}
	seen := make(map[string]bool, len(in.AnimalIDs))

	for _, rawID := range in.AnimalIDs {
		animalID := strings.TrimSpace(rawID)
		if animalID == "" || seen[animalID] {
			continue
		}
		seen[animalID] = true

		outcome, err := c.moveOne(ctx, animalID, pen, penFunction, at, in)
		if err != nil {
			result.Failed = append(result.Failed, MoveFailure{AnimalID: animalID, Reason: err.Error()})
			c.log.Warn("move failed for animal",
				"animal_id", animalID,
				"target_pen_id", targetPenID,
				"error", err.Error(),
			)
			continue
		}

		switch outcome {
		case outcomeAlreadyPresent:
			result.AlreadyPresent++
		default:
			result.Moved++
		}
	}

	return result, nil
}

type moveOutcome int

const (
	outcomeMoved moveOutcome = iota
	outcomeAlreadyPresent
)

func (c *Coordinator) moveOne(ctx context.Context, animalID string, pen pens.Pen, penFunction string, at time.Time, in MoveInput) (moveOutcome, error) {
	animal, err := c.animals.GetByID(ctx, animalID)
	if err != nil {
		return 0, errors.New("animal not found")
	}

	open, hasOpen, err := c.assignments.OpenAssignmentFor(ctx, animalID)
	if err != nil {
		return 0, err
	}

	// Dedup: ya está (abiertamente) en el destino.
	if hasOpen && open.PenID == pen.ID {
		return outcomeAlreadyPresent, nil
	}

	previousPenID := ""
	if hasOpen {
		previousPenID = open.PenID
	}

	if in.Historical {
		// Registro narrativo: solo el evento, con fecha pasada.
		_, err := c.events.Record(ctx, animalevents.RecordInput{
			AnimalID:      animalID,
			Type:          animalevents.EventTypePenMovement,
			OccurredAt:    at,
			PenID:         pen.ID,
			PreviousPenID: previousPenID,
			PenFunction:   penFunction,
			Reason:        in.Reason,
			Notes:         in.Notes,
			Historical:    true,
			RecordedBy:    in.MovedBy,
		})
		if err != nil {
			return 0, err
		}
		return outcomeMoved, nil
	}

	if hasOpen {
		if err := c.assignments.Close(ctx, animalID, at); err != nil {
			return 0, err
		}
	}

	if _, err := c.assignments.Assign(ctx, animalID, pen.ID, at, in.Reason, in.Notes); err != nil {
		return 0, err
	}

	if err := c.animals.SetCurrentPen(ctx, animal.ID, pen.PenNumber); err != nil {
		// La assignment ya quedó abierta: reportamos el paso que faltó
		// en vez de fingir que no pasó nada.
		return 0, errors.New("assigned but current pen update failed: " + err.Error())
	}

	if _, err := c.events.Record(ctx, animalevents.RecordInput{
		AnimalID:      animalID,
		Type:          animalevents.EventTypePenMovement,
		OccurredAt:    at,
		PenID:         pen.ID,
		PreviousPenID: previousPenID,
		PenFunction:   penFunction,
		Reason:        in.Reason,
		Notes:         in.Notes,
		Historical:    false,
		RecordedBy:    in.MovedBy,
	}); err != nil {
		return 0, errors.New("moved but audit event failed: " + err.Error())
	}

	return outcomeMoved, nil
}

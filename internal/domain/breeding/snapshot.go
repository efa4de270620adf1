package breeding

import (
	"context"
	"errors"
	"strings"
	"time"

	"livestock-pens/internal/domain/animals"
	"livestock-pens/internal/domain/assignments"
	"livestock-pens/internal/domain/penfunctions"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// SnapshotBuilder arma la foto del grupo de monta que se adjunta a un
// período hárem. Solo lee y construye: nunca muta assignments ni períodos.
type SnapshotBuilder struct {
	assignments *assignments.Service
	animals     *animals.Service
	now         func() time.Time
}

func NewSnapshotBuilder(assignmentsSvc *assignments.Service, animalsSvc *animals.Service) *SnapshotBuilder {
	return &SnapshotBuilder{
		assignments: assignmentsSvc,
		animals:     animalsSvc,
		now:         time.Now,
	}
}

type CaptureInput struct {
	PenID string

	// Bulls: toros declarados por el usuario al crear el período.
	Bulls []penfunctions.BullRef

	// HistoricalFemaleENARs: lista manual de hembras para back-fill.
	// Si viene, NO se consulta la ocupación viva del pen (esa ya no
	// refleja la verdad histórica); se registran los ENAR con categoría
	// y fecha de nacimiento placeholder.
	HistoricalFemaleENARs []string
}

// Capture construye el snapshot. Modo default: hembras = ocupantes
// actuales del pen con sexo hembra, con su categoría y nacimiento.
func (b *SnapshotBuilder) Capture(ctx context.Context, in CaptureInput) (penfunctions.BreedingSnapshot, error) {
	penID := strings.TrimSpace(in.PenID)
	if penID == "" {
		return penfunctions.BreedingSnapshot{}, ErrInvalidInput
	}

	snap := penfunctions.BreedingSnapshot{
		Bulls:      normalizeBulls(in.Bulls),
		Females:    make([]penfunctions.FemaleRef, 0),
		CapturedAt: b.now(),
	}

	if len(in.HistoricalFemaleENARs) > 0 {
		snap.ManualFemales = true
		for _, raw := range in.HistoricalFemaleENARs {
			enar := strings.TrimSpace(raw)
			if enar == "" {
				continue
			}
			snap.Females = append(snap.Females, penfunctions.FemaleRef{
				ENAR:     enar,
				Category: "ismeretlen", // desconocida: carga manual
			})
		}
	} else {
		occupants, err := b.assignments.CurrentOccupants(ctx, penID)
		if err != nil {
			return penfunctions.BreedingSnapshot{}, err
		}

		for _, a := range occupants {
			animal, err := b.animals.GetByID(ctx, a.AnimalID)
			if err != nil {
				continue // ocupante huérfano; no rompe la captura
			}
			if animal.Sex != animals.SexFemale {
				continue
			}
			snap.Females = append(snap.Females, penfunctions.FemaleRef{
				ENAR:      animal.Identifier(),
				Category:  string(animal.Category),
				BirthDate: animal.BirthDate,
			})
		}
	}

	snap.BullCount = len(snap.Bulls)
	snap.FemaleCount = len(snap.Females)
	return snap, nil
}

func normalizeBulls(bulls []penfunctions.BullRef) []penfunctions.BullRef {
	out := make([]penfunctions.BullRef, 0, len(bulls))
	for _, b := range bulls {
		b.ENAR = strings.TrimSpace(b.ENAR)
		b.Name = strings.TrimSpace(b.Name)
		if b.ENAR == "" && b.Name == "" {
			continue
		}
		out = append(out, b)
	}
	return out
}

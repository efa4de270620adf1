package breeding

import (
	"context"
	"fmt"
	"strings"
	"time"

	"livestock-pens/internal/domain/animalevents"
	"livestock-pens/internal/domain/animals"
	"livestock-pens/internal/domain/assignments"
	"livestock-pens/internal/domain/movements"
	"livestock-pens/internal/domain/penfunctions"
	"livestock-pens/internal/platform/logger"
)

const syncReason = "sync"

// Reconciler converge dos conjuntos que derivan con el uso:
//   - metadataBulls: toros declarados en el snapshot del período hárem activo
//   - physicalBulls: animales categoría tenyészbika con assignment abierta al pen
//
// Ambos terminan en la unión. Es consistencia eventual a demanda: la
// función es idempotente y segura de correr las veces que haga falta,
// no una migración one-shot.
type Reconciler struct {
	periods     *penfunctions.Service
	assignments *assignments.Service
	animals     *animals.Service
	events      *animalevents.Service
	coordinator *movements.Coordinator
	log         logger.Logger
	now         func() time.Time
}

func NewReconciler(
	periodsSvc *penfunctions.Service,
	assignmentsSvc *assignments.Service,
	animalsSvc *animals.Service,
	eventsSvc *animalevents.Service,
	coordinator *movements.Coordinator,
	log logger.Logger,
) *Reconciler {
	if log == nil {
		log = logger.Nop()
	}
	return &Reconciler{
		periods:     periodsSvc,
		assignments: assignmentsSvc,
		animals:     animalsSvc,
		events:      eventsSvc,
		coordinator: coordinator,
		log:         log,
		now:         time.Now,
	}
}

// SyncResult describe qué convergió. Los fallos por toro (ENAR que no
// resuelve, movimiento que falla) van a Warnings: nunca tiran abajo la
// reconciliación entera.
type SyncResult struct {
	PenID    string `json:"pen_id"`
	PeriodID string `json:"period_id,omitempty"`

	// Synced == false: el pen no tiene período hárem activo; no-op.
	Synced bool `json:"synced"`

	// PlacedInPen: ENARs de toros declarados que se movieron físicamente al pen.
	PlacedInPen []string `json:"placed_in_pen"`

	// AddedToMetadata: ENARs de toros físicos anexados a la metadata.
	AddedToMetadata []string `json:"added_to_metadata"`

	Warnings []string `json:"warnings"`
}

// Reconcile corre la convergencia para un pen.
func (r *Reconciler) Reconcile(ctx context.Context, penID string, syncedBy string) (SyncResult, error) {
	penID = strings.TrimSpace(penID)
	if penID == "" {
		return SyncResult{}, ErrInvalidInput
	}

	result := SyncResult{
		PenID:           penID,
		PlacedInPen:     make([]string, 0),
		AddedToMetadata: make([]string, 0),
		Warnings:        make([]string, 0),
	}

	period, found, err := r.periods.ActivePeriod(ctx, penID)
	if err != nil {
		return result, err
	}
	if !found || period.FunctionType != penfunctions.FunctionBreeding {
		return result, nil // nada que sincronizar
	}
	result.PeriodID = period.ID
	result.Synced = true

	metadataBulls := make([]penfunctions.BullRef, 0)
	if period.Metadata.Breeding != nil {
		metadataBulls = period.Metadata.Breeding.Bulls
	}

	physical, physWarnings, err := r.physicalBulls(ctx, penID)
	if err != nil {
		return result, err
	}
	result.Warnings = append(result.Warnings, physWarnings...)

	physicalByENAR := make(map[string]animals.Animal, len(physical))
	for _, bull := range physical {
		physicalByENAR[bull.Identifier()] = bull
	}
	declaredENARs := make(map[string]bool, len(metadataBulls))
	for _, ref := range metadataBulls {
		declaredENARs[ref.ENAR] = true
	}

	// Paso 1: declarado pero no físico => colocarlo en el pen.
	for _, ref := range metadataBulls {
		if ref.ENAR == "" || physicalByENAR[ref.ENAR].ID != "" {
			continue
		}

		bull, err := r.animals.ResolveByENAR(ctx, ref.ENAR)
		if err != nil {
			// ENAR que no resuelve: se salta y se avisa, no se aborta.
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("bull %s not found in herd, skipped", ref.ENAR))
			r.log.Warn("bull sync: declared bull not found", "pen_id", penID, "enar", ref.ENAR)
			continue
		}

		moveRes, err := r.coordinator.Move(ctx, movements.MoveInput{
			AnimalIDs:   []string{bull.ID},
			TargetPenID: penID,
			Reason:      syncReason,
			At:          r.now(),
			MovedBy:     syncedBy,
		})
		if err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("bull %s could not be placed: %v", ref.ENAR, err))
			continue
		}
		if len(moveRes.Failed) > 0 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("bull %s could not be placed: %s", ref.ENAR, moveRes.Failed[0].Reason))
			continue
		}
		// Moved o alreadyPresent: en ambos casos ya está donde debe.
		result.PlacedInPen = append(result.PlacedInPen, ref.ENAR)
	}

	// Paso 2: físico pero no declarado => anexarlo a la metadata.
	appendedBulls := make([]animals.Animal, 0)
	for _, bull := range physical {
		enar := bull.Identifier()
		if declaredENARs[enar] {
			continue
		}
		metadataBulls = append(metadataBulls, penfunctions.BullRef{
			AnimalID: bull.ID,
			Name:     bull.Name,
			ENAR:     enar,
		})
		declaredENARs[enar] = true
		result.AddedToMetadata = append(result.AddedToMetadata, enar)
		appendedBulls = append(appendedBulls, bull)
	}

	if len(appendedBulls) > 0 {
		metadata := period.Metadata
		if metadata.Breeding == nil {
			metadata.Breeding = &penfunctions.BreedingSnapshot{
				Females:    make([]penfunctions.FemaleRef, 0),
				CapturedAt: r.now(),
			}
		}
		metadata.Breeding.Bulls = metadataBulls
		metadata.Breeding.BullCount = len(metadataBulls)

		if _, err := r.periods.UpdateMetadata(ctx, period.ID, metadata); err != nil {
			return result, err
		}

		// El anexo a metadata también es un hecho sobre el animal: un
		// evento bull_sync por toro, igual que los colocados dejan su
		// pen_movement vía el coordinator.
		for _, bull := range appendedBulls {
			if _, err := r.events.Record(ctx, animalevents.RecordInput{
				AnimalID:    bull.ID,
				Type:        animalevents.EventTypeBullSync,
				OccurredAt:  r.now(),
				PenID:       penID,
				PenFunction: string(penfunctions.FunctionBreeding),
				Reason:      syncReason,
				RecordedBy:  syncedBy,
			}); err != nil {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("bull %s added to metadata but audit event failed: %v", bull.Identifier(), err))
			}
		}
	}

	r.log.Info("bull sync reconciled",
		"pen_id", penID,
		"period_id", period.ID,
		"placed_in_pen", len(result.PlacedInPen),
		"added_to_metadata", len(result.AddedToMetadata),
		"warnings", len(result.Warnings),
	)
	return result, nil
}

// physicalBulls: ocupantes actuales del pen con categoría tenyészbika.
// Un ocupante sin registro de animal es drift de datos: se salta con
// warning, igual que un ENAR declarado que no resuelve.
func (r *Reconciler) physicalBulls(ctx context.Context, penID string) ([]animals.Animal, []string, error) {
	occupants, err := r.assignments.CurrentOccupants(ctx, penID)
	if err != nil {
		return nil, nil, err
	}

	out := make([]animals.Animal, 0)
	warnings := make([]string, 0)
	for _, a := range occupants {
		animal, err := r.animals.GetByID(ctx, a.AnimalID)
		if err != nil {
			warnings = append(warnings,
				fmt.Sprintf("occupant %s has no animal record, skipped", a.AnimalID))
			r.log.Warn("bull sync: occupant without animal record", "pen_id", penID, "animal_id", a.AnimalID)
			continue
		}
		if animal.Category == animals.CategoryBreedingBull {
			out = append(out, animal)
		}
	}
	return out, warnings, nil
}

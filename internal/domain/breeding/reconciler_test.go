package breeding

import (
	"context"
	"strings"
	"testing"
	"time"

	mem "livestock-pens/internal/adapters/storage/memory"
	"livestock-pens/internal/domain/animalevents"
	"livestock-pens/internal/domain/animals"
	"livestock-pens/internal/domain/assignments"
	"livestock-pens/internal/domain/movements"
	"livestock-pens/internal/domain/penfunctions"
	"livestock-pens/internal/domain/pens"
)

type reconcilerFixture struct {
	reconciler  *Reconciler
	animals     *animals.Service
	pens        *pens.Service
	assignments *assignments.Service
	periods     *penfunctions.Service
	events      *animalevents.Service
}

func newReconcilerFixture() *reconcilerFixture {
	animalsSvc := animals.NewService(mem.NewAnimalsRepo())
	pensSvc := pens.NewService(mem.NewPensRepo())
	assignmentsSvc := assignments.NewService(mem.NewAssignmentsRepo())
	eventsSvc := animalevents.NewService(mem.NewAnimalEventsRepo())
	periodsSvc := penfunctions.NewService(mem.NewPenFunctionsRepo(), assignmentsSvc, nil)
	coordinator := movements.NewCoordinator(assignmentsSvc, animalsSvc, pensSvc, periodsSvc, eventsSvc, nil)

	return &reconcilerFixture{
		reconciler:  NewReconciler(periodsSvc, assignmentsSvc, animalsSvc, eventsSvc, coordinator, nil),
		animals:     animalsSvc,
		pens:        pensSvc,
		assignments: assignmentsSvc,
		periods:     periodsSvc,
		events:      eventsSvc,
	}
}

func (f *reconcilerFixture) mustBull(t *testing.T, enar, name string) animals.Animal {
	t.Helper()
	a, err := f.animals.Create(context.Background(), animals.CreateInput{
		ENAR: enar, Name: name, Category: animals.CategoryBreedingBull, Sex: animals.SexMale,
	})
	if err != nil {
		t.Fatalf("create bull %s: %v", enar, err)
	}
	return a
}

func (f *reconcilerFixture) mustBreedingPen(t *testing.T, declaredBulls []penfunctions.BullRef) (pens.Pen, penfunctions.FunctionPeriod) {
	t.Helper()
	ctx := context.Background()

	p, err := f.pens.Create(ctx, pens.CreateInput{PenNumber: "7"})
	if err != nil {
		t.Fatalf("create pen: %v", err)
	}

	metadata := penfunctions.Metadata{}
	if declaredBulls != nil {
		metadata.Breeding = &penfunctions.BreedingSnapshot{
			Bulls:      declaredBulls,
			Females:    []penfunctions.FemaleRef{},
			BullCount:  len(declaredBulls),
			CapturedAt: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		}
	}

	res, err := f.periods.InsertPeriod(ctx, penfunctions.InsertInput{
		PenID:        p.ID,
		FunctionType: penfunctions.FunctionBreeding,
		Start:        time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		Metadata:     metadata,
	})
	if err != nil {
		t.Fatalf("insert breeding period: %v", err)
	}
	return p, res.Period
}

func declaredBullENARs(t *testing.T, f *reconcilerFixture, periodID string) map[string]bool {
	t.Helper()
	p, err := f.periods.GetByID(context.Background(), periodID)
	if err != nil {
		t.Fatalf("get period: %v", err)
	}
	out := map[string]bool{}
	if p.Metadata.Breeding != nil {
		for _, b := range p.Metadata.Breeding.Bulls {
			out[b.ENAR] = true
		}
	}
	return out
}

func TestReconciler_ConvergesToUnion(t *testing.T) {
	f := newReconcilerFixture()
	ctx := context.Background()

	// Declarados: {A, B}. Físicos: {B, C}. Unión esperada: {A, B, C}.
	bullA := f.mustBull(t, "HU-A", "Artúr")
	bullB := f.mustBull(t, "HU-B", "Bendegúz")
	bullC := f.mustBull(t, "HU-C", "Csaba")

	pen, period := f.mustBreedingPen(t, []penfunctions.BullRef{
		{AnimalID: bullA.ID, Name: bullA.Name, ENAR: "HU-A"},
		{AnimalID: bullB.ID, Name: bullB.Name, ENAR: "HU-B"},
	})

	at := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	for _, b := range []animals.Animal{bullB, bullC} {
		if _, err := f.assignments.Assign(ctx, b.ID, pen.ID, at, "", ""); err != nil {
			t.Fatalf("seed assignment: %v", err)
		}
	}

	res, err := f.reconciler.Reconcile(ctx, pen.ID, "user-1")
	if err != nil {
		t.Fatalf("Reconcile error: %v", err)
	}
	if !res.Synced {
		t.Fatalf("expected synced=true")
	}
	if len(res.PlacedInPen) != 1 || res.PlacedInPen[0] != "HU-A" {
		t.Fatalf("expected HU-A placed, got %v", res.PlacedInPen)
	}
	if len(res.AddedToMetadata) != 1 || res.AddedToMetadata[0] != "HU-C" {
		t.Fatalf("expected HU-C appended, got %v", res.AddedToMetadata)
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", res.Warnings)
	}

	// Lado físico: los tres con assignment abierta al pen, el A con reason=sync.
	occ, _ := f.assignments.CurrentOccupants(ctx, pen.ID)
	if len(occ) != 3 {
		t.Fatalf("expected 3 physical bulls, got %d", len(occ))
	}
	for _, a := range occ {
		if a.AnimalID == bullA.ID && a.Reason != "sync" {
			t.Fatalf("placed bull must carry reason=sync, got %q", a.Reason)
		}
	}

	// Lado metadata: los tres ENAR declarados.
	declared := declaredBullENARs(t, f, period.ID)
	for _, enar := range []string{"HU-A", "HU-B", "HU-C"} {
		if !declared[enar] {
			t.Fatalf("expected %s declared after sync, got %v", enar, declared)
		}
	}
}

func TestReconciler_Idempotent(t *testing.T) {
	f := newReconcilerFixture()
	ctx := context.Background()

	bullA := f.mustBull(t, "HU-A", "Artúr")
	pen, _ := f.mustBreedingPen(t, []penfunctions.BullRef{
		{AnimalID: bullA.ID, Name: bullA.Name, ENAR: "HU-A"},
	})

	if _, err := f.reconciler.Reconcile(ctx, pen.ID, "user-1"); err != nil {
		t.Fatalf("Reconcile #1 error: %v", err)
	}

	res, err := f.reconciler.Reconcile(ctx, pen.ID, "user-1")
	if err != nil {
		t.Fatalf("Reconcile #2 error: %v", err)
	}
	if len(res.PlacedInPen) != 0 || len(res.AddedToMetadata) != 0 {
		t.Fatalf("second run on converged pen must be no-op, got %+v", res)
	}

	history, _ := f.assignments.HistoryByAnimal(ctx, bullA.ID)
	if len(history) != 1 {
		t.Fatalf("expected single assignment after repeated sync, got %d", len(history))
	}
}

func TestReconciler_UnknownENAR_WarnsAndContinues(t *testing.T) {
	f := newReconcilerFixture()
	ctx := context.Background()

	bullB := f.mustBull(t, "HU-B", "Bendegúz")
	pen, _ := f.mustBreedingPen(t, []penfunctions.BullRef{
		{Name: "Fantasma", ENAR: "HU-GHOST"},
		{AnimalID: bullB.ID, Name: bullB.Name, ENAR: "HU-B"},
	})

	res, err := f.reconciler.Reconcile(ctx, pen.ID, "user-1")
	if err != nil {
		t.Fatalf("Reconcile error: %v", err)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("expected 1 warning for unknown ENAR, got %v", res.Warnings)
	}
	if len(res.PlacedInPen) != 1 || res.PlacedInPen[0] != "HU-B" {
		t.Fatalf("known bull must still be placed, got %v", res.PlacedInPen)
	}
}

func TestReconciler_NonBreedingPen_NoOp(t *testing.T) {
	f := newReconcilerFixture()
	ctx := context.Background()

	p, err := f.pens.Create(ctx, pens.CreateInput{PenNumber: "5"})
	if err != nil {
		t.Fatalf("create pen: %v", err)
	}
	if _, err := f.periods.InsertPeriod(ctx, penfunctions.InsertInput{
		PenID:        p.ID,
		FunctionType: penfunctions.FunctionHospital,
		Start:        time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("insert period: %v", err)
	}

	res, err := f.reconciler.Reconcile(ctx, p.ID, "user-1")
	if err != nil {
		t.Fatalf("Reconcile error: %v", err)
	}
	if res.Synced {
		t.Fatalf("non-breeding pen must not sync")
	}
}

func TestReconciler_AppendedBull_WritesBullSyncEvent(t *testing.T) {
	f := newReconcilerFixture()
	ctx := context.Background()

	bullC := f.mustBull(t, "HU-C", "Csaba")
	pen, _ := f.mustBreedingPen(t, []penfunctions.BullRef{})

	if _, err := f.assignments.Assign(ctx, bullC.ID, pen.ID, time.Now(), "", ""); err != nil {
		t.Fatalf("seed assignment: %v", err)
	}

	res, err := f.reconciler.Reconcile(ctx, pen.ID, "user-1")
	if err != nil {
		t.Fatalf("Reconcile error: %v", err)
	}
	if len(res.AddedToMetadata) != 1 || res.AddedToMetadata[0] != "HU-C" {
		t.Fatalf("expected HU-C appended, got %v", res.AddedToMetadata)
	}

	// El anexo deja su rastro de auditoría, igual que un movimiento.
	events, err := f.events.ListByAnimal(ctx, bullC.ID, animalevents.ListFilter{Limit: 10})
	if err != nil {
		t.Fatalf("ListByAnimal error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 audit event for appended bull, got %d", len(events))
	}
	e := events[0]
	if e.Type != animalevents.EventTypeBullSync {
		t.Fatalf("expected bull_sync event, got %s", e.Type)
	}
	if e.PenID != pen.ID {
		t.Fatalf("expected event pen %s, got %s", pen.ID, e.PenID)
	}
	if e.PenFunction != string(penfunctions.FunctionBreeding) {
		t.Fatalf("expected pen function hárem, got %q", e.PenFunction)
	}
	if e.RecordedBy != "user-1" {
		t.Fatalf("expected recorded_by user-1, got %q", e.RecordedBy)
	}
	if e.Reason != "sync" {
		t.Fatalf("expected reason sync, got %q", e.Reason)
	}

	// Correr de nuevo no duplica el evento: el toro ya está declarado.
	if _, err := f.reconciler.Reconcile(ctx, pen.ID, "user-1"); err != nil {
		t.Fatalf("Reconcile #2 error: %v", err)
	}
	events, _ = f.events.ListByAnimal(ctx, bullC.ID, animalevents.ListFilter{Limit: 10})
	if len(events) != 1 {
		t.Fatalf("repeated sync must not duplicate events, got %d", len(events))
	}
}

func TestReconciler_OrphanOccupant_WarnsAndContinues(t *testing.T) {
	f := newReconcilerFixture()
	ctx := context.Background()

	bullB := f.mustBull(t, "HU-B", "Bendegúz")
	pen, _ := f.mustBreedingPen(t, []penfunctions.BullRef{})

	// Ocupante sin registro de animal (drift) junto a un toro real.
	if _, err := f.assignments.Assign(ctx, "ghost-id", pen.ID, time.Now(), "", ""); err != nil {
		t.Fatalf("seed orphan assignment: %v", err)
	}
	if _, err := f.assignments.Assign(ctx, bullB.ID, pen.ID, time.Now(), "", ""); err != nil {
		t.Fatalf("seed assignment: %v", err)
	}

	res, err := f.reconciler.Reconcile(ctx, pen.ID, "user-1")
	if err != nil {
		t.Fatalf("Reconcile error: %v", err)
	}

	found := false
	for _, w := range res.Warnings {
		if strings.Contains(w, "ghost-id") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected warning for orphan occupant, got %v", res.Warnings)
	}

	// El toro real sí se anexa.
	if len(res.AddedToMetadata) != 1 || res.AddedToMetadata[0] != "HU-B" {
		t.Fatalf("expected HU-B appended despite orphan, got %v", res.AddedToMetadata)
	}
}

func TestReconciler_PhysicalBullsOnNilSnapshot_CreatesOne(t *testing.T) {
	f := newReconcilerFixture()
	ctx := context.Background()

	bullC := f.mustBull(t, "HU-C", "Csaba")
	pen, period := f.mustBreedingPen(t, nil) // período hárem sin snapshot

	if _, err := f.assignments.Assign(ctx, bullC.ID, pen.ID, time.Now(), "", ""); err != nil {
		t.Fatalf("seed assignment: %v", err)
	}

	res, err := f.reconciler.Reconcile(ctx, pen.ID, "user-1")
	if err != nil {
		t.Fatalf("Reconcile error: %v", err)
	}
	if len(res.AddedToMetadata) != 1 {
		t.Fatalf("expected HU-C appended, got %v", res.AddedToMetadata)
	}

	p, _ := f.periods.GetByID(ctx, period.ID)
	if p.Metadata.Breeding == nil || p.Metadata.Breeding.BullCount != 1 {
		t.Fatalf("expected snapshot created with 1 bull, got %+v", p.Metadata.Breeding)
	}
}

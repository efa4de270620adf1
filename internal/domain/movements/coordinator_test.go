package movements

import (
	"context"
	"testing"
	"time"

	mem "livestock-pens/internal/adapters/storage/memory"
	"livestock-pens/internal/domain/animalevents"
	"livestock-pens/internal/domain/animals"
	"livestock-pens/internal/domain/assignments"
	"livestock-pens/internal/domain/penfunctions"
	"livestock-pens/internal/domain/pens"
)

type fixture struct {
	coordinator *Coordinator
	animals     *animals.Service
	pens        *pens.Service
	assignments *assignments.Service
	periods     *penfunctions.Service
	events      *animalevents.Service
}

func newFixture() *fixture {
	animalsSvc := animals.NewService(mem.NewAnimalsRepo())
	pensSvc := pens.NewService(mem.NewPensRepo())
	assignmentsSvc := assignments.NewService(mem.NewAssignmentsRepo())
	eventsSvc := animalevents.NewService(mem.NewAnimalEventsRepo())
	periodsSvc := penfunctions.NewService(mem.NewPenFunctionsRepo(), assignmentsSvc, nil)

	return &fixture{
		coordinator: NewCoordinator(assignmentsSvc, animalsSvc, pensSvc, periodsSvc, eventsSvc, nil),
		animals:     animalsSvc,
		pens:        pensSvc,
		assignments: assignmentsSvc,
		periods:     periodsSvc,
		events:      eventsSvc,
	}
}

func (f *fixture) mustAnimal(t *testing.T, enar string, cat animals.Category, sex animals.Sex) animals.Animal {
	t.Helper()
	a, err := f.animals.Create(context.Background(), animals.CreateInput{
		ENAR:     enar,
		Category: cat,
		Sex:      sex,
	})
	if err != nil {
		t.Fatalf("create animal %s: %v", enar, err)
	}
	return a
}

func (f *fixture) mustPen(t *testing.T, number string) pens.Pen {
	t.Helper()
	p, err := f.pens.Create(context.Background(), pens.CreateInput{PenNumber: number})
	if err != nil {
		t.Fatalf("create pen %s: %v", number, err)
	}
	return p
}

func TestCoordinator_Move_FullTransition(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	at := time.Date(2026, 5, 2, 8, 0, 0, 0, time.UTC)
	f.coordinator.now = func() time.Time { return at }

	cow := f.mustAnimal(t, "HU-001", animals.CategoryCow, animals.SexFemale)
	source := f.mustPen(t, "3")
	target := f.mustPen(t, "7")

	if _, err := f.periods.InsertPeriod(ctx, penfunctions.InsertInput{
		PenID:        target.ID,
		FunctionType: penfunctions.FunctionBreeding,
		Start:        at.AddDate(0, -1, 0),
	}); err != nil {
		t.Fatalf("insert period: %v", err)
	}
	if _, err := f.assignments.Assign(ctx, cow.ID, source.ID, at.AddDate(0, 0, -7), "", ""); err != nil {
		t.Fatalf("seed assignment: %v", err)
	}

	res, err := f.coordinator.Move(ctx, MoveInput{
		AnimalIDs:   []string{cow.ID},
		TargetPenID: target.ID,
		Reason:      "regroup",
		At:          at,
		MovedBy:     "user-1",
	})
	if err != nil {
		t.Fatalf("Move error: %v", err)
	}
	if res.Moved != 1 || res.AlreadyPresent != 0 || len(res.Failed) != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}

	// Assignment vieja cerrada en `at`, nueva abierta al destino.
	open, found, err := f.assignments.OpenAssignmentFor(ctx, cow.ID)
	if err != nil || !found {
		t.Fatalf("open assignment: found=%v err=%v", found, err)
	}
	if open.PenID != target.ID {
		t.Fatalf("expected open assignment in target pen, got %s", open.PenID)
	}

	history, _ := f.assignments.HistoryByAnimal(ctx, cow.ID)
	if len(history) != 2 {
		t.Fatalf("expected 2 assignments in history, got %d", len(history))
	}
	for _, a := range history {
		if a.PenID == source.ID && (a.RemovedAt == nil || !a.RemovedAt.Equal(at)) {
			t.Fatalf("source assignment not closed at move time: %+v", a)
		}
	}

	// Cache de pen actual actualizado al número del destino.
	got, _ := f.animals.GetByID(ctx, cow.ID)
	if got.CurrentPenNo != target.PenNumber {
		t.Fatalf("expected current pen %s, got %s", target.PenNumber, got.CurrentPenNo)
	}

	// Evento de auditoría con pen anterior y función del destino.
	events, err := f.events.ListByAnimal(ctx, cow.ID, animalevents.ListFilter{Limit: 10})
	if err != nil || len(events) != 1 {
		t.Fatalf("expected 1 event, got %d err=%v", len(events), err)
	}
	e := events[0]
	if e.Type != animalevents.EventTypePenMovement {
		t.Fatalf("expected pen_movement event, got %s", e.Type)
	}
	if e.PreviousPenID != source.ID || e.PenID != target.ID {
		t.Fatalf("event pens wrong: prev=%s pen=%s", e.PreviousPenID, e.PenID)
	}
	if e.PenFunction != string(penfunctions.FunctionBreeding) {
		t.Fatalf("expected pen function hárem on event, got %q", e.PenFunction)
	}
	if e.RecordedBy != "user-1" {
		t.Fatalf("expected recorded_by user-1, got %q", e.RecordedBy)
	}
}

func TestCoordinator_Move_FallbackPeriodFunctionNotStamped(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	at := time.Date(2026, 5, 2, 8, 0, 0, 0, time.UTC)

	cow := f.mustAnimal(t, "HU-001", animals.CategoryCow, animals.SexFemale)
	target := f.mustPen(t, "7")

	// El pen solo tiene un período cerrado: ActivePeriod cae al fallback.
	end := at.AddDate(0, -2, 0)
	if _, err := f.periods.InsertPeriod(ctx, penfunctions.InsertInput{
		PenID:        target.ID,
		FunctionType: penfunctions.FunctionBreeding,
		Start:        end.AddDate(0, -3, 0),
		End:          &end,
		Historical:   true,
	}); err != nil {
		t.Fatalf("insert period: %v", err)
	}

	res, err := f.coordinator.Move(ctx, MoveInput{
		AnimalIDs:   []string{cow.ID},
		TargetPenID: target.ID,
		At:          at,
	})
	if err != nil || res.Moved != 1 {
		t.Fatalf("Move: res=%+v err=%v", res, err)
	}

	// La función del período cerrado ya no rige: el evento queda sin función.
	events, _ := f.events.ListByAnimal(ctx, cow.ID, animalevents.ListFilter{Limit: 10})
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].PenFunction != "" {
		t.Fatalf("fallback period function must not be stamped, got %q", events[0].PenFunction)
	}
}

func TestCoordinator_Move_DedupAlreadyPresent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	at := time.Date(2026, 5, 2, 8, 0, 0, 0, time.UTC)

	a1 := f.mustAnimal(t, "HU-001", animals.CategoryCow, animals.SexFemale)
	a2 := f.mustAnimal(t, "HU-002", animals.CategoryCow, animals.SexFemale)
	target := f.mustPen(t, "7")

	// a1 ya está en el destino.
	if _, err := f.assignments.Assign(ctx, a1.ID, target.ID, at.AddDate(0, 0, -1), "", ""); err != nil {
		t.Fatalf("seed assignment: %v", err)
	}

	res, err := f.coordinator.Move(ctx, MoveInput{
		AnimalIDs:   []string{a1.ID, a2.ID},
		TargetPenID: target.ID,
		At:          at,
	})
	if err != nil {
		t.Fatalf("Move error: %v", err)
	}
	if res.Moved != 1 || res.AlreadyPresent != 1 {
		t.Fatalf("expected moved=1 already_present=1, got %+v", res)
	}

	// a1 conserva su assignment original: nada se cerró ni se reabrió.
	history, _ := f.assignments.HistoryByAnimal(ctx, a1.ID)
	if len(history) != 1 {
		t.Fatalf("dedup must not touch existing assignment, history=%d", len(history))
	}
}

func TestCoordinator_Move_DuplicateIDsInBatchCountOnce(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	a1 := f.mustAnimal(t, "HU-001", animals.CategoryCow, animals.SexFemale)
	target := f.mustPen(t, "7")

	res, err := f.coordinator.Move(ctx, MoveInput{
		AnimalIDs:   []string{a1.ID, a1.ID, " " + a1.ID + " "},
		TargetPenID: target.ID,
	})
	if err != nil {
		t.Fatalf("Move error: %v", err)
	}
	if res.Moved != 1 {
		t.Fatalf("expected duplicate ids collapsed to 1 move, got %+v", res)
	}
}

func TestCoordinator_Move_Historical_OnlyWritesEvent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	past := time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)

	cow := f.mustAnimal(t, "HU-001", animals.CategoryCow, animals.SexFemale)
	current := f.mustPen(t, "3")
	old := f.mustPen(t, "9")

	if _, err := f.assignments.Assign(ctx, cow.ID, current.ID, past.AddDate(0, 2, 0), "", ""); err != nil {
		t.Fatalf("seed assignment: %v", err)
	}

	res, err := f.coordinator.Move(ctx, MoveInput{
		AnimalIDs:   []string{cow.ID},
		TargetPenID: old.ID,
		At:          past,
		Historical:  true,
	})
	if err != nil {
		t.Fatalf("Move error: %v", err)
	}
	if res.Moved != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}

	// El presente no se toca: sigue en el pen actual, sin pen cacheado nuevo.
	open, found, _ := f.assignments.OpenAssignmentFor(ctx, cow.ID)
	if !found || open.PenID != current.ID {
		t.Fatalf("historical move must not touch open assignment: %+v", open)
	}
	got, _ := f.animals.GetByID(ctx, cow.ID)
	if got.CurrentPenNo != "" {
		t.Fatalf("historical move must not update current pen, got %q", got.CurrentPenNo)
	}

	events, _ := f.events.ListByAnimal(ctx, cow.ID, animalevents.ListFilter{Limit: 10})
	if len(events) != 1 || !events[0].Historical {
		t.Fatalf("expected 1 historical event, got %+v", events)
	}
}

func TestCoordinator_Move_PartialFailureDoesNotAbortBatch(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	a1 := f.mustAnimal(t, "HU-001", animals.CategoryCow, animals.SexFemale)
	target := f.mustPen(t, "7")

	res, err := f.coordinator.Move(ctx, MoveInput{
		AnimalIDs:   []string{"ghost-id", a1.ID},
		TargetPenID: target.ID,
	})
	if err != nil {
		t.Fatalf("Move error: %v", err)
	}
	if res.Moved != 1 {
		t.Fatalf("expected surviving animal moved, got %+v", res)
	}
	if len(res.Failed) != 1 || res.Failed[0].AnimalID != "ghost-id" {
		t.Fatalf("expected ghost-id in failed, got %+v", res.Failed)
	}
}

func TestCoordinator_Move_UnknownPen(t *testing.T) {
	f := newFixture()

	_, err := f.coordinator.Move(context.Background(), MoveInput{
		AnimalIDs:   []string{"whatever"},
		TargetPenID: "no-such-pen",
	})
	if err != ErrPenNotFound {
		t.Fatalf("expected ErrPenNotFound, got %v", err)
	}
}

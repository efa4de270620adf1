package penops

import (
	"context"
	"errors"
	"testing"
	"time"

	mem "livestock-pens/internal/adapters/storage/memory"
	"livestock-pens/internal/domain/animals"
	"livestock-pens/internal/domain/assignments"
	"livestock-pens/internal/domain/breeding"
	"livestock-pens/internal/domain/penfunctions"
)

type editorFixture struct {
	editor      *Editor
	animals     *animals.Service
	assignments *assignments.Service
	periods     *penfunctions.Service
}

func newEditorFixture() *editorFixture {
	animalsSvc := animals.NewService(mem.NewAnimalsRepo())
	assignmentsSvc := assignments.NewService(mem.NewAssignmentsRepo())
	periodsSvc := penfunctions.NewService(mem.NewPenFunctionsRepo(), assignmentsSvc, nil)
	builder := breeding.NewSnapshotBuilder(assignmentsSvc, animalsSvc)

	return &editorFixture{
		editor:      NewEditor(periodsSvc, builder),
		animals:     animalsSvc,
		assignments: assignmentsSvc,
		periods:     periodsSvc,
	}
}

func TestEditor_CreatePeriod_BreedingCapturesLiveSnapshot(t *testing.T) {
	f := newEditorFixture()
	ctx := context.Background()

	cow, err := f.animals.Create(ctx, animals.CreateInput{
		ENAR: "HU-100", Category: animals.CategoryCow, Sex: animals.SexFemale,
	})
	if err != nil {
		t.Fatalf("create cow: %v", err)
	}
	if _, err := f.assignments.Assign(ctx, cow.ID, "pen-1", time.Now(), "", ""); err != nil {
		t.Fatalf("seed assignment: %v", err)
	}

	res, err := f.editor.CreatePeriod(ctx, PeriodInput{
		PenID:        "pen-1",
		FunctionType: penfunctions.FunctionBreeding,
		Bulls:        []penfunctions.BullRef{{Name: "Samu", ENAR: "HU-200"}},
	})
	if err != nil {
		t.Fatalf("CreatePeriod error: %v", err)
	}

	snap := res.Period.Metadata.Breeding
	if snap == nil {
		t.Fatalf("expected breeding snapshot captured")
	}
	if snap.BullCount != 1 || snap.Bulls[0].ENAR != "HU-200" {
		t.Fatalf("bulls wrong: %+v", snap.Bulls)
	}
	if snap.FemaleCount != 1 || snap.Females[0].ENAR != "HU-100" {
		t.Fatalf("expected live female HU-100, got %+v", snap.Females)
	}
	if snap.ManualFemales {
		t.Fatalf("live capture must not be manual")
	}
}

func TestEditor_CreatePeriod_HistoricalBreedingUsesManualFemales(t *testing.T) {
	f := newEditorFixture()
	ctx := context.Background()

	end := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	res, err := f.editor.CreatePeriod(ctx, PeriodInput{
		PenID:                 "pen-1",
		FunctionType:          penfunctions.FunctionBreeding,
		Start:                 end.AddDate(0, -3, 0),
		End:                   &end,
		Historical:            true,
		HistoricalFemaleENARs: []string{"HU-500", "HU-501"},
	})
	if err != nil {
		t.Fatalf("CreatePeriod error: %v", err)
	}

	snap := res.Period.Metadata.Breeding
	if snap == nil || !snap.ManualFemales {
		t.Fatalf("expected manual snapshot, got %+v", snap)
	}
	if snap.FemaleCount != 2 {
		t.Fatalf("expected 2 manual females, got %d", snap.FemaleCount)
	}
}

func TestEditor_CreatePeriod_ExplicitSnapshotNotOverwritten(t *testing.T) {
	f := newEditorFixture()
	ctx := context.Background()

	given := &penfunctions.BreedingSnapshot{
		Bulls:      []penfunctions.BullRef{{Name: "Samu", ENAR: "HU-200"}},
		Females:    []penfunctions.FemaleRef{{ENAR: "HU-1", Category: "tehén"}},
		BullCount:  1,
		CapturedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	res, err := f.editor.CreatePeriod(ctx, PeriodInput{
		PenID:        "pen-1",
		FunctionType: penfunctions.FunctionBreeding,
		Metadata:     penfunctions.Metadata{Breeding: given},
	})
	if err != nil {
		t.Fatalf("CreatePeriod error: %v", err)
	}
	if res.Period.Metadata.Breeding != given {
		t.Fatalf("explicit snapshot must pass through untouched")
	}
}

func TestEditor_CreatePeriod_NonBreedingSkipsCapture(t *testing.T) {
	f := newEditorFixture()

	res, err := f.editor.CreatePeriod(context.Background(), PeriodInput{
		PenID:        "pen-1",
		FunctionType: penfunctions.FunctionEmpty,
	})
	if err != nil {
		t.Fatalf("CreatePeriod error: %v", err)
	}
	if !res.Period.Metadata.Empty() {
		t.Fatalf("üres period must carry empty metadata, got %+v", res.Period.Metadata)
	}
}

func TestEditor_DeletePeriod_CascadeReported(t *testing.T) {
	f := newEditorFixture()
	ctx := context.Background()

	res, err := f.editor.CreatePeriod(ctx, PeriodInput{
		PenID:        "pen-1",
		FunctionType: penfunctions.FunctionHospital,
	})
	if err != nil {
		t.Fatalf("CreatePeriod error: %v", err)
	}
	if _, err := f.assignments.Assign(ctx, "animal-1", "pen-1", time.Now(), "", ""); err != nil {
		t.Fatalf("seed assignment: %v", err)
	}

	del, err := f.editor.DeletePeriod(ctx, res.Period.ID)
	if err != nil {
		t.Fatalf("DeletePeriod error: %v", err)
	}
	if !del.WasActive || del.ClosedAssignments != 1 {
		t.Fatalf("expected active delete with 1 cascaded close, got %+v", del)
	}
}

func TestEditor_CreatePeriod_EmptyPenID(t *testing.T) {
	f := newEditorFixture()

	_, err := f.editor.CreatePeriod(context.Background(), PeriodInput{
		FunctionType: penfunctions.FunctionEmpty,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

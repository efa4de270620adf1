package penops

import (
	"context"
	"errors"
	"strings"
	"time"

	"livestock-pens/internal/domain/breeding"
	"livestock-pens/internal/domain/penfunctions"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// Editor es la orquestación fina que ve la UI para tocar períodos:
// "cambiar función ahora", "cargar período histórico", "editar período",
// "borrar período". No agrega invariantes propios: decide qué llamada
// hacer según los flags y delega todo lo demás en penfunctions/breeding.
type Editor struct {
	periods  *penfunctions.Service
	snapshot *breeding.SnapshotBuilder
}

func NewEditor(periodsSvc *penfunctions.Service, snapshotBuilder *breeding.SnapshotBuilder) *Editor {
	return &Editor{
		periods:  periodsSvc,
		snapshot: snapshotBuilder,
	}
}

type PeriodInput struct {
	PenID        string
	FunctionType penfunctions.FunctionType
	Start        time.Time
	End          *time.Time
	Metadata     penfunctions.Metadata
	Notes        string

	// Historical: back-fill de un período pasado (Start y End requeridos).
	Historical bool

	// Bulls + HistoricalFemaleENARs alimentan el snapshot cuando la
	// función es hárem. Ignorados para el resto.
	Bulls                 []penfunctions.BullRef
	HistoricalFemaleENARs []string
}

// CreatePeriod crea un período, eligiendo entre "cerrar el activo e
// insertar" (Historical == false) e "insertar histórico" (Historical ==
// true). Para períodos hárem sin snapshot explícito, captura uno en el
// momento de la creación: vivo para cambios de función, manual para
// back-fill.
func (e *Editor) CreatePeriod(ctx context.Context, in PeriodInput) (penfunctions.InsertResult, error) {
	penID := strings.TrimSpace(in.PenID)
	if penID == "" {
		return penfunctions.InsertResult{}, ErrInvalidInput
	}

	metadata := in.Metadata
	if in.FunctionType == penfunctions.FunctionBreeding && metadata.Breeding == nil {
		capture := breeding.CaptureInput{
			PenID: penID,
			Bulls: in.Bulls,
		}
		if in.Historical {
			capture.HistoricalFemaleENARs = in.HistoricalFemaleENARs
		}

		snap, err := e.snapshot.Capture(ctx, capture)
		if err != nil {
			return penfunctions.InsertResult{}, err
		}
		metadata.Breeding = &snap
	}

	return e.periods.InsertPeriod(ctx, penfunctions.InsertInput{
		PenID:        penID,
		FunctionType: in.FunctionType,
		Start:        in.Start,
		End:          in.End,
		Metadata:     metadata,
		Notes:        in.Notes,
		Historical:   in.Historical,
	})
}

// EditPeriod reemplaza un período existente (pantalla "editar").
func (e *Editor) EditPeriod(ctx context.Context, periodID string, in penfunctions.UpdateInput) (penfunctions.FunctionPeriod, error) {
	return e.periods.UpdatePeriod(ctx, periodID, in)
}

// DeletePeriod borra un período, con cascada de assignments si era el
// activo. La confirmación es responsabilidad de la UI.
func (e *Editor) DeletePeriod(ctx context.Context, periodID string) (penfunctions.DeleteResult, error) {
	return e.periods.DeletePeriod(ctx, periodID)
}

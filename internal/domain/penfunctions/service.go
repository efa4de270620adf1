package penfunctions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"livestock-pens/internal/domain/assignments"
	"livestock-pens/internal/platform/logger"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("period not found")

	// ErrConflict: la edición dejaría dos períodos abiertos en el mismo pen.
	ErrConflict = errors.New("pen already has an active period")
)

type Service struct {
	repo        Repository
	assignments *assignments.Service
	log         logger.Logger
	now         func() time.Time
}

func NewService(repo Repository, assignmentsSvc *assignments.Service, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:        repo,
		assignments: assignmentsSvc,
		log:         log,
		now:         time.Now,
	}
}

// ActivePeriod devuelve el período abierto del pen (End == nil).
// Si no hay ninguno pero sí hay históricos, cae al de Start más reciente:
// es un path de reparación por drift de datos, no una garantía. Se loguea
// porque indica que en algún momento el pen quedó sin período abierto.
func (s *Service) ActivePeriod(ctx context.Context, penID string) (FunctionPeriod, bool, error) {
	penID = strings.TrimSpace(penID)
	if penID == "" {
		return FunctionPeriod{}, false, ErrInvalidInput
	}

	open, err := s.repo.OpenByPen(ctx, penID)
	if err != nil {
		return FunctionPeriod{}, false, err
	}
	if open.ID != "" {
		return open, true, nil
	}

	// Fallback: más reciente por Start. El caller lo detecta con !p.Active().
	all, err := s.repo.ListByPen(ctx, penID)
	if err != nil {
		return FunctionPeriod{}, false, err
	}
	if len(all) == 0 {
		return FunctionPeriod{}, false, nil
	}

	latest := all[0]
	for _, p := range all[1:] {
		if p.Start.After(latest.Start) {
			latest = p
		}
	}

	s.log.Warn("active period fallback: pen has no open period",
		"pen_id", penID,
		"fallback_period_id", latest.ID,
		"fallback_function", string(latest.FunctionType),
	)
	return latest, true, nil
}

type InsertInput struct {
	PenID        string
	FunctionType FunctionType
	Start        time.Time
	End          *time.Time
	Metadata     Metadata
	Notes        string

	// Historical: insertar un período pasado sin tocar el activo.
	// Requiere Start y End.
	Historical bool
}

type InsertResult struct {
	Period FunctionPeriod

	// Warnings no bloqueantes (solapes con períodos existentes, tipo
	// desconocido). El insert ya se hizo; el caller decide si mostrarlos.
	Warnings []string
}

// InsertPeriod crea un período de función.
//
// Historical == false ("cambiar función ahora"): cierra el período activo
// del pen poniéndole End = Start del nuevo, y crea el nuevo abierto.
//
// Historical == true ("back-fill"): inserta el período tal cual viene,
// con Start y End obligatorios, sin tocar el activo.
//
// El solape con otros períodos no se rechaza: el back-fill manual es
// aproximado por naturaleza. Se devuelve como warning, no como error.
func (s *Service) InsertPeriod(ctx context.Context, in InsertInput) (InsertResult, error) {
	penID := strings.TrimSpace(in.PenID)
	if penID == "" || in.FunctionType == "" {
		return InsertResult{}, ErrInvalidInput
	}
	if !in.Metadata.Validate(in.FunctionType) {
		return InsertResult{}, ErrInvalidInput
	}

	now := s.now()
	start := in.Start
	warnings := make([]string, 0)

	if !in.FunctionType.Known() {
		warnings = append(warnings, fmt.Sprintf("unknown function type %q", in.FunctionType))
	}

	if in.Historical {
		if start.IsZero() || in.End == nil {
			return InsertResult{}, ErrInvalidInput
		}
		if in.End.Before(start) {
			return InsertResult{}, ErrInvalidInput
		}
	} else {
		if start.IsZero() {
			start = now
		}
		if in.End != nil && in.End.Before(start) {
			return InsertResult{}, ErrInvalidInput
		}

		// Cerrar el activo en el Start del nuevo: la línea de tiempo del
		// pen queda sin hueco entre función saliente y entrante.
		open, err := s.repo.OpenByPen(ctx, penID)
		if err != nil {
			return InsertResult{}, err
		}
		if open.ID != "" {
			end := start
			open.End = &end
			open.UpdatedAt = now
			if err := s.repo.Update(ctx, open); err != nil {
				return InsertResult{}, err
			}
		}
	}

	p := FunctionPeriod{
		ID:           uuid.NewString(),
		PenID:        penID,
		FunctionType: in.FunctionType,
		Start:        start,
		End:          in.End,
		Metadata:     in.Metadata,
		Notes:        strings.TrimSpace(in.Notes),
		Historical:   in.Historical,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	overlaps, err := s.overlapWarnings(ctx, p)
	if err != nil {
		return InsertResult{}, err
	}
	warnings = append(warnings, overlaps...)

	if err := s.repo.Create(ctx, p); err != nil {
		return InsertResult{}, err
	}

	for _, w := range warnings {
		s.log.Warn("period insert warning", "pen_id", penID, "period_id", p.ID, "warning", w)
	}

	return InsertResult{Period: p, Warnings: warnings}, nil
}

type DeleteResult struct {
	WasActive bool

	// ClosedAssignments: cuántas assignments abiertas cerró la cascada.
	// Siempre 0 para períodos históricos.
	ClosedAssignments int
}

// DeletePeriod borra un período. Si era el activo, antes de borrar cierra
// todas las assignments abiertas del pen (el pen deja de tener función,
// nadie puede "quedarse" dentro). Irreversible; el caller confirma.
func (s *Service) DeletePeriod(ctx context.Context, periodID string) (DeleteResult, error) {
	periodID = strings.TrimSpace(periodID)
	if periodID == "" {
		return DeleteResult{}, ErrInvalidInput
	}

	p, err := s.repo.GetByID(ctx, periodID)
	if err != nil {
		return DeleteResult{}, ErrNotFound
	}

	res := DeleteResult{WasActive: p.Active()}

	if p.Active() {
		closed, err := s.assignments.CloseAllForPen(ctx, p.PenID, s.now())
		if err != nil {
			return res, err
		}
		res.ClosedAssignments = closed
	}

	if err := s.repo.Delete(ctx, periodID); err != nil {
		return res, err
	}

	if res.WasActive {
		s.log.Info("active period deleted with cascade",
			"pen_id", p.PenID,
			"period_id", periodID,
			"closed_assignments", res.ClosedAssignments,
		)
	}
	return res, nil
}

type UpdateInput struct {
	FunctionType FunctionType
	Start        time.Time
	End          *time.Time
	Metadata     Metadata
	Notes        string
}

// UpdatePeriod reemplaza función/fechas/metadata/notas de un período
// existente (la pantalla "editar período" manda todo el registro).
func (s *Service) UpdatePeriod(ctx context.Context, periodID string, in UpdateInput) (FunctionPeriod, error) {
	periodID = strings.TrimSpace(periodID)
	if periodID == "" || in.FunctionType == "" || in.Start.IsZero() {
		return FunctionPeriod{}, ErrInvalidInput
	}
	if in.End != nil && in.End.Before(in.Start) {
		return FunctionPeriod{}, ErrInvalidInput
	}
	if !in.Metadata.Validate(in.FunctionType) {
		return FunctionPeriod{}, ErrInvalidInput
	}

	p, err := s.repo.GetByID(ctx, periodID)
	if err != nil {
		return FunctionPeriod{}, ErrNotFound
	}

	// Reabrir un período histórico no puede dejar dos activos en el pen.
	if in.End == nil && p.End != nil {
		open, err := s.repo.OpenByPen(ctx, p.PenID)
		if err != nil {
			return FunctionPeriod{}, err
		}
		if open.ID != "" && open.ID != p.ID {
			return FunctionPeriod{}, ErrConflict
		}
	}

	p.FunctionType = in.FunctionType
	p.Start = in.Start
	p.End = in.End
	p.Metadata = in.Metadata
	p.Notes = strings.TrimSpace(in.Notes)
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return FunctionPeriod{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, periodID string) (FunctionPeriod, error) {
	periodID = strings.TrimSpace(periodID)
	if periodID == "" {
		return FunctionPeriod{}, ErrInvalidInput
	}
	p, err := s.repo.GetByID(ctx, periodID)
	if err != nil {
		return FunctionPeriod{}, ErrNotFound
	}
	return p, nil
}

func (s *Service) ListByPen(ctx context.Context, penID string) ([]FunctionPeriod, error) {
	penID = strings.TrimSpace(penID)
	if penID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByPen(ctx, penID)
}

// UpdateMetadata reemplaza solo la metadata del período (lo usa el
// bull-sync para anexar toros sin tocar fechas ni función).
func (s *Service) UpdateMetadata(ctx context.Context, periodID string, m Metadata) (FunctionPeriod, error) {
	p, err := s.GetByID(ctx, periodID)
	if err != nil {
		return FunctionPeriod{}, err
	}
	if !m.Validate(p.FunctionType) {
		return FunctionPeriod{}, ErrInvalidInput
	}

	p.Metadata = m
	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return FunctionPeriod{}, err
	}
	return p, nil
}

func (s *Service) overlapWarnings(ctx context.Context, candidate FunctionPeriod) ([]string, error) {
	existing, err := s.repo.ListByPen(ctx, candidate.PenID)
	if err != nil {
		return nil, err
	}

	warnings := make([]string, 0)
	for _, other := range existing {
		if other.ID == candidate.ID {
			continue
		}
		if candidate.Overlaps(other) {
			warnings = append(warnings, fmt.Sprintf(
				"overlaps %s period starting %s",
				other.FunctionType, other.Start.Format("2006-01-02"),
			))
		}
	}
	return warnings, nil
}

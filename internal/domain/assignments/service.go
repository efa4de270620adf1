package assignments

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("assignment not found")

	// ErrConflict: el animal ya tiene una assignment abierta. El caller
	// debe cerrarla primero; el MovementCoordinator garantiza ese orden.
	ErrConflict = errors.New("animal already has an open assignment")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Assign abre una assignment nueva. Falla con ErrConflict si el animal
// ya tiene una abierta (en cualquier pen): aquí no se cierra nada
// implícitamente, ese es trabajo del coordinator.
func (s *Service) Assign(ctx context.Context, animalID, penID string, at time.Time, reason, notes string) (Assignment, error) {
	animalID = strings.TrimSpace(animalID)
	penID = strings.TrimSpace(penID)

	if animalID == "" || penID == "" {
		return Assignment{}, ErrInvalidInput
	}
	if at.IsZero() {
		at = s.now()
	}

	open, err := s.repo.OpenByAnimal(ctx, animalID)
	if err != nil {
		return Assignment{}, err
	}
	if open.ID != "" {
		return Assignment{}, ErrConflict
	}

	a := Assignment{
		ID:         uuid.NewString(),
		AnimalID:   animalID,
		PenID:      penID,
		AssignedAt: at,
		RemovedAt:  nil,
		Reason:     strings.TrimSpace(reason),
		Notes:      strings.TrimSpace(notes),
		CreatedAt:  s.now(),
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Assignment{}, err
	}
	return a, nil
}

// Close cierra la assignment abierta del animal seteando RemovedAt.
// Idempotente: si no hay assignment abierta, no-op (no es error).
func (s *Service) Close(ctx context.Context, animalID string, at time.Time) error {
	animalID = strings.TrimSpace(animalID)
	if animalID == "" {
		return ErrInvalidInput
	}
	if at.IsZero() {
		at = s.now()
	}

	open, err := s.repo.OpenByAnimal(ctx, animalID)
	if err != nil {
		return err
	}
	if open.ID == "" {
		return nil // ya está cerrado; cerrar dos veces == cerrar una vez
	}

	open.RemovedAt = &at
	return s.repo.Update(ctx, open)
}

// OpenAssignmentFor devuelve la (única) assignment abierta del animal.
// ok == false si el animal no está en ningún pen.
func (s *Service) OpenAssignmentFor(ctx context.Context, animalID string) (Assignment, bool, error) {
	animalID = strings.TrimSpace(animalID)
	if animalID == "" {
		return Assignment{}, false, ErrInvalidInput
	}

	open, err := s.repo.OpenByAnimal(ctx, animalID)
	if err != nil {
		return Assignment{}, false, err
	}
	if open.ID == "" {
		return Assignment{}, false, nil
	}
	return open, true, nil
}

// CurrentOccupants devuelve las assignments abiertas del pen.
func (s *Service) CurrentOccupants(ctx context.Context, penID string) ([]Assignment, error) {
	penID = strings.TrimSpace(penID)
	if penID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.OpenByPen(ctx, penID)
}

// CloseAllForPen cierra todas las assignments abiertas del pen en `at`.
// Lo usa la cascada de borrado de período activo. Devuelve cuántas cerró.
func (s *Service) CloseAllForPen(ctx context.Context, penID string, at time.Time) (int, error) {
	open, err := s.CurrentOccupants(ctx, penID)
	if err != nil {
		return 0, err
	}
	if at.IsZero() {
		at = s.now()
	}

	closed := 0
	for _, a := range open {
		a.RemovedAt = &at
		if err := s.repo.Update(ctx, a); err != nil {
			return closed, err
		}
		closed++
	}
	return closed, nil
}

// HistoryByAnimal devuelve todas las assignments del animal (abiertas y cerradas).
func (s *Service) HistoryByAnimal(ctx context.Context, animalID string) ([]Assignment, error) {
	animalID = strings.TrimSpace(animalID)
	if animalID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByAnimal(ctx, animalID)
}

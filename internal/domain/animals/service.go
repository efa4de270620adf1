package animals

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("animal not found")
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

type CreateInput struct {
	ENAR       string
	TempTag    string
	Name       string
	Category   Category
	Sex        Sex
	BirthDate  *time.Time
	MotherENAR string
	FatherENAR string
	Notes      string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Animal, error) {
	enar := strings.TrimSpace(in.ENAR)
	tempTag := strings.TrimSpace(in.TempTag)

	// ENAR o tag temporal: al menos uno
	if enar == "" && tempTag == "" {
		return Animal{}, ErrInvalidInput
	}
	if in.Category == "" || in.Sex == "" {
		return Animal{}, ErrInvalidInput
	}

	now := s.now()
	a := Animal{
		ID:         uuid.NewString(),
		ENAR:       enar,
		TempTag:    tempTag,
		Name:       strings.TrimSpace(in.Name),
		Category:   in.Category,
		Sex:        in.Sex,
		Status:     StatusActive,
		BirthDate:  in.BirthDate,
		MotherENAR: strings.TrimSpace(in.MotherENAR),
		FatherENAR: strings.TrimSpace(in.FatherENAR),
		Notes:      strings.TrimSpace(in.Notes),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name     *string
	Category *Category
	Status   *Status
	Notes    *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Animal{}, ErrInvalidInput
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Animal{}, ErrNotFound
	}

	if in.Name != nil {
		a.Name = strings.TrimSpace(*in.Name)
	}
	if in.Category != nil {
		if *in.Category == "" {
			return Animal{}, ErrInvalidInput
		}
		a.Category = *in.Category
	}
	if in.Status != nil {
		if *in.Status != StatusActive && *in.Status != StatusInactive {
			return Animal{}, ErrInvalidInput
		}
		a.Status = *in.Status
	}
	if in.Notes != nil {
		a.Notes = strings.TrimSpace(*in.Notes)
	}

	a.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Animal{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// ResolveByENAR busca un animal por su crotal. Lo usa el bull-sync para
// pasar de "toro declarado en metadata" a un animal físico.
func (s *Service) ResolveByENAR(ctx context.Context, enar string) (Animal, error) {
	enar = strings.TrimSpace(enar)
	if enar == "" {
		return Animal{}, ErrInvalidInput
	}
	a, err := s.repo.GetByENAR(ctx, enar)
	if err != nil {
		return Animal{}, ErrNotFound
	}
	return a, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Animal, error) {
	return s.repo.List(ctx, filter)
}

// SetCurrentPen actualiza el cache denormalizado de pen actual.
// Solo debe llamarlo el MovementCoordinator; ver comentario en el modelo.
func (s *Service) SetCurrentPen(ctx context.Context, animalID, penNo string) error {
	a, err := s.repo.GetByID(ctx, animalID)
	if err != nil {
		return ErrNotFound
	}
	a.CurrentPenNo = penNo
	a.UpdatedAt = s.now()
	return s.repo.Update(ctx, a)
}

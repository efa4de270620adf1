package animalevents

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
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

type RecordInput struct {
	AnimalID      string
	Type          EventType
	OccurredAt    time.Time
	PenID         string
	PreviousPenID string
	PenFunction   string
	Reason        string
	Notes         string
	Historical    bool
	RecordedBy    string
}

// Record agrega una entrada al log. Falla solo por input malformado o
// por error de storage; no hay reglas de negocio acá, es un sink.
func (s *Service) Record(ctx context.Context, in RecordInput) (AnimalEvent, error) {
	animalID := strings.TrimSpace(in.AnimalID)
	if animalID == "" || in.Type == "" {
		return AnimalEvent{}, ErrInvalidInput
	}

	occurredAt := in.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = s.now()
	}

	e := AnimalEvent{
		ID:            uuid.NewString(),
		AnimalID:      animalID,
		Type:          in.Type,
		OccurredAt:    occurredAt,
		RecordedAt:    s.now(),
		PenID:         strings.TrimSpace(in.PenID),
		PreviousPenID: strings.TrimSpace(in.PreviousPenID),
		PenFunction:   strings.TrimSpace(in.PenFunction),
		Reason:        strings.TrimSpace(in.Reason),
		Notes:         strings.TrimSpace(in.Notes),
		Historical:    in.Historical,
		RecordedBy:    strings.TrimSpace(in.RecordedBy),
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return AnimalEvent{}, err
	}
	return e, nil
}

func (s *Service) ListByAnimal(ctx context.Context, animalID string, filter ListFilter) ([]AnimalEvent, error) {
	animalID = strings.TrimSpace(animalID)
	if animalID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByAnimal(ctx, animalID, filter)
}

func (s *Service) ListByPen(ctx context.Context, penID string, filter ListFilter) ([]AnimalEvent, error) {
	penID = strings.TrimSpace(penID)
	if penID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByPen(ctx, penID, filter)
}

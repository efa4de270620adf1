package pens

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("pen not found")
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
	PenNumber    string
	Capacity     int
	Location     string
	PhysicalType PhysicalType
	Notes        string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Pen, error) {
	penNumber := strings.TrimSpace(in.PenNumber)
	if penNumber == "" {
		return Pen{}, ErrInvalidInput
	}
	if in.Capacity < 0 {
		return Pen{}, ErrInvalidInput
	}

	physicalType := in.PhysicalType
	if physicalType == "" {
		physicalType = PhysicalTypeOutdoor
	}

	now := s.now()
	p := Pen{
		ID:           uuid.NewString(),
		PenNumber:    penNumber,
		Capacity:     in.Capacity,
		Location:     strings.TrimSpace(in.Location),
		PhysicalType: physicalType,
		Notes:        strings.TrimSpace(in.Notes),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pen{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pen, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pen{}, ErrInvalidInput
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pen{}, ErrNotFound
	}
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]Pen, error) {
	return s.repo.List(ctx)
}

package animalevents

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, e AnimalEvent) error
	ListByAnimal(ctx context.Context, animalID string, filter ListFilter) ([]AnimalEvent, error)
	ListByPen(ctx context.Context, penID string, filter ListFilter) ([]AnimalEvent, error)
}

type ListFilter struct {
	Types []EventType
	From  *time.Time
	To    *time.Time
	Limit int
}

package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"livestock-pens/internal/domain/animalevents"
)

type animalEventsRepo struct {
	mu   sync.RWMutex
	byID map[string]animalevents.AnimalEvent
}

func NewAnimalEventsRepo() animalevents.Repository {
	return &animalEventsRepo{
		byID: make(map[string]animalevents.AnimalEvent),
	}
}

func (r *animalEventsRepo) Create(ctx context.Context, e animalevents.AnimalEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" {
		return errors.New("event id required")
	}
	if _, exists := r.byID[e.ID]; exists {
		return errors.New("event already exists")
	}
	r.byID[e.ID] = e
	return nil
}

func (r *animalEventsRepo) ListByAnimal(ctx context.Context, animalID string, filter animalevents.ListFilter) ([]animalevents.AnimalEvent, error) {
	return r.list(func(e animalevents.AnimalEvent) bool { return e.AnimalID == animalID }, filter)
}

func (r *animalEventsRepo) ListByPen(ctx context.Context, penID string, filter animalevents.ListFilter) ([]animalevents.AnimalEvent, error) {
	return r.list(func(e animalevents.AnimalEvent) bool { return e.PenID == penID }, filter)
}

func (r *animalEventsRepo) list(match func(animalevents.AnimalEvent) bool, filter animalevents.ListFilter) ([]animalevents.AnimalEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	out := make([]animalevents.AnimalEvent, 0)
	for _, e := range r.byID {
		if !match(e) {
			continue
		}

		if len(filter.Types) > 0 {
			ok := false
			for _, t := range filter.Types {
				if e.Type == t {
					ok = true
					break
				}
			}
			if !ok {
				continue
			}
		}

		if filter.From != nil && e.OccurredAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && e.OccurredAt.After(*filter.To) {
			continue
		}

		out = append(out, e)
	}

	// Más reciente primero
	sort.Slice(out, func(i, j int) bool {
		return out[i].OccurredAt.After(out[j].OccurredAt)
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"livestock-pens/internal/domain/assignments"
)

type assignmentsRepo struct {
	mu   sync.RWMutex
	byID map[string]assignments.Assignment
}

func NewAssignmentsRepo() assignments.Repository {
	return &assignmentsRepo{
		byID: make(map[string]assignments.Assignment),
	}
}

func (r *assignmentsRepo) Create(ctx context.Context, a assignments.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("assignment id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("assignment already exists")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *assignmentsRepo) Update(ctx context.Context, a assignments.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[a.ID]; !exists {
		return ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *assignmentsRepo) GetByID(ctx context.Context, id string) (assignments.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return assignments.Assignment{}, ErrNotFound
	}
	return a, nil
}

func (r *assignmentsRepo) OpenByAnimal(ctx context.Context, animalID string) (assignments.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.byID {
		if a.AnimalID == animalID && a.Open() {
			return a, nil
		}
	}
	return assignments.Assignment{}, nil
}

func (r *assignmentsRepo) OpenByPen(ctx context.Context, penID string) ([]assignments.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]assignments.Assignment, 0)
	for _, a := range r.byID {
		if a.PenID == penID && a.Open() {
			out = append(out, a)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].AssignedAt.Before(out[j].AssignedAt)
	})
	return out, nil
}

func (r *assignmentsRepo) ListByAnimal(ctx context.Context, animalID string) ([]assignments.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]assignments.Assignment, 0)
	for _, a := range r.byID {
		if a.AnimalID == animalID {
			out = append(out, a)
		}
	}

	// Más reciente primero
	sort.Slice(out, func(i, j int) bool {
		return out[i].AssignedAt.After(out[j].AssignedAt)
	})
	return out, nil
}

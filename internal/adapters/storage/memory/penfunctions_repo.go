package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"livestock-pens/internal/domain/penfunctions"
)

type penFunctionsRepo struct {
	mu   sync.RWMutex
	byID map[string]penfunctions.FunctionPeriod
}

func NewPenFunctionsRepo() penfunctions.Repository {
	return &penFunctionsRepo{
		byID: make(map[string]penfunctions.FunctionPeriod),
	}
}

func (r *penFunctionsRepo) Create(ctx context.Context, p penfunctions.FunctionPeriod) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("period id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("period already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *penFunctionsRepo) Update(ctx context.Context, p penfunctions.FunctionPeriod) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; !exists {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *penFunctionsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *penFunctionsRepo) GetByID(ctx context.Context, id string) (penfunctions.FunctionPeriod, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return penfunctions.FunctionPeriod{}, ErrNotFound
	}
	return p, nil
}

func (r *penFunctionsRepo) OpenByPen(ctx context.Context, penID string) (penfunctions.FunctionPeriod, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.byID {
		if p.PenID == penID && p.Active() {
			return p, nil
		}
	}
	return penfunctions.FunctionPeriod{}, nil
}

func (r *penFunctionsRepo) ListByPen(ctx context.Context, penID string) ([]penfunctions.FunctionPeriod, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]penfunctions.FunctionPeriod, 0)
	for _, p := range r.byID {
		if p.PenID == penID {
			out = append(out, p)
		}
	}

	// Más reciente primero
	sort.Slice(out, func(i, j int) bool {
		return out[i].Start.After(out[j].Start)
	})
	return out, nil
}

package penfunctions

import "context"

type Repository interface {
	Create(ctx context.Context, p FunctionPeriod) error
	Update(ctx context.Context, p FunctionPeriod) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (FunctionPeriod, error)

	// OpenByPen devuelve el período con End == nil del pen.
	// Si no hay ninguno, devuelve FunctionPeriod{} sin error.
	OpenByPen(ctx context.Context, penID string) (FunctionPeriod, error)

	ListByPen(ctx context.Context, penID string) ([]FunctionPeriod, error)
}

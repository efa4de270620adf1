package pens

import "context"

type Repository interface {
	Create(ctx context.Context, p Pen) error
	Update(ctx context.Context, p Pen) error
	GetByID(ctx context.Context, id string) (Pen, error)
	List(ctx context.Context) ([]Pen, error)
}

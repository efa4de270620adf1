package animals

import "context"

type Repository interface {
	Create(ctx context.Context, a Animal) error
	Update(ctx context.Context, a Animal) error
	GetByID(ctx context.Context, id string) (Animal, error)
	GetByENAR(ctx context.Context, enar string) (Animal, error)
	List(ctx context.Context, filter ListFilter) ([]Animal, error)
}

type ListFilter struct {
	Category Category
	Status   Status
	Limit    int
}

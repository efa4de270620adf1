package assignments

import "context"

type Repository interface {
	Create(ctx context.Context, a Assignment) error
	Update(ctx context.Context, a Assignment) error
	GetByID(ctx context.Context, id string) (Assignment, error)

	// OpenByAnimal devuelve la assignment abierta del animal.
	// Si no hay ninguna, devuelve Assignment{} sin error (no es excepcional).
	OpenByAnimal(ctx context.Context, animalID string) (Assignment, error)

	// OpenByPen devuelve todas las assignments abiertas del pen.
	OpenByPen(ctx context.Context, penID string) ([]Assignment, error)

	ListByAnimal(ctx context.Context, animalID string) ([]Assignment, error)
}

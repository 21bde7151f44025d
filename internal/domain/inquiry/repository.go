package inquiry

import "context"

// Repository describes inquiry persistence needs from use cases.
type Repository interface {
	ListByCategories(ctx context.Context, categories ...Category) ([]Request, error)
	Update(ctx context.Context, item Request) error
}

package region

import "context"

// Repository describes region reference-data needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, id int64) (Region, bool, error)
	GetByName(ctx context.Context, name string) (Region, bool, error)
	List(ctx context.Context) ([]Region, error)
	Create(ctx context.Context, name string) (Region, error)
}

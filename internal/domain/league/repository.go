package league

import "context"

// Repository describes league-tree persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, id int64) (League, bool, error)
	GetByName(ctx context.Context, name string) (League, bool, error)
	GetChild(ctx context.Context, parentID int64, name string) (League, bool, error)
	Create(ctx context.Context, item League) (League, error)
}

// SeasonRepository describes season persistence needs from use cases.
type SeasonRepository interface {
	GetByID(ctx context.Context, id int64) (Season, bool, error)
	GetByName(ctx context.Context, name string) (Season, bool, error)
	Create(ctx context.Context, name string) (Season, error)
}

package club

import "context"

// Repository describes club persistence needs from use cases. Editors are
// kept behind repository methods rather than on the model; the import only
// ever unions them, never rewrites them.
type Repository interface {
	GetByID(ctx context.Context, id int64) (Club, bool, error)
	GetByMapper(ctx context.Context, mapperID int64) (Club, bool, error)
	FindByName(ctx context.Context, name string) ([]Club, error)
	ListNameContains(ctx context.Context, fragment string) ([]Club, error)
	List(ctx context.Context) ([]Club, error)
	ListUnmanaged(ctx context.Context) ([]Club, error)
	Create(ctx context.Context, item Club) (Club, error)
	Update(ctx context.Context, item Club) error
	Delete(ctx context.Context, id int64) error

	ListEditors(ctx context.Context, clubID int64) ([]int64, error)
	AddEditor(ctx context.Context, clubID, editorID int64) error
}

package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, id int64) (Team, bool, error)
	GetByMapper(ctx context.Context, mapperID int64) (Team, bool, error)
	FindByName(ctx context.Context, name string) ([]Team, error)
	ListByClub(ctx context.Context, clubID int64) ([]Team, error)
	ListUnmanaged(ctx context.Context) ([]Team, error)
	Create(ctx context.Context, item Team) (Team, error)
	Update(ctx context.Context, item Team) error
	Delete(ctx context.Context, id int64) error

	ListEditors(ctx context.Context, teamID int64) ([]int64, error)
	AddEditor(ctx context.Context, teamID, editorID int64) error
}

package mapper

import "context"

// EntityFilter narrows entity lookups. Zero values mean "any".
type EntityFilter struct {
	TargetID       int64
	SourceID       int64
	ExternalID     string
	RelatedType    RelatedType
	DatabaseSource DatabaseSource
}

// Repository describes mapper persistence needs from use cases. The storage
// layer enforces uniqueness on (target, related type, database source).
type Repository interface {
	CreateMapper(ctx context.Context) (Mapper, error)
	GetMapper(ctx context.Context, id int64) (Mapper, bool, error)

	GetSourceByName(ctx context.Context, name string) (Source, bool, error)
	CreateSource(ctx context.Context, name string) (Source, error)

	GetEntity(ctx context.Context, filter EntityFilter) (Entity, bool, error)
	ListEntitiesByExternalID(ctx context.Context, externalID string) ([]Entity, error)
	ListEntitiesByTarget(ctx context.Context, targetID int64) ([]Entity, error)
	ListEntitiesByTypes(ctx context.Context, types ...RelatedType) ([]Entity, error)
	CreateEntity(ctx context.Context, entity Entity) (Entity, error)
	UpdateEntity(ctx context.Context, entity Entity) error
}

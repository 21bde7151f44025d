package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pitchmap/lnp-importer/internal/domain/mapper"
	"github.com/pitchmap/lnp-importer/internal/usecase"
)

// MapperRepository is the in-memory mapper store used by tests and dry runs.
// It enforces the same one-entity-per-(target, type, source) rule the SQL
// schema does.
type MapperRepository struct {
	mu       sync.RWMutex
	mappers  map[int64]mapper.Mapper
	sources  map[int64]mapper.Source
	entities map[int64]mapper.Entity

	nextMapperID int64
	nextSourceID int64
	nextEntityID int64
}

func NewMapperRepository() *MapperRepository {
	return &MapperRepository{
		mappers:  make(map[int64]mapper.Mapper),
		sources:  make(map[int64]mapper.Source),
		entities: make(map[int64]mapper.Entity),
	}
}

func (r *MapperRepository) CreateMapper(_ context.Context) (mapper.Mapper, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextMapperID++
	now := time.Now()
	item := mapper.Mapper{ID: r.nextMapperID, CreatedAt: now, UpdatedAt: now}
	r.mappers[item.ID] = item

	return item, nil
}

func (r *MapperRepository) GetMapper(_ context.Context, id int64) (mapper.Mapper, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.mappers[id]
	return item, ok, nil
}

func (r *MapperRepository) GetSourceByName(_ context.Context, name string) (mapper.Source, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.sources {
		if item.Name == name {
			return item, true, nil
		}
	}

	return mapper.Source{}, false, nil
}

func (r *MapperRepository) CreateSource(_ context.Context, name string) (mapper.Source, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.sources {
		if item.Name == name {
			return mapper.Source{}, fmt.Errorf("%w: mapper source %q exists", usecase.ErrRepositoryConstraint, name)
		}
	}

	r.nextSourceID++
	item := mapper.Source{ID: r.nextSourceID, Name: name}
	r.sources[item.ID] = item

	return item, nil
}

func (r *MapperRepository) GetEntity(_ context.Context, filter mapper.EntityFilter) (mapper.Entity, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range sortedIDs(r.entities) {
		if matchesFilter(r.entities[id], filter) {
			return r.entities[id], true, nil
		}
	}

	return mapper.Entity{}, false, nil
}

func (r *MapperRepository) ListEntitiesByExternalID(_ context.Context, externalID string) ([]mapper.Entity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]mapper.Entity, 0, 2)
	for _, id := range sortedIDs(r.entities) {
		if r.entities[id].ExternalID == externalID {
			out = append(out, r.entities[id])
		}
	}

	return out, nil
}

func (r *MapperRepository) ListEntitiesByTarget(_ context.Context, targetID int64) ([]mapper.Entity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]mapper.Entity, 0, 2)
	for _, id := range sortedIDs(r.entities) {
		if r.entities[id].TargetID == targetID {
			out = append(out, r.entities[id])
		}
	}

	return out, nil
}

func (r *MapperRepository) ListEntitiesByTypes(_ context.Context, types ...mapper.RelatedType) ([]mapper.Entity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[mapper.RelatedType]struct{}, len(types))
	for _, t := range types {
		wanted[t] = struct{}{}
	}

	out := make([]mapper.Entity, 0, len(r.entities))
	for _, id := range sortedIDs(r.entities) {
		if _, ok := wanted[r.entities[id].RelatedType]; ok {
			out = append(out, r.entities[id])
		}
	}

	return out, nil
}

func (r *MapperRepository) CreateEntity(_ context.Context, item mapper.Entity) (mapper.Entity, error) {
	if err := item.Validate(); err != nil {
		return mapper.Entity{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.mappers[item.TargetID]; !ok {
		return mapper.Entity{}, fmt.Errorf("%w: mapper id=%d does not exist", usecase.ErrRepositoryConstraint, item.TargetID)
	}
	for _, existing := range r.entities {
		if existing.TargetID == item.TargetID &&
			existing.RelatedType == item.RelatedType &&
			existing.DatabaseSource == item.DatabaseSource {
			return mapper.Entity{}, fmt.Errorf(
				"%w: mapper %d already has a %s/%s entity",
				usecase.ErrDataConflict, item.TargetID, item.RelatedType, item.DatabaseSource,
			)
		}
	}

	r.nextEntityID++
	now := time.Now()
	item.ID = r.nextEntityID
	item.CreatedAt = now
	item.UpdatedAt = now
	r.entities[item.ID] = item

	return item, nil
}

func (r *MapperRepository) UpdateEntity(_ context.Context, item mapper.Entity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.entities[item.ID]
	if !ok {
		return fmt.Errorf("%w: mapper entity id=%d", usecase.ErrNotFound, item.ID)
	}

	item.CreatedAt = existing.CreatedAt
	item.UpdatedAt = time.Now()
	r.entities[item.ID] = item

	return nil
}


func matchesFilter(item mapper.Entity, filter mapper.EntityFilter) bool {
	if filter.TargetID != 0 && item.TargetID != filter.TargetID {
		return false
	}
	if filter.SourceID != 0 && item.SourceID != filter.SourceID {
		return false
	}
	if filter.ExternalID != "" && item.ExternalID != filter.ExternalID {
		return false
	}
	if filter.RelatedType != "" && item.RelatedType != filter.RelatedType {
		return false
	}
	if filter.DatabaseSource != "" && item.DatabaseSource != filter.DatabaseSource {
		return false
	}

	return true
}

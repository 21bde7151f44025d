package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pitchmap/lnp-importer/internal/domain/mapper"
	qb "github.com/pitchmap/lnp-importer/internal/platform/querybuilder"
	"github.com/pitchmap/lnp-importer/internal/usecase"
)

type MapperRepository struct {
	db *sqlx.DB
}

func NewMapperRepository(db *sqlx.DB) *MapperRepository {
	return &MapperRepository{db: db}
}

func (r *MapperRepository) CreateMapper(ctx context.Context) (mapper.Mapper, error) {
	now := time.Now().UTC()
	query, args, err := qb.InsertInto("mappers").
		Columns("created_at", "updated_at").
		Values(now, now).
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		return mapper.Mapper{}, fmt.Errorf("build create mapper query: %w", err)
	}

	var mapperID int64
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&mapperID); err != nil {
		return mapper.Mapper{}, fmt.Errorf("create mapper: %w", err)
	}

	return mapper.Mapper{ID: mapperID, CreatedAt: now, UpdatedAt: now}, nil
}

func (r *MapperRepository) GetMapper(ctx context.Context, id int64) (mapper.Mapper, bool, error) {
	query, args, err := qb.Select("*").
		From("mappers").
		Where(qb.Eq("id", id)).
		Limit(1).
		ToSQL()
	if err != nil {
		return mapper.Mapper{}, false, fmt.Errorf("build get mapper query: %w", err)
	}

	var row mapperTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return mapper.Mapper{}, false, nil
		}
		return mapper.Mapper{}, false, fmt.Errorf("get mapper: %w", err)
	}

	return mapperFromRow(row), true, nil
}

func (r *MapperRepository) GetSourceByName(ctx context.Context, name string) (mapper.Source, bool, error) {
	query, args, err := qb.Select("*").
		From("mapper_sources").
		Where(qb.Eq("name", name)).
		Limit(1).
		ToSQL()
	if err != nil {
		return mapper.Source{}, false, fmt.Errorf("build get mapper source query: %w", err)
	}

	var row mapperSourceTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return mapper.Source{}, false, nil
		}
		return mapper.Source{}, false, fmt.Errorf("get mapper source: %w", err)
	}

	return mapper.Source{ID: row.ID, Name: row.Name}, true, nil
}

func (r *MapperRepository) CreateSource(ctx context.Context, name string) (mapper.Source, error) {
	query, args, err := qb.InsertInto("mapper_sources").
		Columns("name").
		Values(name).
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		return mapper.Source{}, fmt.Errorf("build create mapper source query: %w", err)
	}

	var sourceID int64
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&sourceID); err != nil {
		if isUniqueViolation(err) {
			return mapper.Source{}, fmt.Errorf("%w: mapper source %q", usecase.ErrRepositoryConstraint, name)
		}
		return mapper.Source{}, fmt.Errorf("create mapper source: %w", err)
	}

	return mapper.Source{ID: sourceID, Name: name}, nil
}

func (r *MapperRepository) GetEntity(ctx context.Context, filter mapper.EntityFilter) (mapper.Entity, bool, error) {
	conditions := make([]qb.Condition, 0, 5)
	if filter.TargetID != 0 {
		conditions = append(conditions, qb.Eq("target_id", filter.TargetID))
	}
	if filter.SourceID != 0 {
		conditions = append(conditions, qb.Eq("source_id", filter.SourceID))
	}
	if filter.ExternalID != "" {
		conditions = append(conditions, qb.Eq("external_id", filter.ExternalID))
	}
	if filter.RelatedType != "" {
		conditions = append(conditions, qb.Eq("related_type", string(filter.RelatedType)))
	}
	if filter.DatabaseSource != "" {
		conditions = append(conditions, qb.Eq("database_source", string(filter.DatabaseSource)))
	}

	query, args, err := qb.Select("*").
		From("mapper_entities").
		Where(conditions...).
		OrderBy("id").
		Limit(1).
		ToSQL()
	if err != nil {
		return mapper.Entity{}, false, fmt.Errorf("build get mapper entity query: %w", err)
	}

	var row mapperEntityTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return mapper.Entity{}, false, nil
		}
		return mapper.Entity{}, false, fmt.Errorf("get mapper entity: %w", err)
	}

	return mapperEntityFromRow(row), true, nil
}

func (r *MapperRepository) ListEntitiesByExternalID(ctx context.Context, externalID string) ([]mapper.Entity, error) {
	return r.listEntities(ctx, qb.Eq("external_id", externalID))
}

func (r *MapperRepository) ListEntitiesByTarget(ctx context.Context, targetID int64) ([]mapper.Entity, error) {
	return r.listEntities(ctx, qb.Eq("target_id", targetID))
}

func (r *MapperRepository) ListEntitiesByTypes(ctx context.Context, types ...mapper.RelatedType) ([]mapper.Entity, error) {
	values := make([]any, 0, len(types))
	for _, relatedType := range types {
		values = append(values, string(relatedType))
	}

	return r.listEntities(ctx, qb.In("related_type", values))
}

func (r *MapperRepository) listEntities(ctx context.Context, conditions ...qb.Condition) ([]mapper.Entity, error) {
	query, args, err := qb.Select("*").
		From("mapper_entities").
		Where(conditions...).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list mapper entities query: %w", err)
	}

	var rows []mapperEntityTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list mapper entities: %w", err)
	}

	out := make([]mapper.Entity, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapperEntityFromRow(row))
	}

	return out, nil
}

func (r *MapperRepository) CreateEntity(ctx context.Context, entity mapper.Entity) (mapper.Entity, error) {
	if err := entity.Validate(); err != nil {
		return mapper.Entity{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}

	insertModel := mapperEntityInsertModel{
		TargetID:       entity.TargetID,
		SourceID:       entity.SourceID,
		ExternalID:     entity.ExternalID,
		RelatedType:    string(entity.RelatedType),
		DatabaseSource: string(entity.DatabaseSource),
		Description:    entity.Description,
		URL:            entity.URL,
	}
	query, args, err := qb.InsertModel("mapper_entities", insertModel, "RETURNING id, created_at, updated_at")
	if err != nil {
		return mapper.Entity{}, fmt.Errorf("build create mapper entity query: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).
		Scan(&entity.ID, &entity.CreatedAt, &entity.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return mapper.Entity{}, fmt.Errorf(
				"%w: mapper %d already holds a %s/%s entity",
				usecase.ErrDataConflict, entity.TargetID, entity.RelatedType, entity.DatabaseSource,
			)
		}
		return mapper.Entity{}, fmt.Errorf("create mapper entity: %w", err)
	}

	return entity, nil
}

func (r *MapperRepository) UpdateEntity(ctx context.Context, entity mapper.Entity) error {
	query, args, err := updateEntityQuery(entity)
	if err != nil {
		return fmt.Errorf("build update mapper entity query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update mapper entity: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("%w: mapper entity id=%d", usecase.ErrNotFound, entity.ID)
	}

	return nil
}

// updateEntityQuery writes every mutable entity column, source_id included, so
// cross-source repoints persist the same way they do in memory.
func updateEntityQuery(entity mapper.Entity) (string, []any, error) {
	return qb.Update("mapper_entities").
		Set("source_id", entity.SourceID).
		Set("external_id", entity.ExternalID).
		Set("description", entity.Description).
		Set("url", entity.URL).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", entity.ID)).
		ToSQL()
}

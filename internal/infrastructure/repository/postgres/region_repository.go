package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pitchmap/lnp-importer/internal/domain/region"
	qb "github.com/pitchmap/lnp-importer/internal/platform/querybuilder"
	"github.com/pitchmap/lnp-importer/internal/usecase"
)

type regionTableModel struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

type RegionRepository struct {
	db *sqlx.DB
}

func NewRegionRepository(db *sqlx.DB) *RegionRepository {
	return &RegionRepository{db: db}
}

func (r *RegionRepository) GetByID(ctx context.Context, regionID int64) (region.Region, bool, error) {
	return r.getOne(ctx, qb.Eq("id", regionID))
}

func (r *RegionRepository) GetByName(ctx context.Context, name string) (region.Region, bool, error) {
	return r.getOne(ctx, qb.Eq("name", name))
}

func (r *RegionRepository) getOne(ctx context.Context, condition qb.Condition) (region.Region, bool, error) {
	query, args, err := qb.Select("*").
		From("regions").
		Where(condition).
		Limit(1).
		ToSQL()
	if err != nil {
		return region.Region{}, false, fmt.Errorf("build get region query: %w", err)
	}

	var row regionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return region.Region{}, false, nil
		}
		return region.Region{}, false, fmt.Errorf("get region: %w", err)
	}

	return region.Region{ID: row.ID, Name: row.Name}, true, nil
}

func (r *RegionRepository) List(ctx context.Context) ([]region.Region, error) {
	query, args, err := qb.Select("*").
		From("regions").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list regions query: %w", err)
	}

	var rows []regionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list regions: %w", err)
	}

	out := make([]region.Region, 0, len(rows))
	for _, row := range rows {
		out = append(out, region.Region{ID: row.ID, Name: row.Name})
	}

	return out, nil
}

func (r *RegionRepository) Create(ctx context.Context, name string) (region.Region, error) {
	query, args, err := qb.InsertInto("regions").
		Columns("name").
		Values(name).
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		return region.Region{}, fmt.Errorf("build create region query: %w", err)
	}

	var regionID int64
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&regionID); err != nil {
		if isUniqueViolation(err) {
			return region.Region{}, fmt.Errorf("%w: region %q", usecase.ErrRepositoryConstraint, name)
		}
		return region.Region{}, fmt.Errorf("create region: %w", err)
	}

	return region.Region{ID: regionID, Name: name}, nil
}

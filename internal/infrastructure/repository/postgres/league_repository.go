package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pitchmap/lnp-importer/internal/domain/league"
	qb "github.com/pitchmap/lnp-importer/internal/platform/querybuilder"
	"github.com/pitchmap/lnp-importer/internal/usecase"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID int64) (league.League, bool, error) {
	return r.getOne(ctx, qb.Eq("id", leagueID))
}

func (r *LeagueRepository) GetByName(ctx context.Context, name string) (league.League, bool, error) {
	return r.getOne(ctx, qb.Eq("name", name))
}

func (r *LeagueRepository) GetChild(ctx context.Context, parentID int64, name string) (league.League, bool, error) {
	return r.getOne(ctx, qb.Eq("parent_id", parentID), qb.Eq("name", name))
}

func (r *LeagueRepository) getOne(ctx context.Context, conditions ...qb.Condition) (league.League, bool, error) {
	query, args, err := qb.Select("*").
		From("leagues").
		Where(conditions...).
		OrderBy("id").
		Limit(1).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get league query: %w", err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league: %w", err)
	}

	return leagueFromRow(row), true, nil
}

func (r *LeagueRepository) Create(ctx context.Context, item league.League) (league.League, error) {
	if err := item.Validate(); err != nil {
		return league.League{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}

	insertModel := leagueInsertModel{
		Name:            item.Name,
		ParentID:        nullInt64(item.ParentID),
		HighestParentID: nullInt64(item.HighestParentID),
		AutoCreated:     item.AutoCreated,
	}
	query, args, err := qb.InsertModel("leagues", insertModel, "RETURNING id")
	if err != nil {
		return league.League{}, fmt.Errorf("build create league query: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&item.ID); err != nil {
		if isUniqueViolation(err) {
			return league.League{}, fmt.Errorf("%w: league %q", usecase.ErrRepositoryConstraint, item.Name)
		}
		return league.League{}, fmt.Errorf("create league: %w", err)
	}

	return item, nil
}

type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) GetByID(ctx context.Context, seasonID int64) (league.Season, bool, error) {
	return r.getOne(ctx, qb.Eq("id", seasonID))
}

func (r *SeasonRepository) GetByName(ctx context.Context, name string) (league.Season, bool, error) {
	return r.getOne(ctx, qb.Eq("name", name))
}

func (r *SeasonRepository) getOne(ctx context.Context, condition qb.Condition) (league.Season, bool, error) {
	query, args, err := qb.Select("*").
		From("seasons").
		Where(condition).
		Limit(1).
		ToSQL()
	if err != nil {
		return league.Season{}, false, fmt.Errorf("build get season query: %w", err)
	}

	var row seasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.Season{}, false, nil
		}
		return league.Season{}, false, fmt.Errorf("get season: %w", err)
	}

	return league.Season{ID: row.ID, Name: row.Name}, true, nil
}

func (r *SeasonRepository) Create(ctx context.Context, name string) (league.Season, error) {
	query, args, err := qb.InsertInto("seasons").
		Columns("name").
		Values(name).
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		return league.Season{}, fmt.Errorf("build create season query: %w", err)
	}

	var seasonID int64
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&seasonID); err != nil {
		if isUniqueViolation(err) {
			return league.Season{}, fmt.Errorf("%w: season %q", usecase.ErrRepositoryConstraint, name)
		}
		return league.Season{}, fmt.Errorf("create season: %w", err)
	}

	return league.Season{ID: seasonID, Name: name}, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pitchmap/lnp-importer/internal/domain/edition"
	qb "github.com/pitchmap/lnp-importer/internal/platform/querybuilder"
	"github.com/pitchmap/lnp-importer/internal/usecase"
)

type EditionRepository struct {
	db *sqlx.DB
}

func NewEditionRepository(db *sqlx.DB) *EditionRepository {
	return &EditionRepository{db: db}
}

func (r *EditionRepository) GetByMapper(ctx context.Context, mapperID int64) (edition.LeagueEdition, bool, error) {
	return r.getOne(ctx, qb.Eq("mapper_id", mapperID))
}

func (r *EditionRepository) GetByLeagueSeason(ctx context.Context, leagueID, seasonID int64) (edition.LeagueEdition, bool, error) {
	return r.getOne(ctx, qb.Eq("league_id", leagueID), qb.Eq("season_id", seasonID))
}

func (r *EditionRepository) getOne(ctx context.Context, conditions ...qb.Condition) (edition.LeagueEdition, bool, error) {
	query, args, err := qb.Select("*").
		From("league_editions").
		Where(conditions...).
		OrderBy("id").
		Limit(1).
		ToSQL()
	if err != nil {
		return edition.LeagueEdition{}, false, fmt.Errorf("build get league edition query: %w", err)
	}

	var row editionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return edition.LeagueEdition{}, false, nil
		}
		return edition.LeagueEdition{}, false, fmt.Errorf("get league edition: %w", err)
	}

	return editionFromRow(row), true, nil
}

func (r *EditionRepository) Create(ctx context.Context, item edition.LeagueEdition) (edition.LeagueEdition, error) {
	if err := item.Validate(); err != nil {
		return edition.LeagueEdition{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}

	insertModel := editionInsertModel{
		LeagueID: item.LeagueID,
		SeasonID: item.SeasonID,
		MapperID: nullInt64(item.MapperID),
		RawName:  item.RawName,
	}
	query, args, err := qb.InsertModel("league_editions", insertModel, "RETURNING id")
	if err != nil {
		return edition.LeagueEdition{}, fmt.Errorf("build create league edition query: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&item.ID); err != nil {
		if isUniqueViolation(err) {
			return edition.LeagueEdition{}, fmt.Errorf(
				"%w: edition league=%d season=%d", usecase.ErrRepositoryConstraint, item.LeagueID, item.SeasonID,
			)
		}
		return edition.LeagueEdition{}, fmt.Errorf("create league edition: %w", err)
	}

	return item, nil
}

func (r *EditionRepository) Update(ctx context.Context, item edition.LeagueEdition) error {
	query, args, err := qb.Update("league_editions").
		Set("league_id", item.LeagueID).
		Set("season_id", item.SeasonID).
		Set("mapper_id", nullInt64(item.MapperID)).
		Set("raw_name", item.RawName).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update league edition query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf(
				"%w: edition league=%d season=%d", usecase.ErrRepositoryConstraint, item.LeagueID, item.SeasonID,
			)
		}
		return fmt.Errorf("update league edition: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("%w: league edition id=%d", usecase.ErrNotFound, item.ID)
	}

	return nil
}

type TeamHistoryRepository struct {
	db *sqlx.DB
}

func NewTeamHistoryRepository(db *sqlx.DB) *TeamHistoryRepository {
	return &TeamHistoryRepository{db: db}
}

func (r *TeamHistoryRepository) GetByMapper(ctx context.Context, mapperID int64) (edition.TeamHistory, bool, error) {
	query, args, err := qb.Select("*").
		From("team_histories").
		Where(qb.Eq("mapper_id", mapperID)).
		OrderBy("id").
		Limit(1).
		ToSQL()
	if err != nil {
		return edition.TeamHistory{}, false, fmt.Errorf("build get team history query: %w", err)
	}

	var row teamHistoryTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return edition.TeamHistory{}, false, nil
		}
		return edition.TeamHistory{}, false, fmt.Errorf("get team history: %w", err)
	}

	return teamHistoryFromRow(row), true, nil
}

func (r *TeamHistoryRepository) ListByEdition(ctx context.Context, editionID int64) ([]edition.TeamHistory, error) {
	query, args, err := qb.Select("*").
		From("team_histories").
		Where(qb.Eq("edition_id", editionID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list team histories query: %w", err)
	}

	var rows []teamHistoryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list team histories: %w", err)
	}

	out := make([]edition.TeamHistory, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamHistoryFromRow(row))
	}

	return out, nil
}

func (r *TeamHistoryRepository) Create(ctx context.Context, item edition.TeamHistory) (edition.TeamHistory, error) {
	if err := item.Validate(); err != nil {
		return edition.TeamHistory{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}

	insertModel := teamHistoryInsertModel{
		TeamID:    item.TeamID,
		EditionID: item.EditionID,
		MapperID:  nullInt64(item.MapperID),
		RawName:   item.RawName,
		Visible:   item.Visible,
	}
	query, args, err := qb.InsertModel("team_histories", insertModel, "RETURNING id")
	if err != nil {
		return edition.TeamHistory{}, fmt.Errorf("build create team history query: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&item.ID); err != nil {
		if isUniqueViolation(err) {
			return edition.TeamHistory{}, fmt.Errorf(
				"%w: team history team=%d edition=%d", usecase.ErrRepositoryConstraint, item.TeamID, item.EditionID,
			)
		}
		return edition.TeamHistory{}, fmt.Errorf("create team history: %w", err)
	}

	return item, nil
}

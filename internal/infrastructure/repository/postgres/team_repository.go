package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pitchmap/lnp-importer/internal/domain/team"
	"github.com/pitchmap/lnp-importer/internal/platform/id"
	qb "github.com/pitchmap/lnp-importer/internal/platform/querybuilder"
	"github.com/pitchmap/lnp-importer/internal/usecase"
)

type TeamRepository struct {
	db  *sqlx.DB
	ids id.Generator
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db, ids: id.NewRandomGenerator()}
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID int64) (team.Team, bool, error) {
	return r.getOne(ctx, qb.Eq("id", teamID))
}

func (r *TeamRepository) GetByMapper(ctx context.Context, mapperID int64) (team.Team, bool, error) {
	return r.getOne(ctx, qb.Eq("mapper_id", mapperID))
}

func (r *TeamRepository) getOne(ctx context.Context, condition qb.Condition) (team.Team, bool, error) {
	query, args, err := qb.Select("*").
		From("teams").
		Where(condition).
		OrderBy("id").
		Limit(1).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team: %w", err)
	}

	return teamFromRow(row), true, nil
}

func (r *TeamRepository) FindByName(ctx context.Context, name string) ([]team.Team, error) {
	return r.list(ctx, qb.Eq("name", name))
}

func (r *TeamRepository) ListByClub(ctx context.Context, clubID int64) ([]team.Team, error) {
	return r.list(ctx, qb.Eq("club_id", clubID))
}

func (r *TeamRepository) ListUnmanaged(ctx context.Context) ([]team.Team, error) {
	return r.list(ctx,
		qb.IsNull("manager_id"),
		qb.Expr("NOT EXISTS (SELECT 1 FROM team_editors e WHERE e.team_id = teams.id)"),
	)
}

func (r *TeamRepository) list(ctx context.Context, conditions ...qb.Condition) ([]team.Team, error) {
	query, args, err := qb.Select("*").
		From("teams").
		Where(conditions...).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}

	return out, nil
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) (team.Team, error) {
	if err := item.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}

	if item.PublicID == "" {
		publicID, err := r.ids.NewID()
		if err != nil {
			return team.Team{}, fmt.Errorf("generate team public id: %w", err)
		}
		item.PublicID = publicID
	}

	insertModel := teamInsertModel{
		PublicID:    item.PublicID,
		Name:        item.Name,
		ClubID:      item.ClubID,
		LeagueID:    nullInt64(item.LeagueID),
		Seniority:   item.Seniority,
		Gender:      item.Gender,
		Aliases:     item.Aliases,
		MapperID:    nullInt64(item.MapperID),
		ManagerID:   nullInt64(item.ManagerID),
		Visible:     item.Visible,
		AutoCreated: item.AutoCreated,
	}
	query, args, err := qb.InsertModel("teams", insertModel, "RETURNING id")
	if err != nil {
		return team.Team{}, fmt.Errorf("build create team query: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&item.ID); err != nil {
		if isUniqueViolation(err) {
			return team.Team{}, fmt.Errorf("%w: team %q", usecase.ErrRepositoryConstraint, item.Name)
		}
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	return item, nil
}

func (r *TeamRepository) Update(ctx context.Context, item team.Team) error {
	query, args, err := qb.Update("teams").
		Set("name", item.Name).
		Set("club_id", item.ClubID).
		Set("league_id", nullInt64(item.LeagueID)).
		Set("seniority", item.Seniority).
		Set("gender", item.Gender).
		Set("aliases", item.Aliases).
		Set("mapper_id", nullInt64(item.MapperID)).
		Set("manager_id", nullInt64(item.ManagerID)).
		Set("visible", item.Visible).
		Set("auto_created", item.AutoCreated).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update team query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update team: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("%w: team id=%d", usecase.ErrNotFound, item.ID)
	}

	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, teamID int64) error {
	for _, target := range []struct {
		table  string
		column string
	}{
		{table: "team_editors", column: "team_id"},
		{table: "teams", column: "id"},
	} {
		query, args, err := qb.DeleteFrom(target.table).Where(qb.Eq(target.column, teamID)).ToSQL()
		if err != nil {
			return fmt.Errorf("build delete team query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("delete team: %w", err)
		}
	}

	return nil
}

func (r *TeamRepository) ListEditors(ctx context.Context, teamID int64) ([]int64, error) {
	return listEditors(ctx, r.db, "team_editors", "team_id", teamID)
}

func (r *TeamRepository) AddEditor(ctx context.Context, teamID, editorID int64) error {
	return addEditor(ctx, r.db, "team_editors", "team_id", teamID, editorID)
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pitchmap/lnp-importer/internal/domain/club"
	"github.com/pitchmap/lnp-importer/internal/platform/id"
	qb "github.com/pitchmap/lnp-importer/internal/platform/querybuilder"
	"github.com/pitchmap/lnp-importer/internal/usecase"
)

type ClubRepository struct {
	db  *sqlx.DB
	ids id.Generator
}

func NewClubRepository(db *sqlx.DB) *ClubRepository {
	return &ClubRepository{db: db, ids: id.NewRandomGenerator()}
}

func (r *ClubRepository) GetByID(ctx context.Context, clubID int64) (club.Club, bool, error) {
	return r.getOne(ctx, qb.Eq("id", clubID))
}

func (r *ClubRepository) GetByMapper(ctx context.Context, mapperID int64) (club.Club, bool, error) {
	return r.getOne(ctx, qb.Eq("mapper_id", mapperID))
}

func (r *ClubRepository) getOne(ctx context.Context, condition qb.Condition) (club.Club, bool, error) {
	query, args, err := qb.Select("*").
		From("clubs").
		Where(condition).
		OrderBy("id").
		Limit(1).
		ToSQL()
	if err != nil {
		return club.Club{}, false, fmt.Errorf("build get club query: %w", err)
	}

	var row clubTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return club.Club{}, false, nil
		}
		return club.Club{}, false, fmt.Errorf("get club: %w", err)
	}

	return clubFromRow(row), true, nil
}

func (r *ClubRepository) FindByName(ctx context.Context, name string) ([]club.Club, error) {
	return r.list(ctx, qb.Eq("name", name))
}

func (r *ClubRepository) ListNameContains(ctx context.Context, fragment string) ([]club.Club, error) {
	return r.list(ctx, qb.ILike("name", fragment))
}

func (r *ClubRepository) List(ctx context.Context) ([]club.Club, error) {
	return r.list(ctx)
}

func (r *ClubRepository) ListUnmanaged(ctx context.Context) ([]club.Club, error) {
	return r.list(ctx,
		qb.IsNull("manager_id"),
		qb.Expr("NOT EXISTS (SELECT 1 FROM club_editors e WHERE e.club_id = clubs.id)"),
	)
}

func (r *ClubRepository) list(ctx context.Context, conditions ...qb.Condition) ([]club.Club, error) {
	query, args, err := qb.Select("*").
		From("clubs").
		Where(conditions...).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list clubs query: %w", err)
	}

	var rows []clubTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}

	out := make([]club.Club, 0, len(rows))
	for _, row := range rows {
		out = append(out, clubFromRow(row))
	}

	return out, nil
}

func (r *ClubRepository) Create(ctx context.Context, item club.Club) (club.Club, error) {
	if err := item.Validate(); err != nil {
		return club.Club{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}

	if item.PublicID == "" {
		publicID, err := r.ids.NewID()
		if err != nil {
			return club.Club{}, fmt.Errorf("generate club public id: %w", err)
		}
		item.PublicID = publicID
	}

	insertModel := clubInsertModel{
		PublicID:    item.PublicID,
		Name:        item.Name,
		Aliases:     item.Aliases,
		Address:     item.Address,
		RegionID:    nullInt64(item.RegionID),
		MapperID:    nullInt64(item.MapperID),
		ManagerID:   nullInt64(item.ManagerID),
		AutoCreated: item.AutoCreated,
	}
	query, args, err := qb.InsertModel("clubs", insertModel, "RETURNING id")
	if err != nil {
		return club.Club{}, fmt.Errorf("build create club query: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&item.ID); err != nil {
		if isUniqueViolation(err) {
			return club.Club{}, fmt.Errorf("%w: club %q", usecase.ErrRepositoryConstraint, item.Name)
		}
		return club.Club{}, fmt.Errorf("create club: %w", err)
	}

	return item, nil
}

func (r *ClubRepository) Update(ctx context.Context, item club.Club) error {
	query, args, err := qb.Update("clubs").
		Set("name", item.Name).
		Set("aliases", item.Aliases).
		Set("address", item.Address).
		Set("region_id", nullInt64(item.RegionID)).
		Set("mapper_id", nullInt64(item.MapperID)).
		Set("manager_id", nullInt64(item.ManagerID)).
		Set("auto_created", item.AutoCreated).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update club query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update club: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("%w: club id=%d", usecase.ErrNotFound, item.ID)
	}

	return nil
}

func (r *ClubRepository) Delete(ctx context.Context, clubID int64) error {
	for _, target := range []struct {
		table  string
		column string
	}{
		{table: "club_editors", column: "club_id"},
		{table: "clubs", column: "id"},
	} {
		query, args, err := qb.DeleteFrom(target.table).Where(qb.Eq(target.column, clubID)).ToSQL()
		if err != nil {
			return fmt.Errorf("build delete club query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("delete club: %w", err)
		}
	}

	return nil
}

func (r *ClubRepository) ListEditors(ctx context.Context, clubID int64) ([]int64, error) {
	return listEditors(ctx, r.db, "club_editors", "club_id", clubID)
}

func (r *ClubRepository) AddEditor(ctx context.Context, clubID, editorID int64) error {
	return addEditor(ctx, r.db, "club_editors", "club_id", clubID, editorID)
}

func listEditors(ctx context.Context, db *sqlx.DB, table, ownerColumn string, ownerID int64) ([]int64, error) {
	query, args, err := qb.Select("editor_id").
		From(table).
		Where(qb.Eq(ownerColumn, ownerID)).
		OrderBy("editor_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list editors query: %w", err)
	}

	var editors []int64
	if err := db.SelectContext(ctx, &editors, query, args...); err != nil {
		return nil, fmt.Errorf("list editors: %w", err)
	}

	return editors, nil
}

func addEditor(ctx context.Context, db *sqlx.DB, table, ownerColumn string, ownerID, editorID int64) error {
	query, args, err := qb.InsertInto(table).
		Columns(ownerColumn, "editor_id").
		Values(ownerID, editorID).
		Suffix("ON CONFLICT DO NOTHING").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build add editor query: %w", err)
	}

	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("add editor: %w", err)
	}

	return nil
}

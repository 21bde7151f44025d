package postgres

import (
	"database/sql"
	"time"

	"github.com/pitchmap/lnp-importer/internal/domain/team"
)

type teamTableModel struct {
	ID          int64         `db:"id"`
	PublicID    string        `db:"public_id"`
	Name        string        `db:"name"`
	ClubID      int64         `db:"club_id"`
	LeagueID    sql.NullInt64 `db:"league_id"`
	Seniority   string        `db:"seniority"`
	Gender      string        `db:"gender"`
	Aliases     string        `db:"aliases"`
	MapperID    sql.NullInt64 `db:"mapper_id"`
	ManagerID   sql.NullInt64 `db:"manager_id"`
	Visible     bool          `db:"visible"`
	AutoCreated bool          `db:"auto_created"`
	CreatedAt   time.Time     `db:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at"`
}

type teamInsertModel struct {
	PublicID    string        `db:"public_id"`
	Name        string        `db:"name"`
	ClubID      int64         `db:"club_id"`
	LeagueID    sql.NullInt64 `db:"league_id"`
	Seniority   string        `db:"seniority"`
	Gender      string        `db:"gender"`
	Aliases     string        `db:"aliases"`
	MapperID    sql.NullInt64 `db:"mapper_id"`
	ManagerID   sql.NullInt64 `db:"manager_id"`
	Visible     bool          `db:"visible"`
	AutoCreated bool          `db:"auto_created"`
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:          row.ID,
		PublicID:    row.PublicID,
		Name:        row.Name,
		ClubID:      row.ClubID,
		LeagueID:    row.LeagueID.Int64,
		Seniority:   row.Seniority,
		Gender:      row.Gender,
		Aliases:     row.Aliases,
		MapperID:    row.MapperID.Int64,
		ManagerID:   row.ManagerID.Int64,
		Visible:     row.Visible,
		AutoCreated: row.AutoCreated,
	}
}

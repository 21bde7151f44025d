package postgres

import (
	"database/sql"
	"time"

	"github.com/pitchmap/lnp-importer/internal/domain/league"
)

type leagueTableModel struct {
	ID              int64         `db:"id"`
	Name            string        `db:"name"`
	ParentID        sql.NullInt64 `db:"parent_id"`
	HighestParentID sql.NullInt64 `db:"highest_parent_id"`
	AutoCreated     bool          `db:"auto_created"`
	CreatedAt       time.Time     `db:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at"`
}

type leagueInsertModel struct {
	Name            string        `db:"name"`
	ParentID        sql.NullInt64 `db:"parent_id"`
	HighestParentID sql.NullInt64 `db:"highest_parent_id"`
	AutoCreated     bool          `db:"auto_created"`
}

type seasonTableModel struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

func leagueFromRow(row leagueTableModel) league.League {
	return league.League{
		ID:              row.ID,
		Name:            row.Name,
		ParentID:        row.ParentID.Int64,
		HighestParentID: row.HighestParentID.Int64,
		AutoCreated:     row.AutoCreated,
	}
}

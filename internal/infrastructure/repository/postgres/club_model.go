package postgres

import (
	"database/sql"
	"time"

	"github.com/pitchmap/lnp-importer/internal/domain/club"
)

type clubTableModel struct {
	ID          int64         `db:"id"`
	PublicID    string        `db:"public_id"`
	Name        string        `db:"name"`
	Aliases     string        `db:"aliases"`
	Address     string        `db:"address"`
	RegionID    sql.NullInt64 `db:"region_id"`
	MapperID    sql.NullInt64 `db:"mapper_id"`
	ManagerID   sql.NullInt64 `db:"manager_id"`
	AutoCreated bool          `db:"auto_created"`
	CreatedAt   time.Time     `db:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at"`
}

type clubInsertModel struct {
	PublicID    string        `db:"public_id"`
	Name        string        `db:"name"`
	Aliases     string        `db:"aliases"`
	Address     string        `db:"address"`
	RegionID    sql.NullInt64 `db:"region_id"`
	MapperID    sql.NullInt64 `db:"mapper_id"`
	ManagerID   sql.NullInt64 `db:"manager_id"`
	AutoCreated bool          `db:"auto_created"`
}

func clubFromRow(row clubTableModel) club.Club {
	return club.Club{
		ID:          row.ID,
		PublicID:    row.PublicID,
		Name:        row.Name,
		Aliases:     row.Aliases,
		Address:     row.Address,
		RegionID:    row.RegionID.Int64,
		MapperID:    row.MapperID.Int64,
		ManagerID:   row.ManagerID.Int64,
		AutoCreated: row.AutoCreated,
	}
}

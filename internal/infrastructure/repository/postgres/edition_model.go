package postgres

import (
	"database/sql"
	"time"

	"github.com/pitchmap/lnp-importer/internal/domain/edition"
)

type editionTableModel struct {
	ID        int64         `db:"id"`
	LeagueID  int64         `db:"league_id"`
	SeasonID  int64         `db:"season_id"`
	MapperID  sql.NullInt64 `db:"mapper_id"`
	RawName   string        `db:"raw_name"`
	CreatedAt time.Time     `db:"created_at"`
	UpdatedAt time.Time     `db:"updated_at"`
}

type editionInsertModel struct {
	LeagueID int64         `db:"league_id"`
	SeasonID int64         `db:"season_id"`
	MapperID sql.NullInt64 `db:"mapper_id"`
	RawName  string        `db:"raw_name"`
}

type teamHistoryTableModel struct {
	ID        int64         `db:"id"`
	TeamID    int64         `db:"team_id"`
	EditionID int64         `db:"edition_id"`
	MapperID  sql.NullInt64 `db:"mapper_id"`
	RawName   string        `db:"raw_name"`
	Visible   bool          `db:"visible"`
	CreatedAt time.Time     `db:"created_at"`
}

type teamHistoryInsertModel struct {
	TeamID    int64         `db:"team_id"`
	EditionID int64         `db:"edition_id"`
	MapperID  sql.NullInt64 `db:"mapper_id"`
	RawName   string        `db:"raw_name"`
	Visible   bool          `db:"visible"`
}

func editionFromRow(row editionTableModel) edition.LeagueEdition {
	return edition.LeagueEdition{
		ID:       row.ID,
		LeagueID: row.LeagueID,
		SeasonID: row.SeasonID,
		MapperID: row.MapperID.Int64,
		RawName:  row.RawName,
	}
}

func teamHistoryFromRow(row teamHistoryTableModel) edition.TeamHistory {
	return edition.TeamHistory{
		ID:        row.ID,
		TeamID:    row.TeamID,
		EditionID: row.EditionID,
		MapperID:  row.MapperID.Int64,
		RawName:   row.RawName,
		Visible:   row.Visible,
	}
}

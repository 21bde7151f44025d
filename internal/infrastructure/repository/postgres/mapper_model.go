package postgres

import (
	"time"

	"github.com/pitchmap/lnp-importer/internal/domain/mapper"
)

type mapperTableModel struct {
	ID        int64     `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type mapperSourceTableModel struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

type mapperEntityTableModel struct {
	ID             int64     `db:"id"`
	TargetID       int64     `db:"target_id"`
	SourceID       int64     `db:"source_id"`
	ExternalID     string    `db:"external_id"`
	RelatedType    string    `db:"related_type"`
	DatabaseSource string    `db:"database_source"`
	Description    string    `db:"description"`
	URL            string    `db:"url"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type mapperEntityInsertModel struct {
	TargetID       int64  `db:"target_id"`
	SourceID       int64  `db:"source_id"`
	ExternalID     string `db:"external_id"`
	RelatedType    string `db:"related_type"`
	DatabaseSource string `db:"database_source"`
	Description    string `db:"description"`
	URL            string `db:"url"`
}

func mapperFromRow(row mapperTableModel) mapper.Mapper {
	return mapper.Mapper{
		ID:        row.ID,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func mapperEntityFromRow(row mapperEntityTableModel) mapper.Entity {
	return mapper.Entity{
		ID:             row.ID,
		TargetID:       row.TargetID,
		SourceID:       row.SourceID,
		ExternalID:     row.ExternalID,
		RelatedType:    mapper.RelatedType(row.RelatedType),
		DatabaseSource: mapper.DatabaseSource(row.DatabaseSource),
		Description:    row.Description,
		URL:            row.URL,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}

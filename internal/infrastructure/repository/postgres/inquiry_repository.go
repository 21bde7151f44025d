package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pitchmap/lnp-importer/internal/domain/inquiry"
	qb "github.com/pitchmap/lnp-importer/internal/platform/querybuilder"
	"github.com/pitchmap/lnp-importer/internal/usecase"
)

type inquiryTableModel struct {
	ID        int64     `db:"id"`
	Category  string    `db:"category"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type InquiryRepository struct {
	db *sqlx.DB
}

func NewInquiryRepository(db *sqlx.DB) *InquiryRepository {
	return &InquiryRepository{db: db}
}

func (r *InquiryRepository) ListByCategories(ctx context.Context, categories ...inquiry.Category) ([]inquiry.Request, error) {
	values := make([]any, 0, len(categories))
	for _, category := range categories {
		values = append(values, string(category))
	}

	query, args, err := qb.Select("*").
		From("inquiry_requests").
		Where(qb.In("category", values)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list inquiries query: %w", err)
	}

	var rows []inquiryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}

	out := make([]inquiry.Request, 0, len(rows))
	for _, row := range rows {
		out = append(out, inquiry.Request{ID: row.ID, Category: inquiry.Category(row.Category)})
	}

	return out, nil
}

func (r *InquiryRepository) Update(ctx context.Context, item inquiry.Request) error {
	query, args, err := qb.Update("inquiry_requests").
		Set("category", string(item.Category)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update inquiry query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update inquiry: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("%w: inquiry id=%d", usecase.ErrNotFound, item.ID)
	}

	return nil
}

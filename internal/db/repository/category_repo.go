package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

type categoryStore interface {
	ListCategories(ctx context.Context) ([]sqlcgen.Category, error)
	GetCategory(ctx context.Context, id int32) (sqlcgen.Category, error)
}

// CategoryRepository exposes read access to categories.
type CategoryRepository struct {
	store categoryStore
}

func NewCategoryRepository(store categoryStore) *CategoryRepository {
	return &CategoryRepository{store: store}
}

// ListAll returns every category ordered by id.
func (r *CategoryRepository) ListAll(ctx context.Context) ([]sqlcgen.Category, error) {
	rows, err := r.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return rows, nil
}

// Find looks up one category. A missing row yields found=false and no error.
func (r *CategoryRepository) Find(ctx context.Context, id int32) (sqlcgen.Category, bool, error) {
	row, err := r.store.GetCategory(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return sqlcgen.Category{}, false, nil
	}
	if err != nil {
		return sqlcgen.Category{}, false, fmt.Errorf("get category %d: %w", id, err)
	}
	return row, true, nil
}

package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/akorbut/storefront/internal/domain/models"
	"github.com/lib/pq"
)

var ErrCategoryNotFound = errors.New("product category not found")

type CategoryStorage interface {
	CreateCategory(ctx context.Context, category *models.ProductCategory) (*models.ProductCategory, error)
	GetCategoryByID(ctx context.Context, id string) (*models.ProductCategory, error)
	ListCategories(ctx context.Context) ([]*models.ProductCategory, error)
	UpdateCategory(ctx context.Context, category *models.ProductCategory) error
	DeleteCategory(ctx context.Context, id string) error
}

type categoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *categoryRepository {
	return &categoryRepository{db: db}
}

const categoryColumns = "id, name, code, created_on, updated_on"

func (r *categoryRepository) CreateCategory(ctx context.Context, category *models.ProductCategory) (*models.ProductCategory, error) {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO product_categories (id, name, code, created_on, updated_on) VALUES ($1, $2, $3, NOW(), NOW())",
		category.ID, category.Name, category.Code,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" {
				return nil, ErrCodeTaken
			}
		}
		return nil, err
	}
	return category, nil
}

func (r *categoryRepository) GetCategoryByID(ctx context.Context, id string) (*models.ProductCategory, error) {
	category := &models.ProductCategory{}
	row := r.db.QueryRowContext(ctx, "SELECT "+categoryColumns+" FROM product_categories WHERE id = $1", id)
	if err := row.Scan(&category.ID, &category.Name, &category.Code, &category.CreatedOn, &category.UpdatedOn); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (r *categoryRepository) ListCategories(ctx context.Context) ([]*models.ProductCategory, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+categoryColumns+" FROM product_categories ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.ProductCategory
	for rows.Next() {
		category := &models.ProductCategory{}
		if err := rows.Scan(&category.ID, &category.Name, &category.Code, &category.CreatedOn, &category.UpdatedOn); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) UpdateCategory(ctx context.Context, category *models.ProductCategory) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE product_categories SET name = $1, code = $2, updated_on = NOW() WHERE id = $3",
		category.Name, category.Code, category.ID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *categoryRepository) DeleteCategory(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM product_categories WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

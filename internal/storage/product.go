package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/akorbut/storefront/internal/domain/models"
	"github.com/lib/pq"
)

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrSKUTaken           = errors.New("sku is already in use")
	ErrNotEnoughInventory = errors.New("not enough inventory")
)

// ProductStorage describes product persistence. The *Tx methods run inside a
// caller-owned transaction; the order workflow uses them so the inventory
// guard and order-item inserts commit or roll back together.
type ProductStorage interface {
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
	GetProductByIDOwned(ctx context.Context, id, userID string) (*models.Product, error)
	ListProducts(ctx context.Context) ([]*models.Product, error)
	ListProductsByCreator(ctx context.Context, userID string) ([]*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id, userID string) error
	RestoreInventory(ctx context.Context, id string, quantity int64) error

	GetProductByIDTx(ctx context.Context, tx *sql.Tx, id string) (*models.Product, error)
	DecrementInventoryTx(ctx context.Context, tx *sql.Tx, id string, quantity int64) error
}

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *productRepository {
	return &productRepository{db: db}
}

const productColumns = "id, sku, title, description, price, inventory, delivery_time, is_active, vendor_id, category_id, created_by, created_on, updated_on"

func scanProduct(scan func(dest ...interface{}) error) (*models.Product, error) {
	product := &models.Product{}
	var description sql.NullString
	err := scan(
		&product.ID, &product.SKU, &product.Title, &description, &product.Price,
		&product.Inventory, &product.DeliveryTime, &product.IsActive,
		&product.VendorID, &product.CategoryID, &product.CreatedBy,
		&product.CreatedOn, &product.UpdatedOn,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	product.Description = description.String
	return product, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO products (id, sku, title, description, price, inventory, delivery_time, is_active, vendor_id, category_id, created_by, created_on, updated_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())`,
		product.ID, product.SKU, product.Title, product.Description, product.Price,
		product.Inventory, product.DeliveryTime, product.IsActive,
		product.VendorID, product.CategoryID, product.CreatedBy,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" {
				return nil, ErrSKUTaken
			}
		}
		return nil, err
	}
	return product, nil
}

func (r *productRepository) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1", id)
	return scanProduct(row.Scan)
}

func (r *productRepository) GetProductByIDOwned(ctx context.Context, id, userID string) (*models.Product, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1 AND created_by = $2", id, userID)
	return scanProduct(row.Scan)
}

func (r *productRepository) ListProducts(ctx context.Context) ([]*models.Product, error) {
	return r.queryProducts(ctx, "SELECT "+productColumns+" FROM products ORDER BY created_on")
}

func (r *productRepository) ListProductsByCreator(ctx context.Context, userID string) ([]*models.Product, error) {
	return r.queryProducts(ctx, "SELECT "+productColumns+" FROM products WHERE created_by = $1 ORDER BY created_on", userID)
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args ...interface{}) ([]*models.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET sku = $1, title = $2, description = $3, price = $4, inventory = $5,
		 delivery_time = $6, is_active = $7, vendor_id = $8, category_id = $9, updated_on = NOW()
		 WHERE id = $10`,
		product.SKU, product.Title, product.Description, product.Price, product.Inventory,
		product.DeliveryTime, product.IsActive, product.VendorID, product.CategoryID, product.ID,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" {
				return ErrSKUTaken
			}
		}
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *productRepository) DeleteProduct(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1 AND created_by = $2", id, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *productRepository) GetProductByIDTx(ctx context.Context, tx *sql.Tx, id string) (*models.Product, error) {
	row := tx.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1", id)
	return scanProduct(row.Scan)
}

// DecrementInventoryTx subtracts quantity from the product stock. The guard in
// the WHERE clause keeps inventory from ever going negative: a concurrent
// order that would oversell hits zero affected rows instead.
func (r *productRepository) DecrementInventoryTx(ctx context.Context, tx *sql.Tx, id string, quantity int64) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE products SET inventory = inventory - $1, updated_on = NOW() WHERE id = $2 AND inventory >= $1",
		quantity, id,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotEnoughInventory
	}
	return nil
}

// RestoreInventory gives quantity back to the product stock. It runs outside
// the order workflow transaction so a failure cannot abort it.
func (r *productRepository) RestoreInventory(ctx context.Context, id string, quantity int64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE products SET inventory = inventory + $1, updated_on = NOW() WHERE id = $2",
		quantity, id,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

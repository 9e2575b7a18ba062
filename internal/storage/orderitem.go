package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/akorbut/storefront/internal/domain/models"
)

// OrderItemStorage describes order-item persistence. Items only ever exist as
// children of an order and are written inside the order workflow transaction.
type OrderItemStorage interface {
	CreateItemTx(ctx context.Context, tx *sql.Tx, item *models.OrderItem) error
	ListItemsByOrderTx(ctx context.Context, tx *sql.Tx, orderID string) ([]*models.OrderItem, error)
	DeleteItemsByOrderTx(ctx context.Context, tx *sql.Tx, orderID string) error
}

type orderItemRepository struct {
	db *sql.DB
}

func NewOrderItemRepository(db *sql.DB) *orderItemRepository {
	return &orderItemRepository{db: db}
}

func (r *orderItemRepository) CreateItemTx(ctx context.Context, tx *sql.Tx, item *models.OrderItem) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO order_items (id, order_id, product_id, price, quantity, created_on) VALUES ($1, $2, $3, $4, $5, NOW())",
		item.ID, item.OrderID, item.ProductID, item.Price, item.Quantity,
	)
	if err != nil {
		return fmt.Errorf("failed to create order item: %w", err)
	}
	return nil
}

func (r *orderItemRepository) ListItemsByOrderTx(ctx context.Context, tx *sql.Tx, orderID string) ([]*models.OrderItem, error) {
	rows, err := tx.QueryContext(ctx,
		"SELECT id, order_id, product_id, price, quantity, created_on FROM order_items WHERE order_id = $1 ORDER BY created_on", orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.OrderItem
	for rows.Next() {
		item := &models.OrderItem{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Price, &item.Quantity, &item.CreatedOn); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *orderItemRepository) DeleteItemsByOrderTx(ctx context.Context, tx *sql.Tx, orderID string) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM order_items WHERE order_id = $1", orderID)
	if err != nil {
		return fmt.Errorf("failed to delete order items: %w", err)
	}
	return nil
}

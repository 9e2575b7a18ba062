package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akorbut/storefront/internal/domain/models"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderStorage describes order persistence. All reads are scoped to the
// placing user; writes run inside a caller-owned transaction so the order,
// its items and the inventory adjustments commit together.
type OrderStorage interface {
	CreateOrderTx(ctx context.Context, tx *sql.Tx, order *models.Order) error
	UpdateOrderTx(ctx context.Context, tx *sql.Tx, order *models.Order) error
	DeleteOrderTx(ctx context.Context, tx *sql.Tx, id, userID string) error
	GetOrderOwned(ctx context.Context, id, userID string) (*models.Order, error)
	ListOrdersByUser(ctx context.Context, userID string) ([]*models.Order, error)
}

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *orderRepository {
	return &orderRepository{db: db}
}

const orderColumns = "id, status, placed_by, shipping_address_id, billing_address_id, payment_card_id, created_on, updated_on"

func (r *orderRepository) CreateOrderTx(ctx context.Context, tx *sql.Tx, order *models.Order) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO orders (id, status, placed_by, shipping_address_id, billing_address_id, payment_card_id, created_on, updated_on)
		 VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())`,
		order.ID, order.Status, order.PlacedBy, order.ShippingAddressID, order.BillingAddressID, order.PaymentCardID,
	)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *orderRepository) UpdateOrderTx(ctx context.Context, tx *sql.Tx, order *models.Order) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE orders SET shipping_address_id = $1, billing_address_id = $2, payment_card_id = $3, updated_on = NOW()
		 WHERE id = $4`,
		order.ShippingAddressID, order.BillingAddressID, order.PaymentCardID, order.ID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) DeleteOrderTx(ctx context.Context, tx *sql.Tx, id, userID string) error {
	res, err := tx.ExecContext(ctx, "DELETE FROM orders WHERE id = $1 AND placed_by = $2", id, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) GetOrderOwned(ctx context.Context, id, userID string) (*models.Order, error) {
	order := &models.Order{}
	row := r.db.QueryRowContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE id = $1 AND placed_by = $2", id, userID)
	if err := row.Scan(&order.ID, &order.Status, &order.PlacedBy, &order.ShippingAddressID,
		&order.BillingAddressID, &order.PaymentCardID, &order.CreatedOn, &order.UpdatedOn); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	items, err := r.queryItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func (r *orderRepository) ListOrdersByUser(ctx context.Context, userID string) ([]*models.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE placed_by = $1 ORDER BY created_on DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order := &models.Order{}
		if err := rows.Scan(&order.ID, &order.Status, &order.PlacedBy, &order.ShippingAddressID,
			&order.BillingAddressID, &order.PaymentCardID, &order.CreatedOn, &order.UpdatedOn); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, order := range orders {
		items, err := r.queryItems(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		order.Items = items
	}
	return orders, nil
}

func (r *orderRepository) queryItems(ctx context.Context, orderID string) ([]*models.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx,
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

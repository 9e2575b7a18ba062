package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/akorbut/storefront/internal/domain/models"
	"github.com/akorbut/storefront/internal/redisx"
	"github.com/akorbut/storefront/internal/storage"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// OrderItemCommand is one requested order line.
type OrderItemCommand struct {
	ProductID string
	Quantity  int64
}

// OrderCommand carries the references an order is built from. The addresses
// and the card must belong to the requesting user.
type OrderCommand struct {
	ShippingAddressID string
	BillingAddressID  string
	CardID            string
	Items             []OrderItemCommand
}

// OrderService is the order workflow: ownership-scoped reads plus
// create/update/delete with inventory adjustment.
type OrderService interface {
	Create(ctx context.Context, userID string, cmd OrderCommand) (*models.Order, error)
	Update(ctx context.Context, id, userID string, cmd OrderCommand) (*models.Order, error)
	Delete(ctx context.Context, id, userID string) error
	Find(ctx context.Context, id, userID string) (*models.Order, error)
	All(ctx context.Context, userID string) ([]*models.Order, error)
}

type orderService struct {
	log         *slog.Logger
	db          *sql.DB
	orderRepo   storage.OrderStorage
	itemRepo    storage.OrderItemStorage
	productRepo storage.ProductStorage
	addressRepo storage.AddressStorage
	cardRepo    storage.CardStorage
	errLogRepo  storage.ErrorLogStorage
	cache       *redis.Client
}

func NewOrderService(
	log *slog.Logger,
	db *sql.DB,
	orderRepo storage.OrderStorage,
	itemRepo storage.OrderItemStorage,
	productRepo storage.ProductStorage,
	addressRepo storage.AddressStorage,
	cardRepo storage.CardStorage,
	errLogRepo storage.ErrorLogStorage,
	cache *redis.Client,
) OrderService {
	return &orderService{
		log:         log,
		db:          db,
		orderRepo:   orderRepo,
		itemRepo:    itemRepo,
		productRepo: productRepo,
		addressRepo: addressRepo,
		cardRepo:    cardRepo,
		errLogRepo:  errLogRepo,
		cache:       cache,
	}
}

// Create places a new order. The address and card references are resolved
// with ownership scoping before anything is written; the order row, its items
// and the inventory decrements then commit in one transaction, so an
// insufficient-stock failure on any line leaves no rows behind.
func (s *orderService) Create(ctx context.Context, userID string, cmd OrderCommand) (*models.Order, error) {
	const op = "service.OrderService.Create"
	logger := s.log.With(slog.String("op", op), slog.String("userID", userID))
	logger.Info("placing order", slog.Int("items", len(cmd.Items)))

	shipping, err := s.addressRepo.GetAddressOwned(ctx, cmd.ShippingAddressID, userID, models.AddressShipping)
	if err != nil {
		logger.Warn("shipping address lookup failed", slog.Any("error", err))
		return nil, fmt.Errorf("%s: shipping address: %w", op, err)
	}
	billing, err := s.addressRepo.GetAddressOwned(ctx, cmd.BillingAddressID, userID, models.AddressBilling)
	if err != nil {
		logger.Warn("billing address lookup failed", slog.Any("error", err))
		return nil, fmt.Errorf("%s: billing address: %w", op, err)
	}
	card, err := s.cardRepo.GetCardOwned(ctx, cmd.CardID, userID)
	if err != nil {
		logger.Warn("payment card lookup failed", slog.Any("error", err))
		return nil, fmt.Errorf("%s: payment card: %w", op, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer func() { _ = tx.Rollback() }()

	order := &models.Order{
		ID:                uuid.NewString(),
		Status:            models.OrderPlaced,
		PlacedBy:          &userID,
		ShippingAddressID: shipping.ID,
		BillingAddressID:  billing.ID,
		PaymentCardID:     card.ID,
	}
	if err := s.orderRepo.CreateOrderTx(ctx, tx, order); err != nil {
		logger.Error("failed to create order", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	touched, err := s.createItems(ctx, tx, logger, order.ID, cmd.Items)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}
	s.invalidateProducts(ctx, touched)

	logger.Info("order placed", slog.String("orderID", order.ID))
	return s.orderRepo.GetOrderOwned(ctx, order.ID, userID)
}

// Update replaces the referenced addresses/card and the whole item set. The
// order row, the item swap and the new decrements commit in one transaction;
// the stock of the removed items is given back after the commit.
func (s *orderService) Update(ctx context.Context, id, userID string, cmd OrderCommand) (*models.Order, error) {
	const op = "service.OrderService.Update"
	logger := s.log.With(slog.String("op", op), slog.String("orderID", id), slog.String("userID", userID))

	order, err := s.orderRepo.GetOrderOwned(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if order.Status != models.OrderPlaced {
		logger.Warn("order is not editable", slog.String("status", order.Status))
		return nil, fmt.Errorf("%s: %w", op, ErrOrderNotEditable)
	}

	shipping, err := s.addressRepo.GetAddressOwned(ctx, cmd.ShippingAddressID, userID, models.AddressShipping)
	if err != nil {
		return nil, fmt.Errorf("%s: shipping address: %w", op, err)
	}
	billing, err := s.addressRepo.GetAddressOwned(ctx, cmd.BillingAddressID, userID, models.AddressBilling)
	if err != nil {
		return nil, fmt.Errorf("%s: billing address: %w", op, err)
	}
	card, err := s.cardRepo.GetCardOwned(ctx, cmd.CardID, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: payment card: %w", op, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer func() { _ = tx.Rollback() }()

	order.ShippingAddressID = shipping.ID
	order.BillingAddressID = billing.ID
	order.PaymentCardID = card.ID
	if err := s.orderRepo.UpdateOrderTx(ctx, tx, order); err != nil {
		logger.Error("failed to update order", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// re-read inside the tx so the restore covers exactly what gets deleted
	previous, err := s.itemRepo.ListItemsByOrderTx(ctx, tx, order.ID)
	if err != nil {
		logger.Error("failed to list order items", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.itemRepo.DeleteItemsByOrderTx(ctx, tx, order.ID); err != nil {
		logger.Error("failed to delete order items", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	touched, err := s.createItems(ctx, tx, logger, order.ID, cmd.Items)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	restored := s.restoreItems(ctx, logger, previous)
	s.invalidateProducts(ctx, append(restored, touched...))

	logger.Info("order updated")
	return s.orderRepo.GetOrderOwned(ctx, order.ID, userID)
}

// Delete removes a placed order and its items in one transaction, then gives
// the item stock back.
func (s *orderService) Delete(ctx context.Context, id, userID string) error {
	const op = "service.OrderService.Delete"
	logger := s.log.With(slog.String("op", op), slog.String("orderID", id), slog.String("userID", userID))

	order, err := s.orderRepo.GetOrderOwned(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if order.Status != models.OrderPlaced {
		logger.Warn("order is not deletable", slog.String("status", order.Status))
		return fmt.Errorf("%s: %w", op, ErrOrderNotEditable)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer func() { _ = tx.Rollback() }()

	previous, err := s.itemRepo.ListItemsByOrderTx(ctx, tx, order.ID)
	if err != nil {
		logger.Error("failed to list order items", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.itemRepo.DeleteItemsByOrderTx(ctx, tx, order.ID); err != nil {
		logger.Error("failed to delete order items", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.orderRepo.DeleteOrderTx(ctx, tx, order.ID, userID); err != nil {
		logger.Error("failed to delete order", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	restored := s.restoreItems(ctx, logger, previous)
	s.invalidateProducts(ctx, restored)

	logger.Info("order deleted")
	return nil
}

func (s *orderService) Find(ctx context.Context, id, userID string) (*models.Order, error) {
	const op = "service.OrderService.Find"
	order, err := s.orderRepo.GetOrderOwned(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return order, nil
}

func (s *orderService) All(ctx context.Context, userID string) ([]*models.Order, error) {
	const op = "service.OrderService.All"
	orders, err := s.orderRepo.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return orders, nil
}

// createItems validates and persists the requested lines, decrementing
// product stock per line. The unit price is snapshotted onto the item.
// Runs inside the workflow transaction; the first failing line aborts it.
func (s *orderService) createItems(ctx context.Context, tx *sql.Tx, logger *slog.Logger, orderID string, items []OrderItemCommand) ([]string, error) {
	var touched []string
	for _, line := range items {
		product, err := s.productRepo.GetProductByIDTx(ctx, tx, line.ProductID)
		if err != nil {
			logger.Warn("product lookup failed", slog.String("productID", line.ProductID), slog.Any("error", err))
			return nil, err
		}
		if !product.IsActive {
			logger.Warn("product is inactive", slog.String("productID", product.ID))
			return nil, fmt.Errorf("%s: %w", product.Title, ErrProductInactive)
		}
		if product.Inventory < line.Quantity {
			logger.Warn("insufficient inventory",
				slog.String("productID", product.ID),
				slog.Int64("requested", line.Quantity),
				slog.Int64("available", product.Inventory))
			return nil, fmt.Errorf("%s: %w", product.Title, ErrInsufficientInventory)
		}

		item := &models.OrderItem{
			ID:        uuid.NewString(),
			OrderID:   orderID,
			ProductID: &product.ID,
			Price:     product.Price,
			Quantity:  line.Quantity,
		}
		if err := s.itemRepo.CreateItemTx(ctx, tx, item); err != nil {
			logger.Error("failed to create order item", slog.Any("error", err))
			return nil, err
		}

		// The guarded UPDATE keeps a concurrent order from driving
		// inventory negative even when both passed the pre-check.
		if err := s.productRepo.DecrementInventoryTx(ctx, tx, product.ID, line.Quantity); err != nil {
			if errors.Is(err, storage.ErrNotEnoughInventory) {
				return nil, fmt.Errorf("%s: %w", product.Title, ErrInsufficientInventory)
			}
			logger.Error("failed to decrement inventory", slog.Any("error", err))
			return nil, err
		}
		touched = append(touched, product.ID)
	}
	return touched, nil
}

// restoreItems gives the stock of removed items back. It runs after the
// workflow transaction has committed, so a failing restore cannot undo the
// update/delete itself; the failure is written to the error log and swallowed.
// Items whose product was deleted are skipped.
func (s *orderService) restoreItems(ctx context.Context, logger *slog.Logger, items []*models.OrderItem) []string {
	var touched []string
	for _, item := range items {
		if item.ProductID == nil {
			continue
		}
		if err := s.productRepo.RestoreInventory(ctx, *item.ProductID, item.Quantity); err != nil {
			logger.Warn("failed to restore inventory",
				slog.String("productID", *item.ProductID),
				slog.Any("error", err))
			s.recordSwallowed(ctx, logger, "inventory restore", err)
			continue
		}
		touched = append(touched, *item.ProductID)
	}
	return touched
}

// recordSwallowed persists a deliberately swallowed error. If even that
// fails, the failure is only logged.
func (s *orderService) recordSwallowed(ctx context.Context, logger *slog.Logger, name string, cause error) {
	entry := &models.ErrorLog{
		ID:      uuid.NewString(),
		Name:    name,
		Message: cause.Error(),
	}
	if err := s.errLogRepo.CreateErrorLog(ctx, entry); err != nil {
		logger.Error("failed to persist error log", slog.Any("error", err))
	}
}

func (s *orderService) invalidateProducts(ctx context.Context, ids []string) {
	if s.cache == nil {
		return
	}
	for _, id := range ids {
		if err := s.cache.Del(ctx, redisx.ProductKey(id)).Err(); err != nil {
			s.log.Warn("failed to invalidate product cache", slog.String("productID", id), slog.Any("error", err))
		}
	}
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/akorbut/storefront/internal/domain/models"
	"github.com/akorbut/storefront/internal/redisx"
	"github.com/akorbut/storefront/internal/storage"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ProductCommand carries the writable product fields. Vendor and category
// references are validated against their tables before the row is written.
type ProductCommand struct {
	SKU          string
	Title        string
	Description  string
	Price        float64
	Inventory    int64
	DeliveryTime string
	IsActive     bool
	VendorID     string
	CategoryID   string
}

type ProductService interface {
	Create(ctx context.Context, userID string, cmd ProductCommand) (*models.Product, error)
	Update(ctx context.Context, id, userID string, cmd ProductCommand) (*models.Product, error)
	Delete(ctx context.Context, id, userID string) error
	Find(ctx context.Context, id string) (*models.Product, error)
	All(ctx context.Context, userID string, onlyMine bool) ([]*models.Product, error)
}

type productService struct {
	log          *slog.Logger
	productRepo  storage.ProductStorage
	vendorRepo   storage.VendorStorage
	categoryRepo storage.CategoryStorage
	cache        *redis.Client
}

func NewProductService(
	log *slog.Logger,
	productRepo storage.ProductStorage,
	vendorRepo storage.VendorStorage,
	categoryRepo storage.CategoryStorage,
	cache *redis.Client,
) ProductService {
	return &productService{
		log:          log,
		productRepo:  productRepo,
		vendorRepo:   vendorRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
	}
}

func (s *productService) Create(ctx context.Context, userID string, cmd ProductCommand) (*models.Product, error) {
	const op = "service.ProductService.Create"
	logger := s.log.With(slog.String("op", op), slog.String("userID", userID))

	product := &models.Product{
		ID:           uuid.NewString(),
		SKU:          cmd.SKU,
		Title:        cmd.Title,
		Description:  cmd.Description,
		Price:        cmd.Price,
		Inventory:    cmd.Inventory,
		DeliveryTime: cmd.DeliveryTime,
		IsActive:     cmd.IsActive,
		CreatedBy:    &userID,
	}
	if err := s.resolveRefs(ctx, product, cmd); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	product, err := s.productRepo.CreateProduct(ctx, product)
	if err != nil {
		logger.Error("failed to create product", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("product created", slog.String("productID", product.ID))
	return product, nil
}

func (s *productService) Update(ctx context.Context, id, userID string, cmd ProductCommand) (*models.Product, error) {
	const op = "service.ProductService.Update"
	logger := s.log.With(slog.String("op", op), slog.String("productID", id))

	product, err := s.productRepo.GetProductByIDOwned(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	product.SKU = cmd.SKU
	product.Title = cmd.Title
	product.Description = cmd.Description
	product.Price = cmd.Price
	product.Inventory = cmd.Inventory
	product.DeliveryTime = cmd.DeliveryTime
	product.IsActive = cmd.IsActive
	product.VendorID = nil
	product.CategoryID = nil
	if err := s.resolveRefs(ctx, product, cmd); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.productRepo.UpdateProduct(ctx, product); err != nil {
		logger.Error("failed to update product", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.invalidate(ctx, id)
	return product, nil
}

func (s *productService) Delete(ctx context.Context, id, userID string) error {
	const op = "service.ProductService.Delete"

	if err := s.productRepo.DeleteProduct(ctx, id, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.invalidate(ctx, id)
	s.log.Info("product deleted", slog.String("op", op), slog.String("productID", id))
	return nil
}

// Find serves single-product reads through the cache: a hit skips the
// database entirely, a miss loads the row and stores it with a TTL.
func (s *productService) Find(ctx context.Context, id string) (*models.Product, error) {
	const op = "service.ProductService.Find"

	if s.cache != nil {
		raw, err := s.cache.Get(ctx, redisx.ProductKey(id)).Result()
		if err == nil {
			product := &models.Product{}
			if err := json.Unmarshal([]byte(raw), product); err == nil {
				return product, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.log.Warn("product cache read failed", slog.String("op", op), slog.Any("error", err))
		}
	}

	product, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.cache != nil {
		if raw, err := json.Marshal(product); err == nil {
			if err := s.cache.Set(ctx, redisx.ProductKey(id), raw, redisx.TTLProduct).Err(); err != nil {
				s.log.Warn("product cache write failed", slog.String("op", op), slog.Any("error", err))
			}
		}
	}
	return product, nil
}

func (s *productService) All(ctx context.Context, userID string, onlyMine bool) ([]*models.Product, error) {
	const op = "service.ProductService.All"

	var (
		products []*models.Product
		err      error
	)
	if onlyMine {
		products, err = s.productRepo.ListProductsByCreator(ctx, userID)
	} else {
		products, err = s.productRepo.ListProducts(ctx)
	}
	if err != nil {
		s.log.Error("failed to list products", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return products, nil
}

func (s *productService) resolveRefs(ctx context.Context, product *models.Product, cmd ProductCommand) error {
	if cmd.VendorID != "" {
		vendor, err := s.vendorRepo.GetVendorByID(ctx, cmd.VendorID)
		if err != nil {
			return err
		}
		product.VendorID = &vendor.ID
	}
	if cmd.CategoryID != "" {
		category, err := s.categoryRepo.GetCategoryByID(ctx, cmd.CategoryID)
		if err != nil {
			return err
		}
		product.CategoryID = &category.ID
	}
	return nil
}

func (s *productService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, redisx.ProductKey(id)).Err(); err != nil {
		s.log.Warn("product cache invalidation failed", slog.String("productID", id), slog.Any("error", err))
	}
}

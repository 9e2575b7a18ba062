package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/akorbut/storefront/internal/domain/models"
	"github.com/akorbut/storefront/internal/storage"
	"github.com/google/uuid"
)

type CategoryCommand struct {
	Name string
	Code string
}

type CategoryService interface {
	Create(ctx context.Context, cmd CategoryCommand) (*models.ProductCategory, error)
	Update(ctx context.Context, id string, cmd CategoryCommand) (*models.ProductCategory, error)
	Delete(ctx context.Context, id string) error
	Find(ctx context.Context, id string) (*models.ProductCategory, error)
	All(ctx context.Context) ([]*models.ProductCategory, error)
}

type categoryService struct {
	log          *slog.Logger
	categoryRepo storage.CategoryStorage
}

func NewCategoryService(log *slog.Logger, categoryRepo storage.CategoryStorage) CategoryService {
	return &categoryService{log: log, categoryRepo: categoryRepo}
}

func (s *categoryService) Create(ctx context.Context, cmd CategoryCommand) (*models.ProductCategory, error) {
	const op = "service.CategoryService.Create"
	logger := s.log.With(slog.String("op", op))

	code := cmd.Code
	if code == "" {
		code = slugCode(cmd.Name)
	}
	category := &models.ProductCategory{
		ID:   uuid.NewString(),
		Name: cmd.Name,
		Code: code,
	}
	category, err := s.categoryRepo.CreateCategory(ctx, category)
	if err != nil {
		logger.Error("failed to create category", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("category created", slog.String("categoryID", category.ID))
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id string, cmd CategoryCommand) (*models.ProductCategory, error) {
	const op = "service.CategoryService.Update"

	category, err := s.categoryRepo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	category.Name = cmd.Name
	if cmd.Code != "" {
		category.Code = cmd.Code
	}
	if err := s.categoryRepo.UpdateCategory(ctx, category); err != nil {
		s.log.Error("failed to update category", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, id string) error {
	const op = "service.CategoryService.Delete"

	if err := s.categoryRepo.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("category deleted", slog.String("op", op), slog.String("categoryID", id))
	return nil
}

func (s *categoryService) Find(ctx context.Context, id string) (*models.ProductCategory, error) {
	const op = "service.CategoryService.Find"

	category, err := s.categoryRepo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return category, nil
}

func (s *categoryService) All(ctx context.Context) ([]*models.ProductCategory, error) {
	const op = "service.CategoryService.All"

	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		s.log.Error("failed to list categories", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return categories, nil
}

package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/akorbut/storefront/internal/domain/models"
	"github.com/akorbut/storefront/internal/storage"
	"github.com/google/uuid"
)

// VendorCommand carries the writable vendor fields. An empty Code is derived
// from Name.
type VendorCommand struct {
	Name string
	Code string
}

type VendorService interface {
	Create(ctx context.Context, userID string, cmd VendorCommand) (*models.Vendor, error)
	Update(ctx context.Context, id, userID string, cmd VendorCommand) (*models.Vendor, error)
	Delete(ctx context.Context, id, userID string) error
	Find(ctx context.Context, id string) (*models.Vendor, error)
	All(ctx context.Context, userID string, onlyMine bool) ([]*models.Vendor, error)
}

type vendorService struct {
	log        *slog.Logger
	vendorRepo storage.VendorStorage
}

func NewVendorService(log *slog.Logger, vendorRepo storage.VendorStorage) VendorService {
	return &vendorService{log: log, vendorRepo: vendorRepo}
}

func (s *vendorService) Create(ctx context.Context, userID string, cmd VendorCommand) (*models.Vendor, error) {
	const op = "service.VendorService.Create"
	logger := s.log.With(slog.String("op", op), slog.String("userID", userID))

	code := cmd.Code
	if code == "" {
		code = slugCode(cmd.Name)
	}
	vendor := &models.Vendor{
		ID:        uuid.NewString(),
		Name:      cmd.Name,
		Code:      code,
		CreatedBy: &userID,
	}
	vendor, err := s.vendorRepo.CreateVendor(ctx, vendor)
	if err != nil {
		logger.Error("failed to create vendor", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("vendor created", slog.String("vendorID", vendor.ID))
	return vendor, nil
}

// Update modifies a vendor the user created. Rows created by other users are
// reported as missing rather than forbidden.
func (s *vendorService) Update(ctx context.Context, id, userID string, cmd VendorCommand) (*models.Vendor, error) {
	const op = "service.VendorService.Update"
	logger := s.log.With(slog.String("op", op), slog.String("vendorID", id))

	vendor, err := s.vendorRepo.GetVendorByIDOwned(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	vendor.Name = cmd.Name
	if cmd.Code != "" {
		vendor.Code = cmd.Code
	}
	if err := s.vendorRepo.UpdateVendor(ctx, vendor); err != nil {
		logger.Error("failed to update vendor", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return vendor, nil
}

func (s *vendorService) Delete(ctx context.Context, id, userID string) error {
	const op = "service.VendorService.Delete"

	if err := s.vendorRepo.DeleteVendor(ctx, id, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("vendor deleted", slog.String("op", op), slog.String("vendorID", id))
	return nil
}

func (s *vendorService) Find(ctx context.Context, id string) (*models.Vendor, error) {
	const op = "service.VendorService.Find"

	vendor, err := s.vendorRepo.GetVendorByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return vendor, nil
}

func (s *vendorService) All(ctx context.Context, userID string, onlyMine bool) ([]*models.Vendor, error) {
	const op = "service.VendorService.All"

	var (
		vendors []*models.Vendor
		err     error
	)
	if onlyMine {
		vendors, err = s.vendorRepo.ListVendorsByCreator(ctx, userID)
	} else {
		vendors, err = s.vendorRepo.ListVendors(ctx)
	}
	if err != nil {
		s.log.Error("failed to list vendors", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return vendors, nil
}

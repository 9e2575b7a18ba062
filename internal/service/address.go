package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/akorbut/storefront/internal/domain/models"
	"github.com/akorbut/storefront/internal/storage"
	"github.com/google/uuid"
)

type AddressCommand struct {
	Type      string
	FirstName string
	LastName  string
	Line1     string
	Line2     string
	City      string
	State     string
	Zipcode   string
	Country   string
}

// AddressService manages the caller's own addresses; every read and write is
// scoped by user id.
type AddressService interface {
	Create(ctx context.Context, userID string, cmd AddressCommand) (*models.Address, error)
	Update(ctx context.Context, id, userID string, cmd AddressCommand) (*models.Address, error)
	Delete(ctx context.Context, id, userID string) error
	Find(ctx context.Context, id, userID string) (*models.Address, error)
	All(ctx context.Context, userID string) ([]*models.Address, error)
}

type addressService struct {
	log         *slog.Logger
	addressRepo storage.AddressStorage
}

func NewAddressService(log *slog.Logger, addressRepo storage.AddressStorage) AddressService {
	return &addressService{log: log, addressRepo: addressRepo}
}

func (s *addressService) Create(ctx context.Context, userID string, cmd AddressCommand) (*models.Address, error) {
	const op = "service.AddressService.Create"
	logger := s.log.With(slog.String("op", op), slog.String("userID", userID))

	address := &models.Address{
		ID:        uuid.NewString(),
		Type:      cmd.Type,
		FirstName: cmd.FirstName,
		LastName:  cmd.LastName,
		Line1:     cmd.Line1,
		Line2:     cmd.Line2,
		City:      cmd.City,
		State:     cmd.State,
		Zipcode:   cmd.Zipcode,
		Country:   cmd.Country,
		UserID:    userID,
	}
	address, err := s.addressRepo.CreateAddress(ctx, address)
	if err != nil {
		logger.Error("failed to create address", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("address created", slog.String("addressID", address.ID))
	return address, nil
}

func (s *addressService) Update(ctx context.Context, id, userID string, cmd AddressCommand) (*models.Address, error) {
	const op = "service.AddressService.Update"

	address, err := s.addressRepo.GetAddressOwned(ctx, id, userID, "")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	address.Type = cmd.Type
	address.FirstName = cmd.FirstName
	address.LastName = cmd.LastName
	address.Line1 = cmd.Line1
	address.Line2 = cmd.Line2
	address.City = cmd.City
	address.State = cmd.State
	address.Zipcode = cmd.Zipcode
	address.Country = cmd.Country
	if err := s.addressRepo.UpdateAddress(ctx, address); err != nil {
		s.log.Error("failed to update address", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return address, nil
}

func (s *addressService) Delete(ctx context.Context, id, userID string) error {
	const op = "service.AddressService.Delete"

	if err := s.addressRepo.DeleteAddress(ctx, id, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *addressService) Find(ctx context.Context, id, userID string) (*models.Address, error) {
	const op = "service.AddressService.Find"

	address, err := s.addressRepo.GetAddressOwned(ctx, id, userID, "")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return address, nil
}

func (s *addressService) All(ctx context.Context, userID string) ([]*models.Address, error) {
	const op = "service.AddressService.All"

	addresses, err := s.addressRepo.ListAddressesByUser(ctx, userID)
	if err != nil {
		s.log.Error("failed to list addresses", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return addresses, nil
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/akorbut/storefront/internal/domain/models"
	"github.com/akorbut/storefront/internal/storage"
	"github.com/google/uuid"
)

type CardCommand struct {
	Name      string
	Number    string
	ExpiresOn time.Time
}

// CardService manages the caller's own payment cards.
type CardService interface {
	Create(ctx context.Context, userID string, cmd CardCommand) (*models.Card, error)
	Update(ctx context.Context, id, userID string, cmd CardCommand) (*models.Card, error)
	Delete(ctx context.Context, id, userID string) error
	Find(ctx context.Context, id, userID string) (*models.Card, error)
	All(ctx context.Context, userID string) ([]*models.Card, error)
}

type cardService struct {
	log      *slog.Logger
	cardRepo storage.CardStorage
}

func NewCardService(log *slog.Logger, cardRepo storage.CardStorage) CardService {
	return &cardService{log: log, cardRepo: cardRepo}
}

func (s *cardService) Create(ctx context.Context, userID string, cmd CardCommand) (*models.Card, error) {
	const op = "service.CardService.Create"
	logger := s.log.With(slog.String("op", op), slog.String("userID", userID))

	card := &models.Card{
		ID:        uuid.NewString(),
		Name:      cmd.Name,
		Number:    cmd.Number,
		ExpiresOn: cmd.ExpiresOn,
		UserID:    userID,
	}
	card, err := s.cardRepo.CreateCard(ctx, card)
	if err != nil {
		logger.Error("failed to create card", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("card created", slog.String("cardID", card.ID))
	return card, nil
}

func (s *cardService) Update(ctx context.Context, id, userID string, cmd CardCommand) (*models.Card, error) {
	const op = "service.CardService.Update"

	card, err := s.cardRepo.GetCardOwned(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	card.Name = cmd.Name
	card.Number = cmd.Number
	card.ExpiresOn = cmd.ExpiresOn
	if err := s.cardRepo.UpdateCard(ctx, card); err != nil {
		s.log.Error("failed to update card", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return card, nil
}

func (s *cardService) Delete(ctx context.Context, id, userID string) error {
	const op = "service.CardService.Delete"

	if err := s.cardRepo.DeleteCard(ctx, id, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *cardService) Find(ctx context.Context, id, userID string) (*models.Card, error) {
	const op = "service.CardService.Find"

	card, err := s.cardRepo.GetCardOwned(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return card, nil
}

func (s *cardService) All(ctx context.Context, userID string) ([]*models.Card, error) {
	const op = "service.CardService.All"

	cards, err := s.cardRepo.ListCardsByUser(ctx, userID)
	if err != nil {
		s.log.Error("failed to list cards", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return cards, nil
}

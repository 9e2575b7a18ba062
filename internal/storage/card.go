package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/akorbut/storefront/internal/domain/models"
)

var ErrCardNotFound = errors.New("card not found")

type CardStorage interface {
	CreateCard(ctx context.Context, card *models.Card) (*models.Card, error)
	GetCardOwned(ctx context.Context, id, userID string) (*models.Card, error)
	ListCardsByUser(ctx context.Context, userID string) ([]*models.Card, error)
	UpdateCard(ctx context.Context, card *models.Card) error
	DeleteCard(ctx context.Context, id, userID string) error
}

type cardRepository struct {
	db *sql.DB
}

func NewCardRepository(db *sql.DB) *cardRepository {
	return &cardRepository{db: db}
}

const cardColumns = "id, name, number, expires_on, user_id, created_on, updated_on"

func scanCard(scan func(dest ...interface{}) error) (*models.Card, error) {
	card := &models.Card{}
	err := scan(&card.ID, &card.Name, &card.Number, &card.ExpiresOn, &card.UserID, &card.CreatedOn, &card.UpdatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	return card, nil
}

func (r *cardRepository) CreateCard(ctx context.Context, card *models.Card) (*models.Card, error) {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO cards (id, name, number, expires_on, user_id, created_on, updated_on) VALUES ($1, $2, $3, $4, $5, NOW(), NOW())",
		card.ID, card.Name, card.Number, card.ExpiresOn, card.UserID,
	)
	if err != nil {
		return nil, err
	}
	return card, nil
}

func (r *cardRepository) GetCardOwned(ctx context.Context, id, userID string) (*models.Card, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+cardColumns+" FROM cards WHERE id = $1 AND user_id = $2", id, userID)
	return scanCard(row.Scan)
}

func (r *cardRepository) ListCardsByUser(ctx context.Context, userID string) ([]*models.Card, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+cardColumns+" FROM cards WHERE user_id = $1 ORDER BY created_on", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []*models.Card
	for rows.Next() {
		card, err := scanCard(rows.Scan)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *cardRepository) UpdateCard(ctx context.Context, card *models.Card) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE cards SET name = $1, number = $2, expires_on = $3, updated_on = NOW() WHERE id = $4 AND user_id = $5",
		card.Name, card.Number, card.ExpiresOn, card.ID, card.UserID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCardNotFound
	}
	return nil
}

func (r *cardRepository) DeleteCard(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM cards WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCardNotFound
	}
	return nil
}

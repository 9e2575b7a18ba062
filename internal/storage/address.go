package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/akorbut/storefront/internal/domain/models"
)

var ErrAddressNotFound = errors.New("address not found")

// AddressStorage describes address persistence. All lookups are scoped to the
// owning user; addrType narrows the match further when non-empty.
type AddressStorage interface {
	CreateAddress(ctx context.Context, address *models.Address) (*models.Address, error)
	GetAddressOwned(ctx context.Context, id, userID, addrType string) (*models.Address, error)
	ListAddressesByUser(ctx context.Context, userID string) ([]*models.Address, error)
	UpdateAddress(ctx context.Context, address *models.Address) error
	DeleteAddress(ctx context.Context, id, userID string) error
}

type addressRepository struct {
	db *sql.DB
}

func NewAddressRepository(db *sql.DB) *addressRepository {
	return &addressRepository{db: db}
}

const addressColumns = "id, type, first_name, last_name, line1, line2, city, state, zipcode, country, user_id, created_on, updated_on"

func scanAddress(scan func(dest ...interface{}) error) (*models.Address, error) {
	address := &models.Address{}
	var line2 sql.NullString
	err := scan(
		&address.ID, &address.Type, &address.FirstName, &address.LastName,
		&address.Line1, &line2, &address.City, &address.State,
		&address.Zipcode, &address.Country, &address.UserID,
		&address.CreatedOn, &address.UpdatedOn,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	address.Line2 = line2.String
	return address, nil
}

func (r *addressRepository) CreateAddress(ctx context.Context, address *models.Address) (*models.Address, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO addresses (id, type, first_name, last_name, line1, line2, city, state, zipcode, country, user_id, created_on, updated_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())`,
		address.ID, address.Type, address.FirstName, address.LastName,
		address.Line1, address.Line2, address.City, address.State,
		address.Zipcode, address.Country, address.UserID,
	)
	if err != nil {
		return nil, err
	}
	return address, nil
}

func (r *addressRepository) GetAddressOwned(ctx context.Context, id, userID, addrType string) (*models.Address, error) {
	if addrType == "" {
		row := r.db.QueryRowContext(ctx,
			"SELECT "+addressColumns+" FROM addresses WHERE id = $1 AND user_id = $2", id, userID)
		return scanAddress(row.Scan)
	}
	row := r.db.QueryRowContext(ctx,
		"SELECT "+addressColumns+" FROM addresses WHERE id = $1 AND user_id = $2 AND type = $3", id, userID, addrType)
	return scanAddress(row.Scan)
}

func (r *addressRepository) ListAddressesByUser(ctx context.Context, userID string) ([]*models.Address, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+addressColumns+" FROM addresses WHERE user_id = $1 ORDER BY created_on", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var addresses []*models.Address
	for rows.Next() {
		address, err := scanAddress(rows.Scan)
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, address)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return addresses, nil
}

func (r *addressRepository) UpdateAddress(ctx context.Context, address *models.Address) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE addresses SET type = $1, first_name = $2, last_name = $3, line1 = $4, line2 = $5,
		 city = $6, state = $7, zipcode = $8, country = $9, updated_on = NOW()
		 WHERE id = $10 AND user_id = $11`,
		address.Type, address.FirstName, address.LastName, address.Line1, address.Line2,
		address.City, address.State, address.Zipcode, address.Country, address.ID, address.UserID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAddressNotFound
	}
	return nil
}

func (r *addressRepository) DeleteAddress(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM addresses WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAddressNotFound
	}
	return nil
}

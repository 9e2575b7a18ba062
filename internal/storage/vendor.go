package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/akorbut/storefront/internal/domain/models"
	"github.com/lib/pq"
)

var (
	ErrVendorNotFound = errors.New("vendor not found")
	ErrCodeTaken      = errors.New("code is already in use")
)

// VendorStorage describes vendor persistence. The *Owned variants scope the
// lookup to rows created by the given user.
type VendorStorage interface {
	CreateVendor(ctx context.Context, vendor *models.Vendor) (*models.Vendor, error)
	GetVendorByID(ctx context.Context, id string) (*models.Vendor, error)
	GetVendorByIDOwned(ctx context.Context, id, userID string) (*models.Vendor, error)
	ListVendors(ctx context.Context) ([]*models.Vendor, error)
	ListVendorsByCreator(ctx context.Context, userID string) ([]*models.Vendor, error)
	UpdateVendor(ctx context.Context, vendor *models.Vendor) error
	DeleteVendor(ctx context.Context, id, userID string) error
}

type vendorRepository struct {
	db *sql.DB
}

func NewVendorRepository(db *sql.DB) *vendorRepository {
	return &vendorRepository{db: db}
}

const vendorColumns = "id, name, code, created_by, created_on, updated_on"

func scanVendor(row *sql.Row) (*models.Vendor, error) {
	vendor := &models.Vendor{}
	if err := row.Scan(&vendor.ID, &vendor.Name, &vendor.Code, &vendor.CreatedBy, &vendor.CreatedOn, &vendor.UpdatedOn); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVendorNotFound
		}
		return nil, err
	}
	return vendor, nil
}

func (r *vendorRepository) CreateVendor(ctx context.Context, vendor *models.Vendor) (*models.Vendor, error) {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO vendors (id, name, code, created_by, created_on, updated_on) VALUES ($1, $2, $3, $4, NOW(), NOW())",
		vendor.ID, vendor.Name, vendor.Code, vendor.CreatedBy,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" {
				return nil, ErrCodeTaken
			}
		}
		return nil, err
	}
	return vendor, nil
}

func (r *vendorRepository) GetVendorByID(ctx context.Context, id string) (*models.Vendor, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+vendorColumns+" FROM vendors WHERE id = $1", id)
	return scanVendor(row)
}

func (r *vendorRepository) GetVendorByIDOwned(ctx context.Context, id, userID string) (*models.Vendor, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+vendorColumns+" FROM vendors WHERE id = $1 AND created_by = $2", id, userID)
	return scanVendor(row)
}

func (r *vendorRepository) ListVendors(ctx context.Context) ([]*models.Vendor, error) {
	return r.queryVendors(ctx, "SELECT "+vendorColumns+" FROM vendors ORDER BY created_on")
}

func (r *vendorRepository) ListVendorsByCreator(ctx context.Context, userID string) ([]*models.Vendor, error) {
	return r.queryVendors(ctx, "SELECT "+vendorColumns+" FROM vendors WHERE created_by = $1 ORDER BY created_on", userID)
}

func (r *vendorRepository) queryVendors(ctx context.Context, query string, args ...interface{}) ([]*models.Vendor, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vendors []*models.Vendor
	for rows.Next() {
		vendor := &models.Vendor{}
		if err := rows.Scan(&vendor.ID, &vendor.Name, &vendor.Code, &vendor.CreatedBy, &vendor.CreatedOn, &vendor.UpdatedOn); err != nil {
			return nil, err
		}
		vendors = append(vendors, vendor)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return vendors, nil
}

func (r *vendorRepository) UpdateVendor(ctx context.Context, vendor *models.Vendor) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE vendors SET name = $1, code = $2, updated_on = NOW() WHERE id = $3",
		vendor.Name, vendor.Code, vendor.ID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrVendorNotFound
	}
	return nil
}

func (r *vendorRepository) DeleteVendor(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM vendors WHERE id = $1 AND created_by = $2", id, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrVendorNotFound
	}
	return nil
}

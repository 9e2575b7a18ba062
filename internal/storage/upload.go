package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/akorbut/storefront/internal/domain/models"
)

var ErrUploadNotFound = errors.New("upload not found")

type UploadStorage interface {
	CreateUpload(ctx context.Context, upload *models.Upload) (*models.Upload, error)
	GetUploadByID(ctx context.Context, id string) (*models.Upload, error)
	UpdateUploadObject(ctx context.Context, upload *models.Upload) error
	DeleteUpload(ctx context.Context, id string) error
	TotalSize(ctx context.Context) (int64, error)
}

type uploadRepository struct {
	db *sql.DB
}

func NewUploadRepository(db *sql.DB) *uploadRepository {
	return &uploadRepository{db: db}
}

const uploadColumns = "id, related_to, name, type, size, s3_bucket, s3_key, s3_location, s3_etag, product_id, created_by, created_on"

func (r *uploadRepository) CreateUpload(ctx context.Context, upload *models.Upload) (*models.Upload, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO uploads (id, related_to, name, type, size, s3_bucket, s3_key, s3_location, s3_etag, product_id, created_by, created_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())`,
		upload.ID, upload.RelatedTo, upload.Name, upload.Type, upload.Size,
		upload.S3Bucket, upload.S3Key, upload.S3Location, upload.S3ETag,
		upload.ProductID, upload.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return upload, nil
}

func (r *uploadRepository) GetUploadByID(ctx context.Context, id string) (*models.Upload, error) {
	upload := &models.Upload{}
	row := r.db.QueryRowContext(ctx, "SELECT "+uploadColumns+" FROM uploads WHERE id = $1", id)
	if err := row.Scan(&upload.ID, &upload.RelatedTo, &upload.Name, &upload.Type, &upload.Size,
		&upload.S3Bucket, &upload.S3Key, &upload.S3Location, &upload.S3ETag,
		&upload.ProductID, &upload.CreatedBy, &upload.CreatedOn); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUploadNotFound
		}
		return nil, err
	}
	return upload, nil
}

// UpdateUploadObject stores the S3 object reference once the push succeeded.
func (r *uploadRepository) UpdateUploadObject(ctx context.Context, upload *models.Upload) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE uploads SET s3_bucket = $1, s3_key = $2, s3_location = $3, s3_etag = $4, size = $5 WHERE id = $6",
		upload.S3Bucket, upload.S3Key, upload.S3Location, upload.S3ETag, upload.Size, upload.ID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUploadNotFound
	}
	return nil
}

func (r *uploadRepository) DeleteUpload(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM uploads WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUploadNotFound
	}
	return nil
}

func (r *uploadRepository) TotalSize(ctx context.Context) (int64, error) {
	var total sql.NullInt64
	row := r.db.QueryRowContext(ctx, "SELECT SUM(size) FROM uploads WHERE size IS NOT NULL")
	if err := row.Scan(&total); err != nil {
		return 0, err
	}
	return total.Int64, nil
}

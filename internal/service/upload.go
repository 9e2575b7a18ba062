package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/akorbut/storefront/internal/domain/models"
	"github.com/akorbut/storefront/internal/s3x"
	"github.com/akorbut/storefront/internal/storage"
	"github.com/google/uuid"
)

const (
	// maxCapacity caps the combined size of all stored files at 5 GB.
	maxCapacity = 5 * 1024 * 1024 * 1024
	// maxFileSize caps a single file at 10 MB.
	maxFileSize = 10 * 1024 * 1024
)

var allowedUploadTypes = map[string]bool{
	"application/pdf": true,
	"image/png":       true,
	"image/jpeg":      true,
	"image/gif":       true,
}

// UploadCommand carries the file to store. Body is the full file content;
// handlers read it out of the multipart form before calling the service.
type UploadCommand struct {
	RelatedTo string
	Name      string
	Type      string
	Body      []byte
	ProductID string
}

type UploadService interface {
	Create(ctx context.Context, userID string, cmd UploadCommand) (*models.Upload, error)
	Find(ctx context.Context, id string) (*models.Upload, error)
	Download(ctx context.Context, id string) (*models.Upload, io.ReadCloser, error)
	Delete(ctx context.Context, id string) error
}

type uploadService struct {
	log        *slog.Logger
	uploadRepo storage.UploadStorage
	store      s3x.ObjectStore
}

// NewUploadService builds the upload workflow. A nil store means no bucket is
// configured; every operation then fails with ErrUploadsDisabled instead of
// touching the metadata table.
func NewUploadService(log *slog.Logger, uploadRepo storage.UploadStorage, store s3x.ObjectStore) UploadService {
	return &uploadService{log: log, uploadRepo: uploadRepo, store: store}
}

// Create checks the size and type caps, writes the metadata row, then pushes
// the object to S3. A failed push removes the row again so the table never
// points at a missing object.
func (s *uploadService) Create(ctx context.Context, userID string, cmd UploadCommand) (*models.Upload, error) {
	const op = "service.UploadService.Create"
	logger := s.log.With(slog.String("op", op), slog.String("name", cmd.Name))

	if s.store == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUploadsDisabled)
	}

	size := int64(len(cmd.Body))
	if size > maxFileSize {
		return nil, fmt.Errorf("%s: %w", op, ErrUploadTooBig)
	}
	if !allowedUploadTypes[cmd.Type] {
		return nil, fmt.Errorf("%s: %w", op, ErrUploadTypeNotAllowed)
	}

	total, err := s.uploadRepo.TotalSize(ctx)
	if err != nil {
		logger.Error("failed to read storage usage", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if total+size > maxCapacity {
		return nil, fmt.Errorf("%s: %w", op, ErrUploadCapacity)
	}

	upload := &models.Upload{
		ID:        uuid.NewString(),
		RelatedTo: cmd.RelatedTo,
		Name:      cmd.Name,
		Type:      cmd.Type,
		Size:      size,
		CreatedBy: &userID,
	}
	if cmd.ProductID != "" {
		upload.ProductID = &cmd.ProductID
	}
	upload, err = s.uploadRepo.CreateUpload(ctx, upload)
	if err != nil {
		logger.Error("failed to create upload", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	key := fmt.Sprintf("%s_%s", upload.ID, upload.Name)
	ref, err := s.store.Put(ctx, key, cmd.Body)
	if err != nil {
		logger.Error("failed to store object", slog.Any("error", err))
		if delErr := s.uploadRepo.DeleteUpload(ctx, upload.ID); delErr != nil {
			logger.Error("failed to remove orphaned upload row", slog.Any("error", delErr))
		}
		return nil, fmt.Errorf("%s: failed to store object: %w", op, err)
	}

	upload.S3Bucket = ref.Bucket
	upload.S3Key = ref.Key
	upload.S3Location = ref.Location
	upload.S3ETag = ref.ETag
	if err := s.uploadRepo.UpdateUploadObject(ctx, upload); err != nil {
		logger.Error("failed to record object location", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("file uploaded", slog.String("uploadID", upload.ID), slog.Int64("size", size))
	return upload, nil
}

func (s *uploadService) Find(ctx context.Context, id string) (*models.Upload, error) {
	const op = "service.UploadService.Find"

	upload, err := s.uploadRepo.GetUploadByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return upload, nil
}

// Download returns the upload metadata and a reader over the object body.
// The caller closes the reader.
func (s *uploadService) Download(ctx context.Context, id string) (*models.Upload, io.ReadCloser, error) {
	const op = "service.UploadService.Download"

	if s.store == nil {
		return nil, nil, fmt.Errorf("%s: %w", op, ErrUploadsDisabled)
	}

	upload, err := s.uploadRepo.GetUploadByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	body, err := s.store.Get(ctx, upload.S3Key)
	if err != nil {
		s.log.Error("failed to fetch object", slog.String("op", op), slog.Any("error", err))
		return nil, nil, fmt.Errorf("%s: failed to fetch object: %w", op, err)
	}
	return upload, body, nil
}

func (s *uploadService) Delete(ctx context.Context, id string) error {
	const op = "service.UploadService.Delete"

	if s.store == nil {
		return fmt.Errorf("%s: %w", op, ErrUploadsDisabled)
	}

	upload, err := s.uploadRepo.GetUploadByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.store.Delete(ctx, upload.S3Key); err != nil {
		s.log.Error("failed to delete object", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: failed to delete object: %w", op, err)
	}
	if err := s.uploadRepo.DeleteUpload(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("upload deleted", slog.String("op", op), slog.String("uploadID", id))
	return nil
}

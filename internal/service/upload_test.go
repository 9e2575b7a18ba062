package service_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akorbut/storefront/internal/domain/models"
	"github.com/akorbut/storefront/internal/s3x"
	"github.com/akorbut/storefront/internal/service"
	"github.com/akorbut/storefront/internal/storage"
)

type fakeUploadRepo struct {
	uploads map[string]*models.Upload
}

var _ storage.UploadStorage = (*fakeUploadRepo)(nil)

func newFakeUploadRepo() *fakeUploadRepo {
	return &fakeUploadRepo{uploads: make(map[string]*models.Upload)}
}

func (f *fakeUploadRepo) CreateUpload(ctx context.Context, upload *models.Upload) (*models.Upload, error) {
	f.uploads[upload.ID] = upload
	return upload, nil
}

func (f *fakeUploadRepo) GetUploadByID(ctx context.Context, id string) (*models.Upload, error) {
	upload, ok := f.uploads[id]
	if !ok {
		return nil, storage.ErrUploadNotFound
	}
	return upload, nil
}

func (f *fakeUploadRepo) UpdateUploadObject(ctx context.Context, upload *models.Upload) error {
	if _, ok := f.uploads[upload.ID]; !ok {
		return storage.ErrUploadNotFound
	}
	f.uploads[upload.ID] = upload
	return nil
}

func (f *fakeUploadRepo) DeleteUpload(ctx context.Context, id string) error {
	if _, ok := f.uploads[id]; !ok {
		return storage.ErrUploadNotFound
	}
	delete(f.uploads, id)
	return nil
}

func (f *fakeUploadRepo) TotalSize(ctx context.Context) (int64, error) {
	var total int64
	for _, u := range f.uploads {
		total += u.Size
	}
	return total, nil
}

type fakeObjectStore struct {
	objects map[string][]byte
	failPut bool
}

var _ s3x.ObjectStore = (*fakeObjectStore)(nil)

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: make(map[string][]byte)}
}

func (f *fakeObjectStore) Put(ctx context.Context, key string, body []byte) (*s3x.ObjectRef, error) {
	if f.failPut {
		return nil, errors.New("put failed")
	}
	f.objects[key] = body
	return &s3x.ObjectRef{Bucket: "test-bucket", Key: key, Location: "s3://test-bucket/" + key, ETag: "etag"}, nil
}

func (f *fakeObjectStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	body, ok := f.objects[key]
	if !ok {
		return nil, errors.New("object not found")
	}
	return io.NopCloser(bytes.NewReader(body)), nil
}

func (f *fakeObjectStore) Delete(ctx context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

func TestUploadService_Create_Success(t *testing.T) {
	repo := newFakeUploadRepo()
	store := newFakeObjectStore()
	svc := service.NewUploadService(newTestLogger(), repo, store)

	upload, err := svc.Create(context.Background(), "user-1", service.UploadCommand{
		RelatedTo: models.UploadRelatedToProduct,
		Name:      "photo.png",
		Type:      "image/png",
		Body:      []byte("fake png bytes"),
		ProductID: "prod-1",
	})
	assert.NoError(t, err)
	assert.Equal(t, "test-bucket", upload.S3Bucket)
	assert.Equal(t, upload.ID+"_photo.png", upload.S3Key)
	assert.Len(t, store.objects, 1)
	assert.Equal(t, int64(len("fake png bytes")), upload.Size)
}

func TestUploadService_NilStoreRejectsCleanly(t *testing.T) {
	repo := newFakeUploadRepo()
	svc := service.NewUploadService(newTestLogger(), repo, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, "user-1", service.UploadCommand{
		RelatedTo: models.UploadRelatedToProduct,
		Name:      "photo.png",
		Type:      "image/png",
		Body:      []byte("fake png bytes"),
		ProductID: "prod-1",
	})
	assert.ErrorIs(t, err, service.ErrUploadsDisabled)
	assert.Empty(t, repo.uploads, "no metadata row may be written without a store")

	repo.uploads["up-1"] = &models.Upload{ID: "up-1", Name: "photo.png", S3Key: "up-1_photo.png"}
	_, _, err = svc.Download(ctx, "up-1")
	assert.ErrorIs(t, err, service.ErrUploadsDisabled)

	err = svc.Delete(ctx, "up-1")
	assert.ErrorIs(t, err, service.ErrUploadsDisabled)
	assert.Len(t, repo.uploads, 1, "the row must stay when the object cannot be removed")
}

func TestUploadService_Create_TypeNotAllowed(t *testing.T) {
	svc := service.NewUploadService(newTestLogger(), newFakeUploadRepo(), newFakeObjectStore())

	_, err := svc.Create(context.Background(), "user-1", service.UploadCommand{
		RelatedTo: models.UploadRelatedToUser,
		Name:      "script.sh",
		Type:      "application/x-sh",
		Body:      []byte("#!/bin/sh"),
	})
	assert.ErrorIs(t, err, service.ErrUploadTypeNotAllowed)
}

func TestUploadService_Create_TooBig(t *testing.T) {
	svc := service.NewUploadService(newTestLogger(), newFakeUploadRepo(), newFakeObjectStore())

	_, err := svc.Create(context.Background(), "user-1", service.UploadCommand{
		RelatedTo: models.UploadRelatedToUser,
		Name:      "huge.png",
		Type:      "image/png",
		Body:      make([]byte, 10*1024*1024+1),
	})
	assert.ErrorIs(t, err, service.ErrUploadTooBig)
}

func TestUploadService_Create_PutFailureRemovesRow(t *testing.T) {
	repo := newFakeUploadRepo()
	store := newFakeObjectStore()
	store.failPut = true
	svc := service.NewUploadService(newTestLogger(), repo, store)

	_, err := svc.Create(context.Background(), "user-1", service.UploadCommand{
		RelatedTo: models.UploadRelatedToUser,
		Name:      "photo.jpg",
		Type:      "image/jpeg",
		Body:      []byte("jpeg bytes"),
	})
	assert.Error(t, err)
	assert.Empty(t, repo.uploads, "the metadata row must not survive a failed object push")
}

func TestUploadService_DownloadAndDelete(t *testing.T) {
	repo := newFakeUploadRepo()
	store := newFakeObjectStore()
	svc := service.NewUploadService(newTestLogger(), repo, store)
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-1", service.UploadCommand{
		RelatedTo: models.UploadRelatedToUser,
		Name:      "doc.pdf",
		Type:      "application/pdf",
		Body:      []byte("%PDF-1.4"),
	})
	assert.NoError(t, err)

	upload, body, err := svc.Download(ctx, created.ID)
	assert.NoError(t, err)
	content, err := io.ReadAll(body)
	assert.NoError(t, err)
	body.Close()
	assert.Equal(t, "%PDF-1.4", string(content))
	assert.Equal(t, "doc.pdf", upload.Name)

	err = svc.Delete(ctx, created.ID)
	assert.NoError(t, err)
	assert.Empty(t, repo.uploads)
	assert.Empty(t, store.objects)

	_, err = svc.Find(ctx, created.ID)
	assert.ErrorIs(t, err, storage.ErrUploadNotFound)
}

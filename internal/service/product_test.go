package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akorbut/storefront/internal/domain/models"
	"github.com/akorbut/storefront/internal/service"
	"github.com/akorbut/storefront/internal/storage"
)

type fakeVendorRepo struct {
	vendors map[string]*models.Vendor
}

var _ storage.VendorStorage = (*fakeVendorRepo)(nil)

func newFakeVendorRepo() *fakeVendorRepo {
	return &fakeVendorRepo{vendors: make(map[string]*models.Vendor)}
}

func (f *fakeVendorRepo) CreateVendor(ctx context.Context, vendor *models.Vendor) (*models.Vendor, error) {
	for _, v := range f.vendors {
		if v.Code == vendor.Code {
			return nil, storage.ErrCodeTaken
		}
	}
	f.vendors[vendor.ID] = vendor
	return vendor, nil
}

func (f *fakeVendorRepo) GetVendorByID(ctx context.Context, id string) (*models.Vendor, error) {
	vendor, ok := f.vendors[id]
	if !ok {
		return nil, storage.ErrVendorNotFound
	}
	return vendor, nil
}

func (f *fakeVendorRepo) GetVendorByIDOwned(ctx context.Context, id, userID string) (*models.Vendor, error) {
	vendor, ok := f.vendors[id]
	if !ok || vendor.CreatedBy == nil || *vendor.CreatedBy != userID {
		return nil, storage.ErrVendorNotFound
	}
	return vendor, nil
}

func (f *fakeVendorRepo) ListVendors(ctx context.Context) ([]*models.Vendor, error) {
	var vendors []*models.Vendor
	for _, v := range f.vendors {
		vendors = append(vendors, v)
	}
	return vendors, nil
}

func (f *fakeVendorRepo) ListVendorsByCreator(ctx context.Context, userID string) ([]*models.Vendor, error) {
	var vendors []*models.Vendor
	for _, v := range f.vendors {
		if v.CreatedBy != nil && *v.CreatedBy == userID {
			vendors = append(vendors, v)
		}
	}
	return vendors, nil
}

func (f *fakeVendorRepo) UpdateVendor(ctx context.Context, vendor *models.Vendor) error {
	if _, ok := f.vendors[vendor.ID]; !ok {
		return storage.ErrVendorNotFound
	}
	f.vendors[vendor.ID] = vendor
	return nil
}

func (f *fakeVendorRepo) DeleteVendor(ctx context.Context, id, userID string) error {
	vendor, ok := f.vendors[id]
	if !ok || vendor.CreatedBy == nil || *vendor.CreatedBy != userID {
		return storage.ErrVendorNotFound
	}
	delete(f.vendors, id)
	return nil
}

type fakeCategoryRepo struct {
	categories map[string]*models.ProductCategory
}

var _ storage.CategoryStorage = (*fakeCategoryRepo)(nil)

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[string]*models.ProductCategory)}
}

func (f *fakeCategoryRepo) CreateCategory(ctx context.Context, category *models.ProductCategory) (*models.ProductCategory, error) {
	f.categories[category.ID] = category
	return category, nil
}

func (f *fakeCategoryRepo) GetCategoryByID(ctx context.Context, id string) (*models.ProductCategory, error) {
	category, ok := f.categories[id]
	if !ok {
		return nil, storage.ErrCategoryNotFound
	}
	return category, nil
}

func (f *fakeCategoryRepo) ListCategories(ctx context.Context) ([]*models.ProductCategory, error) {
	var categories []*models.ProductCategory
	for _, c := range f.categories {
		categories = append(categories, c)
	}
	return categories, nil
}

func (f *fakeCategoryRepo) UpdateCategory(ctx context.Context, category *models.ProductCategory) error {
	if _, ok := f.categories[category.ID]; !ok {
		return storage.ErrCategoryNotFound
	}
	f.categories[category.ID] = category
	return nil
}

func (f *fakeCategoryRepo) DeleteCategory(ctx context.Context, id string) error {
	if _, ok := f.categories[id]; !ok {
		return storage.ErrCategoryNotFound
	}
	delete(f.categories, id)
	return nil
}

func TestVendorService_Create_DerivesCode(t *testing.T) {
	repo := newFakeVendorRepo()
	svc := service.NewVendorService(newTestLogger(), repo)

	vendor, err := svc.Create(context.Background(), "user-1", service.VendorCommand{Name: "Acme Trading Co."})
	assert.NoError(t, err)
	assert.Equal(t, "acme_trading_co", vendor.Code)
	assert.Equal(t, "user-1", *vendor.CreatedBy)
}

func TestVendorService_All_OnlyMine(t *testing.T) {
	repo := newFakeVendorRepo()
	svc := service.NewVendorService(newTestLogger(), repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, "user-1", service.VendorCommand{Name: "Mine"})
	assert.NoError(t, err)
	_, err = svc.Create(ctx, "user-2", service.VendorCommand{Name: "Theirs"})
	assert.NoError(t, err)

	all, err := svc.All(ctx, "user-1", false)
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := svc.All(ctx, "user-1", true)
	assert.NoError(t, err)
	assert.Len(t, mine, 1)
	assert.Equal(t, "Mine", mine[0].Name)
}

func TestVendorService_Update_ForeignVendorRejected(t *testing.T) {
	repo := newFakeVendorRepo()
	svc := service.NewVendorService(newTestLogger(), repo)
	ctx := context.Background()

	vendor, err := svc.Create(ctx, "user-1", service.VendorCommand{Name: "Acme"})
	assert.NoError(t, err)

	_, err = svc.Update(ctx, vendor.ID, "user-2", service.VendorCommand{Name: "Hijacked"})
	assert.ErrorIs(t, err, storage.ErrVendorNotFound)
}

func TestCategoryService_Create_DerivesCode(t *testing.T) {
	svc := service.NewCategoryService(newTestLogger(), newFakeCategoryRepo())

	category, err := svc.Create(context.Background(), service.CategoryCommand{Name: "Home & Garden"})
	assert.NoError(t, err)
	assert.Equal(t, "home_garden", category.Code)
}

func TestProductService_Create_ResolvesReferences(t *testing.T) {
	productRepo := newFakeProductRepo()
	vendorRepo := newFakeVendorRepo()
	categoryRepo := newFakeCategoryRepo()

	userID := "merch-1"
	vendorRepo.vendors["vendor-1"] = &models.Vendor{ID: "vendor-1", Name: "Acme", CreatedBy: &userID}
	categoryRepo.categories["cat-1"] = &models.ProductCategory{ID: "cat-1", Name: "Peripherals"}

	svc := service.NewProductService(newTestLogger(), productRepo, vendorRepo, categoryRepo, nil)

	product, err := svc.Create(context.Background(), userID, service.ProductCommand{
		SKU:        "SKU-001",
		Title:      "Wireless Mouse",
		Price:      24.99,
		Inventory:  10,
		IsActive:   true,
		VendorID:   "vendor-1",
		CategoryID: "cat-1",
	})
	assert.NoError(t, err)
	assert.Equal(t, "vendor-1", *product.VendorID)
	assert.Equal(t, "cat-1", *product.CategoryID)
	assert.Equal(t, userID, *product.CreatedBy)
}

func TestProductService_Create_UnknownVendorRejected(t *testing.T) {
	svc := service.NewProductService(newTestLogger(), newFakeProductRepo(), newFakeVendorRepo(), newFakeCategoryRepo(), nil)

	_, err := svc.Create(context.Background(), "merch-1", service.ProductCommand{
		SKU:      "SKU-002",
		Title:    "Keyboard",
		VendorID: "no-such-vendor",
	})
	assert.ErrorIs(t, err, storage.ErrVendorNotFound)
}

func TestProductService_Find_WithoutCache(t *testing.T) {
	productRepo := newFakeProductRepo()
	productRepo.products["prod-1"] = &models.Product{ID: "prod-1", Title: "Mouse", IsActive: true}

	// nil cache client disables caching entirely
	svc := service.NewProductService(newTestLogger(), productRepo, newFakeVendorRepo(), newFakeCategoryRepo(), nil)

	product, err := svc.Find(context.Background(), "prod-1")
	assert.NoError(t, err)
	assert.Equal(t, "Mouse", product.Title)

	_, err = svc.Find(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrProductNotFound)
}

package productsvc

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corray333/commerce/internal/dal/interfaces/icategoryrepo"
	"github.com/corray333/commerce/internal/dal/interfaces/iproductrepo"
	"github.com/corray333/commerce/internal/service/apperr"
	"github.com/corray333/commerce/internal/service/models/category"
	"github.com/corray333/commerce/internal/service/models/product"
)

type fakeProductRepo struct {
	iproductrepo.IProductRepository
	products map[int64]product.Product
	nextID   int64
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[int64]product.Product{}}
}

func (f *fakeProductRepo) GetByID(_ context.Context, id int64) (product.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return product.Product{}, apperr.NotFound("Product", id)
	}

	return p, nil
}

func (f *fakeProductRepo) Insert(_ context.Context, p product.Product) (product.Product, error) {
	f.nextID++
	p.ID = f.nextID
	f.products[p.ID] = p

	return p, nil
}

func (f *fakeProductRepo) Update(_ context.Context, p product.Product) (product.Product, error) {
	if _, ok := f.products[p.ID]; !ok {
		return product.Product{}, apperr.NotFound("Product", p.ID)
	}
	f.products[p.ID] = p

	return p, nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.products[id]; !ok {
		return apperr.NotFound("Product", id)
	}
	delete(f.products, id)

	return nil
}

type fakeCategoryRepo struct {
	icategoryrepo.ICategoryRepository
	categories map[uint8]category.Category
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, id uint8) (category.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return category.Category{}, apperr.NotFound("Category", id)
	}

	return c, nil
}

func newTestService(products *fakeProductRepo, categories *fakeCategoryRepo) *ProductService {
	if categories == nil {
		categories = &fakeCategoryRepo{categories: map[uint8]category.Category{}}
	}

	return NewProductService(products, categories, nil, time.Minute)
}

func priced(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

func TestCreateProduct(t *testing.T) {
	repo := newFakeProductRepo()
	svc := newTestService(repo, nil)

	created, err := svc.Create(context.Background(), product.CreateProductModel{
		Name:  "Wireless Mouse",
		Price: priced("19.99"),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.True(t, created.Price.Decimal.Equal(decimal.RequireFromString("19.99")))
}

func TestCreateProduct_WithoutPriceAllowed(t *testing.T) {
	repo := newFakeProductRepo()
	svc := newTestService(repo, nil)

	created, err := svc.Create(context.Background(), product.CreateProductModel{Name: "Unpriced Gadget"})

	require.NoError(t, err)
	assert.False(t, created.Price.Valid)
}

func TestCreateProduct_NonPositivePrice(t *testing.T) {
	svc := newTestService(newFakeProductRepo(), nil)

	for _, p := range []string{"0", "-1.50"} {
		_, err := svc.Create(context.Background(), product.CreateProductModel{
			Name:  "Bad Price",
			Price: priced(p),
		})

		require.Error(t, err)
		assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
	}
}

func TestCreateProduct_UnknownCategory(t *testing.T) {
	svc := newTestService(newFakeProductRepo(), nil)

	categoryID := uint8(9)
	_, err := svc.Create(context.Background(), product.CreateProductModel{
		Name:       "Wireless Mouse",
		Price:      priced("19.99"),
		CategoryID: &categoryID,
	})

	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestUpdateProduct_PartialUpdate(t *testing.T) {
	repo := newFakeProductRepo()
	repo.products[1] = product.Product{ID: 1, Name: "Wireless Mouse", Description: "Compact", Price: priced("19.99")}
	svc := newTestService(repo, nil)

	updated, err := svc.Update(context.Background(), 1, product.UpdateProductModel{
		Price: priced("24.99"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Wireless Mouse", updated.Name)
	assert.Equal(t, "Compact", updated.Description)
	assert.True(t, updated.Price.Decimal.Equal(decimal.RequireFromString("24.99")))
}

func TestUploadImage(t *testing.T) {
	repo := newFakeProductRepo()
	repo.products[1] = product.Product{ID: 1, Name: "Wireless Mouse", Price: priced("19.99")}
	svc := newTestService(repo, nil)

	data := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	updated, err := svc.UploadImage(context.Background(), 1, "mouse.jpg", "image/jpeg", data)

	require.NoError(t, err)
	assert.Equal(t, "mouse.jpg", updated.ImageName)
	assert.Equal(t, "image/jpeg", updated.ImageType)
	assert.True(t, updated.HasImage())

	got, contentType, err := svc.GetImage(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", contentType)
	assert.True(t, bytes.Equal(data, got))
}

func TestUploadImage_Rejections(t *testing.T) {
	repo := newFakeProductRepo()
	repo.products[1] = product.Product{ID: 1, Name: "Wireless Mouse", Price: priced("19.99")}
	svc := newTestService(repo, nil)

	tests := []struct {
		name        string
		contentType string
		data        []byte
	}{
		{"empty file", "image/png", nil},
		{"disallowed type", "application/pdf", []byte("data")},
		{"oversized", "image/png", make([]byte, maxImageSize+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UploadImage(context.Background(), 1, "f", tt.contentType, tt.data)
			require.Error(t, err)
			assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
		})
	}

	stored := repo.products[1]
	assert.False(t, stored.HasImage())
}

func TestGetImage_NoImage(t *testing.T) {
	repo := newFakeProductRepo()
	repo.products[1] = product.Product{ID: 1, Name: "Wireless Mouse", Price: priced("19.99")}
	svc := newTestService(repo, nil)

	_, _, err := svc.GetImage(context.Background(), 1)

	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

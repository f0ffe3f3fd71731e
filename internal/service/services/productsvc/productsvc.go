package productsvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/corray333/commerce/internal/dal/interfaces/icategoryrepo"
	"github.com/corray333/commerce/internal/dal/interfaces/iproductrepo"
	redisclient "github.com/corray333/commerce/internal/dal/redis"
	"github.com/corray333/commerce/internal/service/apperr"
	"github.com/corray333/commerce/internal/service/models/product"
)

// ProductService manages the product catalog. Reads by id go through a
// redis cache invalidated on every mutation; the order engine bypasses this
// service and always reads products from Postgres inside its transaction.
type ProductService struct {
	productRepo  iproductrepo.IProductRepository
	categoryRepo icategoryrepo.ICategoryRepository
	cache        *redisclient.Client
	cacheTTL     time.Duration
	group        singleflight.Group
}

// NewProductService creates a new ProductService. The cache client may be nil
// to disable caching.
func NewProductService(
	productRepo iproductrepo.IProductRepository,
	categoryRepo icategoryrepo.ICategoryRepository,
	cache *redisclient.Client,
	cacheTTL time.Duration,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
		cacheTTL:     cacheTTL,
	}
}

func cacheKey(id int64) string {
	return "product:" + strconv.FormatInt(id, 10)
}

// List retrieves all products sorted by name or price (default name).
func (s *ProductService) List(ctx context.Context, sort string) ([]product.Product, error) {
	return s.productRepo.List(ctx, sort)
}

// GetByID retrieves one product, serving repeated reads from the cache. The
// image payload is never cached.
func (s *ProductService) GetByID(ctx context.Context, id int64) (product.Product, error) {
	if s.cache != nil {
		cached, err := s.cache.DB().Get(ctx, cacheKey(id)).Bytes()
		if err == nil {
			var p product.Product
			if err := json.Unmarshal(cached, &p); err == nil {
				return p, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			slog.WarnContext(ctx, "Product cache read failed", "product_id", id, "error", err)
		}
	}

	// Concurrent misses for the same product collapse into one DB read.
	v, err, _ := s.group.Do(cacheKey(id), func() (any, error) {
		p, err := s.productRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		s.cacheSet(ctx, p)

		return p, nil
	})
	if err != nil {
		return product.Product{}, err
	}

	return v.(product.Product), nil
}

// Create stores a new product after validating its price and resolving the
// referenced category.
func (s *ProductService) Create(ctx context.Context, req product.CreateProductModel) (product.Product, error) {
	if req.Name == "" {
		return product.Product{}, apperr.InvalidArgument("product name cannot be empty")
	}
	if err := validatePrice(req.Price); err != nil {
		return product.Product{}, err
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *req.CategoryID); err != nil {
			return product.Product{}, err
		}
	}

	now := time.Now()
	created, err := s.productRepo.Insert(ctx, product.Product{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Price:       req.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return product.Product{}, err
	}

	slog.InfoContext(ctx, "Product created", "product_id", created.ID)

	return created, nil
}

// Update applies a partial update: unset fields keep their stored values.
func (s *ProductService) Update(ctx context.Context, id int64, req product.UpdateProductModel) (product.Product, error) {
	p, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return product.Product{}, err
	}

	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Description != "" {
		p.Description = req.Description
	}
	if req.Price.Valid {
		if err := validatePrice(req.Price); err != nil {
			return product.Product{}, err
		}
		p.Price = req.Price
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *req.CategoryID); err != nil {
			return product.Product{}, err
		}
		p.CategoryID = req.CategoryID
	}
	p.UpdatedAt = time.Now()

	updated, err := s.productRepo.Update(ctx, p)
	if err != nil {
		return product.Product{}, err
	}

	s.cacheInvalidate(ctx, id)
	slog.InfoContext(ctx, "Product updated", "product_id", id)

	return updated, nil
}

// Delete removes a product.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.cacheInvalidate(ctx, id)
	slog.InfoContext(ctx, "Product deleted", "product_id", id)

	return nil
}

func (s *ProductService) cacheSet(ctx context.Context, p product.Product) {
	if s.cache == nil {
		return
	}

	body, err := json.Marshal(p)
	if err != nil {
		return
	}

	if err := s.cache.DB().Set(ctx, cacheKey(p.ID), body, s.cacheTTL).Err(); err != nil {
		slog.WarnContext(ctx, "Product cache write failed", "product_id", p.ID, "error", err)
	}
}

func (s *ProductService) cacheInvalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}

	if err := s.cache.DB().Del(ctx, cacheKey(id)).Err(); err != nil {
		slog.WarnContext(ctx, "Product cache invalidation failed", "product_id", id, "error", err)
	}
}

func validatePrice(price decimal.NullDecimal) error {
	if price.Valid && !price.Decimal.IsPositive() {
		return apperr.InvalidArgument("product price must be positive")
	}

	return nil
}

// Allowed image MIME types and the upload size cap.
var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

const maxImageSize = 5 * 1024 * 1024

// UploadImage validates and stores an image payload on the product.
func (s *ProductService) UploadImage(
	ctx context.Context,
	id int64,
	name string,
	contentType string,
	data []byte,
) (product.Product, error) {
	if len(data) == 0 {
		return product.Product{}, apperr.InvalidArgument("image file cannot be empty")
	}
	if len(data) > maxImageSize {
		return product.Product{}, apperr.InvalidArgument("image file size cannot exceed 5MB")
	}
	if _, ok := allowedImageTypes[contentType]; !ok {
		return product.Product{}, apperr.InvalidArgument(
			fmt.Sprintf("invalid image type %q, allowed types: JPEG, JPG, PNG, GIF, WEBP", contentType),
		)
	}

	p, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return product.Product{}, err
	}

	p.ImageName = name
	p.ImageType = contentType
	p.ImageData = data
	p.UpdatedAt = time.Now()

	updated, err := s.productRepo.Update(ctx, p)
	if err != nil {
		return product.Product{}, err
	}

	s.cacheInvalidate(ctx, id)
	slog.InfoContext(ctx, "Product image uploaded", "product_id", id, "size", len(data))

	return updated, nil
}

// GetImage retrieves the stored image payload and its MIME type.
func (s *ProductService) GetImage(ctx context.Context, id int64) ([]byte, string, error) {
	p, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}

	if !p.HasImage() {
		return nil, "", apperr.NotFound("Image", id)
	}

	return p.ImageData, p.ImageType, nil
}

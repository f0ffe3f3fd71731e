package iproductrepo

import (
	"context"

	"github.com/corray333/commerce/internal/service/models/product"
)

// IProductRepository is an interface for the product postgres repository.
type IProductRepository interface {
	GetByID(ctx context.Context, id int64) (product.Product, error)
	List(ctx context.Context, sort string) ([]product.Product, error)
	Insert(ctx context.Context, p product.Product) (product.Product, error)
	Update(ctx context.Context, p product.Product) (product.Product, error)
	Delete(ctx context.Context, id int64) error
}

package icategoryrepo

import (
	"context"

	"github.com/corray333/commerce/internal/service/models/category"
)

// ICategoryRepository is an interface for the category postgres repository.
type ICategoryRepository interface {
	GetByID(ctx context.Context, id uint8) (category.Category, error)
	List(ctx context.Context, sort string) ([]category.Category, error)
	Insert(ctx context.Context, c category.Category) (category.Category, error)
	Update(ctx context.Context, c category.Category) (category.Category, error)
	Delete(ctx context.Context, id uint8) error
}

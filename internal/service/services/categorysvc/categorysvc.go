package categorysvc

import (
	"context"
	"log/slog"

	"github.com/corray333/commerce/internal/dal/interfaces/icategoryrepo"
	"github.com/corray333/commerce/internal/service/apperr"
	"github.com/corray333/commerce/internal/service/models/category"
)

// CategoryService manages product categories.
type CategoryService struct {
	categoryRepo icategoryrepo.ICategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryRepo icategoryrepo.ICategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// List retrieves all categories sorted by name or id (default name).
func (s *CategoryService) List(ctx context.Context, sort string) ([]category.Category, error) {
	return s.categoryRepo.List(ctx, sort)
}

// GetByID retrieves one category.
func (s *CategoryService) GetByID(ctx context.Context, id uint8) (category.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

// Create stores a new category.
func (s *CategoryService) Create(ctx context.Context, name string) (category.Category, error) {
	if name == "" {
		return category.Category{}, apperr.InvalidArgument("category name cannot be empty")
	}

	created, err := s.categoryRepo.Insert(ctx, category.Category{Name: name})
	if err != nil {
		return category.Category{}, err
	}

	slog.InfoContext(ctx, "Category created", "category_id", created.ID)

	return created, nil
}

// Update renames a category. An empty name keeps the stored one.
func (s *CategoryService) Update(ctx context.Context, id uint8, name string) (category.Category, error) {
	c, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return category.Category{}, err
	}

	if name != "" {
		c.Name = name
	}

	updated, err := s.categoryRepo.Update(ctx, c)
	if err != nil {
		return category.Category{}, err
	}

	slog.InfoContext(ctx, "Category updated", "category_id", id)

	return updated, nil
}

// Delete removes a category. A category still referenced by products is not
// deleted; the attempt fails with a conflict.
func (s *CategoryService) Delete(ctx context.Context, id uint8) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Category deleted", "category_id", id)

	return nil
}

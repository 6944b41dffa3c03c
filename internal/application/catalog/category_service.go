package catalog

import (
	"context"
	"fmt"

	"github.com/inventory/backend/internal/domain/catalog"
	"github.com/inventory/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CategoryService handles category-related business operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	itemRepo     catalog.ItemRepository
	logger       *zap.Logger
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(
	categoryRepo catalog.CategoryRepository,
	itemRepo catalog.ItemRepository,
	logger *zap.Logger,
) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		itemRepo:     itemRepo,
		logger:       logger,
	}
}

// Create creates a new category
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	category, err := catalog.NewCategory(req.Name)
	if err != nil {
		return nil, err
	}

	exists, err := s.categoryRepo.ExistsByName(ctx, category.Name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, "Category with this name already exists")
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// GetByID retrieves a category by ID
func (s *CategoryService) GetByID(ctx context.Context, id int64) (*CategoryResponse, error) {
	category, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCategoryResponse(category)
	return &resp, nil
}

// List retrieves a page of categories; search matches the name
func (s *CategoryService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[CategoryResponse], error) {
	filter = filter.Normalize("name", shared.SortOrderAsc)

	categories, total, err := s.categoryRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = ToCategoryResponse(&categories[i])
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update renames a category
func (s *CategoryService) Update(ctx context.Context, id int64, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := category.Rename(req.Name); err != nil {
		return nil, err
	}

	exists, err := s.categoryRepo.ExistsByName(ctx, category.Name, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, "Category with this name already exists")
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// Delete removes a category that no item references
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}

	count, err := s.itemRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError(shared.CodeConflict,
			fmt.Sprintf("Category is used by %d item(s) and cannot be deleted", count))
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("category deleted", zap.Int64("category_id", id))
	return nil
}

func (s *CategoryService) find(ctx context.Context, id int64) (*catalog.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NameNotFound(err, "Category", id)
	}
	return category, nil
}

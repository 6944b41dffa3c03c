package catalog

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inventory/backend/internal/domain/catalog"
	"github.com/inventory/backend/internal/domain/identity"
	"github.com/inventory/backend/internal/domain/inventory"
	"github.com/inventory/backend/internal/domain/issuance"
	"github.com/inventory/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ImageStorage issues presigned uploads for item images
type ImageStorage interface {
	PresignUpload(ctx context.Context, key, contentType string, expiresIn time.Duration) (string, time.Time, error)
	PublicURL(key string) string
}

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ItemService handles item-related business operations
type ItemService struct {
	itemRepo     catalog.ItemRepository
	categoryRepo catalog.CategoryRepository
	unitRepo     catalog.UnitRepository
	userRepo     identity.UserRepository
	txRepo       inventory.StockTransactionRepository
	levelRepo    inventory.StockLevelRepository
	lineRepo     issuance.IssueItemRepository
	images       ImageStorage
	logger       *zap.Logger
}

// NewItemService creates a new ItemService. A nil images disables image uploads.
func NewItemService(
	itemRepo catalog.ItemRepository,
	categoryRepo catalog.CategoryRepository,
	unitRepo catalog.UnitRepository,
	userRepo identity.UserRepository,
	txRepo inventory.StockTransactionRepository,
	levelRepo inventory.StockLevelRepository,
	lineRepo issuance.IssueItemRepository,
	images ImageStorage,
	logger *zap.Logger,
) *ItemService {
	return &ItemService{
		itemRepo:     itemRepo,
		categoryRepo: categoryRepo,
		unitRepo:     unitRepo,
		userRepo:     userRepo,
		txRepo:       txRepo,
		levelRepo:    levelRepo,
		lineRepo:     lineRepo,
		images:       images,
		logger:       logger,
	}
}

// Create creates a new item
func (s *ItemService) Create(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	item, err := catalog.NewItem(req.SKU, req.Name, req.CategoryID, req.UnitID)
	if err != nil {
		return nil, err
	}
	if err := item.SetBarcode(req.Barcode); err != nil {
		return nil, err
	}
	if err := item.SetOwner(req.OwnerUserID); err != nil {
		return nil, err
	}
	if req.MinStock != nil {
		if err := item.SetMinStock(*req.MinStock); err != nil {
			return nil, err
		}
	}
	if err := item.SetImageURL(req.ImageURL); err != nil {
		return nil, err
	}

	if err := s.validate(ctx, item, 0); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("item created", zap.Int64("item_id", item.ID), zap.String("sku", item.SKU))
	resp := ToItemResponse(item)
	return &resp, nil
}

// GetByID retrieves an item by ID
func (s *ItemService) GetByID(ctx context.Context, id int64) (*ItemResponse, error) {
	item, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// List retrieves a page of items. Unless the filter sets active_only=false, only active items are listed.
func (s *ItemService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[ItemResponse], error) {
	filter = filter.Normalize("name", shared.SortOrderAsc)
	if _, set := filter.Filters["active_only"]; !set {
		filter.Filters["active_only"] = true
	}

	items, total, err := s.itemRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ItemResponse, len(items))
	for i := range items {
		responses[i] = ToItemResponse(&items[i])
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update changes the provided fields of an item
func (s *ItemService) Update(ctx context.Context, id int64, req UpdateItemRequest) (*ItemResponse, error) {
	item, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	sku, name, categoryID, unitID := item.SKU, item.Name, item.CategoryID, item.UnitID
	if req.SKU != nil {
		sku = *req.SKU
	}
	if req.Name != nil {
		name = *req.Name
	}
	if req.CategoryID != nil {
		categoryID = *req.CategoryID
	}
	if req.UnitID != nil {
		unitID = *req.UnitID
	}
	if err := item.Update(sku, name, categoryID, unitID); err != nil {
		return nil, err
	}

	if req.OwnerUserID != nil {
		owner := req.OwnerUserID
		if *owner == 0 {
			owner = nil
		}
		if err := item.SetOwner(owner); err != nil {
			return nil, err
		}
	}
	if req.Barcode != nil {
		if err := item.SetBarcode(*req.Barcode); err != nil {
			return nil, err
		}
	}
	if req.MinStock != nil {
		if err := item.SetMinStock(*req.MinStock); err != nil {
			return nil, err
		}
	}
	if req.ImageURL != nil {
		if err := item.SetImageURL(*req.ImageURL); err != nil {
			return nil, err
		}
	}
	if req.Active != nil && *req.Active != item.Active {
		if *req.Active {
			item.Activate()
		} else {
			item.Deactivate()
		}
	}

	if err := s.validate(ctx, item, id); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	resp := ToItemResponse(item)
	return &resp, nil
}

// Delete deactivates an item with stock or issue history and hard deletes it otherwise
func (s *ItemService) Delete(ctx context.Context, id int64) (*DeleteItemResult, error) {
	item, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	inUse, err := s.hasHistory(ctx, id)
	if err != nil {
		return nil, err
	}

	if inUse {
		if item.Active {
			item.Deactivate()
			if err := s.itemRepo.Save(ctx, item); err != nil {
				return nil, err
			}
		}
		s.logger.Info("item deactivated", zap.Int64("item_id", id))
		return &DeleteItemResult{
			Message:     fmt.Sprintf("Item %d has stock history and was deactivated", id),
			Deactivated: true,
		}, nil
	}

	if err := s.itemRepo.Delete(ctx, id); err != nil {
		return nil, err
	}
	s.logger.Info("item deleted", zap.Int64("item_id", id))
	return &DeleteItemResult{Message: fmt.Sprintf("Item %d deleted", id)}, nil
}

// CreateImageUpload returns a presigned PUT URL for a new item image.
// The returned image_url is stored on the item with a later update.
func (s *ItemService) CreateImageUpload(ctx context.Context, id int64, req ImageUploadRequest) (*ImageUploadResponse, error) {
	if s.images == nil {
		return nil, shared.NewDomainError(shared.CodeServiceUnavailable, "Image storage is not configured")
	}
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}

	contentType := strings.ToLower(strings.TrimSpace(req.ContentType))
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Content type must be one of image/jpeg, image/png, image/webp, image/gif")
	}
	if req.FileName != "" {
		if e := strings.ToLower(path.Ext(req.FileName)); e == ".jpeg" || e == ext {
			ext = e
		}
	}

	key := fmt.Sprintf("items/%d/%s%s", id, uuid.NewString(), ext)
	url, expiresAt, err := s.images.PresignUpload(ctx, key, contentType, 0)
	if err != nil {
		return nil, fmt.Errorf("presign image upload: %w", err)
	}

	return &ImageUploadResponse{
		UploadURL: url,
		Method:    "PUT",
		Headers:   map[string]string{"Content-Type": contentType},
		ImageURL:  s.images.PublicURL(key),
		Key:       key,
		ExpiresAt: expiresAt,
	}, nil
}

// validate checks references and uniqueness
func (s *ItemService) validate(ctx context.Context, item *catalog.Item, excludeID int64) error {
	if _, err := s.categoryRepo.FindByID(ctx, item.CategoryID); err != nil {
		return shared.NameNotFound(err, "Category", item.CategoryID)
	}
	if _, err := s.unitRepo.FindByID(ctx, item.UnitID); err != nil {
		return shared.NameNotFound(err, "Unit", item.UnitID)
	}
	if item.OwnerUserID != nil {
		exists, err := s.userRepo.ExistsByID(ctx, *item.OwnerUserID)
		if err != nil {
			return err
		}
		if !exists {
			return shared.NewNotFoundError("Owner user", *item.OwnerUserID)
		}
	}

	exists, err := s.itemRepo.ExistsBySKU(ctx, item.SKU, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError(shared.CodeAlreadyExists, "Item with this SKU already exists")
	}

	if barcode := item.BarcodeValue(); barcode != "" {
		exists, err := s.itemRepo.ExistsByBarcode(ctx, barcode, excludeID)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewDomainError(shared.CodeAlreadyExists, "Item with this barcode already exists")
		}
	}
	return nil
}

func (s *ItemService) hasHistory(ctx context.Context, id int64) (bool, error) {
	checks := []func(context.Context, int64) (bool, error){
		s.txRepo.ExistsForItem,
		s.levelRepo.ExistsForItem,
		s.lineRepo.ExistsForItem,
	}
	for _, check := range checks {
		used, err := check(ctx, id)
		if err != nil {
			return false, err
		}
		if used {
			return true, nil
		}
	}
	return false, nil
}

func (s *ItemService) find(ctx context.Context, id int64) (*catalog.Item, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("Item", id)
		}
		return nil, err
	}
	return item, nil
}

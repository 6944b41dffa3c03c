package catalog

import (
	"time"

	"github.com/inventory/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=120"`
}

// UpdateCategoryRequest represents a request to rename a category
type UpdateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=120"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// CreateUnitRequest represents a request to create a unit of measure
type CreateUnitRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=50"`
	Symbol     string `json:"symbol" binding:"required,min=1,max=20"`
	Multiplier *int   `json:"multiplier" binding:"omitempty,min=0"`
}

// UpdateUnitRequest represents a request to update a unit; nil fields keep their value
type UpdateUnitRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=1,max=50"`
	Symbol     *string `json:"symbol" binding:"omitempty,min=1,max=20"`
	Multiplier *int    `json:"multiplier" binding:"omitempty,min=0"`
}

// UnitResponse represents a unit in API responses
type UnitResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Symbol     string    `json:"symbol"`
	Multiplier int       `json:"multiplier"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ToUnitResponse converts a domain Unit to UnitResponse
func ToUnitResponse(u *catalog.Unit) UnitResponse {
	return UnitResponse{
		ID:         u.ID,
		Name:       u.Name,
		Symbol:     u.Symbol,
		Multiplier: u.Multiplier,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// CreateItemRequest represents a request to create an item
type CreateItemRequest struct {
	SKU         string           `json:"sku" binding:"required,min=1,max=50"`
	Name        string           `json:"name" binding:"required,min=1,max=200"`
	CategoryID  int64            `json:"category_id" binding:"required,gt=0"`
	UnitID      int64            `json:"unit_id" binding:"required,gt=0"`
	OwnerUserID *int64           `json:"owner_user_id" binding:"omitempty,gt=0"`
	Barcode     string           `json:"barcode" binding:"max=64"`
	MinStock    *decimal.Decimal `json:"min_stock"`
	ImageURL    string           `json:"image_url" binding:"omitempty,max=500"`
}

// UpdateItemRequest represents a partial item update.
// owner_user_id 0 clears the owner and an empty barcode clears the barcode.
type UpdateItemRequest struct {
	SKU         *string          `json:"sku" binding:"omitempty,min=1,max=50"`
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	CategoryID  *int64           `json:"category_id" binding:"omitempty,gt=0"`
	UnitID      *int64           `json:"unit_id" binding:"omitempty,gt=0"`
	OwnerUserID *int64           `json:"owner_user_id" binding:"omitempty,min=0"`
	Barcode     *string          `json:"barcode" binding:"omitempty,max=64"`
	MinStock    *decimal.Decimal `json:"min_stock"`
	ImageURL    *string          `json:"image_url" binding:"omitempty,max=500"`
	Active      *bool            `json:"active"`
}

// ItemResponse represents an item in API responses
type ItemResponse struct {
	ID          int64           `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	CategoryID  int64           `json:"category_id"`
	UnitID      int64           `json:"unit_id"`
	OwnerUserID *int64          `json:"owner_user_id"`
	Barcode     *string         `json:"barcode"`
	MinStock    decimal.Decimal `json:"min_stock"`
	ImageURL    string          `json:"image_url"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToItemResponse converts a domain Item to ItemResponse
func ToItemResponse(i *catalog.Item) ItemResponse {
	return ItemResponse{
		ID:          i.ID,
		SKU:         i.SKU,
		Name:        i.Name,
		CategoryID:  i.CategoryID,
		UnitID:      i.UnitID,
		OwnerUserID: i.OwnerUserID,
		Barcode:     i.Barcode,
		MinStock:    i.MinStock,
		ImageURL:    i.ImageURL,
		Active:      i.Active,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

// DeleteItemResult reports how an item was removed
type DeleteItemResult struct {
	Message     string `json:"message"`
	Deactivated bool   `json:"deactivated"`
}

// ImageUploadRequest asks for a presigned upload URL for an item image
type ImageUploadRequest struct {
	ContentType string `json:"content_type" binding:"required"`
	FileName    string `json:"file_name" binding:"omitempty,max=200"`
}

// ImageUploadResponse carries the presigned PUT URL and the URL the image will be served from
type ImageUploadResponse struct {
	UploadURL string            `json:"upload_url"`
	Method    string            `json:"method"`
	Headers   map[string]string `json:"headers"`
	ImageURL  string            `json:"image_url"`
	Key       string            `json:"key"`
	ExpiresAt time.Time         `json:"expires_at"`
}

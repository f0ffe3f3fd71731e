package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog item. Price is nullable: a product may exist
// before it is priced, but an order can never be created against it until a
// price is set.
type Product struct {
	ID          int64               `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	CategoryID  *uint8              `json:"categoryId"`
	Price       decimal.NullDecimal `json:"price"`
	ImageName   string              `json:"imageName"`
	ImageType   string              `json:"imageType"`
	ImageData   []byte              `json:"-"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// CreateProductModel is the caller's input for product creation.
type CreateProductModel struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	CategoryID  *uint8              `json:"categoryId"`
	Price       decimal.NullDecimal `json:"price"`
}

// UpdateProductModel carries a partial update: unset fields are left
// untouched.
type UpdateProductModel struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	CategoryID  *uint8              `json:"categoryId"`
	Price       decimal.NullDecimal `json:"price"`
}

// HasImage reports whether an image payload has been uploaded.
func (p *Product) HasImage() bool {
	return len(p.ImageData) > 0
}

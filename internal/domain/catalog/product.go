package catalog

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shopadmin/backend/internal/domain/shared"
)

// ProductStatus is derived from the stock level and recomputed on every save
type ProductStatus string

const (
	ProductStatusActive     ProductStatus = "active"
	ProductStatusLowStock   ProductStatus = "low_stock"
	ProductStatusOutOfStock ProductStatus = "out_of_stock"
)

// LowStockThreshold is the stock level at or below which a product is flagged low_stock
const LowStockThreshold = 10

// Product represents a catalog product
type Product struct {
	shared.BaseEntity
	Name          string          `gorm:"type:varchar(100);not null" json:"name"`
	Description   string          `gorm:"type:varchar(1000);not null" json:"description"`
	Price         decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"price"`
	CategoryID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"category"`
	Image         string          `gorm:"type:text;not null" json:"image"`
	Stock         int             `gorm:"not null;default:0" json:"stock"`
	Status        ProductStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	SKU           string          `gorm:"type:varchar(50);uniqueIndex" json:"sku"`
	Featured      bool            `gorm:"not null;default:false" json:"featured"`
	Tags          []string        `gorm:"serializer:json" json:"tags"`
	RatingAverage float64         `gorm:"not null;default:0" json:"-"`
	RatingCount   int             `gorm:"not null;default:0" json:"-"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product. Status is derived from the initial stock
// and a SKU is generated when none is supplied.
func NewProduct(name, description string, price decimal.Decimal, categoryID uuid.UUID, image string, stock int) (*Product, error) {
	p := &Product{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
		Price:       price,
		CategoryID:  categoryID,
		Image:       image,
		Stock:       stock,
		Tags:        []string{},
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	p.SKU = GenerateSKU()
	p.RecomputeStatus()
	return p, nil
}

// Update replaces the product's editable fields and re-derives status
func (p *Product) Update(name, description string, price decimal.Decimal, categoryID uuid.UUID, image string, stock int, tags []string) error {
	p.Name = name
	p.Description = description
	p.Price = price
	p.CategoryID = categoryID
	p.Image = image
	p.Stock = stock
	if tags == nil {
		tags = []string{}
	}
	p.Tags = tags
	if err := p.validate(); err != nil {
		return err
	}
	p.RecomputeStatus()
	p.Touch()
	return nil
}

// SetStock replaces the stock level and re-derives status
func (p *Product) SetStock(stock int) error {
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	p.Stock = stock
	p.RecomputeStatus()
	p.Touch()
	return nil
}

// SetFeatured flags the product as featured
func (p *Product) SetFeatured(featured bool) {
	p.Featured = featured
	p.Touch()
}

// SetRatings sets the aggregate rating fields
func (p *Product) SetRatings(average float64, count int) error {
	if average < 0 || average > 5 {
		return shared.NewDomainError("INVALID_RATING", "Rating average must be between 0 and 5")
	}
	if count < 0 {
		return shared.NewDomainError("INVALID_RATING", "Rating count cannot be negative")
	}
	p.RatingAverage = average
	p.RatingCount = count
	p.Touch()
	return nil
}

// Reserve decrements stock by quantity for an order line.
// The check-then-decrement is not atomic across requests; concurrent orders
// against the same product can oversell (last write wins, see DESIGN.md).
func (p *Product) Reserve(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if p.Stock < quantity {
		return shared.NewDomainError("INSUFFICIENT_STOCK",
			fmt.Sprintf("Insufficient stock for product %s. Available: %d, Requested: %d", p.Name, p.Stock, quantity))
	}
	p.Stock -= quantity
	p.RecomputeStatus()
	p.Touch()
	return nil
}

// Restock adds quantity back to stock, the inverse of Reserve
func (p *Product) Restock(quantity int) {
	if quantity <= 0 {
		return
	}
	p.Stock += quantity
	p.RecomputeStatus()
	p.Touch()
}

// RecomputeStatus derives the status from the current stock level.
// Invariant: status is consistent with stock at every persisted state.
func (p *Product) RecomputeStatus() {
	switch {
	case p.Stock == 0:
		p.Status = ProductStatusOutOfStock
	case p.Stock <= LowStockThreshold:
		p.Status = ProductStatusLowStock
	default:
		p.Status = ProductStatusActive
	}
}

// IsLowStock returns true if the product is at or below the low stock threshold
func (p *Product) IsLowStock() bool {
	return p.Stock <= LowStockThreshold
}

func (p *Product) validate() error {
	if p.Name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name is required")
	}
	if len(p.Name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 100 characters")
	}
	if p.Description == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Product description is required")
	}
	if len(p.Description) > 1000 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 1000 characters")
	}
	if p.Price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if p.CategoryID == uuid.Nil {
		return shared.NewDomainError("INVALID_CATEGORY", "Product category is required")
	}
	if p.Image == "" {
		return shared.NewDomainError("INVALID_IMAGE", "Product image is required")
	}
	if p.Stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	return nil
}

const skuCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateSKU produces a unique SKU of the form PRD-<unix-millis>-<RANDOM5>
func GenerateSKU() string {
	buf := make([]byte, 5)
	if _, err := rand.Read(buf); err != nil {
		// Fall back to a timestamp-only suffix if the entropy source fails
		return fmt.Sprintf("PRD-%d-%05d", time.Now().UnixMilli(), time.Now().Nanosecond()%100000)
	}
	for i, b := range buf {
		buf[i] = skuCharset[int(b)%len(skuCharset)]
	}
	return fmt.Sprintf("PRD-%d-%s", time.Now().UnixMilli(), string(buf))
}

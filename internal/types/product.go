package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is the component that owns pictures and variants. ProductNumber and
// SupplierID are identity-affecting: editing either one stales the canonical
// name of every picture the product transitively owns.
type Product struct {
	ID            uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ProductNumber string           `gorm:"column:product_number;not null;index" json:"product_number"`
	SupplierID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"supplier_id"`
	Supplier      *Supplier        `gorm:"foreignKey:SupplierID;references:ID" json:"supplier,omitempty"`
	Name          string           `gorm:"column:name;not null" json:"name"`
	Description   string           `gorm:"column:description" json:"description"`
	Variants      []ProductVariant `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProductID;references:ID" json:"variants,omitempty"`
	Pictures      []Picture        `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProductID;references:ID" json:"pictures,omitempty"`
	CreatedAt     time.Time        `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time        `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt     gorm.DeletedAt   `gorm:"index" json:"deleted_at,omitempty"`
}

func (Product) TableName() string { return "product" }

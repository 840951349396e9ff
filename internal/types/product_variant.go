package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProductVariant is one color execution of a product. A product has at most
// one variant per color. SKUCode is derived from {supplier code, product
// number, color name} and regenerated whenever that identity changes; the
// column is owned by the SKU service, nothing else writes it.
type ProductVariant struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ProductID  uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:uniq_variant_product_color" json:"product_id"`
	Product    *Product       `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProductID;references:ID" json:"product,omitempty"`
	ColorID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uniq_variant_product_color" json:"color_id"`
	Color      *Color         `gorm:"foreignKey:ColorID;references:ID" json:"color,omitempty"`
	SKUCode    string         `gorm:"column:sku_code;index" json:"sku_code"`
	Attributes datatypes.JSON `gorm:"column:attributes;type:jsonb" json:"attributes"`
	Pictures   []Picture      `gorm:"constraint:OnDelete:CASCADE;foreignKey:VariantID;references:ID" json:"pictures,omitempty"`
	CreatedAt  time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ProductVariant) TableName() string { return "product_variant" }

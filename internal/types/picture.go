package types

import (
	"time"

	"github.com/google/uuid"
)

// Picture is one binary asset in the remote store. Name is the canonical,
// identity-derived object name plus the file extension; Locator is the remote
// URL the storefront serves. The two can diverge deliberately: a rename that hits
// NotFound remotely updates Name but leaves Locator untouched.
type Picture struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ProductID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"product_id"`
	VariantID    *uuid.UUID `gorm:"type:uuid;index" json:"variant_id,omitempty"`
	Name         string     `gorm:"column:name;not null;index" json:"name"`
	Locator      string     `gorm:"column:locator" json:"locator"`
	ContentType  string     `gorm:"column:content_type" json:"content_type"`
	DisplayOrder int        `gorm:"column:display_order;not null;default:0" json:"display_order"`
	Alt          *string    `gorm:"column:alt" json:"alt,omitempty"`
	IsPrimary    bool       `gorm:"column:is_primary;not null;default:false" json:"is_primary"`
	CreatedAt    time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (Picture) TableName() string { return "picture" }

// Scoped reports whether the picture belongs to a variant rather than to the
// product itself.
func (p *Picture) Scoped() bool { return p.VariantID != nil && *p.VariantID != uuid.Nil }

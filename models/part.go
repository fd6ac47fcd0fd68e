package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Part struct {
	ID          int             `gorm:"primary_key" json:"id"`
	PartNumber  string          `gorm:"size:100;uniqueIndex;not null" json:"part_number" binding:"required"`
	Description string          `gorm:"size:255" json:"description"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"unit_price"`
	VendorId    int             `gorm:"index" json:"vendor_id"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// PartRef is a resolved part reference. It is produced once per operation by
// ResolvePartRef and passed explicitly; nothing downstream re-resolves.
// ID == 0 means the part is not on file and only the denormalized number is
// carried on the line item.
type PartRef struct {
	ID     int
	Number string
}

// ResolvePartRef tries the numeric identifier first, then falls back to a
// part-number lookup. A missing part is not an error here: line items may
// carry a bare part-number string, and synthetic pseudo-parts need not be
// stocked. Callers that require a stocked part check ref.ID themselves.
func ResolvePartRef(tx *gorm.DB, partId int, partNumber string) (PartRef, error) {
	partNumber = strings.TrimSpace(partNumber)

	if partId > 0 {
		var part Part
		err := tx.Where("id = ?", partId).First(&part).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return PartRef{}, ErrPartNotFound
			}
			return PartRef{}, err
		}
		return PartRef{ID: part.ID, Number: part.PartNumber}, nil
	}

	if partNumber == "" {
		return PartRef{}, validationError("part reference is required")
	}

	var part Part
	err := tx.Where("part_number = ?", partNumber).First(&part).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return PartRef{Number: partNumber}, nil
		}
		return PartRef{}, err
	}
	return PartRef{ID: part.ID, Number: part.PartNumber}, nil
}

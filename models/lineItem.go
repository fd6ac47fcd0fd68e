package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type LineItem struct {
	ID          int             `gorm:"primary_key" json:"id"`
	OrderId     int             `gorm:"index;not null;uniqueIndex:idx_order_part" json:"order_id" binding:"required"`
	PartId      int             `gorm:"uniqueIndex:idx_order_part" json:"part_id"`
	PartNumber  string          `gorm:"size:100;uniqueIndex:idx_order_part" json:"part_number"`
	Category    LineCategory    `gorm:"size:20;not null;default:'Ordinary'" json:"category"`
	Description string          `gorm:"size:255" json:"description"`
	Quantity    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"quantity"`
	QtyToOrder  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"qty_to_order"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"unit_price"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// findLineItem resolves the existing row for (order, part-or-category).
// Synthetic rows are keyed by category, part-backed rows by part id, and
// rows captured before the part existed fall back to the part number.
func findLineItem(tx *gorm.DB, orderId int, ref PartRef, category LineCategory) (*LineItem, error) {
	var item LineItem
	query := tx.Where("order_id = ?", orderId)
	switch {
	case category.Synthetic():
		query = query.Where("category = ?", category)
	case ref.ID > 0:
		// Also match a row captured before the part existed, so resolving
		// the part later does not split the order into two rows for it.
		query = query.Where("part_id = ? OR (part_id = 0 AND part_number = ?)", ref.ID, ref.Number)
	default:
		query = query.Where("part_id = 0 AND part_number = ?", ref.Number)
	}
	err := query.First(&item).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// LockLineItems loads and locks all rows of an order.
func LockLineItems(tx *gorm.DB, orderId int) ([]LineItem, error) {
	var items []LineItem
	if err := lockForUpdate(tx).Where("order_id = ?", orderId).
		Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

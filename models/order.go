package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Order struct {
	ID          int             `gorm:"primary_key" json:"id"`
	CustomerId  int             `gorm:"index" json:"customer_id"`
	VendorId    int             `gorm:"index" json:"vendor_id"`
	OrderNumber string          `gorm:"size:255;not null" json:"order_number"`
	Status      OrderStatus     `gorm:"size:20;not null;default:'Open'" json:"status"`
	TaxRate     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"tax_rate"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"subtotal"`
	TaxAmount   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"tax_amount"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_amount"`
	Notes       string          `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	LineItems   []LineItem      `gorm:"foreignKey:OrderId" json:"line_items"`
}

// LockOrder takes the order header row lock. This is the first statement of
// every mutating operation on an order; concurrent mutations to the same
// order serialize here, before any inventory row is touched.
func LockOrder(tx *gorm.DB, orderId int) (*Order, error) {
	var order Order
	err := lockForUpdate(tx).Where("id = ?", orderId).First(&order).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"bitbucket.org/mmdatafocus/erp_backend/utils"
)

type OrderTotals struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// RecalculateOrderTotals recomputes subtotal/tax/total from the persisted
// line items and writes them back to the order header. The header row is
// locked first, like every other operation that writes to it, so a
// recalculation running in its own transaction cannot interleave with a
// concurrent line-item edit and persist stale sums. Line amounts are
// already rounded, so the whole computation is deterministic and calling it
// again with unchanged line items yields identical output.
func RecalculateOrderTotals(tx *gorm.DB, orderId int) (*OrderTotals, error) {
	order, err := LockOrder(tx, orderId)
	if err != nil {
		return nil, err
	}

	var items []LineItem
	if err := tx.Where("order_id = ?", orderId).Find(&items).Error; err != nil {
		return nil, err
	}

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Amount)
	}
	subtotal = utils.RoundMoney(subtotal)

	tax := utils.CalculateTaxAmount(subtotal, order.TaxRate)
	total := utils.RoundMoney(subtotal.Add(tax))

	if err := tx.Model(&Order{}).Where("id = ?", orderId).Updates(map[string]interface{}{
		"subtotal":     subtotal,
		"tax_amount":   tax,
		"total_amount": total,
	}).Error; err != nil {
		return nil, err
	}

	return &OrderTotals{Subtotal: subtotal, TaxAmount: tax, TotalAmount: total}, nil
}

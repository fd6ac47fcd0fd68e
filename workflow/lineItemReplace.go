package workflow

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"bitbucket.org/mmdatafocus/erp_backend/models"
	"bitbucket.org/mmdatafocus/erp_backend/utils"
)

// resolvedItem is one incoming line item with its part reference resolved
// exactly once, up front.
type resolvedItem struct {
	input    *models.LineItemInput
	category models.LineCategory
	ref      models.PartRef
	quantity decimal.Decimal
}

func (r *resolvedItem) key() string {
	if r.category.Synthetic() {
		return "cat:" + string(r.category)
	}
	if r.ref.ID > 0 {
		return fmt.Sprintf("part:%d", r.ref.ID)
	}
	return "num:" + r.ref.Number
}

func existingKey(item *models.LineItem) string {
	if item.Category.Synthetic() {
		return "cat:" + string(item.Category)
	}
	if item.PartId > 0 {
		return fmt.Sprintf("part:%d", item.PartId)
	}
	return "num:" + item.PartNumber
}

// ReplaceLineItems swaps an order's entire line-item set in one call, the
// way "save order" flows do. It is two-phase: every projected inventory
// change is validated before any row is written, so a shortage on the fifth
// of eight items leaves the database untouched.
//
// Synthetic rows not mentioned in the incoming set are preserved; they are
// only removed by an explicit zero-quantity entry, and only by an admin.
// Concludes by recalculating the order totals.
func ReplaceLineItems(tx *gorm.DB, logger *logrus.Logger, orderId int, inputs []*models.LineItemInput, actor models.Actor) error {
	order, err := models.LockOrder(tx, orderId)
	if err != nil {
		return err
	}
	if order.Status == models.OrderStatusClosed {
		return models.ErrClosedOrder
	}

	existing, err := models.LockLineItems(tx, orderId)
	if err != nil {
		return err
	}
	existingByKey := make(map[string]*models.LineItem, len(existing))
	for i := range existing {
		existingByKey[existingKey(&existing[i])] = &existing[i]
	}

	// Resolve and validate every incoming item before touching anything.
	resolved := make([]*resolvedItem, 0, len(inputs))
	seen := make(map[string]bool, len(inputs))
	for _, input := range inputs {
		if input == nil {
			continue
		}
		if err := input.Validate(); err != nil {
			return err
		}
		category, ref, err := input.Resolve(tx)
		if err != nil {
			return err
		}
		qty := input.Quantity
		if category == models.LineCategorySupply {
			qty = models.NormalizeSupplyQty(qty)
		}
		item := &resolvedItem{input: input, category: category, ref: ref, quantity: qty}
		if seen[item.key()] {
			return fmt.Errorf("%w: duplicate line item for %s", models.ErrValidation, item.key())
		}
		seen[item.key()] = true
		resolved = append(resolved, item)
	}

	// Phase 1: validate all projected inventory changes and all deletions.
	for _, item := range resolved {
		if item.category.Synthetic() {
			_, exists := existingByKey[item.key()]
			if exists && !item.quantity.IsPositive() && item.category.DeleteRequiresAdmin() && !actor.IsAdmin {
				return models.ErrUnauthorized
			}
			continue
		}
		if item.ref.ID <= 0 {
			continue
		}
		oldQty := decimal.Zero
		if prev, ok := existingByKey[item.key()]; ok {
			oldQty = prev.Quantity
		}
		delta := item.quantity.Sub(oldQty)
		if !delta.IsPositive() {
			continue
		}
		onHand, err := models.GetOnHand(tx, item.ref)
		if err != nil {
			return err
		}
		if onHand.Sub(delta).IsNegative() {
			return &models.InsufficientInventoryError{
				PartID:     item.ref.ID,
				PartNumber: item.ref.Number,
				OnHand:     onHand,
				Requested:  delta,
			}
		}
	}

	txnRef := uuid.NewString()
	note := func(reason string) models.AdjustmentNote {
		return models.AdjustmentNote{Reason: reason, OrderId: orderId, TxnRef: txnRef, ActorId: actor.UserId}
	}

	// Phase 2: apply. Restore items dropped from the set, net-adjust items
	// present in both, and commit items that are only in the new set.
	for i := range existing {
		prev := &existing[i]
		if prev.Category.Synthetic() || seen[existingKey(prev)] {
			continue
		}
		if prev.PartId > 0 && prev.Category.AffectsInventory() && prev.Quantity.IsPositive() {
			if _, err := models.AdjustInventory(tx, models.PartRef{ID: prev.PartId, Number: prev.PartNumber},
				prev.Quantity, note("order line items replaced")); err != nil {
				return err
			}
			logger.WithFields(logrus.Fields{
				"orderId": orderId,
				"partId":  prev.PartId,
				"qty":     prev.Quantity.String(),
			}).Debug("restored inventory for removed line item")
		}
	}

	for _, item := range resolved {
		if item.category.Synthetic() {
			continue
		}
		oldQty := decimal.Zero
		if prev, ok := existingByKey[item.key()]; ok {
			oldQty = prev.Quantity
		}
		delta := item.quantity.Sub(oldQty)
		if item.ref.ID > 0 && item.category.AffectsInventory() && !delta.IsZero() {
			if _, err := models.AdjustInventory(tx, item.ref, delta.Neg(), note("order line items replaced")); err != nil {
				return err
			}
		}
	}

	// Old non-synthetic rows go away wholesale; the new set is inserted
	// fresh, skipping entries whose quantity ended up non-positive.
	if err := tx.Where("order_id = ? AND category = ?", orderId, models.LineCategoryOrdinary).
		Delete(&models.LineItem{}).Error; err != nil {
		return err
	}
	for _, item := range resolved {
		if item.category.Synthetic() {
			continue
		}
		if !item.quantity.IsPositive() {
			continue
		}
		qtyToOrder := utils.DereferencePtr(item.input.QtyToOrder)
		row := models.LineItem{
			OrderId:     orderId,
			PartId:      item.ref.ID,
			PartNumber:  item.ref.Number,
			Category:    item.category,
			Description: item.input.Description,
			Quantity:    item.quantity,
			QtyToOrder:  qtyToOrder,
			UnitPrice:   item.input.UnitPrice,
			Amount:      utils.CalculateLineAmount(item.quantity, item.input.UnitPrice),
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}

	// Synthetic categories keep single-item semantics: delta inventory for
	// stocked labour/overhead pseudo-parts, supply pinned to one normalized
	// unit, admin-gated removal (already authorized in phase 1).
	for _, item := range resolved {
		if !item.category.Synthetic() {
			continue
		}
		prev := existingByKey[item.key()]
		oldQty := decimal.Zero
		if prev != nil {
			oldQty = prev.Quantity
		}
		delta := item.quantity.Sub(oldQty)
		if item.category.AffectsInventory() && item.ref.ID > 0 && !delta.IsZero() {
			if _, err := models.AdjustInventory(tx, item.ref, delta.Neg(), note("order line items replaced")); err != nil {
				return err
			}
		}
		if !item.quantity.IsPositive() {
			if prev != nil {
				if err := tx.Delete(&models.LineItem{}, prev.ID).Error; err != nil {
					return err
				}
			}
			continue
		}
		amount := utils.CalculateLineAmount(item.quantity, item.input.UnitPrice)
		if item.category == models.LineCategorySupply {
			amount = utils.RoundMoney(item.input.UnitPrice)
		}
		if prev != nil {
			if err := tx.Model(&models.LineItem{}).Where("id = ?", prev.ID).Updates(map[string]interface{}{
				"description": item.input.Description,
				"quantity":    item.quantity,
				"unit_price":  item.input.UnitPrice,
				"amount":      amount,
			}).Error; err != nil {
				return err
			}
			continue
		}
		row := models.LineItem{
			OrderId:     orderId,
			PartId:      item.ref.ID,
			PartNumber:  item.ref.Number,
			Category:    item.category,
			Description: item.input.Description,
			Quantity:    item.quantity,
			UnitPrice:   item.input.UnitPrice,
			Amount:      amount,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}

	if _, err := models.RecalculateOrderTotals(tx, orderId); err != nil {
		return err
	}
	return nil
}

package models

import (
	"errors"
	"fmt"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"bitbucket.org/mmdatafocus/erp_backend/utils"
)

// LineItemInput is a single incoming line item. Category may be left empty;
// it is then derived from the part number (LABOUR/OVERHEAD/SUPPLY are
// reserved, everything else is ordinary).
type LineItemInput struct {
	PartId      int              `json:"part_id"`
	PartNumber  string           `json:"part_number"`
	Category    LineCategory     `json:"category"`
	Description string           `json:"description" validate:"max=255"`
	Quantity    decimal.Decimal  `json:"quantity" validate:"gte=0"`
	QtyToOrder  *decimal.Decimal `json:"qty_to_order" validate:"omitempty,gte=0"`
	UnitPrice   decimal.Decimal  `json:"unit_price" validate:"gte=0"`
}

// Validate reports tag-level problems (negative quantity, oversized
// description) as ErrValidation before any database read happens.
func (input *LineItemInput) Validate() error {
	if err := validate.Struct(input); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, utils.ProcessValidationErrors(err))
	}
	return nil
}

func (input *LineItemInput) category() LineCategory {
	if input.Category != "" && input.Category != LineCategoryOrdinary {
		return input.Category
	}
	return CategoryForPartNumber(input.PartNumber)
}

// Resolve produces the item's category and its part reference, resolved
// exactly once per operation. Supply never resolves; labour/overhead resolve
// against their reserved pseudo-part numbers and may legitimately come back
// unstocked (ref.ID == 0).
func (input *LineItemInput) Resolve(tx *gorm.DB) (LineCategory, PartRef, error) {
	category := input.category()
	switch {
	case category == LineCategorySupply:
		return category, PartRef{Number: category.PartNumber()}, nil
	case category.Synthetic():
		ref, err := ResolvePartRef(tx, input.PartId, category.PartNumber())
		if err != nil {
			return category, PartRef{}, err
		}
		return category, ref, nil
	default:
		ref, err := ResolvePartRef(tx, input.PartId, input.PartNumber)
		if err != nil {
			return category, PartRef{}, err
		}
		return category, ref, nil
	}
}

const mysqlDuplicateEntry = 1062

func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysqldrv.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}

// NormalizeSupplyQty pins supply lines to one normalized unit; their amount
// is the unit price and they never touch inventory.
func NormalizeSupplyQty(qty decimal.Decimal) decimal.Decimal {
	if qty.IsPositive() {
		return decimal.NewFromInt(1)
	}
	return qty
}

// UpsertLineItem creates, updates, or removes a single line item of an open
// order and mirrors the quantity change into inventory by delta. The order
// header row is locked first; inventory rows are only locked after that, so
// lock acquisition order is uniform across all mutating operations.
//
// Totals are NOT recalculated here. Callers batch line-item changes inside
// one transaction and invoke RecalculateOrderTotals once at the end.
//
// On any returned error nothing is committed; the caller rolls the
// transaction back in full.
func UpsertLineItem(tx *gorm.DB, orderId int, input *LineItemInput, actor Actor) (*LineItem, error) {
	if input == nil {
		return nil, validationError("line item is required")
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	order, err := LockOrder(tx, orderId)
	if err != nil {
		return nil, err
	}
	if order.Status == OrderStatusClosed {
		return nil, ErrClosedOrder
	}

	category, ref, err := input.Resolve(tx)
	if err != nil {
		return nil, err
	}

	existing, err := findLineItem(tx, orderId, ref, category)
	if err != nil {
		return nil, err
	}

	oldQty := decimal.Zero
	qtyToOrder := decimal.Zero
	if existing != nil {
		oldQty = existing.Quantity
		qtyToOrder = existing.QtyToOrder
	}
	qtyToOrder = utils.DereferencePtr(input.QtyToOrder, qtyToOrder)

	newQty := input.Quantity
	if category == LineCategorySupply {
		newQty = NormalizeSupplyQty(newQty)
	}

	// Removal decision and its authorization come before any write.
	remove := !newQty.IsPositive() && (category.Synthetic() || !qtyToOrder.IsPositive())
	if remove && existing != nil && category.DeleteRequiresAdmin() && !actor.IsAdmin {
		return nil, ErrUnauthorized
	}

	// A row captured while its part number was still unknown never adjusted
	// inventory, so once the part resolves the whole new quantity is the
	// delta, not just the difference from the stored quantity.
	inventoryOldQty := oldQty
	if existing != nil && existing.PartId == 0 && ref.ID > 0 {
		inventoryOldQty = decimal.Zero
	}

	delta := newQty.Sub(inventoryOldQty)
	if category.AffectsInventory() && ref.ID > 0 && !delta.IsZero() {
		// Selling/consuming more decreases on-hand, hence -delta.
		if _, err := AdjustInventory(tx, ref, delta.Neg(), AdjustmentNote{
			Reason:  "line item upsert",
			OrderId: orderId,
			TxnRef:  uuid.NewString(),
			ActorId: actor.UserId,
		}); err != nil {
			return nil, err
		}
	}

	if remove {
		if existing != nil {
			if err := tx.Delete(&LineItem{}, existing.ID).Error; err != nil {
				return nil, err
			}
		}
		return nil, nil
	}

	amount := utils.CalculateLineAmount(newQty, input.UnitPrice)
	if category == LineCategorySupply {
		amount = utils.RoundMoney(input.UnitPrice)
	}

	if existing != nil {
		existing.PartId = ref.ID
		existing.PartNumber = ref.Number
		existing.Description = input.Description
		existing.Quantity = newQty
		existing.QtyToOrder = qtyToOrder
		existing.UnitPrice = input.UnitPrice
		existing.Amount = amount
		if err := tx.Model(&LineItem{}).Where("id = ?", existing.ID).Updates(map[string]interface{}{
			"part_id":      existing.PartId,
			"part_number":  existing.PartNumber,
			"description":  existing.Description,
			"quantity":     existing.Quantity,
			"qty_to_order": existing.QtyToOrder,
			"unit_price":   existing.UnitPrice,
			"amount":       existing.Amount,
		}).Error; err != nil {
			return nil, err
		}
		return existing, nil
	}

	item := LineItem{
		OrderId:     orderId,
		PartId:      ref.ID,
		PartNumber:  ref.Number,
		Category:    category,
		Description: input.Description,
		Quantity:    newQty,
		QtyToOrder:  qtyToOrder,
		UnitPrice:   input.UnitPrice,
		Amount:      amount,
	}
	if err := tx.Create(&item).Error; err != nil {
		if isDuplicateKeyError(err) {
			return nil, validationError("duplicate line item for part %s", ref.Number)
		}
		return nil, err
	}
	return &item, nil
}

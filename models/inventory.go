package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InventoryRecord struct {
	ID             int             `gorm:"primary_key" json:"id"`
	PartId         int             `gorm:"uniqueIndex;not null" json:"part_id" binding:"required"`
	QuantityOnHand decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"quantity_on_hand"`
	LastUnitCost   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"last_unit_cost"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// AdjustmentNote travels with every inventory adjustment into the audit
// trail: why the quantity moved, which order moved it, and who asked.
type AdjustmentNote struct {
	Reason  string
	OrderId int
	TxnRef  string
	ActorId int
}

// firstOrCreateInventoryRecord locks the inventory row for the part,
// creating a zero-quantity row if the part was never stocked. The lock is
// taken with the caller already holding its order row lock, so lock
// acquisition order (order row, then inventory rows) is uniform.
func firstOrCreateInventoryRecord(tx *gorm.DB, partId int) (*InventoryRecord, error) {
	record := InventoryRecord{PartId: partId}
	result := lockForUpdate(tx).Where("part_id = ?", partId).FirstOrCreate(&record)
	if result.Error != nil {
		return nil, result.Error
	}
	return &record, nil
}

// AdjustInventory applies quantity_on_hand += delta for the part and appends
// an audit row. Fails with InsufficientInventoryError when the result would
// be negative; in that case nothing has been written to the inventory row.
// Must run inside the caller's transaction.
func AdjustInventory(tx *gorm.DB, ref PartRef, delta decimal.Decimal, note AdjustmentNote) (decimal.Decimal, error) {
	if ref.ID <= 0 {
		return decimal.Zero, ErrPartNotFound
	}
	if delta.IsZero() {
		record, err := firstOrCreateInventoryRecord(tx, ref.ID)
		if err != nil {
			return decimal.Zero, err
		}
		return record.QuantityOnHand, nil
	}

	record, err := firstOrCreateInventoryRecord(tx, ref.ID)
	if err != nil {
		return decimal.Zero, err
	}

	newQty := record.QuantityOnHand.Add(delta)
	if newQty.IsNegative() {
		return decimal.Zero, &InsufficientInventoryError{
			PartID:     ref.ID,
			PartNumber: ref.Number,
			OnHand:     record.QuantityOnHand,
			Requested:  delta.Neg(),
		}
	}

	if err := tx.Model(&InventoryRecord{}).Where("id = ?", record.ID).
		Update("quantity_on_hand", newQty).Error; err != nil {
		return decimal.Zero, err
	}

	audit := InventoryAudit{
		PartId:        ref.ID,
		OrderId:       note.OrderId,
		ActorId:       note.ActorId,
		TxnRef:        note.TxnRef,
		Delta:         delta,
		QuantityAfter: newQty,
		Reason:        note.Reason,
	}
	if err := tx.Create(&audit).Error; err != nil {
		return decimal.Zero, err
	}

	return newQty, nil
}

// GetOnHand is the unlocked read used by pre-flight validation. Any value it
// returns may be stale by commit time; AdjustInventory re-checks under the
// row lock.
func GetOnHand(tx *gorm.DB, ref PartRef) (decimal.Decimal, error) {
	if ref.ID <= 0 {
		return decimal.Zero, ErrPartNotFound
	}
	var record InventoryRecord
	err := tx.Where("part_id = ?", ref.ID).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return record.QuantityOnHand, nil
}

// InventoryRecordExists reports whether the part is tracked at all. Order
// deletion uses this to skip (and log) parts whose inventory rows are gone
// rather than fail the whole cascade.
func InventoryRecordExists(tx *gorm.DB, partId int) (bool, error) {
	var count int64
	if err := tx.Model(&InventoryRecord{}).Where("part_id = ?", partId).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

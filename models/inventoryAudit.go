package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryAudit is the append-only trail of quantity_on_hand movements.
// Rows are never updated or deleted; cmd/inventory-recount replays them to
// verify the running quantity.
type InventoryAudit struct {
	ID            int             `gorm:"primary_key" json:"id"`
	PartId        int             `gorm:"index;not null" json:"part_id"`
	OrderId       int             `gorm:"index" json:"order_id"`
	ActorId       int             `json:"actor_id"`
	TxnRef        string          `gorm:"size:36;index" json:"txn_ref"`
	Delta         decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"delta"`
	QuantityAfter decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"quantity_after"`
	Reason        string          `gorm:"size:100;not null" json:"reason"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

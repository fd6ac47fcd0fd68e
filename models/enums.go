package models

import (
	"strings"
)

type OrderStatus string

const (
	OrderStatusOpen   OrderStatus = "Open"
	OrderStatusClosed OrderStatus = "Closed"
)

// LineCategory is a closed set. Ordinary rows are backed by a stocked part;
// the three synthetic categories are pseudo-parts for derived costs.
type LineCategory string

const (
	LineCategoryOrdinary LineCategory = "Ordinary"
	LineCategoryLabour   LineCategory = "Labour"
	LineCategoryOverhead LineCategory = "Overhead"
	LineCategorySupply   LineCategory = "Supply"
)

// Synthetic reports whether the category is one of the pseudo-part
// categories (labour/overhead/supply).
func (c LineCategory) Synthetic() bool {
	switch c {
	case LineCategoryLabour, LineCategoryOverhead, LineCategorySupply:
		return true
	}
	return false
}

// AffectsInventory reports whether quantity changes for this category are
// mirrored into quantity_on_hand. Supply is always inventory-exempt; labour
// and overhead adjust inventory when their pseudo-part is stocked.
func (c LineCategory) AffectsInventory() bool {
	return c != LineCategorySupply
}

// DeleteRequiresAdmin reports whether removing a row of this category needs
// an administrative actor.
func (c LineCategory) DeleteRequiresAdmin() bool {
	return c.Synthetic()
}

// PartNumber returns the reserved part number for synthetic categories,
// empty for ordinary rows.
func (c LineCategory) PartNumber() string {
	switch c {
	case LineCategoryLabour:
		return "LABOUR"
	case LineCategoryOverhead:
		return "OVERHEAD"
	case LineCategorySupply:
		return "SUPPLY"
	}
	return ""
}

// CategoryForPartNumber maps the reserved part numbers back to their
// synthetic category; anything else is ordinary.
func CategoryForPartNumber(partNumber string) LineCategory {
	switch strings.ToUpper(strings.TrimSpace(partNumber)) {
	case "LABOUR":
		return LineCategoryLabour
	case "OVERHEAD":
		return LineCategoryOverhead
	case "SUPPLY":
		return LineCategorySupply
	}
	return LineCategoryOrdinary
}

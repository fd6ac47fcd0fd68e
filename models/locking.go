package models

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate adds SELECT ... FOR UPDATE. The sqlite dialector (tests,
// local tooling) has a single writer and no FOR UPDATE syntax, so the clause
// is skipped there; serialization still holds because sqlite serializes
// writing transactions itself.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

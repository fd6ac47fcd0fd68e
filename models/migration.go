package models

import (
	"log"

	"gorm.io/gorm"
)

func MigrateTable(db *gorm.DB) {
	err := db.AutoMigrate(
		&Customer{}, &Vendor{},
		&Part{}, &InventoryRecord{}, &InventoryAudit{},
		&Order{}, &LineItem{},
		&TimeEntry{},
	)
	if err != nil {
		log.Fatal(err)
	}
}

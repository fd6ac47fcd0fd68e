package models_test

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"bitbucket.org/mmdatafocus/erp_backend/config"
	"bitbucket.org/mmdatafocus/erp_backend/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "erp_test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	models.MigrateTable(db)
	// Anything resolving the global handle during the test sees this one.
	config.SetDB(db)
	return db
}

func seedPart(t *testing.T, db *gorm.DB, number string, onHand int64) *models.Part {
	t.Helper()
	part := models.Part{PartNumber: number, Description: number}
	if err := db.Create(&part).Error; err != nil {
		t.Fatalf("create part %s: %v", number, err)
	}
	record := models.InventoryRecord{PartId: part.ID, QuantityOnHand: decimal.NewFromInt(onHand)}
	if err := db.Create(&record).Error; err != nil {
		t.Fatalf("create inventory record for %s: %v", number, err)
	}
	return &part
}

func seedOrder(t *testing.T, db *gorm.DB, status models.OrderStatus, taxRate decimal.Decimal) *models.Order {
	t.Helper()
	order := models.Order{OrderNumber: "SO-0001", Status: status, TaxRate: taxRate}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order: %v", err)
	}
	return &order
}

func onHand(t *testing.T, db *gorm.DB, partId int) decimal.Decimal {
	t.Helper()
	var record models.InventoryRecord
	if err := db.Where("part_id = ?", partId).First(&record).Error; err != nil {
		t.Fatalf("fetch inventory record %d: %v", partId, err)
	}
	return record.QuantityOnHand
}

// upsertInTx mirrors the caller contract: one transaction per operation,
// rolled back in full on any error.
func upsertInTx(t *testing.T, db *gorm.DB, orderId int, input *models.LineItemInput, actor models.Actor) (*models.LineItem, error) {
	t.Helper()
	tx := db.Begin()
	item, err := models.UpsertLineItem(tx, orderId, input, actor)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		t.Fatalf("commit: %v", err)
	}
	return item, nil
}

func decEqual(t *testing.T, got decimal.Decimal, want string, context string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("%s: got %s, want %s", context, got.String(), want)
	}
}

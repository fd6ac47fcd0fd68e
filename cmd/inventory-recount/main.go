package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"bitbucket.org/mmdatafocus/erp_backend/config"
	"bitbucket.org/mmdatafocus/erp_backend/models"
)

// Compares each part's quantity_on_hand against the latest inventory audit
// row (the audit trail is append-only, so the newest quantity_after is the
// ledger's view of on-hand). Reports drift; -apply repairs the row.
func main() {
	partID := flag.Int("part-id", 0, "Optional: limit to one part id")
	apply := flag.Bool("apply", false, "Repair drifted rows instead of only reporting")
	flag.Parse()

	logger := config.GetLogger()
	logger.SetLevel(logrus.InfoLevel)

	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized")
		os.Exit(1)
	}

	var records []models.InventoryRecord
	query := db.Order("part_id")
	if *partID > 0 {
		query = query.Where("part_id = ?", *partID)
	}
	if err := query.Find(&records).Error; err != nil {
		config.LogError(logger, "cmd/inventory-recount", "main", "load inventory records", nil, err)
		os.Exit(1)
	}

	var drifted int
	for _, record := range records {
		var last models.InventoryAudit
		err := db.Where("part_id = ?", record.PartId).Order("id DESC").First(&last).Error
		if err != nil {
			// No audit rows yet: nothing to reconcile against.
			continue
		}
		if record.QuantityOnHand.Equal(last.QuantityAfter) {
			continue
		}
		drifted++
		logger.WithFields(logrus.Fields{
			"partId":  record.PartId,
			"onHand":  record.QuantityOnHand.String(),
			"audited": last.QuantityAfter.String(),
		}).Warn("quantity_on_hand drifted from audit trail")

		if *apply {
			if err := db.Model(&models.InventoryRecord{}).Where("id = ?", record.ID).
				Update("quantity_on_hand", last.QuantityAfter).Error; err != nil {
				config.LogError(logger, "cmd/inventory-recount", "main", "repair quantity_on_hand", record.PartId, err)
				os.Exit(1)
			}
			logger.WithField("partId", record.PartId).Info("repaired quantity_on_hand from audit trail")
		}
	}

	fmt.Printf("checked %d inventory records, %d drifted\n", len(records), drifted)
}

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"bitbucket.org/mmdatafocus/erp_backend/config"
	"bitbucket.org/mmdatafocus/erp_backend/models"
)

// Re-runs totals recalculation over all orders (or one) and reports rows
// whose stored subtotal/tax/total changed. Safe to run repeatedly: the
// recalculation is idempotent.
func main() {
	orderID := flag.Int("order-id", 0, "Optional: limit to one order id")
	flag.Parse()

	logger := config.GetLogger()
	logger.SetLevel(logrus.InfoLevel)

	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized")
		os.Exit(1)
	}

	var orders []models.Order
	query := db.Order("id")
	if *orderID > 0 {
		query = query.Where("id = ?", *orderID)
	}
	if err := query.Find(&orders).Error; err != nil {
		config.LogError(logger, "cmd/order-totals-recalc", "main", "load orders", nil, err)
		os.Exit(1)
	}

	var changed int
	for _, order := range orders {
		tx := db.Begin()
		totals, err := models.RecalculateOrderTotals(tx, order.ID)
		if err != nil {
			tx.Rollback()
			config.LogError(logger, "cmd/order-totals-recalc", "main", "recalculate order", order.ID, err)
			os.Exit(1)
		}
		if err := tx.Commit().Error; err != nil {
			config.LogError(logger, "cmd/order-totals-recalc", "main", "commit order", order.ID, err)
			os.Exit(1)
		}
		if !order.Subtotal.Equal(totals.Subtotal) ||
			!order.TaxAmount.Equal(totals.TaxAmount) ||
			!order.TotalAmount.Equal(totals.TotalAmount) {
			changed++
			logger.WithFields(logrus.Fields{
				"orderId":     order.ID,
				"oldSubtotal": order.Subtotal.String(),
				"newSubtotal": totals.Subtotal.String(),
				"newTotal":    totals.TotalAmount.String(),
			}).Info("order totals corrected")
		}
	}

	fmt.Printf("recalculated %d orders, %d changed\n", len(orders), changed)
}

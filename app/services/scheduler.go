package services

import (
	"database/sql"
	"log"
	"time"

	"github.com/Einzelgaanger/CPF/app/database"
)

// StartScheduler starts the background reconciliation sweep. Every cycle it
// first repairs orphaned authorized transactions left by a crashed or
// legacy non-atomic execute, then writes reconciliation records for newly
// executed distributions.
func StartScheduler(db *sql.DB) {
	go func() {
		log.Println("Reconciliation scheduler started...")
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			if _, err := database.RepairOrphanedTransactions(db); err != nil {
				log.Printf("Error repairing orphaned transactions: %v", err)
			}
			if _, err := database.GenerateReconciliationRecords(db); err != nil {
				log.Printf("Error generating reconciliation records: %v", err)
			}
		}
	}()
}

package database

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/Einzelgaanger/CPF/app/models"
)

// RepairOrphanedTransactions discards authorized settlement transactions
// whose parent distribution is still pending. Under the transactional
// execute path these cannot be produced; rows like this are remnants of the
// legacy two-step commit or a crash between insert and status flip, and
// keeping them would double-move money if the distribution is executed
// again.
func RepairOrphanedTransactions(db *sql.DB) (int, error) {
	res, err := db.Exec(
		`DELETE FROM settlement_transactions st
		 USING waterfall_distributions wd
		 WHERE st.waterfall_id = wd.id
		   AND st.status = 'authorized'
		   AND wd.status = 'pending'`,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to repair orphaned transactions: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows > 0 {
		log.Printf("Reconciliation repair: discarded %d orphaned settlement transactions", rows)
	}
	return int(rows), nil
}

// GenerateReconciliationRecords writes one reconciliation record per
// executed distribution that does not have one yet, comparing the obligor
// payment (expected) against the sum of the settlement transactions
// actually written (actual). A variance within the documented rounding
// tolerance (0.05) is matched; anything larger is a discrepancy for an
// operator to chase.
func GenerateReconciliationRecords(db *sql.DB) (int, error) {
	query := `INSERT INTO reconciliation_records
		(waterfall_id, period_start, period_end, expected_balance, actual_balance, variance, status)
		SELECT wd.id,
		       wd.created_at,
		       wd.distributed_at,
		       wd.obligor_payment_amount,
		       COALESCE(SUM(st.amount), 0),
		       wd.obligor_payment_amount - COALESCE(SUM(st.amount), 0),
		       CASE WHEN ABS(wd.obligor_payment_amount - COALESCE(SUM(st.amount), 0)) <= 0.05
		            THEN $1 ELSE $2 END
		FROM waterfall_distributions wd
		LEFT JOIN settlement_transactions st ON st.waterfall_id = wd.id
		WHERE wd.status = 'distributed'
		  AND NOT EXISTS (
			SELECT 1 FROM reconciliation_records rr WHERE rr.waterfall_id = wd.id
		  )
		GROUP BY wd.id`

	res, err := db.Exec(query,
		string(models.ReconciliationMatched), string(models.ReconciliationDiscrepancy))
	if err != nil {
		return 0, fmt.Errorf("failed to generate reconciliation records: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows > 0 {
		log.Printf("Reconciliation: generated %d records", rows)
	}
	return int(rows), nil
}

package database

import (
	"database/sql"

	"github.com/Einzelgaanger/CPF/app/models"
)

// GetDistributions returns the most recent waterfall distributions for the
// dashboard tabs.
func GetDistributions(db *sql.DB, limit int) ([]*models.WaterfallDistribution, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT id, bill_id, deed_id, trust_account_id, obligor_payment_amount,
			  tax_rate, trustee_fee_rate, admin_fee_rate, interest_rate,
			  taxes_amount, trustee_fees_amount, admin_fees_amount,
			  interest_amount, principal_amount, residual_amount,
			  status, distributed_at, created_at, updated_at
			  FROM waterfall_distributions
			  ORDER BY created_at DESC LIMIT $1`

	rows, err := db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var distributions []*models.WaterfallDistribution
	for rows.Next() {
		dist := &models.WaterfallDistribution{}
		var status string
		err := rows.Scan(
			&dist.ID, &dist.BillID, &dist.DeedID, &dist.TrustAccountID, &dist.ObligorPaymentAmount,
			&dist.TaxRate, &dist.TrusteeFeeRate, &dist.AdminFeeRate, &dist.InterestRate,
			&dist.TaxesAmount, &dist.TrusteeFeesAmount, &dist.AdminFeesAmount,
			&dist.InterestAmount, &dist.PrincipalAmount, &dist.ResidualAmount,
			&status, &dist.DistributedAt, &dist.CreatedAt, &dist.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		dist.Status = models.DistributionStatus(status)
		distributions = append(distributions, dist)
	}
	return distributions, rows.Err()
}

// GetSettlementTransactions returns recent settlement transactions,
// optionally scoped to one distribution.
func GetSettlementTransactions(db *sql.DB, waterfallID string, limit int) ([]*models.SettlementTransaction, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT id, waterfall_id, bill_id, from_account_id, transaction_type,
			  amount, status, reference_number, authorized_at, settled_at, created_at
			  FROM settlement_transactions`
	var args []interface{}
	if waterfallID != "" {
		query += " WHERE waterfall_id = $1 ORDER BY created_at DESC LIMIT $2"
		args = append(args, waterfallID, limit)
	} else {
		query += " ORDER BY created_at DESC LIMIT $1"
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*models.SettlementTransaction
	for rows.Next() {
		txn := &models.SettlementTransaction{}
		var txType, status string
		err := rows.Scan(
			&txn.ID, &txn.WaterfallID, &txn.BillID, &txn.FromAccountID, &txType,
			&txn.Amount, &status, &txn.ReferenceNumber, &txn.AuthorizedAt,
			&txn.SettledAt, &txn.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		txn.TransactionType = models.TransactionType(txType)
		txn.Status = models.TransactionStatus(status)
		transactions = append(transactions, txn)
	}
	return transactions, rows.Err()
}

// GetReconciliationRecords returns recent reconciliation records.
func GetReconciliationRecords(db *sql.DB, limit int) ([]*models.ReconciliationRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT id, waterfall_id, period_start, period_end,
			  expected_balance, actual_balance, variance, status, created_at
			  FROM reconciliation_records
			  ORDER BY created_at DESC LIMIT $1`

	rows, err := db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.ReconciliationRecord
	for rows.Next() {
		rec := &models.ReconciliationRecord{}
		var status string
		err := rows.Scan(
			&rec.ID, &rec.WaterfallID, &rec.PeriodStart, &rec.PeriodEnd,
			&rec.ExpectedBalance, &rec.ActualBalance, &rec.Variance,
			&status, &rec.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		rec.Status = models.ReconciliationStatus(status)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CountTransactionsForDistribution is used by tests and the reconciliation
// sweep to verify exactly one transaction batch exists per execution.
func CountTransactionsForDistribution(db *sql.DB, waterfallID string) (int, error) {
	var count int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM settlement_transactions WHERE waterfall_id = $1`,
		waterfallID,
	).Scan(&count)
	return count, err
}

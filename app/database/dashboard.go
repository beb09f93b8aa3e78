package database

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// DashboardStats feeds the KPI cards and charts on the platform dashboard.
type DashboardStats struct {
	Bills                    *BillStats      `json:"bills"`
	PendingDistributions     int             `json:"pending_distributions"`
	ExecutedDistributions    int             `json:"executed_distributions"`
	TotalDistributed         decimal.Decimal `json:"total_distributed"`
	SettlementVolume         decimal.Decimal `json:"settlement_volume"`
	ActiveTrustAccounts      int             `json:"active_trust_accounts"`
	ReconciliationMismatches int             `json:"reconciliation_mismatches"`
}

func GetDashboardStats(db *sql.DB) (*DashboardStats, error) {
	billStats, err := GetBillStats(db)
	if err != nil {
		return nil, err
	}
	stats := &DashboardStats{Bills: billStats}

	err = db.QueryRow(
		`SELECT
		 COUNT(*) FILTER (WHERE status = 'pending'),
		 COUNT(*) FILTER (WHERE status = 'distributed'),
		 COALESCE(SUM(obligor_payment_amount) FILTER (WHERE status = 'distributed'), 0)
		 FROM waterfall_distributions`,
	).Scan(&stats.PendingDistributions, &stats.ExecutedDistributions, &stats.TotalDistributed)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(
		`SELECT COALESCE(SUM(amount), 0) FROM settlement_transactions`,
	).Scan(&stats.SettlementVolume)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(
		`SELECT COUNT(*) FROM trust_accounts WHERE status = 'active' AND deleted_at IS NULL`,
	).Scan(&stats.ActiveTrustAccounts)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(
		`SELECT COUNT(*) FROM reconciliation_records WHERE status = 'discrepancy'`,
	).Scan(&stats.ReconciliationMismatches)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

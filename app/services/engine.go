package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Einzelgaanger/CPF/app/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WaterfallEngine owns the distribution lifecycle: create a pending
// allocation, then execute it exactly once. The database handle and rate
// defaults are injected so the engine never reads ambient state.
type WaterfallEngine struct {
	db       *sql.DB
	defaults RateDefaults
}

func NewWaterfallEngine(db *sql.DB, defaults RateDefaults) *WaterfallEngine {
	return &WaterfallEngine{db: db, defaults: defaults}
}

// Calculate runs the waterfall without persisting anything.
func (e *WaterfallEngine) Calculate(input WaterfallInput) (WaterfallResult, error) {
	if err := input.Validate(e.defaults, false); err != nil {
		return WaterfallResult{}, err
	}
	return CalculateWaterfall(input, e.defaults), nil
}

// CreateDistribution validates the input, runs the waterfall and persists a
// new pending distribution with the rate snapshot and the six tranche
// amounts. Allocation only — no settlement transactions are written here.
func (e *WaterfallEngine) CreateDistribution(input WaterfallInput) (*models.WaterfallDistribution, error) {
	if err := input.Validate(e.defaults, true); err != nil {
		return nil, err
	}

	rates := input.EffectiveRates(e.defaults)
	result := CalculateWaterfall(input, e.defaults)

	dist := &models.WaterfallDistribution{
		BillID:               input.BillID,
		DeedID:               input.DeedID,
		TrustAccountID:       input.TrustAccountID,
		ObligorPaymentAmount: input.ObligorPaymentAmount,
		TaxRate:              rates.TaxRate,
		TrusteeFeeRate:       rates.TrusteeFeeRate,
		AdminFeeRate:         rates.AdminFeeRate,
		InterestRate:         rates.InterestRate,
		TaxesAmount:          result.TaxesAmount,
		TrusteeFeesAmount:    result.TrusteeFeesAmount,
		AdminFeesAmount:      result.AdminFeesAmount,
		InterestAmount:       result.InterestAmount,
		PrincipalAmount:      result.PrincipalAmount,
		ResidualAmount:       result.ResidualAmount,
		Status:               models.DistributionPending,
	}

	query := `INSERT INTO waterfall_distributions
		(bill_id, deed_id, trust_account_id, obligor_payment_amount,
		 tax_rate, trustee_fee_rate, admin_fee_rate, interest_rate,
		 taxes_amount, trustee_fees_amount, admin_fees_amount,
		 interest_amount, principal_amount, residual_amount, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at`

	err := e.db.QueryRow(query,
		dist.BillID, dist.DeedID, dist.TrustAccountID, dist.ObligorPaymentAmount,
		dist.TaxRate, dist.TrusteeFeeRate, dist.AdminFeeRate, dist.InterestRate,
		dist.TaxesAmount, dist.TrusteeFeesAmount, dist.AdminFeesAmount,
		dist.InterestAmount, dist.PrincipalAmount, dist.ResidualAmount,
		string(dist.Status),
	).Scan(&dist.ID, &dist.CreatedAt, &dist.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create distribution: %w", err)
	}

	return dist, nil
}

// tranche pairs a transaction type with its computed amount, in contractual
// priority order.
type tranche struct {
	txType models.TransactionType
	amount decimal.Decimal
}

// ExecuteDistribution materializes one settlement transaction per non-zero
// tranche and flips the distribution to distributed, all inside a single
// database transaction. The distribution row is locked FOR UPDATE and the
// status flip is conditional on it still being pending, so two concurrent
// executes can never both write transactions: the loser observes
// ErrAlreadyExecuted and writes nothing. Returns the number of transactions
// created (0 to 6).
func (e *WaterfallEngine) ExecuteDistribution(distributionID string) (int, error) {
	if _, err := uuid.Parse(distributionID); err != nil {
		return 0, &ValidationError{Field: "distribution_id", Message: "must be a valid UUID"}
	}

	tx, err := e.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var (
		dist   models.WaterfallDistribution
		status string
	)
	err = tx.QueryRow(
		`SELECT id, bill_id, trust_account_id,
		        taxes_amount, trustee_fees_amount, admin_fees_amount,
		        interest_amount, principal_amount, residual_amount, status
		 FROM waterfall_distributions WHERE id = $1 FOR UPDATE`,
		distributionID,
	).Scan(
		&dist.ID, &dist.BillID, &dist.TrustAccountID,
		&dist.TaxesAmount, &dist.TrusteeFeesAmount, &dist.AdminFeesAmount,
		&dist.InterestAmount, &dist.PrincipalAmount, &dist.ResidualAmount,
		&status,
	)
	if err == sql.ErrNoRows {
		return 0, ErrDistributionNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to lock distribution: %w", err)
	}

	if models.DistributionStatus(status) != models.DistributionPending {
		return 0, ErrAlreadyExecuted
	}

	tranches := []tranche{
		{models.TxTaxDeduction, dist.TaxesAmount},
		{models.TxTrusteeFee, dist.TrusteeFeesAmount},
		{models.TxAdminFee, dist.AdminFeesAmount},
		{models.TxInterestPayment, dist.InterestAmount},
		{models.TxPrincipalRepayment, dist.PrincipalAmount},
		{models.TxResidualDistribution, dist.ResidualAmount},
	}

	now := time.Now()
	created := 0
	for _, t := range tranches {
		if !t.amount.IsPositive() {
			// Zero-amount tranches produce no transaction
			continue
		}
		_, err = tx.Exec(
			`INSERT INTO settlement_transactions
			 (waterfall_id, bill_id, from_account_id, transaction_type,
			  amount, status, reference_number, authorized_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			dist.ID, dist.BillID, dist.TrustAccountID, string(t.txType),
			t.amount, string(models.TxAuthorized), newReferenceNumber(now), now,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to create %s transaction: %w", t.txType, err)
		}
		created++
	}

	// Conditional flip: belt and braces on top of the row lock above.
	res, err := tx.Exec(
		`UPDATE waterfall_distributions
		 SET status = $1, distributed_at = $2, updated_at = $2
		 WHERE id = $3 AND status = $4`,
		string(models.DistributionDistributed), now, dist.ID,
		string(models.DistributionPending),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update distribution status: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return 0, ErrAlreadyExecuted
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit distribution: %w", err)
	}

	return created, nil
}

// newReferenceNumber builds the human reference stamped on each settlement
// transaction, e.g. WF-20250117-9F3A21BC.
func newReferenceNumber(t time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("WF-%s-%s", t.Format("20060102"), suffix)
}

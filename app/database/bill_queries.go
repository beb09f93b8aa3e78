package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Einzelgaanger/CPF/app/models"
	"github.com/shopspring/decimal"
)

// BillFilters represents filtering options for bills
type BillFilters struct {
	SupplierID string
	MDAID      string
	Status     string
	Limit      int
	Offset     int
}

// GetBills returns bills matching the filters, newest first.
func GetBills(db *sql.DB, filters BillFilters) ([]*models.Bill, error) {
	baseQuery := `SELECT b.id, b.supplier_id, b.mda_id, b.invoice_number, b.invoice_date,
				  b.due_date, b.amount, b.currency, b.description, b.work_description,
				  b.contract_reference, b.status, b.status_history, b.verified_by,
				  b.verified_at, b.created_at, b.updated_at,
				  m.name AS mda_name, u.full_name AS supplier_name
				  FROM bills b
				  JOIN mdas m ON b.mda_id = m.id
				  JOIN users u ON b.supplier_id = u.id
				  WHERE b.deleted_at IS NULL`

	var args []interface{}
	argIndex := 1

	if filters.SupplierID != "" {
		baseQuery += fmt.Sprintf(" AND b.supplier_id = $%d", argIndex)
		args = append(args, filters.SupplierID)
		argIndex++
	}
	if filters.MDAID != "" {
		baseQuery += fmt.Sprintf(" AND b.mda_id = $%d", argIndex)
		args = append(args, filters.MDAID)
		argIndex++
	}
	if filters.Status != "" {
		baseQuery += fmt.Sprintf(" AND b.status = $%d", argIndex)
		args = append(args, filters.Status)
		argIndex++
	}

	baseQuery += " ORDER BY b.created_at DESC"

	if filters.Limit > 0 {
		baseQuery += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filters.Limit)
		argIndex++
	}
	if filters.Offset > 0 {
		baseQuery += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, filters.Offset)
	}

	rows, err := db.Query(baseQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bills []*models.Bill
	for rows.Next() {
		bill := &models.Bill{MDA: &models.MDA{}, Supplier: &models.User{}}
		var status string
		err := rows.Scan(
			&bill.ID, &bill.SupplierID, &bill.MDAID, &bill.InvoiceNumber, &bill.InvoiceDate,
			&bill.DueDate, &bill.Amount, &bill.Currency, &bill.Description, &bill.WorkDescription,
			&bill.ContractReference, &status, &bill.StatusHistory, &bill.VerifiedBy,
			&bill.VerifiedAt, &bill.CreatedAt, &bill.UpdatedAt,
			&bill.MDA.Name, &bill.Supplier.FullName,
		)
		if err != nil {
			return nil, err
		}
		bill.Status = models.BillStatus(status)
		bills = append(bills, bill)
	}
	return bills, rows.Err()
}

func GetBillByID(db *sql.DB, billID string) (*models.Bill, error) {
	bill := &models.Bill{}
	var status string
	query := `SELECT id, supplier_id, mda_id, invoice_number, invoice_date, due_date,
			  amount, currency, description, work_description, contract_reference,
			  status, status_history, verified_by, verified_at, created_at, updated_at
			  FROM bills WHERE id = $1 AND deleted_at IS NULL`

	err := db.QueryRow(query, billID).Scan(
		&bill.ID, &bill.SupplierID, &bill.MDAID, &bill.InvoiceNumber, &bill.InvoiceDate,
		&bill.DueDate, &bill.Amount, &bill.Currency, &bill.Description, &bill.WorkDescription,
		&bill.ContractReference, &status, &bill.StatusHistory, &bill.VerifiedBy,
		&bill.VerifiedAt, &bill.CreatedAt, &bill.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	bill.Status = models.BillStatus(status)
	return bill, nil
}

// CreateBill inserts a submitted bill with its first status history entry.
func CreateBill(db *sql.DB, bill *models.Bill) error {
	history, err := json.Marshal([]models.BillStatusEvent{{
		Status:    models.BillSubmitted,
		Timestamp: time.Now(),
		Note:      "Bill submitted by supplier",
		ActorID:   bill.SupplierID,
	}})
	if err != nil {
		return err
	}
	bill.Status = models.BillSubmitted
	bill.StatusHistory = history

	query := `INSERT INTO bills
		(supplier_id, mda_id, invoice_number, invoice_date, due_date, amount,
		 currency, description, work_description, contract_reference, status, status_history)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`

	return db.QueryRow(query,
		bill.SupplierID, bill.MDAID, bill.InvoiceNumber, bill.InvoiceDate, bill.DueDate,
		bill.Amount, bill.Currency, bill.Description, bill.WorkDescription,
		bill.ContractReference, string(bill.Status), bill.StatusHistory,
	).Scan(&bill.ID, &bill.CreatedAt, &bill.UpdatedAt)
}

// UpdateBillStatus transitions a bill and appends the event to its JSONB
// status history in the same statement.
func UpdateBillStatus(db *sql.DB, billID string, status models.BillStatus, actorID, note string) error {
	event, err := json.Marshal(models.BillStatusEvent{
		Status:    status,
		Timestamp: time.Now(),
		Note:      note,
		ActorID:   actorID,
	})
	if err != nil {
		return err
	}

	query := `UPDATE bills
			  SET status = $1,
			      status_history = status_history || $2::jsonb,
			      verified_by = CASE WHEN $1 = 'verified' THEN $3::uuid ELSE verified_by END,
			      verified_at = CASE WHEN $1 = 'verified' THEN NOW() ELSE verified_at END,
			      updated_at = NOW()
			  WHERE id = $4 AND deleted_at IS NULL`

	res, err := db.Exec(query, string(status), event, actorID, billID)
	if err != nil {
		return fmt.Errorf("failed to update bill status: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// PurchaseBill records the SPV purchase: the trust deed is created and the
// bill moves to purchased, atomically.
func PurchaseBill(db *sql.DB, deed *models.Deed) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRow(
		`INSERT INTO deeds (bill_id, spv_id, deed_reference, purchase_price, discount_rate, executed_at)
		 VALUES ($1, $2, $3, $4, $5, NOW())
		 RETURNING id, executed_at, created_at, updated_at`,
		deed.BillID, deed.SPVID, deed.DeedReference, deed.PurchasePrice, deed.DiscountRate,
	).Scan(&deed.ID, &deed.ExecutedAt, &deed.CreatedAt, &deed.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert deed: %w", err)
	}

	event, err := json.Marshal(models.BillStatusEvent{
		Status:    models.BillPurchased,
		Timestamp: time.Now(),
		Note:      fmt.Sprintf("Purchased under deed %s", deed.DeedReference),
		ActorID:   deed.SPVID,
	})
	if err != nil {
		return err
	}

	res, err := tx.Exec(
		`UPDATE bills
		 SET status = $1, status_history = status_history || $2::jsonb, updated_at = NOW()
		 WHERE id = $3 AND status IN ('verified', 'certified') AND deleted_at IS NULL`,
		string(models.BillPurchased), event, deed.BillID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bill: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("bill %s is not available for purchase", deed.BillID)
	}

	return tx.Commit()
}

// BillStats aggregates the bill pipeline for the dashboard.
type BillStats struct {
	TotalBills       int             `json:"total_bills"`
	SubmittedBills   int             `json:"submitted_bills"`
	VerifiedBills    int             `json:"verified_bills"`
	PurchasedBills   int             `json:"purchased_bills"`
	SettledBills     int             `json:"settled_bills"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
}

func GetBillStats(db *sql.DB) (*BillStats, error) {
	stats := &BillStats{}
	query := `SELECT
			  COUNT(*),
			  COUNT(*) FILTER (WHERE status = 'submitted'),
			  COUNT(*) FILTER (WHERE status = 'verified'),
			  COUNT(*) FILTER (WHERE status = 'purchased'),
			  COUNT(*) FILTER (WHERE status = 'settled'),
			  COALESCE(SUM(amount) FILTER (WHERE status NOT IN ('settled', 'rejected')), 0)
			  FROM bills WHERE deleted_at IS NULL`

	err := db.QueryRow(query).Scan(
		&stats.TotalBills, &stats.SubmittedBills, &stats.VerifiedBills,
		&stats.PurchasedBills, &stats.SettledBills, &stats.TotalOutstanding,
	)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

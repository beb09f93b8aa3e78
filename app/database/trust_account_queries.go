package database

import (
	"database/sql"

	"github.com/Einzelgaanger/CPF/app/models"
)

// CreateTrustAccount opens a new segregated account for an SPV.
func CreateTrustAccount(db *sql.DB, account *models.TrustAccount) error {
	query := `INSERT INTO trust_accounts (spv_id, account_type, account_name, bank_name, balance, status)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, created_at, updated_at`

	account.Status = models.AccountActive
	return db.QueryRow(query,
		account.SPVID, string(account.AccountType), account.AccountName,
		account.BankName, account.Balance, string(account.Status),
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
}

// GetTrustAccounts lists accounts, optionally restricted to one SPV.
func GetTrustAccounts(db *sql.DB, spvID string) ([]*models.TrustAccount, error) {
	query := `SELECT id, spv_id, account_type, account_name, bank_name, balance, status, created_at, updated_at
			  FROM trust_accounts WHERE deleted_at IS NULL`
	var args []interface{}
	if spvID != "" {
		query += " AND spv_id = $1"
		args = append(args, spvID)
	}
	query += " ORDER BY created_at DESC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*models.TrustAccount
	for rows.Next() {
		acc := &models.TrustAccount{}
		var accType, status string
		err := rows.Scan(
			&acc.ID, &acc.SPVID, &accType, &acc.AccountName, &acc.BankName,
			&acc.Balance, &status, &acc.CreatedAt, &acc.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		acc.AccountType = models.AccountType(accType)
		acc.Status = models.AccountStatus(status)
		accounts = append(accounts, acc)
	}
	return accounts, rows.Err()
}

func GetTrustAccountByID(db *sql.DB, accountID string) (*models.TrustAccount, error) {
	acc := &models.TrustAccount{}
	var accType, status string
	query := `SELECT id, spv_id, account_type, account_name, bank_name, balance, status, created_at, updated_at
			  FROM trust_accounts WHERE id = $1 AND deleted_at IS NULL`

	err := db.QueryRow(query, accountID).Scan(
		&acc.ID, &acc.SPVID, &accType, &acc.AccountName, &acc.BankName,
		&acc.Balance, &status, &acc.CreatedAt, &acc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	acc.AccountType = models.AccountType(accType)
	acc.Status = models.AccountStatus(status)
	return acc, nil
}

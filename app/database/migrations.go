package database

import (
	"database/sql"
	"log"
)

// RunMigrations checks and applies necessary schema updates
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	if _, err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`); err != nil {
		log.Printf("Failed to ensure pgcrypto extension: %v", err)
		return err
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			full_name TEXT NOT NULL,
			phone VARCHAR(20),
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS roles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT UNIQUE NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS user_roles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL REFERENCES users(id),
			role_id UUID NOT NULL REFERENCES roles(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ,
			UNIQUE (user_id, role_id)
		)`,
		`CREATE TABLE IF NOT EXISTS profiles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID UNIQUE NOT NULL REFERENCES users(id),
			company_name TEXT,
			registration_number TEXT,
			tax_id TEXT,
			bank_name TEXT,
			bank_account TEXT,
			spv_name TEXT,
			license_number TEXT,
			mda_name TEXT,
			mda_code TEXT,
			department TEXT,
			address TEXT,
			profile_completed BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS mdas (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT UNIQUE NOT NULL,
			code TEXT UNIQUE NOT NULL,
			sector TEXT,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS bills (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			supplier_id UUID NOT NULL REFERENCES users(id),
			mda_id UUID NOT NULL REFERENCES mdas(id),
			invoice_number TEXT UNIQUE NOT NULL,
			invoice_date DATE NOT NULL,
			due_date DATE NOT NULL,
			amount NUMERIC(18,2) NOT NULL,
			currency VARCHAR(3) NOT NULL DEFAULT 'KES',
			description TEXT,
			work_description TEXT,
			contract_reference TEXT,
			status VARCHAR(20) NOT NULL DEFAULT 'submitted',
			status_history JSONB NOT NULL DEFAULT '[]'::jsonb,
			verified_by UUID,
			verified_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS deeds (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			bill_id UUID NOT NULL REFERENCES bills(id),
			spv_id UUID NOT NULL REFERENCES users(id),
			deed_reference TEXT UNIQUE NOT NULL,
			purchase_price NUMERIC(18,2) NOT NULL,
			discount_rate NUMERIC(8,6) NOT NULL DEFAULT 0,
			executed_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS trust_accounts (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			spv_id UUID NOT NULL REFERENCES users(id),
			account_type VARCHAR(20) NOT NULL,
			account_name TEXT NOT NULL,
			bank_name TEXT,
			balance NUMERIC(18,2) NOT NULL DEFAULT 0,
			status VARCHAR(10) NOT NULL DEFAULT 'active',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS waterfall_distributions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			bill_id UUID NOT NULL REFERENCES bills(id),
			deed_id UUID NOT NULL REFERENCES deeds(id),
			trust_account_id UUID NOT NULL REFERENCES trust_accounts(id),
			obligor_payment_amount NUMERIC(18,2) NOT NULL,
			tax_rate NUMERIC(8,6) NOT NULL DEFAULT 0,
			trustee_fee_rate NUMERIC(8,6) NOT NULL DEFAULT 0.005,
			admin_fee_rate NUMERIC(8,6) NOT NULL DEFAULT 0.003,
			interest_rate NUMERIC(8,6) NOT NULL DEFAULT 0.08,
			taxes_amount NUMERIC(18,2) NOT NULL DEFAULT 0,
			trustee_fees_amount NUMERIC(18,2) NOT NULL DEFAULT 0,
			admin_fees_amount NUMERIC(18,2) NOT NULL DEFAULT 0,
			interest_amount NUMERIC(18,2) NOT NULL DEFAULT 0,
			principal_amount NUMERIC(18,2) NOT NULL DEFAULT 0,
			residual_amount NUMERIC(18,2) NOT NULL DEFAULT 0,
			status VARCHAR(15) NOT NULL DEFAULT 'pending',
			distributed_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS settlement_transactions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			waterfall_id UUID NOT NULL REFERENCES waterfall_distributions(id),
			bill_id UUID NOT NULL REFERENCES bills(id),
			from_account_id UUID NOT NULL REFERENCES trust_accounts(id),
			transaction_type VARCHAR(30) NOT NULL,
			amount NUMERIC(18,2) NOT NULL,
			status VARCHAR(15) NOT NULL DEFAULT 'authorized',
			reference_number TEXT,
			authorized_at TIMESTAMPTZ,
			settled_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS reconciliation_records (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			waterfall_id UUID UNIQUE NOT NULL REFERENCES waterfall_distributions(id),
			period_start TIMESTAMPTZ NOT NULL,
			period_end TIMESTAMPTZ NOT NULL,
			expected_balance NUMERIC(18,2) NOT NULL,
			actual_balance NUMERIC(18,2) NOT NULL,
			variance NUMERIC(18,2) NOT NULL,
			status VARCHAR(15) NOT NULL DEFAULT 'pending',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bills_status ON bills (status)`,
		`CREATE INDEX IF NOT EXISTS idx_distributions_status ON waterfall_distributions (status)`,
		`CREATE INDEX IF NOT EXISTS idx_settlement_waterfall ON settlement_transactions (waterfall_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("Migration statement failed: %v", err)
			return err
		}
	}

	// Older deployments predate the reference_number column
	if err := addReferenceNumberColumn(db); err != nil {
		return err
	}

	if err := seedRoles(db); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func addReferenceNumberColumn(db *sql.DB) error {
	query := `
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1
				FROM information_schema.columns
				WHERE table_name = 'settlement_transactions'
				AND column_name = 'reference_number'
			) THEN
				ALTER TABLE settlement_transactions ADD COLUMN reference_number TEXT;
				RAISE NOTICE 'Added reference_number column to settlement_transactions';
			END IF;
		END $$;
	`
	_, err := db.Exec(query)
	if err != nil {
		log.Printf("Failed to run migration for reference_number column: %v", err)
		return err
	}
	return nil
}

func seedRoles(db *sql.DB) error {
	query := `INSERT INTO roles (name)
	          VALUES ('supplier'), ('spv'), ('mda'), ('treasury'), ('admin')
	          ON CONFLICT (name) DO NOTHING`
	if _, err := db.Exec(query); err != nil {
		log.Printf("Failed to seed roles: %v", err)
		return err
	}
	return nil
}

package database

import (
	"database/sql"
	"fmt"

	"github.com/Einzelgaanger/CPF/app/models"
	"golang.org/x/crypto/bcrypt"
)

// hashPassword hashes a password using bcrypt
func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password, full_name, is_active, created_at, updated_at
			  FROM users WHERE email = $1 AND is_active = true`

	err := db.QueryRow(query, email).Scan(
		&user.ID, &user.Email, &user.Password, &user.FullName,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func GetUserByID(db *sql.DB, userID string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password, full_name, is_active, created_at, updated_at
			  FROM users WHERE id = $1 AND is_active = true`

	err := db.QueryRow(query, userID).Scan(
		&user.ID, &user.Email, &user.Password, &user.FullName,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func GetUserRoles(db *sql.DB, userID string) ([]*models.Role, error) {
	query := `SELECT r.id, r.name, r.is_active, r.created_at, r.updated_at
			  FROM roles r
			  JOIN user_roles ur ON ur.role_id = r.id
			  WHERE ur.user_id = $1 AND r.is_active = true AND ur.deleted_at IS NULL`

	rows, err := db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []*models.Role
	for rows.Next() {
		role := &models.Role{}
		if err := rows.Scan(&role.ID, &role.Name, &role.IsActive, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// CreateUser inserts a user with a hashed password and assigns the named
// role. Used by the seeding tool and the admin user endpoint.
func CreateUser(db *sql.DB, user *models.User, roleName string) error {
	hashed, err := hashPassword(user.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRow(
		`INSERT INTO users (email, password, full_name, phone)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		user.Email, hashed, user.FullName, user.Phone,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	var roleID string
	err = tx.QueryRow(`SELECT id FROM roles WHERE name = $1 AND is_active = true`, roleName).Scan(&roleID)
	if err != nil {
		return fmt.Errorf("failed to find role %q: %w", roleName, err)
	}

	_, err = tx.Exec(
		`INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)
		 ON CONFLICT (user_id, role_id) DO NOTHING`,
		user.ID, roleID,
	)
	if err != nil {
		return fmt.Errorf("failed to assign role: %w", err)
	}

	return tx.Commit()
}

// UpsertProfile writes the role-specific registration details for a user.
func UpsertProfile(db *sql.DB, profile *models.Profile) error {
	query := `INSERT INTO profiles
		(user_id, company_name, registration_number, tax_id, bank_name, bank_account,
		 spv_name, license_number, mda_name, mda_code, department, address, profile_completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (user_id) DO UPDATE SET
			company_name = EXCLUDED.company_name,
			registration_number = EXCLUDED.registration_number,
			tax_id = EXCLUDED.tax_id,
			bank_name = EXCLUDED.bank_name,
			bank_account = EXCLUDED.bank_account,
			spv_name = EXCLUDED.spv_name,
			license_number = EXCLUDED.license_number,
			mda_name = EXCLUDED.mda_name,
			mda_code = EXCLUDED.mda_code,
			department = EXCLUDED.department,
			address = EXCLUDED.address,
			profile_completed = EXCLUDED.profile_completed,
			updated_at = NOW()
		RETURNING id`

	return db.QueryRow(query,
		profile.UserID, profile.CompanyName, profile.RegistrationNumber, profile.TaxID,
		profile.BankName, profile.BankAccount, profile.SPVName, profile.LicenseNumber,
		profile.MDAName, profile.MDACode, profile.Department, profile.Address,
		profile.ProfileCompleted,
	).Scan(&profile.ID)
}

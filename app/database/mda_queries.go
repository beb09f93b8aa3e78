package database

import (
	"database/sql"

	"github.com/Einzelgaanger/CPF/app/models"
)

func GetMDAs(db *sql.DB) ([]*models.MDA, error) {
	query := `SELECT id, name, code, sector, is_active, created_at, updated_at
			  FROM mdas WHERE deleted_at IS NULL ORDER BY name`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mdas []*models.MDA
	for rows.Next() {
		mda := &models.MDA{}
		var sector sql.NullString
		if err := rows.Scan(&mda.ID, &mda.Name, &mda.Code, &sector, &mda.IsActive, &mda.CreatedAt, &mda.UpdatedAt); err != nil {
			return nil, err
		}
		mda.Sector = sector.String
		mdas = append(mdas, mda)
	}
	return mdas, rows.Err()
}

func CreateMDA(db *sql.DB, mda *models.MDA) error {
	query := `INSERT INTO mdas (name, code, sector)
			  VALUES ($1, $2, $3)
			  RETURNING id, created_at, updated_at`
	return db.QueryRow(query, mda.Name, mda.Code, mda.Sector).
		Scan(&mda.ID, &mda.CreatedAt, &mda.UpdatedAt)
}

// Package medications persists a patient's medication schedule.
package medications

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/reminisce-care/reminisce/internal/common"
	"github.com/reminisce-care/reminisce/internal/dbx"
	"github.com/reminisce-care/reminisce/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, medication *models.Medication) (*models.Medication, error) {

	query :=
		`INSERT INTO medications (patient_id, name, dosage, time_of_day, frequency)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, taken, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		medication.PatientID, medication.Name, medication.Dosage,
		medication.TimeOfDay, medication.Frequency,
	).Scan(&medication.ID, &medication.Taken, &medication.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return medication, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Medication, error) {

	query :=
		`SELECT id, patient_id, name, dosage, time_of_day, frequency, taken, created_at
		 FROM medications
		 WHERE id = $1
		 `

	m := &models.Medication{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&m.ID, &m.PatientID, &m.Name,
		&m.Dosage, &m.TimeOfDay, &m.Frequency, &m.Taken, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return m, nil
}

// ListByPatient returns the patient's medications, newest first.
func (r *PostgresRepository) ListByPatient(ctx context.Context, patientID int64) ([]*models.Medication, error) {

	query :=
		`SELECT id, patient_id, name, dosage, time_of_day, frequency, taken, created_at
		 FROM medications
		 WHERE patient_id = $1
		 ORDER BY id DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var list []*models.Medication
	for rows.Next() {
		m := &models.Medication{}
		if err := rows.Scan(&m.ID, &m.PatientID, &m.Name, &m.Dosage,
			&m.TimeOfDay, &m.Frequency, &m.Taken, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return list, nil
}

// Toggle flips the taken flag in place and returns the updated row.
func (r *PostgresRepository) Toggle(ctx context.Context, id int64) (*models.Medication, error) {

	query :=
		`UPDATE medications
		 SET taken = NOT taken
		 WHERE id = $1
		 RETURNING id, patient_id, name, dosage, time_of_day, frequency, taken, created_at
		 `

	m := &models.Medication{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&m.ID, &m.PatientID, &m.Name,
		&m.Dosage, &m.TimeOfDay, &m.Frequency, &m.Taken, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return m, nil
}

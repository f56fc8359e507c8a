// Package emergencylogs persists SOS events raised by patients.
package emergencylogs

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

func (r *PostgresRepository) Create(ctx context.Context, patientID int64, status string) (*models.EmergencyLog, error) {

	query :=
		`INSERT INTO emergency_logs (patient_id, status)
		 VALUES ($1, $2)
		 RETURNING id, patient_id, status, resolved, created_at
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, patientID, status))
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.EmergencyLog, error) {

	query :=
		`SELECT id, patient_id, status, resolved, created_at
		 FROM emergency_logs
		 WHERE id = $1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// ListByPatient returns the patient's SOS events, newest first.
func (r *PostgresRepository) ListByPatient(ctx context.Context, patientID int64) ([]*models.EmergencyLog, error) {

	query :=
		`SELECT id, patient_id, status, resolved, created_at
		 FROM emergency_logs
		 WHERE patient_id = $1
		 ORDER BY created_at DESC, id DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var list []*models.EmergencyLog
	for rows.Next() {
		l := &models.EmergencyLog{}
		if err := rows.Scan(&l.ID, &l.PatientID, &l.Status, &l.Resolved, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		list = append(list, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return list, nil
}

// Resolve marks the event handled. Resolving twice is a no-op.
func (r *PostgresRepository) Resolve(ctx context.Context, id int64) (*models.EmergencyLog, error) {

	query :=
		`UPDATE emergency_logs
		 SET resolved = TRUE
		 WHERE id = $1
		 RETURNING id, patient_id, status, resolved, created_at
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.EmergencyLog, error) {
	l := &models.EmergencyLog{}
	err := row.Scan(&l.ID, &l.PatientID, &l.Status, &l.Resolved, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return l, nil
}

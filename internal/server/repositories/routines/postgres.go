// Package routines persists a patient's daily routine tasks.
package routines

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

func (r *PostgresRepository) Create(ctx context.Context, routine *models.Routine) (*models.Routine, error) {

	query :=
		`INSERT INTO routines (patient_id, task, time_of_day, frequency)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, is_completed, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		routine.PatientID, routine.Task, routine.TimeOfDay, routine.Frequency,
	).Scan(&routine.ID, &routine.IsCompleted, &routine.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return routine, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Routine, error) {

	query :=
		`SELECT id, patient_id, task, time_of_day, frequency, is_completed, created_at
		 FROM routines
		 WHERE id = $1
		 `

	rt := &models.Routine{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&rt.ID, &rt.PatientID, &rt.Task,
		&rt.TimeOfDay, &rt.Frequency, &rt.IsCompleted, &rt.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return rt, nil
}

// ListByPatient returns the patient's routines, newest first.
func (r *PostgresRepository) ListByPatient(ctx context.Context, patientID int64) ([]*models.Routine, error) {

	query :=
		`SELECT id, patient_id, task, time_of_day, frequency, is_completed, created_at
		 FROM routines
		 WHERE patient_id = $1
		 ORDER BY id DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var list []*models.Routine
	for rows.Next() {
		rt := &models.Routine{}
		if err := rows.Scan(&rt.ID, &rt.PatientID, &rt.Task, &rt.TimeOfDay,
			&rt.Frequency, &rt.IsCompleted, &rt.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		list = append(list, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return list, nil
}

// Toggle flips the completion flag in place and returns the updated row.
func (r *PostgresRepository) Toggle(ctx context.Context, id int64) (*models.Routine, error) {

	query :=
		`UPDATE routines
		 SET is_completed = NOT is_completed
		 WHERE id = $1
		 RETURNING id, patient_id, task, time_of_day, frequency, is_completed, created_at
		 `

	rt := &models.Routine{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&rt.ID, &rt.PatientID, &rt.Task,
		&rt.TimeOfDay, &rt.Frequency, &rt.IsCompleted, &rt.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return rt, nil
}

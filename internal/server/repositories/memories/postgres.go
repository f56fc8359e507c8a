// Package memories persists patient memories, their reminiscence questions
// and the per-day answers patients give to them. Question lists live in a
// JSONB column; the active question advances once per calendar day via
// RotateStale.
package memories

import (
	"context"
	"database/sql"
	"encoding/json"
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

// Create inserts a memory with its generated question list.
func (r *PostgresRepository) Create(ctx context.Context, memory *models.Memory) (*models.Memory, error) {

	questions, err := json.Marshal(memory.Questions)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	query :=
		`INSERT INTO memories (patient_id, image_url, description, questions)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, question_index, rotated_on, created_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		memory.PatientID, memory.ImageURL, memory.Description, questions,
	).Scan(&memory.ID, &memory.QuestionIndex, &memory.RotatedOn, &memory.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return memory, nil
}

// Get returns the memory with the given id, or common.ErrorNotFound.
func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Memory, error) {

	query :=
		`SELECT id, patient_id, image_url, description, questions, question_index, rotated_on, created_at
		 FROM memories
		 WHERE id = $1
		 `

	m := &models.Memory{}
	var questions []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(&m.ID, &m.PatientID, &m.ImageURL,
		&m.Description, &questions, &m.QuestionIndex, &m.RotatedOn, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := json.Unmarshal(questions, &m.Questions); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return m, nil
}

// ListByPatient returns the patient's memories, newest first.
func (r *PostgresRepository) ListByPatient(ctx context.Context, patientID int64) ([]*models.Memory, error) {

	query :=
		`SELECT id, patient_id, image_url, description, questions, question_index, rotated_on, created_at
		 FROM memories
		 WHERE patient_id = $1
		 ORDER BY created_at DESC, id DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var list []*models.Memory
	for rows.Next() {
		m := &models.Memory{}
		var questions []byte
		if err := rows.Scan(&m.ID, &m.PatientID, &m.ImageURL, &m.Description,
			&questions, &m.QuestionIndex, &m.RotatedOn, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if err := json.Unmarshal(questions, &m.Questions); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return list, nil
}

// RotateStale advances the active question of every memory of the patient
// whose question was last rotated before today. The index wraps around the
// question list.
func (r *PostgresRepository) RotateStale(ctx context.Context, patientID int64) error {

	query :=
		`UPDATE memories
		 SET question_index = (question_index + 1) % greatest(jsonb_array_length(questions), 1),
		     rotated_on = current_date
		 WHERE patient_id = $1 AND rotated_on < current_date
		 `

	_, err := r.db.ExecContext(ctx, query, patientID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// UpsertAnswer records the patient's answer to a memory for today,
// overwriting an earlier answer from the same day.
func (r *PostgresRepository) UpsertAnswer(ctx context.Context, memoryID int64, answer string) (*models.MemoryAnswer, error) {

	query :=
		`INSERT INTO memory_answers (memory_id, answered_on, answer)
		 VALUES ($1, current_date, $2)
		 ON CONFLICT (memory_id, answered_on) DO UPDATE SET answer = EXCLUDED.answer
		 RETURNING id, memory_id, answered_on, answer, created_at
		 `

	a := &models.MemoryAnswer{}
	err := r.db.QueryRowContext(ctx, query, memoryID, answer).
		Scan(&a.ID, &a.MemoryID, &a.AnsweredOn, &a.Answer, &a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

// ListAnswers returns the recorded answers for a memory, newest day first.
func (r *PostgresRepository) ListAnswers(ctx context.Context, memoryID int64) ([]*models.MemoryAnswer, error) {

	query :=
		`SELECT id, memory_id, answered_on, answer, created_at
		 FROM memory_answers
		 WHERE memory_id = $1
		 ORDER BY answered_on DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, memoryID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var list []*models.MemoryAnswer
	for rows.Next() {
		a := &models.MemoryAnswer{}
		if err := rows.Scan(&a.ID, &a.MemoryID, &a.AnsweredOn, &a.Answer, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return list, nil
}
